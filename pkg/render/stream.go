package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Stream is the byte stream produced by rendering a component.
// Chunks become readable as soon as the component writes them.
// A Stream is single-use: it is consumed exactly once, by Read or WriteTo.
type Stream struct {
	buf   bytes.Buffer
	wake  chan struct{}
	ready chan struct{}
	err   error
	size  int64
	done  bool
	mu    sync.Mutex
}

func newStream() *Stream {
	return &Stream{
		wake:  make(chan struct{}, 1),
		ready: make(chan struct{}),
	}
}

// ToStream starts rendering component in its own goroutine and returns immediately.
// The returned Stream receives the component's output; AllReady is closed once the
// component has finished rendering, successfully or not.
//
// Cancelling ctx aborts the render.
func ToStream(ctx context.Context, component templ.Component, opts ...Option) (*Stream, error) {
	if component == nil {
		return nil, ErrNilComponent
	}

	cfg := newConfig(opts...)
	s := newStream()

	renderCtx, cancel := ctx, context.CancelFunc(func() {})
	if cfg.timeout > 0 {
		renderCtx, cancel = context.WithTimeout(ctx, cfg.timeout)
	}

	renderCtx, span := cfg.tracer.Start(renderCtx, "render.stream")

	go func() {
		defer cancel()
		defer span.End()

		start := time.Now()
		err := renderComponent(renderCtx, component, s)
		if err != nil && errors.Is(renderCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("%w after %s: %w", ErrTimeout, cfg.timeout, err)
		}

		span.SetAttributes(attribute.Int64("render.bytes", s.Size()))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if cfg.onError != nil {
				cfg.onError(err)
			}
		}
		if cfg.metrics != nil {
			cfg.metrics.observe(time.Since(start), s.Size(), err)
		}

		s.finish(err)
	}()

	return s, nil
}

// renderComponent converts a panicking component into an error so the
// render goroutine always closes the stream.
func renderComponent(ctx context.Context, component templ.Component, w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRenderPanic, r)
		}
	}()
	return component.Render(ctx, w)
}

// Write appends rendered bytes to the stream. It is called by the component.
func (s *Stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return 0, ErrStreamClosed
	}
	n, _ := s.buf.Write(p)
	s.size += int64(n)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return n, nil
}

// Read reads rendered bytes, blocking until more output is available or the
// render has finished. It returns io.EOF after a successful render and the
// render error otherwise.
func (s *Stream) Read(p []byte) (int, error) {
	for {
		s.mu.Lock()
		if s.buf.Len() > 0 {
			n, _ := s.buf.Read(p)
			s.mu.Unlock()
			return n, nil
		}
		if s.done {
			err := s.err
			s.mu.Unlock()
			if err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		s.mu.Unlock()

		select {
		case <-s.wake:
		case <-s.ready:
		}
	}
}

// WriteTo copies the stream to w, flushing after every chunk when w supports it.
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	flusher, _ := w.(interface{ Flush() })

	var total int64
	chunk := make([]byte, 32*1024)
	for {
		n, err := s.Read(chunk)
		if n > 0 {
			written, werr := w.Write(chunk[:n])
			total += int64(written)
			if werr != nil {
				return total, werr
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// AllReady returns a channel that is closed once the render has finished.
func (s *Stream) AllReady() <-chan struct{} {
	return s.ready
}

// Wait blocks until the render has finished or ctx is done.
// It returns the render error, or ctx.Err() if ctx ended first.
func (s *Stream) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return s.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the render error. It is nil until the render has finished.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Size returns the number of bytes rendered so far.
func (s *Stream) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

func (s *Stream) finish(err error) {
	s.mu.Lock()
	s.err = err
	s.done = true
	s.mu.Unlock()
	close(s.ready)
}
