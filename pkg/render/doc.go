// Package render streams templ components into an in-memory byte stream.
//
// ToStream starts the render on its own goroutine and hands back a [Stream]
// right away. Output is readable as soon as the component writes it, and
// [Stream.AllReady] is closed once the component has returned:
//
//	stream, err := render.ToStream(ctx, shell.Document(cfg, views.App()))
//	if err != nil {
//	    return err
//	}
//	if err := stream.Wait(ctx); err != nil {
//	    return err
//	}
//	w.Header().Set("Content-Type", "text/html")
//	_, err = stream.WriteTo(w)
//
// # Completion
//
// There is no limit on how long a render may take unless [WithTimeout] is
// given. A component panic is converted into an error wrapping
// [ErrRenderPanic], so AllReady is always closed eventually.
//
// # Observability
//
// Every render runs inside an OpenTelemetry span named "render.stream".
// Pass [WithMetrics] to record Prometheus histograms for duration and size.
package render
