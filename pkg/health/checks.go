package health

import (
	"context"
	"fmt"
	"io"
	"io/fs"

	"github.com/a-h/templ"
)

// RenderCheck renders component to io.Discard. The server is only ready when
// its page tree renders.
func RenderCheck(component func() templ.Component) CheckFunc {
	return func(ctx context.Context) error {
		if err := component().Render(ctx, io.Discard); err != nil {
			return fmt.Errorf("%w: %w", ErrRenderFailed, err)
		}
		return nil
	}
}

// FileCheck reports whether every name exists in fsys, for example the files
// of the client bundle.
func FileCheck(fsys fs.FS, names ...string) CheckFunc {
	return func(context.Context) error {
		for _, name := range names {
			if _, err := fs.Stat(fsys, name); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrMissingFile, name, err)
			}
		}
		return nil
	}
}
