package hydrate

import (
	"errors"
	"fmt"
)

var (
	ErrRootNotFound  = errors.New("hydrate: root element not found")
	ErrUnknownAction = errors.New("hydrate: unknown action")
	ErrNilTree       = errors.New("hydrate: nil component tree")
	ErrBadBinding    = errors.New("hydrate: malformed data-on attribute")
)

// MismatchError reports the first place where server markup and the client
// render disagree.
type MismatchError struct {
	Path string
	Want string
	Got  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("hydrate: markup mismatch at %s: server has %s, client rendered %s", e.Path, e.Got, e.Want)
}
