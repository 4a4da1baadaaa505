package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ssrkit/internal"
)

func TestIsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct HTTPError", func(t *testing.T) {
		t.Parallel()
		err := internal.NewHTTPError(http.StatusNotFound, "not found")
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("wrapped HTTPError", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.NewHTTPError(http.StatusBadRequest, "bad request")
		err := fmt.Errorf("handler failed: %w", httpErr)
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("double-wrapped HTTPError", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.NewHTTPError(http.StatusConflict, "conflict")
		err := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", httpErr))
		require.True(t, internal.IsHTTPError(err))
	})

	t.Run("unrelated error", func(t *testing.T) {
		t.Parallel()
		err := errors.New("something went wrong")
		require.False(t, internal.IsHTTPError(err))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		require.False(t, internal.IsHTTPError(nil))
	})
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct HTTPError", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.NewHTTPError(http.StatusNotFound, "not found")
		got := internal.AsHTTPError(httpErr)
		require.NotNil(t, got)
		require.Equal(t, http.StatusNotFound, got.Code)
		require.Equal(t, "not found", got.Message)
	})

	t.Run("wrapped HTTPError preserves fields", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.NewHTTPError(http.StatusForbidden, "forbidden")
		httpErr.Title = "Access Denied"
		httpErr.ErrorCode = "AUTH_001"
		err := fmt.Errorf("middleware: %w", httpErr)

		got := internal.AsHTTPError(err)
		require.NotNil(t, got)
		require.Equal(t, http.StatusForbidden, got.Code)
		require.Equal(t, "forbidden", got.Message)
		require.Equal(t, "Access Denied", got.Title)
		require.Equal(t, "AUTH_001", got.ErrorCode)
	})

	t.Run("unrelated error returns nil", func(t *testing.T) {
		t.Parallel()
		err := errors.New("plain error")
		require.Nil(t, internal.AsHTTPError(err))
	})

	t.Run("nil returns nil", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(nil))
	})
}

func TestStatusCode(t *testing.T) {
	t.Parallel()

	require.Equal(t, http.StatusNotFound, internal.StatusCode(internal.ErrNotFound("missing")))
	require.Equal(t, http.StatusServiceUnavailable, internal.StatusCode(fmt.Errorf("wrap: %w", internal.ErrServiceUnavailable("down"))))
	require.Equal(t, http.StatusInternalServerError, internal.StatusCode(errors.New("plain")))
	require.Equal(t, http.StatusInternalServerError, internal.StatusCode(internal.NewHTTPError(0, "no code")))
}

func TestHTTPErrorOptions(t *testing.T) {
	t.Parallel()

	cause := errors.New("render failed")
	err := internal.ErrInternal("Internal Server Error",
		internal.WithTitle("Oops"),
		internal.WithDetail("the page could not be rendered"),
		internal.WithErrorCode("RENDER"),
		internal.WithRequestID("req-1"),
		internal.WithError(cause),
	)

	require.ErrorIs(t, err, cause)
	require.Equal(t, "Oops", err.Title)
	require.Equal(t, "the page could not be rendered", err.Detail)
	require.Equal(t, "RENDER", err.ErrorCode)
	require.Equal(t, "req-1", err.RequestID)
	require.Equal(t, "Internal Server Error", err.StatusText())
	require.Equal(t, http.StatusInternalServerError, err.StatusCode())
}
