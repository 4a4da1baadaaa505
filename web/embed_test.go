package web_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ssrkit/web"
)

func TestStaticContainsClientBundle(t *testing.T) {
	t.Parallel()

	data, err := fs.ReadFile(web.Static, web.ClientBundle)
	require.NoError(t, err)
	require.Contains(t, string(data), "client.wasm")
}
