package schema

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleOpenAPI = `openapi: 3.0.0
info:
  title: Pet Store
  version: '1.0.0'
paths:
  /pets:
    get:
      summary: List pets
      responses:
        '200':
          description: ok
  /pets/{id}:
    get:
      description: Fetch one pet
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        '200':
          description: ok
    delete:
      responses:
        '204':
          description: gone
`

func TestLoadOpenAPIConvertsPathsToFamilies(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleOpenAPI), 0o600))

	doc, err := LoadOpenAPI(context.Background(), path)
	require.NoError(t, err)

	require.Equal(t, "Pet Store", doc.GetString("title", ""))

	family, ok := doc.Get("/pets")
	require.True(t, ok)
	require.True(t, family.IsMapping())

	// Single-operation single-segment path keeps the path as endpoint key.
	self, ok := family.Get("/pets")
	require.True(t, ok)
	require.Equal(t, "GET", self.GetString("method", ""))
	require.Equal(t, "List pets", self.GetString("description", ""))

	// Multi-operation path gets one endpoint per method, method-suffixed.
	get, ok := family.Get("/{id}/get")
	require.True(t, ok)
	require.Equal(t, "Fetch one pet", get.GetString("description", ""))
	idParam, ok := get.GetMapping("parameters").Get("id")
	require.True(t, ok)
	require.Equal(t, "string", idParam.GetString("type", ""))
	require.True(t, idParam.GetString("type", "") != "" && idParam.Has("required"))

	del, ok := family.Get("/{id}/delete")
	require.True(t, ok)
	require.Equal(t, "DELETE", del.GetString("method", ""))
}

func TestAutoDetectSelectsOpenAPI(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleOpenAPI), 0o600))

	doc, err := Load(context.Background(), path, FormatAuto)
	require.NoError(t, err)
	require.True(t, doc.Has("/pets"))
}

func TestSplitPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path   string
		family string
		rest   string
	}{
		{"/pets", "/pets", "/pets"},
		{"/pets/{id}", "/pets", "/{id}"},
		{"/a/b/c", "/a", "/b/c"},
		{"/", "/", "/"},
	}
	for _, tc := range cases {
		family, rest := splitPath(tc.path)
		require.Equal(t, tc.family, family, "path %s", tc.path)
		require.Equal(t, tc.rest, rest, "path %s", tc.path)
	}
}
