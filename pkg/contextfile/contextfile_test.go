package contextfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/neurodesk/yartl/pkg/yartl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tpl = `{{ for u in users }}{{ u.name }}:{{ u.age }}{{ if u.admin }}*{{ end }} {{ end }}`

func TestLoadFormatsAgree(t *testing.T) {
	sources := map[string]string{
		"ctx.json": `{"users":[{"name":"ada","age":36,"admin":true},{"name":"bob","age":7.5,"admin":false}]}`,
		"ctx.yaml": `
users:
  - name: ada
    age: 36
    admin: true
  - name: bob
    age: 7.5
    admin: false
`,
		"ctx.star": `
users = [
    {"name": "ada", "age": 36, "admin": True},
    {"name": "bob", "age": 7.5, "admin": False},
]
`,
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			ctx, err := Load(name, []byte(src))
			require.NoError(t, err)
			out, err := yartl.RenderValue(tpl, ctx)
			require.NoError(t, err)
			assert.Equal(t, "ada:36* bob:7.5 ", out)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	f, err := DetectFormat("a/b/C.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = DetectFormat("context.txt")
	assert.Error(t, err)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("bad.json", []byte(`{"a":`))
	var ctxErr *yartl.ContextError
	assert.ErrorAs(t, err, &ctxErr)

	_, err = Load("bad.yaml", []byte("a: [1, 2"))
	assert.Error(t, err)

	_, err = Load("multi.yaml", []byte("a: 1\n---\nb: 2\n"))
	assert.ErrorContains(t, err, "single YAML document")

	_, err = Load("bad.star", []byte("x = undefined_name"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ctx.yml")
	require.NoError(t, os.WriteFile(path, []byte("greeting: hi\n"), 0o644))

	ctx, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, yartl.ObjectValue{"greeting": yartl.StringValue("hi")}, ctx)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
