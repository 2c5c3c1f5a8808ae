package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/firebird-suite/heron"
	"github.com/simonhull/firebird-suite/heron/internal/output"
	"github.com/simonhull/firebird-suite/heron/internal/site"
	"github.com/simonhull/firebird-suite/heron/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shapesJSON = `[{
  "name": "Shapes",
  "kind": "namespace",
  "namespaceDef": {"elements": [{
    "name": "Circle",
    "kind": "class",
    "jsDoc": {"doc": "A round shape.", "tags": [{"kind": "category", "doc": "Geometry"}]},
    "classDef": {"methods": [{"name": "area", "kind": "method", "functionDef": {"returnType": {"kind": "keyword", "repr": "number", "keyword": "number"}}}]}
  }]}
}]`

const projectConfig = `reference:
  output: site
logging:
  level: error
  format: text
packages:
  - name: demo
    dir: ref
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	output.SetWriter(buf)
	t.Cleanup(func() { output.SetWriter(nil) })

	root := RootCmd()
	root.AddCommand(GenerateCmd(), ServeCmd(), InitCmd(), VersionCmd())
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(projectConfig), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ref"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ref", "demo.json"), []byte(shapesJSON), 0644))
	return dir
}

func TestGenerate_WritesSite(t *testing.T) {
	dir := project(t)

	out, err := run(t, "generate", "--config", filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 4 reference pages for 1 packages")

	page, err := os.ReadFile(filepath.Join(dir, "site", "api", "demo", "~", "Shapes.Circle", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `<span class="tok-name">area</span>`)
	assert.FileExists(t, filepath.Join(dir, "site", site.ManifestFile))
}

func TestGenerate_FlagOverrides(t *testing.T) {
	dir := project(t)
	out := filepath.Join(t.TempDir(), "public")

	_, err := run(t, "generate", "--config", filepath.Join(dir, config.FileName), "--out", out, "--root", "/reference")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "reference", "demo", "index.html"))
}

func TestGenerate_SkipReference(t *testing.T) {
	dir := project(t)
	t.Setenv(config.SkipEnv, "yes")

	out, err := run(t, "generate", "--config", filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Contains(t, out, "Reference generation skipped")
	assert.NoDirExists(t, filepath.Join(dir, "site"))
}

func TestGenerate_ContainsBadFiles(t *testing.T) {
	dir := project(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ref", "broken.json"), []byte("{not json"), 0644))

	out, err := run(t, "generate", "--config", filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Contains(t, out, "1 items skipped")
}

func TestGenerate_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("reference: [unterminated"), 0644))

	_, err := run(t, "generate", "--config", path)
	assert.Error(t, err)
}

func TestInit_WritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)

	_, err := run(t, "init", "--config", path, "--package", "deno", "--dir", "./docs")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Packages, 1)
	assert.Equal(t, "deno", cfg.Packages[0].Name)
	assert.Equal(t, "./docs", cfg.Packages[0].Dir)
	assert.Equal(t, "/api", cfg.Reference.Root)

	_, err = run(t, "init", "--config", path)
	assert.Error(t, err)

	_, err = run(t, "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "heron "+heron.Version+"\n", out)
}
