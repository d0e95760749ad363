package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scott-cotton/cli"
	"github.com/signadot/korm-format/go-korm/format"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFmt(t *testing.T) {
	src := "name:\"a\" tags:[1,2] x: null"
	path := writeFile(t, "a.korm", src)
	cfg := &FmtConfig{MainConfig: &MainConfig{}}
	out := &bytes.Buffer{}
	require.NoError(t, fmtFiles(cfg, nil, out, []string{path}))
	require.Equal(t, "name: \"a\"\ntags: [1, 2]\nx: null\n", out.String())

	out.Reset()
	cfg.Diff = true
	require.NoError(t, fmtFiles(cfg, nil, out, []string{path}))
	require.Contains(t, out.String(), "-"+src+"\n")
	require.Contains(t, out.String(), "+name: \"a\"\n")

	out.Reset()
	cfg.Diff = false
	cfg.Write = true
	require.NoError(t, fmtFiles(cfg, nil, out, []string{path}))
	require.Empty(t, out.String())
	d, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "name: \"a\"\ntags: [1, 2]\nx: null\n", string(d))
}

func TestFmtStdin(t *testing.T) {
	l := format.Min()
	cfg := &FmtConfig{MainConfig: &MainConfig{Layout: &l}}
	out := &bytes.Buffer{}
	require.NoError(t, fmtFiles(cfg, strings.NewReader("a:1\nb:{c:2}"), out, files(nil)))
	require.Equal(t, "a: 1 b: { c: 2 }\n", out.String())
}

func TestView(t *testing.T) {
	a := writeFile(t, "a.korm", "a: 1")
	b := writeFile(t, "b.korm", "[1,2]")
	cfg := &ViewConfig{MainConfig: &MainConfig{}}
	out := &bytes.Buffer{}
	require.NoError(t, viewFiles(cfg, nil, out, []string{a, b}))
	require.Equal(t, "a: 1\n\n[1, 2]\n", out.String())
}

func TestCheck(t *testing.T) {
	good := writeFile(t, "good.korm", "a: [1, 2]")
	bad := writeFile(t, "bad.korm", "a: [1, 2")
	out := &bytes.Buffer{}
	n, err := checkFiles(nil, out, []string{good, bad})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.True(t, strings.HasPrefix(out.String(), bad+": "), out.String())
	require.NotContains(t, out.String(), good)
}

func TestConvert(t *testing.T) {
	path := writeFile(t, "in.yaml", "a: 1\nb:\n  - x\n")
	cfg := &ConvertConfig{MainConfig: &MainConfig{}}
	out := &bytes.Buffer{}
	require.NoError(t, convertFiles(cfg, nil, out, []string{path}))
	require.Equal(t, "a: 1\nb: [\"x\"]\n", out.String())

	out.Reset()
	cfg.To = "json"
	require.NoError(t, convertFiles(cfg, nil, out, []string{path}))
	require.Equal(t, "{\"a\":1,\"b\":[\"x\"]}\n", out.String())

	out.Reset()
	cfg.To = "toml"
	require.Error(t, convertFiles(cfg, nil, out, []string{path}))

	out.Reset()
	cfg.To = "json"
	cfg.From = "korm"
	require.NoError(t, convertFiles(cfg, strings.NewReader("k: 'c'"), out, files(nil)))
	require.Equal(t, "{\"k\":\"c\"}\n", out.String())
}

func TestQuery(t *testing.T) {
	path := writeFile(t, "d.korm", "items: [{ n: 1 }, { n: 5 }]")
	cfg := &QueryConfig{MainConfig: &MainConfig{}}
	out := &bytes.Buffer{}
	require.NoError(t, queryFiles(cfg, nil, out, "map(items, .n)", []string{path}))
	require.Equal(t, "[1, 5]\n", out.String())

	require.Error(t, queryFiles(cfg, nil, out, "items[", []string{path}))
}

func TestPatch(t *testing.T) {
	doc := writeFile(t, "d.korm", "a: 1 b: 2")
	merge := writeFile(t, "m.korm", "b: null c: 3")
	cfg := &PatchConfig{MainConfig: &MainConfig{}, Merge: true, JSON: true}
	out := &bytes.Buffer{}
	require.NoError(t, patchFiles(cfg, nil, out, merge, []string{doc}))
	require.Equal(t, "{\"a\":1,\"c\":3}\n", out.String())

	ops := writeFile(t, "p.json", `[{"op": "add", "path": "/c", "value": [true]}]`)
	cfg.Merge = false
	out.Reset()
	require.NoError(t, patchFiles(cfg, nil, out, ops, []string{doc}))
	require.Equal(t, "{\"a\":1,\"b\":2,\"c\":[true]}\n", out.String())
}

func TestInputFormat(t *testing.T) {
	tests := []struct {
		path, from, want string
	}{
		{"a.json", "", jsonIn},
		{"a.YML", "", yamlIn},
		{"a.korm", "", kormIn},
		{"-", "", kormIn},
		{"a.json", "yaml", yamlIn},
	}
	for _, tt := range tests {
		got, err := inputFormat(tt.path, tt.from)
		require.NoError(t, err)
		require.Equal(t, tt.want, got, tt.path)
	}
	_, err := inputFormat("a", "xml")
	require.Error(t, err)
}

func TestMainOptions(t *testing.T) {
	cfg := &MainConfig{}
	f, err := cfg.openOut("-")
	require.NoError(t, err)
	require.Nil(t, f)
	require.Nil(t, cfg.CloseOut)

	path := filepath.Join(t.TempDir(), "out.korm")
	f, err = cfg.openOut(path)
	require.NoError(t, err)
	require.NotNil(t, f)
	require.Equal(t, path, cfg.Out)
	require.NoError(t, cfg.CloseOut())

	require.NoError(t, (&MainConfig{Out: "-", Color: true}).validate())
	require.ErrorIs(t, (&MainConfig{Out: path, Color: true}).validate(), cli.ErrUsage)
	require.ErrorIs(t, (&MainConfig{Indent: -1}).validate(), cli.ErrUsage)
	_, err = (&MainConfig{}).openOut(filepath.Join(path, "nested"))
	require.Error(t, err)
}
