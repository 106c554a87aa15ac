package app

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nodeprovider/internal/registry"
	"github.com/vk/nodeprovider/internal/testutil"
	mathnodes "github.com/vk/nodeprovider/modules/math"
)

const gradientManifest = `
node "GradientNode" {
  menu        = ["Gradient/Linear"]
  description = "Interpolates between color stops."

  input "stops" { type = list(number) }
}

view "GradientView" {
  targets = "GradientNode"
}
`

// newTestApp builds an isolated app over the math module, one manifest and
// a sources tree holding artifacts for a subset of the definitions.
func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"manifests/gradient.hcl":            gradientManifest,
		"sources/math/colornode.go":         "package math\n",
		"sources/math/basenodeview.go":      "package math\n",
		"sources/gradient/GradientNode.hcl": gradientManifest,
	})

	cfg, err := NewConfig(Config{
		ManifestsPath: filepath.Join(root, "manifests"),
		SourcesPath:   filepath.Join(root, "sources"),
		LogLevel:      "error",
		NoColor:       true,
	})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	a, err := NewApp(out, cfg, &mathnodes.Module{})
	require.NoError(t, err)
	return a, out
}

func TestNewConfig(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			cfg:  Config{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "text", cfg.LogFormat)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Empty(t, cfg.SourceExtensions)
			},
		},
		{
			name: "sources get default extensions",
			cfg:  Config{SourcesPath: dir},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultSourceExtensions, cfg.SourceExtensions)
			},
		},
		{
			name:    "missing manifests directory",
			cfg:     Config{ManifestsPath: filepath.Join(dir, "nope")},
			wantErr: "ManifestsPath",
		},
		{
			name:    "extension without dot",
			cfg:     Config{SourcesPath: dir, SourceExtensions: []string{"go"}},
			wantErr: "SourceExtensions",
		},
		{
			name:    "bad log level",
			cfg:     Config{LogLevel: "loud"},
			wantErr: "LogLevel",
		},
		{
			name:    "bad log format",
			cfg:     Config{LogFormat: "yaml"},
			wantErr: "LogFormat",
		},
		{
			name:    "bad address",
			cfg:     Config{Addr: "8080"},
			wantErr: "addr",
		},
		{
			name: "good address",
			cfg:  Config{Addr: "127.0.0.1:0"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestNewApp_JoinsCatalogAndManifests(t *testing.T) {
	a, _ := newTestApp(t)
	reg := a.Registry()

	var nodes []string
	for _, n := range reg.Nodes() {
		nodes = append(nodes, n.Name)
	}
	assert.Equal(t, []string{"ColorNode", "AddNode", "MultiplyNode", "GradientNode"}, nodes)
	assert.Len(t, reg.Views(), 2)

	entry, ok := reg.MenuEntry("Gradient/Linear")
	require.True(t, ok)
	assert.Equal(t, "manifest.GradientNode", entry.ID)

	gradient, err := a.lookup("GradientNode")
	require.NoError(t, err)
	src, ok := reg.SourceForNode(gradient)
	require.True(t, ok)
	assert.Equal(t, "GradientNode.hcl", src.Name)
}

func TestNewApp_BadManifest(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{"broken.hcl": `node "A" {`})

	cfg, err := NewConfig(Config{ManifestsPath: root, LogLevel: "error"})
	require.NoError(t, err)

	_, err = NewApp(&bytes.Buffer{}, cfg, &mathnodes.Module{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load manifests")
}

func TestRun_Reports(t *testing.T) {
	testCases := []struct {
		name string
		cmd  Command
		want []string
	}{
		{
			name: "nodes",
			cmd:  Command{Name: CmdNodes},
			want: []string{"Nodes (4)", "ColorNode", "menu:   Math/Color", "colornode.go", "Interpolates between color stops."},
		},
		{
			name: "views",
			cmd:  Command{Name: CmdViews},
			want: []string{"Views (2)", "BaseNodeView -> BaseNode", "GradientView -> GradientNode"},
		},
		{
			name: "menu",
			cmd:  Command{Name: CmdMenu},
			want: []string{"Menu entries (6)", "Gradient/Linear", "Math/Operators/*"},
		},
		{
			name: "slots",
			cmd:  Command{Name: CmdSlots},
			want: []string{"Slot fields (7, 3 distinct types)", "cty.list(number)"},
		},
		{
			name: "inherited view",
			cmd:  Command{Name: CmdView, Arg: "ColorNode"},
			want: []string{"ColorNode -> BaseNodeView (inherited from BaseNode)"},
		},
		{
			name: "direct view",
			cmd:  Command{Name: CmdView, Arg: "manifest.GradientNode"},
			want: []string{"GradientNode -> GradientView\n"},
		},
		{
			name: "root has no view",
			cmd:  Command{Name: CmdView, Arg: "Node"},
			want: []string{"Node has no view"},
		},
		{
			name: "node source",
			cmd:  Command{Name: CmdSource, Arg: "ColorNode"},
			want: []string{"colornode.go", "text/x-go"},
		},
		{
			name: "view source",
			cmd:  Command{Name: CmdSource, Arg: "BaseNodeView"},
			want: []string{"basenodeview.go"},
		},
		{
			name: "check",
			cmd:  Command{Name: CmdCheck},
			want: []string{"OK 4 nodes, 2 views, 6 menu entries"},
		},
		{
			name: "missing source",
			cmd:  Command{Name: CmdSource, Arg: "MultiplyNode"},
			want: []string{"MultiplyNode has no source artifact"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, out := newTestApp(t)
			require.NoError(t, a.Run(context.Background(), tc.cmd))
			for _, want := range tc.want {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestRun_UnknownName(t *testing.T) {
	a, _ := newTestApp(t)

	err := a.Run(context.Background(), Command{Name: CmdView, Arg: "ColorNod"})
	require.Error(t, err)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "ColorNod", nf.Name)
	assert.Contains(t, nf.Suggestions, "ColorNode")
	assert.Contains(t, err.Error(), `did you mean "ColorNode"?`)
}

func TestRun_CheckReportsProblems(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, root, map[string]string{
		"dup.hcl": `node "Swatch" { menu = ["Math/Color"] }`,
	})
	cfg, err := NewConfig(Config{ManifestsPath: root, LogLevel: "error", NoColor: true})
	require.NoError(t, err)
	a, err := NewApp(&bytes.Buffer{}, cfg, &mathnodes.Module{})
	require.NoError(t, err)

	err = a.Run(context.Background(), Command{Name: CmdCheck})
	var verr *registry.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 1)
	assert.Contains(t, verr.Problems[0], `menu entry "Math/Color" is declared by`)
	assert.Contains(t, verr.Problems[0], "manifest.Swatch wins")
}

func TestRun_UnknownCommand(t *testing.T) {
	a, _ := newTestApp(t)
	err := a.Run(context.Background(), Command{Name: "explode"})
	assert.EqualError(t, err, `unknown command "explode"`)
}

func TestNewApp_SharedRegistry(t *testing.T) {
	cfg, err := NewConfig(Config{LogLevel: "error"})
	require.NoError(t, err)

	first, err := NewApp(&bytes.Buffer{}, cfg)
	require.NoError(t, err)
	second, err := NewApp(&bytes.Buffer{}, cfg)
	require.NoError(t, err)

	assert.Same(t, first.Registry(), second.Registry())
	_, ok := first.Registry().MenuEntry("Flow/Print")
	assert.True(t, ok)
}
