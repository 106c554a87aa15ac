// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package artifact

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// Artifact is a reference to an external file. The registry never creates,
// modifies or deletes the file behind it.
type Artifact struct {
	// Name is the indexed name, the file's base name.
	Name string
	// Path locates the file for Open.
	Path string
}

// New returns the artifact for the file at path.
func New(path string) Artifact {
	return Artifact{Name: filepath.Base(path), Path: path}
}

// Stem returns the name without its extension.
func (a Artifact) Stem() string {
	return strings.TrimSuffix(a.Name, filepath.Ext(a.Name))
}

// MediaType guesses the MIME type from the extension. Source files that the
// filetype database does not know about are reported as text.
func (a Artifact) MediaType() string {
	ext := strings.TrimPrefix(filepath.Ext(a.Name), ".")
	if ext == "" {
		return "application/octet-stream"
	}
	if mime := filetype.GetType(ext).MIME.Value; mime != "" {
		return mime
	}
	return "text/x-" + strings.ToLower(ext)
}

// Open loads the artifact's contents.
func (a Artifact) Open() (io.ReadCloser, error) {
	return os.Open(a.Path)
}

// IsZero reports whether a is the zero Artifact.
func (a Artifact) IsZero() bool {
	return a == Artifact{}
}
