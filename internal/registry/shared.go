// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"sync"

	"github.com/vk/nodeprovider/internal/artifact"
	"github.com/vk/nodeprovider/internal/gotypes"
	"github.com/vk/nodeprovider/internal/universe"
)

var (
	sharedOnce sync.Once
	shared     *Registry
)

// Init sets up the process-wide registry. The first call wins; later calls
// ignore their arguments and return the existing registry.
func Init(u universe.Universe, ix artifact.Index, opts ...Option) *Registry {
	sharedOnce.Do(func() {
		shared = New(u, ix, opts...)
	})
	return shared
}

// Shared returns the process-wide registry. If Init was never called it is
// created over the ambient Go catalog with no artifact index.
func Shared() *Registry {
	return Init(gotypes.Ambient(), artifact.None{})
}
