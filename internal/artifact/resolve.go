// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package artifact

import "strings"

// Resolve finds the artifact whose file stem equals name, ignoring case. The
// index is queried for every artifact containing name and the first stem
// equal under simple per-rune case folding wins; multi-rune foldings such as
// "ß" to "ss" do not count. A missing artifact is not an error; the error
// result only carries index failures.
func Resolve(ix Index, name string) (Artifact, bool, error) {
	if ix == nil || name == "" {
		return Artifact{}, false, nil
	}

	candidates, err := ix.Find(name)
	if err != nil {
		return Artifact{}, false, err
	}

	for _, c := range candidates {
		if strings.EqualFold(c.Stem(), name) {
			return c, true, nil
		}
	}
	return Artifact{}, false, nil
}
