// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package manifest

import "github.com/hashicorp/hcl/v2"

// Block kinds.
const (
	kindNode = "node"
	kindView = "view"
	kindType = "type"
)

var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: kindNode, LabelNames: []string{"name"}},
		{Type: kindView, LabelNames: []string{"name"}},
		{Type: kindType, LabelNames: []string{"name"}},
	},
}

var definitionSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "extends"},
		{Name: "abstract"},
		{Name: "menu"},
		{Name: "targets"},
		{Name: "description"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "input", LabelNames: []string{"name"}},
		{Type: "output", LabelNames: []string{"name"}},
		{Type: "field", LabelNames: []string{"name"}},
	},
}

// fieldSchema is the body of an input, output or field block.
var fieldSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type", Required: true},
		{Name: "description"},
	},
}
