// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package manifest

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/nodeprovider/internal/universe"
	"github.com/zclconf/go-cty/cty"
)

// typeKeywords are the type constraint keywords offered as suggestions next
// to manifest names.
var typeKeywords = []string{"string", "number", "bool", "any", "list", "map", "set", "object", "tuple"}

// entry is a decoded block waiting for its references to be resolved.
type entry struct {
	kind  string
	block *hcl.Block
	def   *universe.Definition

	extends      *string
	extendsRange hcl.Range
	targets      *string
	targetsRange hcl.Range
	fields       []pendingField
}

type pendingField struct {
	name string
	slot universe.SlotDirection
	expr hcl.Expression
}

type loader struct {
	byName map[string]*entry
	order  []*entry
}

func newLoader() *loader {
	return &loader{byName: make(map[string]*entry)}
}

// collect decodes every block of a file without resolving references.
func (l *loader) collect(file *hcl.File, filename string) hcl.Diagnostics {
	content, diags := file.Body.Content(rootSchema)

	for _, block := range content.Blocks {
		name := block.Labels[0]
		if name == universe.NodeRoot.Name || name == universe.ViewRoot.Name {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Reserved definition name",
				Detail:   fmt.Sprintf("%q names a base role and cannot be redeclared.", name),
				Subject:  block.LabelRanges[0].Ptr(),
			})
			continue
		}
		if prev, exists := l.byName[name]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate definition",
				Detail:   fmt.Sprintf("%q is already declared at %s.", name, prev.block.DefRange),
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}

		e, blockDiags := decodeEntry(block, filename)
		diags = append(diags, blockDiags...)
		if e == nil {
			continue
		}
		l.byName[name] = e
		l.order = append(l.order, e)
	}
	return diags
}

func decodeEntry(block *hcl.Block, filename string) (*entry, hcl.Diagnostics) {
	name := block.Labels[0]
	body, diags := block.Body.Content(definitionSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	e := &entry{
		kind:  block.Type,
		block: block,
		def: &universe.Definition{
			ID:     Namespace + "." + name,
			Name:   name,
			Origin: filename,
		},
	}

	if attr, ok := body.Attributes["abstract"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &e.def.Abstract)...)
	}
	if attr, ok := body.Attributes["description"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &e.def.Doc)...)
	}
	if attr, ok := body.Attributes["menu"]; ok {
		diags = append(diags, decodeMenu(e, attr)...)
	}
	if attr, ok := body.Attributes["extends"]; ok {
		var extends string
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &extends)...)
		e.extends, e.extendsRange = &extends, attr.Expr.Range()
	}
	if attr, ok := body.Attributes["targets"]; ok {
		if e.kind != kindView {
			diags = append(diags, ignored(attr, e.kind))
		} else {
			var targets string
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &targets)...)
			e.targets, e.targetsRange = &targets, attr.Expr.Range()
		}
	}

	for _, fb := range body.Blocks {
		fbody, fieldDiags := fb.Body.Content(fieldSchema)
		diags = append(diags, fieldDiags...)
		if fieldDiags.HasErrors() {
			continue
		}
		if attr, ok := fbody.Attributes["description"]; ok {
			var description string
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &description)...)
		}
		f := pendingField{name: fb.Labels[0], expr: fbody.Attributes["type"].Expr}
		switch fb.Type {
		case "input":
			f.slot = universe.SlotInput
		case "output":
			f.slot = universe.SlotOutput
		}
		e.fields = append(e.fields, f)
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return e, diags
}

func decodeMenu(e *entry, attr *hcl.Attribute) hcl.Diagnostics {
	if e.kind != kindNode {
		return hcl.Diagnostics{ignored(attr, e.kind)}
	}
	var menu []string
	diags := gohcl.DecodeExpression(attr.Expr, nil, &menu)
	for _, path := range menu {
		path = strings.TrimSpace(path)
		if path == "" {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagWarning,
				Summary:  "Empty menu entry ignored",
				Detail:   fmt.Sprintf("Node %q declares an empty menu path.", e.def.Name),
				Subject:  attr.Expr.Range().Ptr(),
			})
			continue
		}
		e.def.Menu = append(e.def.Menu, path)
	}
	return diags
}

func ignored(attr *hcl.Attribute, kind string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  "Attribute ignored",
		Detail:   fmt.Sprintf("%q has no effect in a %s block.", attr.Name, kind),
		Subject:  attr.NameRange.Ptr(),
	}
}

// resolve links bases, view targets and field types once every name is known.
func (l *loader) resolve() hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, e := range l.order {
		diags = append(diags, l.resolveExtends(e)...)
	}
	if diags.HasErrors() {
		return diags
	}
	for _, e := range l.order {
		diags = append(diags, l.checkAncestry(e)...)
	}
	if diags.HasErrors() {
		return diags
	}
	for _, e := range l.order {
		diags = append(diags, l.resolveTarget(e)...)
		diags = append(diags, l.resolveFields(e)...)
	}
	return diags
}

func (l *loader) resolveExtends(e *entry) hcl.Diagnostics {
	if e.extends == nil {
		switch e.kind {
		case kindNode:
			e.def.Bases = []*universe.Definition{universe.NodeRoot}
		case kindView:
			e.def.Bases = []*universe.Definition{universe.ViewRoot}
		}
		return nil
	}

	switch name := *e.extends; name {
	case universe.NodeRoot.Name:
		e.def.Bases = []*universe.Definition{universe.NodeRoot}
	case universe.ViewRoot.Name:
		e.def.Bases = []*universe.Definition{universe.ViewRoot}
	default:
		base, ok := l.byName[name]
		if !ok {
			return hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Unknown base definition",
				Detail:   fmt.Sprintf("%q extends %q, which is not declared.%s", e.def.Name, name, l.didYouMean(name)),
				Subject:  e.extendsRange.Ptr(),
			}}
		}
		e.def.Bases = []*universe.Definition{base.def}
	}
	return nil
}

// checkAncestry rejects inheritance cycles and blocks that do not descend
// from the root their kind requires.
func (l *loader) checkAncestry(e *entry) hcl.Diagnostics {
	seen := map[string]struct{}{e.def.ID: {}}
	for cur := e.def; len(cur.Bases) > 0; {
		cur = cur.Bases[0]
		if _, loop := seen[cur.ID]; loop {
			return hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Inheritance cycle",
				Detail:   fmt.Sprintf("%q inherits from itself through %q.", e.def.Name, cur.Name),
				Subject:  e.extendsRange.Ptr(),
			}}
		}
		seen[cur.ID] = struct{}{}
	}

	var root *universe.Definition
	switch e.kind {
	case kindNode:
		root = universe.NodeRoot
	case kindView:
		root = universe.ViewRoot
	default:
		if e.def.IsSubclassOf(universe.NodeRoot) || e.def.IsSubclassOf(universe.ViewRoot) {
			return hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid base definition",
				Detail:   fmt.Sprintf("type %q cannot extend a node or view definition.", e.def.Name),
				Subject:  e.extendsRange.Ptr(),
			}}
		}
		return nil
	}
	if !e.def.IsSubclassOf(root) {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid base definition",
			Detail:   fmt.Sprintf("%s %q must extend %s or another %s definition.", e.kind, e.def.Name, root.Name, e.kind),
			Subject:  e.extendsRange.Ptr(),
		}}
	}
	return nil
}

func (l *loader) resolveTarget(e *entry) hcl.Diagnostics {
	if e.targets == nil {
		return nil
	}
	name := strings.TrimSpace(*e.targets)
	if name == "" {
		return hcl.Diagnostics{{
			Severity: hcl.DiagWarning,
			Summary:  "Empty view target ignored",
			Detail:   fmt.Sprintf("View %q declares an empty target.", e.def.Name),
			Subject:  e.targetsRange.Ptr(),
		}}
	}
	target, ok := l.byName[name]
	if !ok {
		return hcl.Diagnostics{{
			Severity: hcl.DiagWarning,
			Summary:  "Unknown view target ignored",
			Detail:   fmt.Sprintf("View %q targets %q, which is not declared.%s", e.def.Name, name, l.didYouMean(name)),
			Subject:  e.targetsRange.Ptr(),
		}}
	}
	e.def.Target = target.def
	return nil
}

func (l *loader) resolveFields(e *entry) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, f := range e.fields {
		ref, typeDiags := l.typeRef(f.expr)
		diags = append(diags, typeDiags...)
		if typeDiags.HasErrors() {
			continue
		}
		e.def.Fields = append(e.def.Fields, universe.Field{Name: f.name, Type: ref, Slot: f.slot})
	}
	return diags
}

// typeRef resolves a field type: a bare manifest name refers to that
// definition, anything else must be an HCL type constraint.
func (l *loader) typeRef(expr hcl.Expression) (universe.TypeRef, hcl.Diagnostics) {
	trav, travDiags := hcl.AbsTraversalForExpr(expr)
	bare := !travDiags.HasErrors() && len(trav) == 1
	if bare {
		if _, ok := l.byName[trav.RootName()]; ok {
			return universe.TypeRef{Package: Namespace, Name: trav.RootName()}, nil
		}
	}

	ty, diags := typeexpr.TypeConstraint(expr)
	if diags.HasErrors() {
		if bare {
			name := trav.RootName()
			return universe.TypeRef{}, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Unknown type",
				Detail:   fmt.Sprintf("%q is neither a declared definition nor a type keyword.%s", name, l.didYouMean(name)),
				Subject:  expr.Range().Ptr(),
			}}
		}
		return universe.TypeRef{}, diags
	}
	return universe.TypeRef{
		Package: "cty",
		Name:    typeexpr.TypeString(ty),
		Dynamic: ty.Equals(cty.DynamicPseudoType),
	}, nil
}

func (l *loader) didYouMean(name string) string {
	candidates := append([]string{universe.NodeRoot.Name, universe.ViewRoot.Name}, typeKeywords...)
	for _, e := range l.order {
		candidates = append(candidates, e.def.Name)
	}
	if s := universe.SuggestFrom(candidates, name); len(s) > 0 {
		return fmt.Sprintf(" Did you mean %q?", s[0])
	}
	return ""
}
