// Package tsextract implements the extractor half of spec §4.5: parsing
// annotated TypeScript source into the closed schema.TypeNode algebra the
// checker operates on. It is grounded on go-tree-sitter's TypeScript
// grammar (see DESIGN.md for why this replaces the teacher's
// microsoft/typescript-go compiler shim), walking interface and type-alias
// declarations the same way the teacher's internal/analyzer/type_walker.go
// walks ast.Node declarations, but narrowed to the algebra's closed set of
// kinds instead of the teacher's open Metadata model.
package tsextract

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/shapecheck/shapecheck/internal/schema"
)

// Extract parses source (one TypeScript file) and returns a schema
// containing every top-level interface and type alias it declares that is
// opted in, either by the file-level @shapecheckFile marker or by its own
// @shapecheckAssert comment; whether a declaration is exported makes no
// difference. Lowering follows the heritage/array/union/etc. rules in spec §4.5.
// filename is recorded on each produced TypeNode for diagnostics.
func Extract(source []byte, filename string) (*schema.Schema, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("tsextract: parse %s: %w", filename, err)
	}
	defer tree.Close()

	w := &walker{source: source, filename: filename, schema: schema.NewSchema()}
	w.fileOptedIn = fileLevelMarker(w.firstComment(tree.RootNode()))
	if err := w.walkProgram(tree.RootNode()); err != nil {
		return nil, err
	}
	sort.Strings(w.schema.AssertedTypes)
	return w.schema, nil
}

type walker struct {
	source      []byte
	filename    string
	schema      *schema.Schema
	fileOptedIn bool
}

// firstComment returns the very first top-level comment in the file, the
// conventional place for the file-level opt-in marker.
func (w *walker) firstComment(root *sitter.Node) string {
	for i := 0; i < int(root.ChildCount()); i++ {
		c := root.Child(i)
		if c.Type() == "comment" {
			return w.text(c)
		}
		if c.Type() != "export_statement" {
			break
		}
	}
	return ""
}

func (w *walker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(w.source)
}

func (w *walker) walkProgram(root *sitter.Node) error {
	for i := 0; i < int(root.ChildCount()); i++ {
		if err := w.walkTop(root.Child(i)); err != nil {
			return err
		}
	}
	return nil
}

// walkTop handles top-level statements, unwrapping export_statement so
// `export interface Foo {...}` and `export type Foo = ...` are found the
// same way un-exported ones would be (the extractor only asserts types the
// caller names explicitly; export-ness gates nothing here).
func (w *walker) walkTop(n *sitter.Node) error {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "export_statement":
		for i := 0; i < int(n.ChildCount()); i++ {
			if err := w.walkTop(n.Child(i)); err != nil {
				return err
			}
		}
		return nil
	case "interface_declaration":
		return w.declareInterface(n)
	case "type_alias_declaration":
		return w.declareTypeAlias(n)
	default:
		return nil
	}
}

func (w *walker) declareInterface(n *sitter.Node) error {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := w.text(nameNode)
	comment := w.leadingComment(n)
	declMarked := declarationMarker(comment)
	if !w.fileOptedIn && !declMarked {
		return nil
	}
	if _, exists := w.schema.Types[name]; exists {
		return fmt.Errorf("tsextract: %s: duplicate type name %q", w.filename, name)
	}
	if n.ChildByFieldName("type_parameters") != nil {
		return fmt.Errorf("tsextract: %s: generic interface %q is not supported", w.filename, name)
	}

	t := &schema.TypeNode{Kind: schema.KindInterface, Name: name, Filename: w.filename}

	if heritage := n.ChildByFieldName("heritage"); heritage != nil {
		hs, err := w.extractHeritage(heritage)
		if err != nil {
			return err
		}
		t.Heritage = hs
	}

	body := n.ChildByFieldName("body")
	fields, err := w.objectTypeFields(body)
	if err != nil {
		return err
	}
	t.Fields = fields
	if declMarked {
		t.IgnoreChanges = hasIgnoreChangesMarker(comment)
	}

	w.schema.Types[name] = t
	w.schema.AssertedTypes = append(w.schema.AssertedTypes, name)
	return nil
}

func (w *walker) declareTypeAlias(n *sitter.Node) error {
	nameNode := n.ChildByFieldName("name")
	valueNode := n.ChildByFieldName("value")
	if nameNode == nil || valueNode == nil {
		return nil
	}
	name := w.text(nameNode)
	comment := w.leadingComment(n)
	declMarked := declarationMarker(comment)
	if !w.fileOptedIn && !declMarked {
		return nil
	}
	if _, exists := w.schema.Types[name]; exists {
		return fmt.Errorf("tsextract: %s: duplicate type name %q", w.filename, name)
	}
	if n.ChildByFieldName("type_parameters") != nil {
		return fmt.Errorf("tsextract: %s: generic type alias %q is not supported", w.filename, name)
	}

	t, err := w.typeExpr(valueNode)
	if err != nil {
		return fmt.Errorf("tsextract: %s: type %q: %w", w.filename, name, err)
	}
	t.Name = name
	t.Filename = w.filename
	if declMarked {
		t.IgnoreChanges = hasIgnoreChangesMarker(comment)
	}

	w.schema.Types[name] = t
	w.schema.AssertedTypes = append(w.schema.AssertedTypes, name)
	return nil
}

func (w *walker) extractHeritage(n *sitter.Node) ([]schema.Reference, error) {
	var refs []schema.Reference
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() != "extends_type_clause" {
			continue
		}
		for j := 0; j < int(c.ChildCount()); j++ {
			tn := c.Child(j)
			if tn.Type() != "type_identifier" && tn.Type() != "generic_type" {
				continue
			}
			refs = append(refs, schema.Reference{ReferencedTypeName: w.text(tn)})
		}
	}
	return refs, nil
}
