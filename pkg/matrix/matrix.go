// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package matrix loads test-case templates from TOML matrix files
// which keeps large parameter tables out of the test code.  A matrix
// file declares an ordered list of templates whose strategy, slots,
// documentation and tags mirror the multitest declaration API:
//
//	[[template]]
//	name = "Steps"
//	strategy = "combined"
//	doc = "steps row=$arg0 col=$col"
//
//	[template.tags]
//	kind = "demo"
//
//	[[template.args]]
//	values = [1, 2, 3.456]
//
//	[[template.named]]
//	name = "col"
//	values = ["a", "b", "c"]
//
// A suite binds loaded templates to its test bodies by base name:
//
//	func (s *MySuite) Templates() []multitest.Template {
//	    return matrix.MustLoad("testdata/steps.toml").MustBind(
//	        matrix.Bindings{"Steps": s.steps})
//	}
//
// Tooling on the other hand expands a matrix bodiless, see
// [Matrix.Expand], to report or compare the generated case names
// without running any test.
package matrix

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/slukits/multitest"
)

// Matrix is the parsed content of a TOML matrix file, i.e. its
// template definitions in declaration order.
type Matrix struct {
	Templates []Template `toml:"template"`
}

// Template is one template definition of a matrix file.  Positional
// slots precede named slots in combination order which is also the
// order the multitest declaration API establishes.
type Template struct {

	// Name is the template's base name which generated case names
	// derive from.
	Name string `toml:"name"`

	// Strategy is one of "combined", "zipped" or "mappings"; it
	// defaults to "combined".
	Strategy string `toml:"strategy"`

	// Doc is the template's documentation template, see
	// [multitest.Template.Doc] for its placeholders.
	Doc string `toml:"doc"`

	// Tags is the metadata associated with each of the template's
	// cases.
	Tags map[string]string `toml:"tags"`

	// Args are the positional slots of a combining template.
	Args []ArgsSlot `toml:"args"`

	// Named are the named slots of a combining template.
	Named []NamedSlot `toml:"named"`

	// Cases are the value-mappings of a "mappings" template.
	Cases []map[string]any `toml:"cases"`
}

// ArgsSlot is a positional slot of a matrix template.
type ArgsSlot struct {
	Values []any `toml:"values"`
}

// NamedSlot is a named slot of a matrix template.
type NamedSlot struct {
	Name   string `toml:"name"`
	Values []any  `toml:"values"`
}

// Load reads the TOML matrix file at given path.
func Load(path string) (*Matrix, error) {
	m := &Matrix{}
	if _, err := toml.DecodeFile(path, m); err != nil {
		return nil, fmt.Errorf("matrix: %s: %w", path, err)
	}
	return m, nil
}

// MustLoad is [Load] for suite Templates-methods which can not return
// an error; it panics if the matrix can not be read.
func MustLoad(path string) *Matrix {
	m, err := Load(path)
	if err != nil {
		panic(err)
	}
	return m
}

// Bindings maps template base names to test bodies.
type Bindings map[string]func(*multitest.T, *multitest.Case)

// Unbound reports the names of m's templates given bindings provide no
// test body for, in declaration order.
func (m *Matrix) Unbound(bb Bindings) []string {
	var nn []string
	for _, d := range m.Templates {
		if _, ok := bb[d.Name]; !ok {
			nn = append(nn, d.Name)
		}
	}
	return nn
}

// Bind translates m's definitions into multitest templates attaching
// to each the test body bound to its base name.  Bind fails if a
// definition has no binding or doesn't translate to a combination
// spec.
func (m *Matrix) Bind(bb Bindings) ([]multitest.Template, error) {
	if unbound := m.Unbound(bb); len(unbound) > 0 {
		return nil, fmt.Errorf("matrix: unbound templates: %s",
			strings.Join(unbound, ", "))
	}
	tt := make([]multitest.Template, 0, len(m.Templates))
	for _, d := range m.Templates {
		tpl, err := d.bind(bb[d.Name])
		if err != nil {
			return nil, err
		}
		tt = append(tt, tpl)
	}
	return tt, nil
}

// MustBind is [Matrix.Bind] for suite Templates-methods which can not
// return an error; it panics on a failing binding.
func (m *Matrix) MustBind(bb Bindings) []multitest.Template {
	tt, err := m.Bind(bb)
	if err != nil {
		panic(err)
	}
	return tt
}

// Expand expands m's templates bodiless into their test-case
// definition, e.g. to report or compare generated case names without
// running any test.
func (m *Matrix) Expand() (*multitest.Def, error) {
	tt := make([]multitest.Template, 0, len(m.Templates))
	for _, d := range m.Templates {
		tpl, err := d.bind(nil)
		if err != nil {
			return nil, err
		}
		tt = append(tt, tpl)
	}
	return multitest.Expand(tt...)
}

// bind translates given definition into a multitest template running
// given test body.
func (d Template) bind(body func(*multitest.T, *multitest.Case)) (
	multitest.Template, error,
) {
	spec, err := d.spec()
	if err != nil {
		return multitest.Template{}, err
	}
	tpl := multitest.NewTemplate(d.Name, body, spec).Doc(d.Doc)
	for k, v := range d.Tags {
		tpl = tpl.Tag(k, v)
	}
	return tpl, nil
}

// spec translates given definition's strategy, slots and cases into a
// combination spec.
func (d Template) spec() (*multitest.Spec, error) {
	switch d.Strategy {
	case "", "combined", "zipped":
		if len(d.Cases) > 0 {
			return nil, fmt.Errorf(
				"matrix: template %q: cases need the mappings strategy",
				d.Name)
		}
		slots := make([]multitest.Slot, 0, len(d.Args)+len(d.Named))
		for _, a := range d.Args {
			slots = append(slots, multitest.Args(a.Values...))
		}
		for _, n := range d.Named {
			slots = append(slots, multitest.Named(n.Name, n.Values...))
		}
		if d.Strategy == "zipped" {
			return multitest.Zipped(slots...), nil
		}
		return multitest.Combined(slots...), nil
	case "mappings":
		if len(d.Args) > 0 || len(d.Named) > 0 {
			return nil, fmt.Errorf(
				"matrix: template %q: mappings don't combine slots",
				d.Name)
		}
		mm := make([]multitest.Values, 0, len(d.Cases))
		for _, c := range d.Cases {
			mm = append(mm, multitest.Values(c))
		}
		return multitest.FromMappings(mm...), nil
	}
	return nil, fmt.Errorf("matrix: template %q: unknown strategy %q",
		d.Name, d.Strategy)
}
