// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multitest

import (
	"fmt"

	"golang.org/x/exp/maps"
)

// A Template declares a set of generated test cases: a base name, a
// test body and a combination Spec whose combinations the body is run
// with.  Templates are declared by a suite's Templates method, see
// [SuiteSpawning], and expand when the suite is run.  Note a
// template's base name claims the suite method of that name, i.e.
// such a method is not run and its name is free for the template's
// cases:
//
//	type factorials struct{ multitest.Suite }
//
//	func (s *factorials) Templates() []multitest.Template {
//	    return []multitest.Template{multitest.NewTemplate(
//	        "Computes", s.computes,
//	        multitest.Zipped(
//	            multitest.Named("n", 0, 1, 4),
//	            multitest.Named("expect", 1, 1, 24),
//	        ),
//	    ).Doc("factorial of $n is $expect")}
//	}
//
//	func (s *factorials) computes(t *multitest.T, c *multitest.Case) {
//	    n, _ := c.Int("n")
//	    expect, _ := c.Int("expect")
//	    t.Eq(expect, factorial(n))
//	}
type Template struct {
	name string
	body func(*T, *Case)
	spec *Spec
	doc  string
	meta map[string]string
}

// NewTemplate returns a template with given base name expanding given
// test body with the combinations of given spec.  The template
// documents and tags its cases with [Template.Doc] and
// [Template.Tag].
func NewTemplate(
	name string, body func(*T, *Case), spec *Spec,
) Template {
	return Template{name: name, body: body, spec: spec}
}

// Doc returns given template with set documentation template.  A
// documentation template may refer to the positional values of a case
// as $arg0, $arg1, ... and to its named values by their names while
// $$ escapes a dollar.  Unknown placeholders are kept verbatim, see
// [Case.Doc].
func (t Template) Doc(tmpl string) Template {
	t.doc = tmpl
	return t
}

// Tag returns given template associating given metadata key and value
// with each of the template's cases, see [Case.Meta].
func (t Template) Tag(key, value string) Template {
	meta := maps.Clone(t.meta)
	if meta == nil {
		meta = map[string]string{}
	}
	meta[key] = value
	t.meta = meta
	return t
}

// Name reports a template's base name.
func (t Template) Name() string { return t.name }

// SuiteSpawning is implemented by test suites declaring test-case
// templates.  A suite's templates expand when the suite is run, see
// [Run]: each template adds one test case per combination of its
// spec.  The expansion is atomic, i.e. a failing template fails the
// suite before any test case, generated or not, is run.
type SuiteSpawning interface {

	// Templates reports the test-case templates of a test suite.
	Templates() []Template
}

// A Def is the expanded definition of a test suite's surface: all
// test cases in their run order keyed by their collision-free names.
// A Def of templates without a surrounding suite is obtained from
// [Expand] which is what tooling uses to report or compare generated
// cases without running them.
type Def struct {
	cases  []*Case
	byName map[string]*Case
}

// Expand expands given templates into their test-case definition.  It
// fails without a (partial) definition if a template's combinations
// can not be enumerated or a case name can not be derived, wrapping
// ErrInvalidCombination, ErrMaterialize or ErrNamesExhausted
// accordingly.
func Expand(tt ...Template) (*Def, error) {
	return expand(nil, tt)
}

// expand builds a definition from given templates whereby given seed
// names are claimed before the first template expands, i.e. generated
// names collide with them.
func expand(seeds []string, tt []Template) (*Def, error) {
	reg := registry{}
	for _, s := range seeds {
		reg[s] = nil
	}
	d := &Def{byName: map[string]*Case{}}
	for _, tpl := range tt {
		if err := d.spawn(reg, tpl); err != nil {
			return nil, fmt.Errorf("template %q: %w", tpl.name, err)
		}
	}
	return d, nil
}

func (d *Def) spawn(reg registry, tpl Template) error {
	if tpl.name == "" {
		return fmt.Errorf("template without name")
	}
	if tpl.spec == nil {
		return fmt.Errorf("template without combination spec")
	}
	return tpl.spec.each(func(args []any, named Values) error {
		c := &Case{args: args, named: named, meta: tpl.meta,
			call: tpl.body}
		name, err := reg.claim(tpl.name, c)
		if err != nil {
			return err
		}
		c.name = name
		c.doc = renderDoc(tpl.doc, args, named)
		d.cases = append(d.cases, c)
		d.byName[name] = c
		return nil
	})
}

// Len reports the number of test cases of a definition.
func (d *Def) Len() int { return len(d.cases) }

// Case reports the test case with given name; it is nil if no such
// case is defined.
func (d *Def) Case(name string) *Case { return d.byName[name] }

// Names reports the case names of a definition in run order.
func (d *Def) Names() []string {
	nn := make([]string, 0, len(d.cases))
	for _, c := range d.cases {
		nn = append(nn, c.name)
	}
	return nn
}

// For calls back for each test case of a definition in run order.
func (d *Def) For(cb func(*Case)) {
	for _, c := range d.cases {
		cb(c)
	}
}
