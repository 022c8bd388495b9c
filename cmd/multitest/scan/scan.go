// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package scan statically discovers multitest suites in go test
// files, i.e. without building or running them.  A suite is a struct
// type embedding multitest.Suite; reported are its test methods and
// the templates its Templates-method declares literally.
package scan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	fp "path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/mazzegi/log"
)

// A Suite is a discovered test suite with its tests and templates in
// order of appearance.  Note a suite's tests and templates are
// expected in the suite's declaring file.
type Suite struct {

	// Name is the suite's type name.
	Name string

	// File is the declaring test file relative to the scanned
	// directory.
	File string

	// Tests are the suite's test methods: public methods with exactly
	// one argument which are not special.
	Tests []string

	// Templates are the test-case templates the suite's
	// Templates-method declares.
	Templates []Template
}

// A Template is a template declaration found in a suite's
// Templates-method.  Only literal multitest.NewTemplate chains are
// discovered; templates built behind helpers are not resolved.
type Template struct {

	// Name is the template's base name.
	Name string

	// Doc is the template's documentation template if declared
	// literally; it is zero otherwise.
	Doc string
}

const multitestPath = `"github.com/slukits/multitest"`

// Dir scans the test files below given directory for multitest suites
// reporting them in file order.  Nested testdata, hidden and
// underscore-prefixed directories are skipped, as are files which
// fail to parse whereat a warning is logged.
func Dir(dir string) ([]Suite, error) {
	var ss []Suite
	err := fp.WalkDir(dir, func(
		path string, e fs.DirEntry, err error,
	) error {
		if err != nil {
			return err
		}
		if e.IsDir() {
			if path != dir && skipDir(e.Name()) {
				return fp.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(e.Name(), "_test.go") {
			return nil
		}
		rel, err := fp.Rel(dir, path)
		if err != nil {
			rel = path
		}
		found, err := File(path)
		if err != nil {
			log.Warnf("scan: %s: %v", rel, err)
			return nil
		}
		for i := range found {
			found[i].File = rel
		}
		ss = append(ss, found...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan: %s: %w", dir, err)
	}
	return ss, nil
}

func skipDir(name string) bool {
	return name == "testdata" || strings.HasPrefix(name, ".") ||
		strings.HasPrefix(name, "_")
}

// File scans a single test file for multitest suites.  A file not
// importing multitest has no suites.
func File(path string) ([]Suite, error) {
	fset := token.NewFileSet()
	af, err := parser.ParseFile(fset, path, nil, 0)
	if err != nil {
		return nil, err
	}
	slc, ok := selector(af)
	if !ok {
		return nil, nil
	}

	// suites are parsed in an extra first pass since suite-methods may
	// be defined 'before' the suite-type is defined
	var ss []Suite
	idx := map[string]int{}
	ast.Inspect(af, func(n ast.Node) bool {
		name, st, ok := isStruct(n)
		if !ok || !isSuite(st, slc) {
			return true
		}
		idx[name] = len(ss)
		ss = append(ss, Suite{Name: name})
		return true
	})
	if len(ss) == 0 {
		return nil, nil
	}

	ast.Inspect(af, func(n ast.Node) bool {
		fd, ok := n.(*ast.FuncDecl)
		if !ok || fd.Recv == nil {
			return true
		}
		suite, ok := receiverOf(fd, idx)
		if !ok {
			return true
		}
		if fd.Name.Name == "Templates" &&
			len(fd.Type.Params.List) == 0 {
			ss[suite].Templates = append(
				ss[suite].Templates, templatesOf(fd, slc)...)
			return true
		}
		if test, ok := isSuiteTest(fd); ok {
			ss[suite].Tests = append(ss[suite].Tests, test)
		}
		return true
	})
	return ss, nil
}

// selector reports how the scanned file refers to the multitest
// package: the empty string for a dot-import, the import's alias or
// the package name.  It is not ok if the file doesn't import
// multitest.
func selector(af *ast.File) (string, bool) {
	for _, i := range af.Imports {
		if i.Path.Value != multitestPath {
			continue
		}
		if i.Name != nil {
			if i.Name.Name == "." {
				return "", true
			}
			return i.Name.Name, true
		}
		return fp.Base(strings.Trim(i.Path.Value, `"`)), true
	}
	return "", false
}

// isStruct returns a struct's name, its ast-representation and true in
// case given node is a struct-definition; zeros and false otherwise.
func isStruct(n ast.Node) (string, *ast.StructType, bool) {
	typeSpec, ok := n.(*ast.TypeSpec)
	if !ok {
		return "", nil, false
	}
	structType, ok := typeSpec.Type.(*ast.StructType)
	if !ok {
		return "", nil, false
	}
	return typeSpec.Name.Name, structType, true
}

// isSuite returns true if given struct-type embeds the Suite-type
// referenced through given selector.
func isSuite(st *ast.StructType, slc string) bool {
	for _, field := range st.Fields.List {
		if len(field.Names) > 0 {
			continue
		}
		if slc == "" {
			if ident, ok := field.Type.(*ast.Ident); ok &&
				ident.Name == "Suite" {
				return true
			}
			continue
		}
		sel, ok := field.Type.(*ast.SelectorExpr)
		if !ok || sel.Sel.Name != "Suite" {
			continue
		}
		if x, ok := sel.X.(*ast.Ident); ok && x.Name == slc {
			return true
		}
	}
	return false
}

// receiverOf resolves given method's receiver to a known suite.
func receiverOf(fd *ast.FuncDecl, idx map[string]int) (int, bool) {
	for _, field := range fd.Recv.List {
		name, ok := isIdent(field.Type)
		if !ok {
			continue
		}
		if i, ok := idx[name]; ok {
			return i, true
		}
	}
	return 0, false
}

// isIdent helps investigating if a function's receiver field type
// refers to a known test-suite by returning given field-type's
// identifier-name if their is any.
func isIdent(fldType ast.Expr) (string, bool) {
	if ident, ok := fldType.(*ast.Ident); ok {
		return ident.Name, true
	}

	starExpr, ok := fldType.(*ast.StarExpr)
	if !ok {
		return "", false
	}
	ident, ok := starExpr.X.(*ast.Ident)
	if !ok {
		return "", false
	}

	return ident.Name, true
}

var reUpper = regexp.MustCompile(`^[A-Z]`)

var special = map[string]bool{
	"Init":      true,
	"SetUp":     true,
	"TearDown":  true,
	"Finalize":  true,
	"Templates": true,
}

// isSuiteTest returns the suite-test's name and true in case given
// method declaration represents a suite-test; a zero-string and false
// otherwise.
func isSuiteTest(fd *ast.FuncDecl) (string, bool) {
	if len(fd.Type.Params.List) != 1 {
		return "", false
	}
	if special[fd.Name.Name] || !reUpper.MatchString(fd.Name.Name) {
		return "", false
	}
	return fd.Name.Name, true
}

// templatesOf extracts the literally declared templates of a suite's
// Templates-method.
func templatesOf(fd *ast.FuncDecl, slc string) []Template {
	var tt []Template
	ast.Inspect(fd, func(n ast.Node) bool {
		ce, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		tpl, ok := templateChain(ce, slc)
		if !ok {
			return true
		}
		if tpl.Name != "" {
			tt = append(tt, tpl)
		}
		return false
	})
	return tt
}

// templateChain unwraps a NewTemplate(...).Doc(...).Tag(...) chain
// into a template declaration.
func templateChain(ce *ast.CallExpr, slc string) (Template, bool) {
	switch fun := ce.Fun.(type) {
	case *ast.Ident:
		if slc != "" || fun.Name != "NewTemplate" {
			return Template{}, false
		}
		return Template{Name: literalArg(ce, 0)}, true
	case *ast.SelectorExpr:
		if x, ok := fun.X.(*ast.Ident); ok {
			if x.Name != slc || fun.Sel.Name != "NewTemplate" {
				return Template{}, false
			}
			return Template{Name: literalArg(ce, 0)}, true
		}
		inner, ok := fun.X.(*ast.CallExpr)
		if !ok {
			return Template{}, false
		}
		tpl, ok := templateChain(inner, slc)
		if !ok {
			return Template{}, false
		}
		if fun.Sel.Name == "Doc" {
			tpl.Doc = literalArg(ce, 0)
		}
		return tpl, true
	}
	return Template{}, false
}

// literalArg returns the string literal at given argument position of
// given call; it is zero for non-literal arguments.
func literalArg(ce *ast.CallExpr, i int) string {
	if len(ce.Args) <= i {
		return ""
	}
	lit, ok := ce.Args[i].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return ""
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return ""
	}
	return s
}
