// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multitest

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	fp "path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// FS provides filesystem operation specifically for testing, e.g.
// without error handling, preset file/dir-mod, restricted to temporary
// or testdata directories with undo functionality.  In general failing
// file system operations fatal associated testing instance; failing
// undo function calls panic.  Use a [T.FS] call to obtain an
// FS-instance; matrix and scanner tests use it to set up TOML matrices
// and test source files.
type FS struct {
	t     *T
	td    *Dir
	tools *fsTools
}

// tls provides the file system tools to created Dir and TmpDir
// instances.
func (fs *FS) tls() *fsTools { return fs.tools }

// Data returns the caller's testdata directory.  Associated testing
// instance fatales if the directory doesn't exist and can't be
// created.  Returned undo function is nil in case the testdata
// directory already existed, i.e. also for subsequent calls to Data
// after it has been created at the first call.
func (fs *FS) Data() (_ *Dir, undo func()) {
	if fs.td != nil {
		return fs.td, nil
	}
	_, f, _, ok := fs.tools.Caller(1)
	if !ok {
		fs.t.Fatal("multitest: fs: testdata: can't determine caller")
	}

	created := false
	tdDir := fp.Join(fp.Dir(f), "testdata")
	if _, err := fs.tools.Stat(tdDir); err != nil {
		if err := fs.tools.Mkdir(tdDir, 0711); err != nil {
			fs.t.Fatalf("multitest: fs: testdata: create: %v", err)
		}
		created = true
	}
	fs.td = &Dir{t: fs.t, path: tdDir, fs: fs.tls}

	if !created {
		return fs.td, nil
	}

	return fs.td, func() {
		if err := fs.tools.RemoveAll(tdDir); err != nil {
			panic(err)
		}
	}
}

// Tmp creates a new unique temporary directory bound to associated
// testing instance.  Associated testing instance fatales if the temp
// directory creation fails.
func (fs *FS) Tmp() *TmpDir {
	return &TmpDir{
		Dir: Dir{t: fs.t, path: fs.t.GoT().TempDir(), fs: fs.tls}}
}

// Dir provides file system operations inside its path, i.e. either a
// temporary directory or a package's testdata directory.  It replaces
// error handling by failing the test using a Dir instance.  The zero
// value of a Dir instance is *NOT* usable.  Use multitest.T testing
// instance's [T.FS]-method to obtain a Dir-instance.
type Dir struct {
	t    *T
	fs   func() *fsTools
	path string
}

// Path returns the directory's path.
func (d *Dir) Path() string { return d.path }

type Pather interface{ Path() string }

// CopyFl copies the content of given file from given directory to given
// Path().  CopyFl fatales associated testing instance if ReadFile or
// WriteFile fails.  Returned undo function removes the copy.
func (d *Dir) CopyFl(file string, toDir Pather) (undo func()) {
	bb, err := d.fs().ReadFile(fp.Join(d.path, file))
	if err != nil {
		d.t.Fatalf("multitest: fs: dir: copy: read: %s: %v", file, err)
	}
	err = d.fs().WriteFile(fp.Join(toDir.Path(), file), bb, 0644)
	if err != nil {
		d.t.Fatalf("multitest: fs: dir: copy: write: %s: %v", file, err)
	}
	return func() {
		if err := d.fs().Remove(fp.Join(toDir.Path(), file)); err != nil {
			panic(err)
		}
	}
}

// Mk creates a new directory inside given directory's path by combining
// given strings to a (relative) path.  The returned function removes
// the root directory of given path and resets returned Dir instance.
// It fails associated test in case the directory creation fails.  It
// panics in case the undo function fails.
func (d *Dir) Mk(dir string, path ...string) (_ *Dir, undo func()) {
	_path := fp.Join(append([]string{d.path, dir}, path...)...)
	if err := d.fs().MkdirAll(_path, 0711); err != nil {
		d.t.Fatalf("multitest: fs: dir: create: %v", err)
	}
	new := &Dir{t: d.t, path: _path, fs: d.fs}
	return new, func() {
		new.t = nil
		new.path = ""
		if err := d.fs().RemoveAll(fp.Join(d.path, dir)); err != nil {
			panic(fmt.Sprintf("multitest: fs: dir: reset: %v", err))
		}
	}
}

// MkFile adds to given directory a new file (mod 0644) with given name
// and given content.  MkFile fatales if the file already exists or
// os.WriteFile fails.  MkFile panics if reset fails.
func (d *Dir) MkFile(name string, content []byte) (undo func()) {

	fl := fp.Join(d.path, name)
	if _, err := d.fs().Stat(fl); err == nil {
		d.t.Fatalf("multitest: fs: dir: add file: already exists")
	}

	if err := d.fs().WriteFile(fl, []byte(content), 0644); err != nil {
		d.t.Fatalf("multitest: fs: dir: add file: write: %v", err)
	}

	return func() {
		if err := d.fs().Remove(fl); err != nil {
			panic(fmt.Sprintf("fx: add file: reset: %v", err))
		}
	}
}

// FileContent joins given directory with given file name and returns
// its content.  FileContent fatales if it cant be read.
func (d *Dir) FileContent(relName string) []byte {
	bb, err := d.fs().ReadFile(fp.Join(d.path, relName))
	if err != nil {
		d.t.Fatalf("multitest: fs: dir: read: %s: %v", relName, err)
	}
	return bb
}

// TmpDir is a temporary directory created for testing.  It adds to
// features of its embedded Dir instance means to outline go source
// files, e.g. a package's test file declaring multitest suites for
// scanner tests.  The zero value of a TmpDir instance is *NOT* usable.
// Use multitest.T testing instance's [T.FS]-method to obtain a
// TmpDir-instance.
type TmpDir struct {
	Dir
}

// MkMod adds to given directory a go.mod file with given module name.
// It fatales/panics iff subsequent [Dir.MkFile] call fatales/panics.
func (d *TmpDir) MkMod(module string) (reset func()) {
	return d.MkFile("go.mod", []byte(fmt.Sprintf("module %s\n", module)))
}

var rePkgComment = regexp.MustCompile(`(?s)^(\s*?\n|// .*?\n|/\*.*\*/)*`)

// MkPkgFile adds a file with given content prefixing its content with a
// package declaration and suffixing given file name with ".go" if
// missing.  The package name is the base of given directory's path.
func (d *TmpDir) MkPkgFile(name string, content []byte) (undo func()) {
	pkg := fp.Base(d.path)
	if !bytes.Contains(content, []byte(fmt.Sprintf("package %s", pkg))) {
		content = rePkgComment.ReplaceAll(
			content, []byte(fmt.Sprintf("$1\npackage %s\n\n", pkg)))
		content = bytes.TrimLeft(content, "\n")
	}
	if !strings.HasSuffix(name, ".go") {
		name = fmt.Sprintf("%s.go", name)
	}
	return d.MkFile(name, []byte(content))
}

// MkPkgTest adds a test file with given content prefixing its content
// with a package declaration and suffixes "_test.go" to the name if
// missing.
func (d *TmpDir) MkPkgTest(name string, content []byte) (undo func()) {
	if !strings.HasSuffix(name, "_test.go") {
		name = fmt.Sprintf("%s%s", name, "_test.go")
	}
	return d.MkPkgFile(name, content)
}

// MkTmp creates a nested temporary directory from given path segments,
// see [Dir.Mk].
func (td *TmpDir) MkTmp(dir string, path ...string) (_ *TmpDir, undo func()) {
	new, undo := td.Mk(dir, path...)
	return &TmpDir{Dir: *new}, undo
}

// fsTools are the functions for potentially failing file system
// operation which are used by Dir and TmpDir instances.
type fsTools struct {

	// Stat defaults to and has the semantics of os.Stat
	Stat func(string) (fs.FileInfo, error)

	// Mkdir defaults to and has the semantics of os.Mkdir
	Mkdir func(string, fs.FileMode) error

	// MkdirAll defaults to and has the semantics of os.MkdirAll
	MkdirAll func(string, fs.FileMode) error

	// Remove defaults to and has the semantics of os.Remove
	Remove func(string) error

	// RemoveAll defaults to and has the semantics of os.RemoveAll
	RemoveAll func(string) error

	// ReadFile defaults to and has the semantics of os.ReadFile
	ReadFile func(string) ([]byte, error)

	// WriteFile defaults to and has the semantics of os.WriteFile
	WriteFile func(string, []byte, fs.FileMode) error

	// Caller defaults to and has the semantics of runtime.Caller
	Caller func(int) (uintptr, string, int, bool)
}

func (t *fsTools) copy() *fsTools {
	return &fsTools{
		Stat:      t.Stat,
		Mkdir:     t.Mkdir,
		MkdirAll:  t.MkdirAll,
		Remove:    t.Remove,
		RemoveAll: t.RemoveAll,
		ReadFile:  t.ReadFile,
		WriteFile: t.WriteFile,
		Caller:    t.Caller,
	}
}

var defaultFSTools = &fsTools{
	Stat:      os.Stat,
	Mkdir:     os.Mkdir,
	MkdirAll:  os.MkdirAll,
	Remove:    os.Remove,
	RemoveAll: os.RemoveAll,
	ReadFile:  os.ReadFile,
	WriteFile: os.WriteFile,
	Caller:    runtime.Caller,
}
