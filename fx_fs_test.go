// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multitest

import (
	"io/fs"
)

type FSfx struct {
	*FS
	mock *fsTMocker
}

func NewFS(t *T) *FSfx {
	return &FSfx{FS: t.FS()}
}

// Mock returns a file system tools mocker to mockup file system
// functions used by Dir and TmpDir instance which can fail.  Note all
// created Dir and TmpDir instances from this FS instance will use the
// mocked filesystem tools including the ones which were created before
// the mocking; use [fsTMocker.Reset] to go back to the defaults if
// necessary.
func (fx *FSfx) Mock() *fsTMocker {
	if fx.mock == nil {
		fx.tools = defaultFSTools.copy()
		fx.mock = &fsTMocker{fs: fx.FS}
	}
	return fx.mock
}

// A fsTMocker allows to set potentially failing file system operations
// which are used by Dir and TmpDir.
type fsTMocker struct{ fs *FS }

// Stat defaults to and has the semantics of os.Stat
func (m *fsTMocker) Stat(f func(string) (fs.FileInfo, error)) {
	m.fs.tools.Stat = f
}

// Mkdir defaults to and has the semantics of os.Mkdir
func (m *fsTMocker) Mkdir(f func(string, fs.FileMode) error) {
	m.fs.tools.Mkdir = f
}

// MkdirAll defaults to and has the semantics of os.MkdirAll
func (m *fsTMocker) MkdirAll(f func(string, fs.FileMode) error) {
	m.fs.tools.MkdirAll = f
}

// Remove defaults to and has the semantics of os.Remove
func (m *fsTMocker) Remove(f func(string) error) {
	m.fs.tools.Remove = f
}

// RemoveAll defaults to and has the semantics of os.RemoveAll
func (m *fsTMocker) RemoveAll(f func(string) error) {
	m.fs.tools.RemoveAll = f
}

// ReadFile defaults to and has the semantics of os.ReadFile.
func (m *fsTMocker) ReadFile(f func(string) ([]byte, error)) {
	m.fs.tools.ReadFile = f
}

// WriteFile defaults to and has the semantics of os.WriteFile.
func (m *fsTMocker) WriteFile(f func(string, []byte, fs.FileMode) error) {
	m.fs.tools.WriteFile = f
}

// Caller defaults to and has the semantics of runtime.Caller
func (m *fsTMocker) Caller(f func(int) (uintptr, string, int, bool)) {
	m.fs.tools.Caller = f
}

// Reset resets mocked functions to their default.
func (m *fsTMocker) Reset() { m.fs.tools = defaultFSTools.copy() }
