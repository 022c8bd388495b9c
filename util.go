// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multitest

import (
	"sync"
)

// Fixtures provides a simple concurrency save fixture storage for
// multitest tests.  A Fixtures instance must not be copied after its
// first use.  A Fixtures storage is typically used to setup test
// specific fixtures for concurrently run suite-tests
//
//	type MySuite {
//	    multitest.Suite
//	    fx ff
//	}
//
//	type ff { multitest.Fixtures }
//
//	func (fx *ff) Of(t *multitest.T) string { return fx.Get(t).(string) }
//
//	func (s *MySuite) SetUp(t *multitest.T) {
//	    t.Parallel()
//	    s.fx.Set(t, fmt.Sprintf("%p's fixture", t))
//	}
//
//	func (s *MySuite) MySuiteTest(t *multitest.T) {
//	    t.Logf("%p: got: %s", t, s.fx.Of(t))
//	}
//
//	func TestMySuite(t *testing.T) {
//	    t.Parallel()
//	    Run(&MySuite{}, t)
//	}
//
// Generated test cases of a suite's templates use the same storage;
// their set-up obtains the current case from [T.Case] to prepare a
// combination-specific fixture.
type Fixtures struct {
	mutex sync.Mutex
	ff    map[*T]any
}

// Set adds concurrency save a mapping from given test to given fixture.
func (ff *Fixtures) Set(t *T, fixture any) {
	ff.mutex.Lock()
	defer ff.mutex.Unlock()
	if ff.ff == nil {
		ff.ff = map[*T]any{}
	}
	ff.ff[t] = fixture
}

// Get maps given test to its fixture and returns it.
func (ff *Fixtures) Get(t *T) any {
	ff.mutex.Lock()
	defer ff.mutex.Unlock()
	return ff.ff[t]
}

// Del removes the mapping of given test to its fixture and returns the
// fixture.
func (ff *Fixtures) Del(t *T) any {
	ff.mutex.Lock()
	defer ff.mutex.Unlock()
	fixture := ff.ff[t]
	delete(ff.ff, t)
	return fixture
}

// Int maps given test to its fixture and returns it as int; it
// defaults to zero if no int-fixture is set for given test.
func (ff *Fixtures) Int(t *T) int {
	v, _ := ff.Get(t).(int)
	return v
}

// Str maps given test to its fixture and returns it as string; it
// defaults to the empty string if no string-fixture is set for given
// test.
func (ff *Fixtures) Str(t *T) string {
	v, _ := ff.Get(t).(string)
	return v
}
