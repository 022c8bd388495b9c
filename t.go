// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multitest

import (
	"fmt"
	"testing"
	"time"
)

// T instances are passed to suite tests providing means for logging,
// assertion, failing, cancellation and concurrency-control for a test:
//
//	type MySuite { multitest.Suite }
//
//	func (s *MySuite) A_test(t *multitest.T) { t.Log("A_test run") }
//
//	func TestMySuite(t *testing.T) { multitest.Run(&MySuite{}, t)}
type T struct {
	t        *testing.T
	c        *Case
	fs       *FS
	tearDown func(*T)
	logger   func(...any)
	errorer  func(...any)
	canceler func()

	// Not provides the negations of t's assertions, e.g. [Not.True].
	Not Not
}

// GoT returns a pointer to wrapped testing.T instance which was created
// by the testing.T-runner of the suite-runner's testing.T instance.
func (t *T) GoT() *testing.T { return t.t }

// Case returns the test case t's test is run for.  It lets set-up and
// tear-down discriminate generated test cases, e.g. to prepare a
// fixture depending on a case's combination.  Its combination is
// empty if t's test is a plain suite-test.
func (t *T) Case() *Case { return t.c }

// FS returns t's file system fixture generator, see [FS], providing
// temporary directories and testdata access without error handling.
func (t *T) FS() *FS {
	if t.fs == nil {
		t.fs = &FS{t: t, tools: defaultFSTools}
	}
	return t.fs
}

// Mock returns a mock-up of t allowing to overwrite t's logging, error
// handling and cancellation, e.g. to assert on failing assertions
// without failing the test.
func (t *T) Mock() *TMocker { return &TMocker{t: t} }

// A TMocker overwrites a T-instance's logging, error handling and
// cancellation, see [T.Mock].
type TMocker struct{ t *T }

// Logger replaces mocked testing instance's logger.
func (m *TMocker) Logger(f func(...any)) { m.t.logger = f }

// Errorer replaces mocked testing instance's error handler.
func (m *TMocker) Errorer(f func(...any)) { m.t.errorer = f }

// Canceler replaces mocked testing instance's cancellation.
func (m *TMocker) Canceler(f func()) { m.t.canceler = f }

// Log writes given arguments to set logger which defaults to the logger
// of wrapped *testing.T* instance.  The default may be overwritten by a
// suite-embedder implementing the SuiteLogging interface.
func (t *T) Log(args ...any) { t.logger(args...) }

// Logf writes given format string leveraging Sprintf to set logger which
// defaults to the logger of wrapped *testing.T* instance.  The default
// may be overwritten by a suite-embedder implementing the SuiteLogger
// interface.
func (t *T) Logf(format string, args ...any) {
	t.Log(fmt.Sprintf(format, args...))
}

// Parallel signals that this test may be run in parallel with other
// parallel flagged tests.
func (t *T) Parallel() { t.t.Parallel() }

// Error logs given arguments and flags test as failed but continues its
// execution.  t's errorer defaults to a Error-call of a wrapped
// testing.T instance and may be overwritten for a test-suite by
// implementing *SuiteErrorer*.
func (t *T) Error(args ...any) {
	t.t.Helper()
	t.errorer(args...)
}

// Errorf logs given format-string leveraging fmt.Sprintf and flags test
// as failed but continues its execution.  t's errorer defaults to a
// Error-call of a wrapped testing.T instance and may be overwritten for
// a test-suite by implementing *SuiteErrorer*.
func (t *T) Errorf(format string, args ...any) {
	t.t.Helper()
	t.Error(fmt.Sprintf(format, args...))
}

// FailNow cancels the execution of the test after a potential tear-down
// was called.  t's canceler defaults to a FailNow-call of a wrapped
// testing.T instance and may be overwritten for a test-suite by
// implementing *SuiteCanceler*.
func (t *T) FailNow() {
	t.t.Helper()
	if t.tearDown != nil {
		t.tearDown(t)
	}
	t.canceler()
}

// FatalIfNot cancels receiving test (see *FailNow*) if passed argument
// is false and is a no-op otherwise.
func (t *T) FatalIfNot(assertion bool) {
	if assertion {
		return
	}
	t.t.Helper()
	t.FailNow()
}

// FatalOn cancels receiving test (see *FailNow*) after logging given
// error message iff passed argument is not nil and is a no-op
// otherwise.
func (t *T) FatalOn(err error) {
	t.t.Helper()
	if err == nil {
		return
	}
	t.Fatal(err.Error())
}

// Fatal logs given arguments and cancels the test execution (see
// *FailNow*).
func (t *T) Fatal(args ...any) {
	t.t.Helper()
	t.Log(args...)
	t.FailNow()
}

// Fatalf logs given format-string leveraging fmt.Sprintf and cancels
// the test execution (see *FailNow*).
func (t *T) Fatalf(format string, args ...any) {
	t.t.Helper()
	t.Log(fmt.Sprintf(format, args...))
	t.FailNow()
}

// InitPrefix prefixes logging-messages of the Init-method to enable the
// reporter to discriminate Init-logs and Finalize-logs.
const InitPrefix = "__init__"

// FinalPrefix prefixes logging-messages of the Finalize-method to
// enable the reporter to discriminate Finalize-logs and Init-logs.
const FinalPrefix = "__final__"

// I instances are passed from multitest into a test-suite's
// Init-method:
//
//	type MySuite { multitest.Suite }
//
//	func (s *MySuite) Init(t *multitest.I) { t.Log("init called") }
//
//	func TestMySuite(t *testing.T) { multitest.Run(&MySuite{}, t) }
//
// An I instance provides logging-mechanisms and the possibility to
// cancel a suite's tests-run.  NOTE implementations of SuiteLogger or
// SuiteCanceler in a test-suite replace the default logging or
// cancellation behavior of an I-instance.  It defaults to testing.T.Log
// and testing.T.FailNow of the wrapped testing.T instance which is the
// one from the test-runner.
type I struct {
	t        *testing.T
	logger   func(...any)
	canceler func()
}

// GoT returns a pointer to wrapped testing.T instance of the
// suite-runner's test.
func (i *I) GoT() *testing.T { return i.t }

// Log given arguments to wrapped test-runner's testing.T-logger or its
// replacement provided by a suite's SuiteLogger-implementation.
func (i *I) Log(args ...any) {
	i.t.Helper()
	i.logger(append([]any{InitPrefix}, args...)...)
}

// Logf format logs leveraging fmt.Sprintf given arguments to wrapped
// test-runner's testing.T-logger or its replacement provided by a
// suite's SuiteLogger-implementation.
func (i *I) Logf(format string, args ...any) {
	i.t.Helper()
	i.Log(fmt.Sprintf(format, args...))
}

// Fatal cancels the test-suite's tests-run after given arguments were
// logged.  The cancellation defaults to a FailNow call of wrapped
// test-runner's testing.T-instance or its replacement  provided by a
// suite's SuiteCanceler-implementation.
func (i *I) Fatal(args ...any) {
	i.t.Helper()
	i.Log(args...)
	i.canceler()
}

// Fatalf cancels the test-suite's tests-run after given arguments were
// logged.  The cancellation defaults to a FailNow call of wrapped
// test-runner's testing.T-instance or its replacement  provided by a
// suite's SuiteCanceler-implementation.
func (i *I) Fatalf(format string, args ...any) {
	i.t.Helper()
	i.Logf(format, args...)
	i.canceler()
}

// FatalOn cancels the test-suite's tests-run iff given error is not
// nil.  The cancellation defaults to a FailNow call of wrapped
// test-runner's testing.T-instance or its replacement provided by a
// suite's SuiteCanceler-implementation.
func (i *I) FatalOn(err error) {
	i.t.Helper()
	if err != nil {
		i.Fatal(err.Error())
	}
}

// F instances are passed from multitest into a test-suite's
// Finalize-method:
//
//	type MySuite { multitest.Suite }
//
//	func (s *MySuite) Finalize(t *multitest.F) {
//	    t.Log("finalize called")
//	}
//
//	func TestMySuite(t *testing.T) { multitest.Run(&MySuite{}, t) }
//
// An F instance provides logging-mechanisms and the possibility to
// cancel a suite's tests-run.  NOTE implementations of SuiteLogger or
// SuiteCanceler in a test-suite replace the default logging or
// cancellation behavior of an I-instance.  It defaults to testing.T.Log
// and testing.T.FailNow of the wrapped testing.T instance which is the
// one from the test-runner.
type F struct {
	t        *testing.T
	logger   func(...any)
	canceler func()
}

// GoT returns a pointer to wrapped testing.T instance of the
// suite-runner's test.
func (f *F) GoT() *testing.T { return f.t }

// Log given arguments to wrapped test-runner's testing.T-logger or its
// replacement provided by a suite's SuiteLogger-implementation.
func (f *F) Log(args ...any) {
	f.t.Helper()
	f.logger(append([]any{FinalPrefix}, args...)...)
}

// Logf format logs leveraging fmt.Sprintf given arguments to wrapped
// test-runner's testing.T-logger or its replacement provided by a
// suite's SuiteLogger-implementation.
func (f *F) Logf(format string, args ...any) {
	f.t.Helper()
	f.Log(fmt.Sprintf(format, args...))
}

// Fatal cancels the test-suite's tests-run after given arguments were
// logged.  The cancellation defaults to a FailNow call of wrapped
// test-runner's testing.T-instance or its replacement  provided by a
// suite's SuiteCanceler-implementation.
func (f *F) Fatal(args ...any) {
	f.t.Helper()
	f.Log(args...)
	f.canceler()
}

// Fatalf cancels the test-suite's tests-run after given arguments were
// logged.  The cancellation defaults to a FailNow call of wrapped
// test-runner's testing.T-instance or its replacement  provided by a
// suite's SuiteCanceler-implementation.
func (f *F) Fatalf(format string, args ...any) {
	f.t.Helper()
	f.Logf(format, args...)
	f.canceler()
}

// FatalOn cancels the test-suite's tests-run iff given error is not
// nil.  The cancellation defaults to a FailNow call of wrapped
// test-runner's testing.T-instance or its replacement  provided by a
// suite's SuiteCanceler-implementation.
func (f *F) FatalOn(err error) {
	f.t.Helper()
	if err != nil {
		f.Fatal(err.Error())
	}
}

// Timeout returns a channel which receives a message after given
// duration *d*
func (t *T) Timeout(d time.Duration) chan struct{} {
	done := make(chan struct{})
	go func() {
		time.Sleep(d)
		close(done)
	}()
	return done
}
