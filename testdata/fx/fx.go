// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fx provides multitest test-fixture suites.
//
// Each test-fixture suite embeds the FixtureLog ensuring that all
// loggings during a suite's test runs are appended to the
// *Logs*-property which then can be evaluate after the suite's test
// runs.
package fx

import (
	"fmt"
	"sync"

	"github.com/slukits/multitest"
)

// A FX instance is meant for fixture suites whose test errors should be
// suppressed and only logged, i.e. may be retrieved by s.Logs where s
// is a suite instance embedding FX.  In this why test-test-suites like
// the following are possible
//
//	type MySuiteFixture { FX }
//
//	func(s *MySuiteFixture) Test_true_failing(t *multitest.T) {
//	    t.True(false)
//	}
//
//	type Assertion { multitest.Suite }
//
//	func(s *Assertion) For_true_fails_if_false_given(t *multitest.T) {
//	    fx := &MySuiteFixture{}
//	    multitest.Run(fx, t.GoT())
//	    // i.e. not the fixture-suite-test fails but the testing
//	    // suite's test can investigate if the test would have failed.
//	    if fx.Logs == "" {
//	        t.Error("expected true assertion to fail")
//	    }
//	}
type FX struct {
	FixtureLog
	multitest.Suite
	t *multitest.T
}

func (s *FX) SetUp(t *multitest.T) { s.t = t }

func (s *FX) error(args ...any) {
	s.t.Log(args...)
}

func (s *FX) Error() func(args ...any) {
	return s.error
}

// FixtureLog provides the general logging facility for test suites
// fixtures by implementing multitest.SuiteLogging.  A FixtureLog
// mustn't been copied once it has been used.
type FixtureLog struct {
	Logs  string
	mutex sync.Mutex
}

// log logs concurrency save given arguments to the *Logs* property.
func (fl *FixtureLog) log(args ...any) {
	fl.mutex.Lock()
	defer fl.mutex.Unlock()
	fl.Logs += fmt.Sprint(args...)
}

// Logger implements the Logger interface, i.e. the suite-tests runner
// will use the returned function to implement multitest.T.Log/Logf.
func (fl *FixtureLog) Logger() func(args ...any) {
	return fl.log
}

// TestAllSuiteTestsAreRun is a suite fixture to verify that the
// suite-test runner executes public suite-methods as tests.
type TestAllSuiteTestsAreRun struct {
	multitest.Suite
	FixtureLog
	// Exp is logged iff *A_test*-method is called
	Exp string
}

// A_test as a public method should be run by the suite-tests runner,
// i.e. log the content of *Exp*.
func (s *TestAllSuiteTestsAreRun) A_test(t *multitest.T) { t.Log(s.Exp) }

// private can't be run.
func (s *TestAllSuiteTestsAreRun) private(t *multitest.T) {
	t.Log("failed")
}

// TestSpecialNameOverlap has tests named like parts of the special
// method names, i.e. Down, Temp and Up must be run as tests since only
// exactly Init, SetUp, TearDown, Finalize and Templates are special.
type TestSpecialNameOverlap struct {
	multitest.Suite
	FixtureLog
}

func (s *TestSpecialNameOverlap) Down(t *multitest.T) { t.Log("Down;") }
func (s *TestSpecialNameOverlap) Temp(t *multitest.T) { t.Log("Temp;") }
func (s *TestSpecialNameOverlap) Up(t *multitest.T)   { t.Log("Up;") }

// TestSuiteLogging tests if a implemented SuiteLogger of a test-suite
// is used for logging.
type TestSuiteLogging struct {
	FixtureLog
	multitest.Suite
	// Exp is logged iff *Log_test*-is called
	Exp string
	// ExpFmt is logged if *Log_fmt_test*-is called
	ExpFmt string
}

// Log_test logs *Exp*.
func (s *TestSuiteLogging) Log_test(t *multitest.T) { t.Log(s.Exp) }

// Log_fmt_test logs *ExpFmt*.
func (s TestSuiteLogging) Log_fmt_test(t *multitest.T) {
	t.Logf("%s", s.ExpFmt)
}

// TestSetupTearDown logs the bracketing of its two tests by its SetUp-
// and TearDown-method, i.e. logs "(A)(B)" iff set-up and tear-down are
// run before respectively after each test.  NOTE reflected suite tests
// run in their method-set order which is alphabetical.
type TestSetupTearDown struct {
	FixtureLog
	multitest.Suite
}

func (s *TestSetupTearDown) SetUp(t *multitest.T)    { t.Log("(") }
func (s *TestSetupTearDown) TearDown(t *multitest.T) { t.Log(")") }
func (s *TestSetupTearDown) Test_A(t *multitest.T)   { t.Log("A") }
func (s *TestSetupTearDown) Test_B(t *multitest.T)   { t.Log("B") }

// TestInitFinalize logs prefixed from its Init- and Finalize-method
// around its single test's logging, i.e. its log starts with the
// init-logging and ends with the finalize-logging iff Init is run
// first and Finalize last.
type TestInitFinalize struct {
	FixtureLog
	multitest.Suite
}

func (s *TestInitFinalize) Init(i *multitest.I)     { i.Log("init") }
func (s *TestInitFinalize) A_test(t *multitest.T)   { t.Log("test") }
func (s *TestInitFinalize) Finalize(f *multitest.F) { f.Log("final") }

// TestCancel replaces the default test-cancellation by counting
// cancellations, i.e. a fixture-test's Fatal-call doesn't cancel the
// surrounding tests-run.
type TestCancel struct {
	FixtureLog
	multitest.Suite
	// Canceled counts the suppressed test-cancellations.
	Canceled int
}

func (s *TestCancel) Fatal_test(t *multitest.T) { t.Fatal("fatal logged") }

func (s *TestCancel) Cancel() func() {
	return func() { s.Canceled++ }
}
