// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multitest

import (
	"reflect"
	"testing"
)

// Suite implements the private methods of the SuiteEmbedder interface.
// I.e. if you want to run the tests of your own test-suite using
// *multitest.Run* you must embed this type, e.g.:
//
//	type MySuite struct { multitest.Suite }
//
//	// optional Init-method
//	// optional SetUp-method
//	// optional TearDown-method
//
//	// ... the suite-tests as methods of *MySuite ...
//
//	// optional Templates-method declaring test-case templates
//
//	// optional Finalize-method
//
//	func TestMySuite(t *testing.T) { multitest.Run(&MySuite{}, t) }
type Suite struct {
	t               *testing.T
	self            any
	value           reflect.Value
	rtype           reflect.Type
	setUp, tearDown *reflect.Method
}

// newFinalizer returns a function which may be used to register at
// t.Cleanup which calls suite's (given) Finalize-method with provided
// values.
func newFinalizer(
	method *reflect.Method, suite, multitestF reflect.Value,
) func() {
	return func() {
		method.Func.Call([]reflect.Value{suite, multitestF})
	}
}

// exec executes a found Init-method in a Suite.
func (s *Suite) exec(init *reflect.Method, t *testing.T) {
	suiteLogging, hasLogger := s.self.(SuiteLogging)
	suiteCanceler, hasCanceler := s.self.(SuiteCanceler)
	suiteI := &I{
		t:        t,
		logger:   t.Log,
		canceler: t.FailNow,
	}
	if hasLogger {
		suiteI.logger = suiteLogging.Logger()
	}
	if hasCanceler {
		suiteI.canceler = suiteCanceler.Cancel()
	}
	init.Func.Call([]reflect.Value{
		s.value, reflect.ValueOf(suiteI)})
}

// fWrapper wraps given testing.T-instance in a F-instance for a suites
// finalizer.
func (s *Suite) fWrapper(t *testing.T) *F {
	suiteLogging, hasLogger := s.self.(SuiteLogging)
	suiteCanceler, hasCanceler := s.self.(SuiteCanceler)
	suiteF := &F{
		t:        t,
		logger:   t.Log,
		canceler: t.FailNow,
	}
	if hasLogger {
		suiteF.logger = suiteLogging.Logger()
	}
	if hasCanceler {
		suiteF.canceler = suiteCanceler.Cancel()
	}
	return suiteF
}

// init initializes this suite's reused reflection values and handles
// its special methods if any.
func (s *Suite) init(self any, t *testing.T) *Suite {
	s.self, s.t = self, t
	s.value = reflect.ValueOf(self)
	s.rtype = reflect.TypeOf(self)
	for i := 0; i < s.rtype.NumMethod(); i++ {
		m := s.rtype.Method(i)
		switch m.Name {
		case "SetUp":
			s.setUp = &m
		case "TearDown":
			s.tearDown = &m
		case "Init":
			s.exec(&m, t)
		case "Finalize":
			t.Cleanup(newFinalizer(
				&m, s.value, reflect.ValueOf(s.fWrapper(t))))
		}
	}
	return s
}

// special are the names of a suite's life-cycle methods which are
// never run as tests; only exact names count, i.e. a test-method may
// be called Up or Temp.
var special = map[string]bool{
	"Init":      true,
	"SetUp":     true,
	"TearDown":  true,
	"Finalize":  true,
	"Templates": true,
}

// def expands a suite's test surface: each public method with exactly
// one argument which is neither special nor claimed by a template
// becomes a test case keeping its method name; then the suite's
// templates, if it implements SuiteSpawning, expand in declaration
// order against a name-registry seeded with all remaining method
// names.  def fails without a (partial) surface if a template doesn't
// expand, i.e. no test case of the suite runs then.
func (s *Suite) def() (*Def, error) {
	var tt []Template
	if spawning, ok := s.self.(SuiteSpawning); ok {
		tt = spawning.Templates()
	}
	claimed := map[string]bool{}
	for _, tpl := range tt {
		claimed[tpl.name] = true
	}
	var seeds []string
	var plain []*Case
	for i := 0; i < s.rtype.NumMethod(); i++ {
		method := s.rtype.Method(i)
		if claimed[method.Name] {
			continue
		}
		seeds = append(seeds, method.Name)
		if method.Type.NumIn() != 2 {
			continue
		}
		if special[method.Name] {
			continue
		}
		call := method.Func
		plain = append(plain, &Case{
			name: method.Name,
			call: func(t *T, _ *Case) {
				call.Call([]reflect.Value{
					s.value, reflect.ValueOf(t)})
			},
		})
	}
	d, err := expand(seeds, tt)
	if err != nil {
		return nil, err
	}
	for _, c := range plain {
		d.byName[c.name] = c
	}
	d.cases = append(plain, d.cases...)
	return d, nil
}

// SuiteEmbedder is automatically implemented by embedding a
// Suite-instance.  I.e.:
//
//	type MySuite struct{ multitest.Suite }
//
// implements the SuiteEmbedder-interface's private methods.
type SuiteEmbedder interface {
	init(any, *testing.T) *Suite
}

// Run sets up embedded Suite-instance, expands the test-case
// templates of given test-suite embedder, see [SuiteSpawning], and
// runs its test surface: all methods which are public, have exactly
// one argument and are neither special nor claimed by a template,
// followed by the generated test cases of its templates.  A template
// failing to expand fails the suite before any test of its surface is
// run.  NOTE the reflection of suite-embedder methods could be more
// specific, e.g. the argument must be of type *multitest.T*.  To keep
// generated overhead at a minimum all methods with exactly one
// argument are considered tests unless they are special (or private):
//
// - Init(*multitest.I): run before any other method of a suite
//
// - SetUp(*multitest.T): run before every suite-test
//
// - TearDown(*multitest.T): run after every suite-test
//
// - Finalize(*multitest.F): run after any other method of a suite
//
// - Templates() []multitest.Template: declares generated test cases
func Run(suite SuiteEmbedder, t *testing.T) {
	s := suite.init(suite, t)
	def, err := s.def()
	if err != nil {
		t.Fatalf("multitest: expand: %v", err)
	}
	subTestFactory := newSubTestFactory(s)
	def.For(func(c *Case) {
		t.Run(c.name, subTestFactory(c))
	})
}

// SuiteLogging implementation of a suite-embedder overwrites provided
// logging mechanism of multitest.T-instances passed to suite-tests
// with provided function of the Logger-method. E.g.:
//
//	type MySuite {
//	    multitest.Suite
//	    Logs string
//	}
//
//	func (s *MySuite) Logger() func(...any) {
//	    return func(args ...any) {
//	        s.Logs += fmt.Sprint(args...)
//	    }
//	}
//
//	func (s *MySuite) A_test(t *multitest.T) {
//	    t.Log("A_test has run")
//	}
//
//	func TestMySuite(t *testing.T) {
//	    testSuite := &MySuite{}
//	    multitest.Run(testSuite, t)
//	    t.Log(testSuite.Logs) // prints "A_test has run" if verbose
//	}
type SuiteLogging interface {
	Logger() func(args ...any)
}

// SuiteErrorer overwrites default test-error handling which defaults
// to a testing.T.Error-call of a wrapped testing.T-instance.  I.e.
// calling on a multitest.T instance t methods like Error, Errorf or
// FailOn end up in an Error-call of the testing.T-instance which is
// wrapped by t.  If a suite implements the SuiteErrorer-interface
// provided function is called in case of an test-error.
type SuiteErrorer interface {
	Error() func(...any)
}

// SuiteCanceler overwrites default test-cancellation handling which
// defaults to a testing.T.FailNow-call of a wrapped
// testing.T-instance.  I.e. calling on a multitest.T instance t
// methods like Fatal, Fatalf, FailNow, FatalIfNot, or FatalOn end up
// in an FailNow-call of the testing.T-instance which is wrapped by t.
// If a suite implements the SuiteCanceler-interface provided function
// is called in case of an test-cancellation.
type SuiteCanceler interface {
	Cancel() func()
}

// newSubTestFactory returns for given suite a sub-test-factory, i.e. a
// function wrapping test cases into functions that can be passed to
// the Run-method of a *testing.T*-instance.
func newSubTestFactory(
	suite *Suite,
) func(*Case) func(*testing.T) {
	suiteLogging, hasLogger := suite.self.(SuiteLogging)
	suiteErrorer, hasErrorer := suite.self.(SuiteErrorer)
	suiteCanceler, hasCanceler := suite.self.(SuiteCanceler)
	var tearDown func(t *T)
	if suite.tearDown != nil {
		tearDown = func(t *T) {
			(*suite.tearDown).Func.Call(
				[]reflect.Value{suite.value, reflect.ValueOf(t)})
		}
	}
	return func(c *Case) func(*testing.T) {
		return func(t *testing.T) {
			suiteT := &T{
				t:        t,
				c:        c,
				tearDown: tearDown,
				logger:   t.Log,
				errorer:  t.Error,
				canceler: t.FailNow,
			}
			suiteT.Not = Not{t: suiteT}
			if hasLogger {
				suiteT.logger = suiteLogging.Logger()
			}
			if hasErrorer {
				suiteT.errorer = suiteErrorer.Error()
			}
			if hasCanceler {
				suiteT.canceler = suiteCanceler.Cancel()
			}
			if suite.setUp != nil {
				(*suite.setUp).Func.Call([]reflect.Value{
					suite.value, reflect.ValueOf(suiteT)})
			}
			c.call(suiteT, c)
			if tearDown != nil {
				tearDown(suiteT)
			}
		}
	}
}
