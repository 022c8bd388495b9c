// Package multitest augments the go testing framework with generated
// test cases aiding its user on matter of:
//   - combining parameters into test cases
//   - naming generated cases deterministically
//   - documenting each generated case
//   - keeping suites of generated cases maintainable
//
// A parameterized test over a few parameters quickly accumulates a
// for-loop, a name scheme and a fixture dance which drown the tested
// behavior in noise.  multitest moves this machinery out of the test:
// a suite declares test-case templates, i.e. a test body together
// with the parameter combinations it should run with, and multitest
// expands each template into one named sub-test per combination.
//
// From the multitest package you will mainly use the types
// [multitest.Suite], [multitest.T] and [multitest.Case] as well as
// the functions [multitest.Run] and [multitest.NewTemplate]:
//
//	import "github.com/slukits/multitest"
//
//	type TestedSubject struct{ multitest.Suite }
//
//	func (s *TestedSubject) Templates() []multitest.Template {
//	    return []multitest.Template{multitest.NewTemplate(
//	        "Accepts", s.accepts,
//	        multitest.Combined(
//	            multitest.Args(1, 2, 3.456),
//	            multitest.Named("col", "a", "b", "c"),
//	        ),
//	    ).Doc("accepts row $arg0 in column $col")}
//	}
//
//	func (s *TestedSubject) accepts(
//	    t *multitest.T, c *multitest.Case,
//	) {
//	    // test implementation run once per combination
//	}
//
//	func TestTestedSubject(t *testing.T) {
//	    multitest.Run(&TestedSubject{}, t)
//	}
//
// Above suite runs nine test cases named Accepts_1_col_a,
// Accepts_1_col_b, ..., Accepts_3_456_col_c.  A suite may combine
// plain suite tests, i.e. public methods with exactly one argument,
// with any number of templates; the special methods Init, SetUp,
// TearDown and Finalize apply to generated cases the same way they
// apply to plain tests.
//
// Combinations are declared by three strategies: [Combined] takes the
// cartesian product of its slots, [Zipped] pairs its slots
// element-wise refusing slots of differing lengths, and
// [FromMappings] passes explicitly listed value-mappings through.
// Slots are positional, see [Args], or named, see [Named]; a test
// body reads them from its [Case] instance which also carries the
// case's rendered documentation and its template's metadata.
//
// A generated case's name derives deterministically from the
// template's base name and the combination's values: values are
// sanitized into identifier fragments whereby symbols become words,
// e.g. '+' becomes "plus"; named values are appended sorted by name.
// If two combinations sanitize to the same name the later one is
// suffixed _0, _1 and so on.  The derived names are the contract
// between a suite and everything addressing its tests: go test -run
// filters, failure reports, baselines and diffs.  Hence name
// derivation is strictly deterministic and sanitizing rules don't
// change between releases.
//
// Template expansion is atomic: either the whole suite surface of
// plain tests and all generated cases is built or the suite fails
// before a single test ran.  There is no partially expanded suite to
// puzzle over; a failing expansion reports the failing template and
// what went wrong, see [ErrInvalidCombination], [ErrMaterialize] and
// [ErrNamesExhausted].
//
// Since the suite's surface is a plain value, see [Expand], tooling
// can work with it without running any test: the cmd/multitest
// command lists the cases a test matrix expands to, compares two
// matrix revisions and scans test files for template declaring
// suites.  The pkg/matrix package reads templates from TOML files
// which keeps large parameter tables out of the test code.
package multitest
