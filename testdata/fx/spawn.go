// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fx

import (
	"github.com/slukits/multitest"
)

// Spawning declares a template expanding into two test cases each
// logging its case's name and rendered documentation.
type Spawning struct {
	FixtureLog
	multitest.Suite
}

func (s *Spawning) Templates() []multitest.Template {
	return []multitest.Template{multitest.NewTemplate(
		"Greets", s.greets,
		multitest.Combined(multitest.Named("whom", "x", "y")),
	).Doc("greets $whom")}
}

func (s *Spawning) greets(t *multitest.T, c *multitest.Case) {
	t.Log(c.Name() + "<" + c.Doc() + ">")
}

// SpawnAround brackets each of its generated test cases by its SetUp-
// and TearDown-method whereby the set-up logs the current case's name,
// i.e. logs "[Runs_n_1:][Runs_n_2:]" iff set-up and tear-down apply to
// generated cases and set-up sees the current case.
type SpawnAround struct {
	FixtureLog
	multitest.Suite
}

func (s *SpawnAround) SetUp(t *multitest.T) {
	t.Log("[" + t.Case().Name())
}

func (s *SpawnAround) TearDown(t *multitest.T) { t.Log("]") }

func (s *SpawnAround) Templates() []multitest.Template {
	return []multitest.Template{multitest.NewTemplate(
		"Runs", s.runs,
		multitest.Zipped(multitest.Named("n", 1, 2)),
	)}
}

func (s *SpawnAround) runs(t *multitest.T, c *multitest.Case) {
	t.Log(":")
}

// SpawnParallel runs its generated test cases in parallel each
// asserting on the fixture its set-up stored for it, i.e. fixtures of
// concurrently run generated cases don't leak into each other.
type SpawnParallel struct {
	FixtureLog
	multitest.Suite
	fx multitest.Fixtures
	// Done receives the name of each completed case if made.
	Done chan string
}

func (s *SpawnParallel) SetUp(t *multitest.T) {
	t.Parallel()
	s.fx.Set(t, t.Case().Name())
}

func (s *SpawnParallel) Templates() []multitest.Template {
	return []multitest.Template{multitest.NewTemplate(
		"Waves", s.waves,
		multitest.Combined(multitest.Named("w", "a", "b", "c")),
	)}
}

func (s *SpawnParallel) waves(t *multitest.T, c *multitest.Case) {
	if s.fx.Str(t) != c.Name() {
		t.Errorf("expected fixture %q; got %q", c.Name(), s.fx.Str(t))
	}
	if s.Done != nil {
		s.Done <- c.Name()
	}
}

// Claiming declares a template whose base name claims the suite
// method of the same name, i.e. the claimed method must not be run
// while the template's case takes over the name-space.
type Claiming struct {
	FixtureLog
	multitest.Suite
}

// Echoes is claimed by the template of the same base name, i.e. it
// must not be run as a suite test.
func (s *Claiming) Echoes(t *multitest.T) { t.Log("claimed method ran") }

func (s *Claiming) Templates() []multitest.Template {
	return []multitest.Template{multitest.NewTemplate(
		"Echoes", s.echoes,
		multitest.Combined(multitest.Args(1)),
	)}
}

func (s *Claiming) echoes(t *multitest.T, c *multitest.Case) {
	t.Log(c.Name() + ";")
}

// SeededCollision has a suite method whose name equals the derived
// name of its template's single case, i.e. the generated case must be
// suffixed since method names seed the name registry.
type SeededCollision struct {
	FixtureLog
	multitest.Suite
}

func (s *SeededCollision) Pulse_1(t *multitest.T) { t.Log("plain ran;") }

func (s *SeededCollision) Templates() []multitest.Template {
	return []multitest.Template{multitest.NewTemplate(
		"Pulse", s.pulse,
		multitest.Combined(multitest.Args(1)),
	)}
}

func (s *SeededCollision) pulse(t *multitest.T, c *multitest.Case) {
	t.Log(c.Name() + ";")
}

// BadSpawn declares next to a plain test and a sound template a
// template zipping slots of differing lengths, i.e. running the suite
// must fail before any test or generated case logged.
type BadSpawn struct {
	FixtureLog
	multitest.Suite
}

func (s *BadSpawn) A_plain(t *multitest.T) { t.Log("plain ran") }

func (s *BadSpawn) Templates() []multitest.Template {
	return []multitest.Template{
		multitest.NewTemplate(
			"Sound", s.log,
			multitest.Combined(multitest.Args(1, 2)),
		),
		multitest.NewTemplate(
			"Uneven", s.log,
			multitest.Zipped(
				multitest.Named("n", 1, 2, 3),
				multitest.Named("m", "a", "b"),
			),
		),
	}
}

func (s *BadSpawn) log(t *multitest.T, c *multitest.Case) {
	t.Log(c.Name())
}

// CaseFailing generates a single failing test case whose suppressed
// assertion error must report the case's combination.
type CaseFailing struct {
	FX
}

func (s *CaseFailing) Templates() []multitest.Template {
	return []multitest.Template{multitest.NewTemplate(
		"Checks", s.checks,
		multitest.Combined(multitest.Named("col", "a")),
	)}
}

func (s *CaseFailing) checks(t *multitest.T, c *multitest.Case) {
	t.True(false)
}
