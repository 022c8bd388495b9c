// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multitest

import (
	"testing"
)

type fixtures struct{ Suite }

func (s *fixtures) SetUp(t *T) { t.Parallel() }

func (s *fixtures) Map_a_test_to_its_fixture(t *T) {
	ff := Fixtures{}
	ff.Set(t, 42)
	t.Eq(42, ff.Get(t))
}

func (s *fixtures) Default_to_nil_for_a_test_without_fixture(t *T) {
	ff := Fixtures{}
	t.True(ff.Get(t) == nil)
}

func (s *fixtures) Report_a_deleted_test_s_fixture(t *T) {
	ff := Fixtures{}
	ff.Set(t, 42)
	t.Eq(42, ff.Del(t))
	t.True(ff.Get(t) == nil)
}

func (s *fixtures) Default_to_zero_values_for_typed_access(t *T) {
	ff := Fixtures{}
	t.Eq(0, ff.Int(t))
	t.Eq("", ff.Str(t))
	ff.Set(t, 42)
	t.Eq(42, ff.Int(t))
	t.Eq("", ff.Str(t))
}

func TestFixtures(t *testing.T) {
	t.Parallel()
	Run(&fixtures{}, t)
}
