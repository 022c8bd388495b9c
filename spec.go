// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multitest

import (
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
)

// ErrInvalidCombination is wrapped by all errors reporting parameter
// slots which can not be combined, e.g. zipped slots of differing
// lengths or two named slots sharing a name.
var ErrInvalidCombination = errors.New("invalid combination")

// ErrMaterialize is wrapped by all errors reporting a slot whose
// values could not be drawn from its source.
var ErrMaterialize = errors.New("materialize slot values")

// ErrConsumed is wrapped by errors reporting a sequence source whose
// values were already drawn, i.e. the source was used for more than
// one slot.
var ErrConsumed = errors.New("sequence source: consumed")

// Values maps parameter names to the values a test case binds them to.
type Values map[string]any

// A Source provides the values of a parameter slot.  Draw is called
// exactly once per slot when a combination Spec is created.  A Source
// which can not provide its values a second time, e.g. because it
// wraps a one-shot sequence, reports ErrConsumed on subsequent Draw
// calls.
type Source interface {

	// Draw provides a slot's values.  Draw must not be called twice
	// on a one-shot Source.
	Draw() ([]any, error)
}

// Seq returns a one-shot Source drawing its values from given
// sequence function next until next's second return value is false.
// The returned Source reports an ErrConsumed wrapping error if it is
// drawn from more than once, i.e. if it is used for more than one
// slot.
func Seq(next func() (any, bool)) Source {
	return &seqSource{next: next}
}

type seqSource struct {
	next     func() (any, bool)
	consumed bool
}

func (s *seqSource) Draw() ([]any, error) {
	if s.consumed {
		return nil, ErrConsumed
	}
	s.consumed = true
	vv := []any{}
	for v, ok := s.next(); ok; v, ok = s.next() {
		vv = append(vv, v)
	}
	return vv, nil
}

// sliceSource wraps literal slot values; it may be drawn from
// arbitrarily often.
type sliceSource []any

func (s sliceSource) Draw() ([]any, error) { return s, nil }

// A Slot declares one parameter of a test-case template along with
// the values this parameter takes.  A Slot is either positional, see
// [Args] and [ArgsFrom], or named, see [Named] and [NamedFrom].
type Slot struct {
	name  string
	named bool
	src   Source
}

// Args returns a positional parameter slot with given values.
func Args(vv ...any) Slot {
	return Slot{src: sliceSource(vv)}
}

// ArgsFrom returns a positional parameter slot drawing its values
// from given source.
func ArgsFrom(src Source) Slot {
	return Slot{src: src}
}

// Named returns a parameter slot with given name and values.  A test
// case binds the name to one of the values, see [Case.Named].
func Named(name string, vv ...any) Slot {
	return Slot{name: name, named: true, src: sliceSource(vv)}
}

// NamedFrom returns a parameter slot with given name drawing its
// values from given source.
func NamedFrom(name string, src Source) Slot {
	return Slot{name: name, named: true, src: src}
}

// strategy defines how a Spec's slots are combined into test cases.
type strategy int

const (
	// product combines slots into their cartesian product.
	product strategy = iota
	// pairwise zips slots of equal lengths element-wise.
	pairwise
	// mappings passes explicitly listed value-mappings through.
	mappings
)

// String reports a strategy the way it is declared, e.g. in a test
// matrix file.
func (s strategy) String() string {
	switch s {
	case pairwise:
		return "zipped"
	case mappings:
		return "mappings"
	}
	return "combined"
}

// axis is a materialized slot, i.e. a slot whose values were drawn.
type axis struct {
	name   string
	values []any
}

// label identifies an axis in error messages by its name or by its
// one-based position for positional axes.
func (a axis) label(pos int) string {
	if a.name != "" {
		return fmt.Sprintf("named slot %q", a.name)
	}
	return fmt.Sprintf("slot %d", pos+1)
}

// A Spec defines how the parameter slots of a test-case template are
// combined into the template's test cases.  Specs are created by
// [Combined], [Zipped] or [FromMappings].  Slot values are drawn once
// at creation; a failing draw or an invalid slot-combination is
// deferred and reported when the template expands, i.e. before any of
// its test cases is generated.
type Spec struct {
	strat strategy
	axes  []axis
	nArgs int
	maps  []Values
	err   error
}

// Combined returns a Spec generating a test case for each element of
// the cartesian product of given slots' values.  Positional slots
// precede named slots; within these groups the declaration order is
// kept.  The last slot varies fastest.  Without slots the product has
// exactly one element, the empty combination; a slot without values
// makes the product empty.
func Combined(slots ...Slot) *Spec { return newSpec(product, slots) }

// Zipped returns a Spec generating the i-th test case from the i-th
// value of each given slot.  Slots of differing lengths are refused
// with an ErrInvalidCombination wrapping error; no test case is
// generated then.  Without slots no test case is generated.
func Zipped(slots ...Slot) *Spec { return newSpec(pairwise, slots) }

// FromMappings returns a Spec generating one test case for each given
// value-mapping.  The mappings are copied; later modifications of
// given maps don't influence generated test cases.
func FromMappings(mm ...Values) *Spec {
	s := &Spec{strat: mappings}
	for _, m := range mm {
		s.maps = append(s.maps, maps.Clone(m))
	}
	return s
}

func newSpec(strat strategy, slots []Slot) *Spec {
	s := &Spec{strat: strat}
	var named []axis
	have := map[string]bool{}
	for i, slot := range slots {
		vv, err := slot.src.Draw()
		if err != nil {
			s.err = fmt.Errorf("%w: %s: %w",
				ErrMaterialize, slot.label(i), err)
			return s
		}
		if !slot.named {
			s.axes = append(s.axes, axis{values: vv})
			continue
		}
		if slot.name == "" {
			s.err = fmt.Errorf("%w: named slot %d without name",
				ErrInvalidCombination, i+1)
			return s
		}
		if have[slot.name] {
			s.err = fmt.Errorf("%w: named slot %q declared twice",
				ErrInvalidCombination, slot.name)
			return s
		}
		have[slot.name] = true
		named = append(named, axis{name: slot.name, values: vv})
	}
	s.nArgs = len(s.axes)
	s.axes = append(s.axes, named...)
	return s
}

// label identifies a slot in error messages, see axis.label.
func (s Slot) label(pos int) string {
	return axis{name: s.name}.label(pos)
}

// Strategy reports how a Spec combines its slots: "combined",
// "zipped" or "mappings".
func (s *Spec) Strategy() string { return s.strat.String() }

// each enumerates the combinations of a Spec in their generation
// order calling back for each combination with its positional and its
// named values.  each fails with the error of a failed slot draw, of
// an invalid slot declaration, of a zip over slots with differing
// lengths or with the error of an aborting callback.
func (s *Spec) each(cb func(args []any, named Values) error) error {
	if s.err != nil {
		return s.err
	}
	switch s.strat {
	case pairwise:
		return s.eachZipped(cb)
	case mappings:
		return s.eachMapping(cb)
	}
	return s.eachProduct(cb)
}

func (s *Spec) eachProduct(cb func([]any, Values) error) error {
	for _, a := range s.axes {
		if len(a.values) == 0 {
			return nil
		}
	}
	idx := make([]int, len(s.axes))
	for {
		args := make([]any, 0, s.nArgs)
		named := Values{}
		for i, a := range s.axes {
			if i < s.nArgs {
				args = append(args, a.values[idx[i]])
				continue
			}
			named[a.name] = a.values[idx[i]]
		}
		if err := cb(args, named); err != nil {
			return err
		}
		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(s.axes[i].values) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return nil
		}
	}
}

func (s *Spec) eachZipped(cb func([]any, Values) error) error {
	if len(s.axes) == 0 {
		return nil
	}
	n := len(s.axes[0].values)
	for i, a := range s.axes[1:] {
		if len(a.values) == n {
			continue
		}
		return fmt.Errorf("%w: zip %s having %d values with %s having %d",
			ErrInvalidCombination, s.axes[0].label(0), n,
			a.label(i+1), len(a.values))
	}
	for i := 0; i < n; i++ {
		args := make([]any, 0, s.nArgs)
		named := Values{}
		for j, a := range s.axes {
			if j < s.nArgs {
				args = append(args, a.values[i])
				continue
			}
			named[a.name] = a.values[i]
		}
		if err := cb(args, named); err != nil {
			return err
		}
	}
	return nil
}

func (s *Spec) eachMapping(cb func([]any, Values) error) error {
	for _, m := range s.maps {
		if m == nil {
			m = Values{}
		}
		if err := cb(nil, m); err != nil {
			return err
		}
	}
	return nil
}
