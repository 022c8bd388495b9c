// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multitest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrNamesExhausted is wrapped by the error reporting that no free
// case name could be derived within the suffix bound, i.e. maxSimilar
// cases with a similar name already exist.
var ErrNamesExhausted = errors.New("case names exhausted")

// maxSimilar bounds how many cases may share a sanitized base name.
const maxSimilar = 1024

// asWord maps symbols occurring in parameter values to words keeping
// derived case names valid identifiers.  This mapping is part of a
// suite's naming contract and must not change between releases since
// case names are how reruns, filters and baselines refer to a case.
var asWord = map[rune]string{
	'.':  "_",
	'-':  "minus",
	'+':  "plus",
	'#':  "num",
	'!':  "excl",
	'"':  "quot",
	'$':  "dollar",
	'%':  "percnt",
	'&':  "amp",
	'/':  "sol",
	'\\': "bsol",
	'=':  "eq",
	',':  "comma",
	';':  "semi",
	':':  "colon",
}

// sanitize derives an identifier fragment from given value's default
// string representation: letters and digits are kept, symbols are
// replaced by words, see asWord, and all remaining runes become
// underscores.
func sanitize(v any) string {
	var b strings.Builder
	for _, r := range fmt.Sprint(v) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		if w, ok := asWord[r]; ok {
			b.WriteString(w)
			continue
		}
		b.WriteRune('_')
	}
	return b.String()
}

// caseName derives the name of a test case from its template's base
// name and its combination: sanitized positional values in order
// followed by sanitized name/value pairs of the named values sorted
// by name, all joined by underscores.
func caseName(base string, args []any, named Values) string {
	var b strings.Builder
	b.WriteString(base)
	if len(args) > 0 || len(named) > 0 {
		b.WriteRune('_')
	}
	for i, a := range args {
		if i > 0 {
			b.WriteRune('_')
		}
		b.WriteString(sanitize(a))
	}
	if len(args) > 0 && len(named) > 0 {
		b.WriteRune('_')
	}
	kk := maps.Keys(named)
	slices.Sort(kk)
	for i, k := range kk {
		if i > 0 {
			b.WriteRune('_')
		}
		b.WriteString(sanitize(k))
		b.WriteRune('_')
		b.WriteString(sanitize(named[k]))
	}
	return b.String()
}

// registry tracks the names a suite's definition claims while it is
// built.  It is seeded with the names of a suite's (non-template)
// methods and discarded once the definition is complete.
type registry map[string]*Case

// claim derives a free name for given case from given base name and
// the case's combination and binds it in the registry.  Colliding
// names are suffixed _0, _1, ... in first-come order; claim fails
// wrapping ErrNamesExhausted once maxSimilar similar names exist.
func (r registry) claim(base string, c *Case) (string, error) {
	name := caseName(base, c.args, c.named)
	if _, ok := r[name]; !ok {
		r[name] = c
		return name, nil
	}
	for i := 0; i < maxSimilar-1; i++ {
		suffixed := name + "_" + strconv.Itoa(i)
		if _, ok := r[suffixed]; ok {
			continue
		}
		r[suffixed] = c
		return suffixed, nil
	}
	return "", fmt.Errorf("%w: %d cases named similar to %q",
		ErrNamesExhausted, maxSimilar, name)
}
