// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multitest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// placeholder matches the documentation-template placeholders $name,
// ${name} and the escape $$.  A name is an identifier: a letter or
// underscore followed by letters, digits or underscores.
var placeholder = regexp.MustCompile(
	`\$(?:(\$)|([A-Za-z_][A-Za-z0-9_]*)|\{([A-Za-z_][A-Za-z0-9_]*)\})`)

// safeSubstitute replaces each placeholder of given template having a
// mapped name by its mapped value and reduces $$ to $.  Placeholders
// without a mapping as well as dangling $ occurrences are left
// verbatim, i.e. a documentation template can not fail.
func safeSubstitute(tmpl string, mapping map[string]string) string {
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if m == "$$" {
			return "$"
		}
		name := m[1:]
		if strings.HasPrefix(name, "{") {
			name = name[1 : len(name)-1]
		}
		if v, ok := mapping[name]; ok {
			return v
		}
		return m
	})
}

// renderDoc renders a test-case documentation from given template and
// given combination.  Positional values map to the placeholders arg0,
// arg1, ...; named values map to their names whereas a name argN
// shadows the N-th positional value.
func renderDoc(tmpl string, args []any, named Values) string {
	if tmpl == "" {
		return ""
	}
	mapping := make(map[string]string, len(args)+len(named))
	for i, a := range args {
		mapping["arg"+strconv.Itoa(i)] = fmt.Sprint(a)
	}
	for k, v := range named {
		mapping[k] = fmt.Sprint(v)
	}
	return safeSubstitute(tmpl, mapping)
}
