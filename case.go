// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multitest

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A Case is one generated test case of a test-case template: a
// combination of parameter values along with the derived case name,
// the rendered documentation and the template's metadata.  A Case is
// immutable; accessors returning slices or maps return copies.
type Case struct {
	name  string
	doc   string
	args  []any
	named Values
	meta  map[string]string
	call  func(*T, *Case)
}

// Name reports the derived, collision-free name of a test case, see
// [Combined] and sanitize for how names derive from combinations.
func (c *Case) Name() string { return c.name }

// Doc reports the case's documentation, i.e. its template's
// documentation template rendered with the case's combination.  Doc
// is zero if the template has no documentation.
func (c *Case) Doc() string { return c.doc }

// Args reports the case's positional values in slot order.
func (c *Case) Args() []any { return slices.Clone(c.args) }

// Arg reports the case's i-th positional value; it panics if i is out
// of range, see [Case.Args] for the number of positional values.
func (c *Case) Arg(i int) any { return c.args[i] }

// NamedValues reports the case's named values.
func (c *Case) NamedValues() Values { return maps.Clone(c.named) }

// Named reports the value bound to given name; it is nil if the
// case's combination doesn't bind the name.
func (c *Case) Named(name string) any { return c.named[name] }

// Meta reports the metadata value the case's template associated with
// given key, see [Template.Tag]; it is zero for unset keys.
func (c *Case) Meta(key string) string { return c.meta[key] }

// Combination reports a case's values for failure messages and
// tooling: positional values in slot order followed by name=value
// pairs sorted by name.  It is zero for the empty combination.
func (c *Case) Combination() string {
	if len(c.args) == 0 && len(c.named) == 0 {
		return ""
	}
	parts := make([]string, 0, len(c.args)+len(c.named))
	for _, a := range c.args {
		parts = append(parts, fmt.Sprint(a))
	}
	kk := maps.Keys(c.named)
	slices.Sort(kk)
	for _, k := range kk {
		parts = append(parts, fmt.Sprintf("%s=%v", k, c.named[k]))
	}
	return strings.Join(parts, ", ")
}

// String reports a case's name and combination in call notation, e.g.
// "steps(1, col=a)".
func (c *Case) String() string {
	if cmb := c.Combination(); cmb != "" {
		return fmt.Sprintf("%s(%s)", c.name, cmb)
	}
	return c.name
}

// Int reports the value bound to given name converted to an int.  It
// is not ok if the name is unbound or its value neither an integer
// type nor an integral float.
func (c *Case) Int(name string) (int, bool) {
	v, ok := c.named[name]
	if !ok {
		return 0, false
	}
	return toInt(v)
}

// Float64 reports the value bound to given name converted to a
// float64.  It is not ok if the name is unbound or its value not
// numeric.
func (c *Case) Float64(name string) (float64, bool) {
	v, ok := c.named[name]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// Str reports the string representation of the value bound to given
// name.  It is not ok if the name is unbound.
func (c *Case) Str(name string) (string, bool) {
	v, ok := c.named[name]
	if !ok {
		return "", false
	}
	return fmt.Sprint(v), true
}

// Bool reports the value bound to given name converted to a bool.  It
// is not ok if the name is unbound or its value neither a bool nor a
// parsable bool-string.
func (c *Case) Bool(name string) (bool, bool) {
	v, ok := c.named[name]
	if !ok {
		return false, false
	}
	return toBool(v)
}

// Bind sets the exported fields of the struct given pointer points to
// from the case's named values.  A field binds the name given by its
// `case`-tag defaulting to the lower-cased field name.  Unbound names
// leave their field's value untouched.  Bind fails if given value is
// no struct pointer or a bound value doesn't convert to its field's
// type.  Supported field types are string, bool, int and float64.
func (c *Case) Bind(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind combination: need struct pointer, got %T",
			target)
	}
	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		fl := rt.Field(i)
		if !fl.IsExported() {
			continue
		}
		name := fl.Tag.Get("case")
		if name == "" {
			name = strings.ToLower(fl.Name)
		}
		v, ok := c.named[name]
		if !ok {
			continue
		}
		if err := setField(rv.Field(i), v); err != nil {
			return fmt.Errorf("bind combination: field %s: %w",
				fl.Name, err)
		}
	}
	return nil
}

func setField(fl reflect.Value, v any) error {
	switch fl.Kind() {
	case reflect.String:
		fl.SetString(fmt.Sprint(v))
	case reflect.Bool:
		b, ok := toBool(v)
		if !ok {
			return fmt.Errorf("can't convert %v to bool", v)
		}
		fl.SetBool(b)
	case reflect.Int:
		n, ok := toInt(v)
		if !ok {
			return fmt.Errorf("can't convert %v to int", v)
		}
		fl.SetInt(int64(n))
	case reflect.Float64:
		f, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("can't convert %v to float64", v)
		}
		fl.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field type %s", fl.Kind())
	}
	return nil
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		return int(t), true
	case float32:
		if float64(t) == math.Trunc(float64(t)) {
			return int(t), true
		}
	case float64:
		if t == math.Trunc(t) {
			return int(t), true
		}
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		if b, err := strconv.ParseBool(t); err == nil {
			return b, true
		}
	}
	return false, false
}
