// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package multitest

// TrueErr default message for failed 'true'-assertion.
const TrueErr = trueErr

// FalseErr default message for failed 'false'-assertion.
const FalseErr = falseErr

// ContainsErr default message for failed 'Contains'-assertion.
const ContainsErr = containsErr

// MatchedErr default message for failed *'Matched'-assertion.
const MatchedErr = matchedErr

// ErrErr default message for failed "Err"-assertion
const ErrErr = errErr

// ErrIsErr default message for failed "ErrIs"-assertion
const ErrIsErr = errIsErr

// ErrMatchedErr default message for failed "ErrMatched"-assertion
const ErrMatchedErr = errMatchedErr

// PanicsErr default message for failed "Panics"-assertion
const PanicsErr = panicsErr

// MaxSimilar is the bound of similarly named cases of a suite.
const MaxSimilar = maxSimilar

// Sanitize exports sanitize for testing.
var Sanitize = sanitize

// CaseName exports caseName for testing.
var CaseName = caseName

// SafeSubstitute exports safeSubstitute for testing.
var SafeSubstitute = safeSubstitute

// RenderDoc exports renderDoc for testing.
var RenderDoc = renderDoc

// Each exports a Spec's combination enumeration for testing.
func (s *Spec) Each(cb func(args []any, named Values) error) error {
	return s.each(cb)
}
