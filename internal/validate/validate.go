package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Expectation describes the declarative checks applied to one response.
// Every field is optional; an absent field always passes its dimension.
type Expectation struct {
	// Status must equal the response status exactly when set.
	Status *int `json:"status,omitempty" yaml:"status,omitempty"`
	// ContentType passes when the response content-type contains it.
	ContentType string `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	// Body is either an object (partial key/value match) or a string
	// (exact match against the body or its JSON serialization).
	Body any `json:"body,omitempty" yaml:"body,omitempty"`
	// BodyRegex is a pattern tested against the body text. When set it
	// fully replaces the Body check.
	BodyRegex string `json:"bodyRegex,omitempty" yaml:"bodyRegex,omitempty"`
}

// Result carries the pass/fail outcome per header-level dimension.
type Result struct {
	Status      bool `json:"status"`
	ContentType bool `json:"contentType"`
}

// BodyResult carries the body match outcome with a human-readable reason.
type BodyResult struct {
	Matched bool   `json:"matched"`
	Reason  string `json:"reason"`
}

// Fixed reason strings surfaced in results and reports.
const (
	ReasonNoExpectation = "No body expectation."
	ReasonMatchPassed   = "Partial/exact body match passed."
	ReasonMatchFailed   = "Partial/exact body match failed."
	ReasonTypeMismatch  = "Body type mismatch."
	ReasonRegexMatched  = "Body matched regex."
	ReasonRegexFailed   = "Body did not match regex."
)

// Response validates an actual status/content-type/body triple against an
// expectation. A nil expectation passes every dimension.
func Response(status int, contentType string, body any, exp *Expectation) (Result, BodyResult) {
	res := Result{Status: true, ContentType: true}
	if exp == nil {
		return res, BodyResult{Matched: true, Reason: ReasonNoExpectation}
	}
	if exp.Status != nil {
		res.Status = status == *exp.Status
	}
	if exp.ContentType != "" {
		res.ContentType = strings.Contains(contentType, exp.ContentType)
	}
	return res, Body(body, exp)
}

// Body evaluates the body-matching rules of an expectation, in precedence
// order: bodyRegex replaces the body check entirely; an absent body
// expectation always matches; objects match partially key by key; a string
// expectation matches the body text or its JSON serialization.
func Body(actual any, exp *Expectation) BodyResult {
	if exp.BodyRegex != "" {
		return matchRegex(actual, exp.BodyRegex)
	}
	if exp.Body == nil {
		return BodyResult{Matched: true, Reason: ReasonNoExpectation}
	}

	if expEntries, ok := objectEntries(exp.Body); ok {
		actEntries, actOK := objectEntries(actual)
		if !actOK {
			return BodyResult{Matched: false, Reason: ReasonTypeMismatch}
		}
		matched := true
		for key, want := range expEntries {
			got, present := actEntries[key]
			if !present || !jsonEqual(want, got) {
				matched = false
			}
		}
		if matched {
			return BodyResult{Matched: true, Reason: ReasonMatchPassed}
		}
		return BodyResult{Matched: false, Reason: ReasonMatchFailed}
	}

	if expected, ok := exp.Body.(string); ok {
		if canonicalJSON(actual) == expected {
			return BodyResult{Matched: true, Reason: ReasonMatchPassed}
		}
		if s, isStr := actual.(string); isStr && s == expected {
			return BodyResult{Matched: true, Reason: ReasonMatchPassed}
		}
		return BodyResult{Matched: false, Reason: ReasonMatchFailed}
	}

	return BodyResult{Matched: false, Reason: ReasonTypeMismatch}
}

// Passed reports the overall outcome for one request: all three
// dimensions must pass.
func Passed(r Result, b BodyResult) bool {
	return r.Status && r.ContentType && b.Matched
}

func matchRegex(actual any, pattern string) BodyResult {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return BodyResult{Matched: false, Reason: fmt.Sprintf("Invalid bodyRegex pattern: %v", err)}
	}
	text, ok := actual.(string)
	if !ok {
		text = canonicalJSON(actual)
	}
	if re.MatchString(text) {
		return BodyResult{Matched: true, Reason: ReasonRegexMatched}
	}
	return BodyResult{Matched: false, Reason: ReasonRegexFailed}
}

// objectEntries views a value as a string-keyed collection. Maps map
// directly; slices expose their indices as keys so partial matching
// treats an array as an object with numeric keys.
func objectEntries(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case []any:
		entries := make(map[string]any, len(t))
		for i, elem := range t {
			entries[strconv.Itoa(i)] = elem
		}
		return entries, true
	default:
		return nil, false
	}
}

// jsonEqual compares two values by canonical serialization rather than
// deep structural equality.
func jsonEqual(a, b any) bool {
	return canonicalJSON(a) == canonicalJSON(b)
}

func canonicalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
