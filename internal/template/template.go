package template

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"httpchain/internal/extract"
)

// placeholderRe matches {{ dotted.path }} placeholders. Whitespace
// around the path is ignored.
var placeholderRe = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// Render replaces every {{path}} placeholder in s with the string form of
// the value resolved from scope. An unresolvable path renders as the empty
// string. Resolution is a single left-to-right pass: placeholders inside a
// resolved value are not expanded. Render never fails.
func Render(s string, scope map[string]any) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	return placeholderRe.ReplaceAllStringFunc(s, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-2])
		val, ok := extract.Lookup(scope, path)
		if !ok {
			return ""
		}
		return Stringify(val)
	})
}

// RenderHeaders renders each header value against the scope. Header names
// are taken as-is.
func RenderHeaders(headers map[string]string, scope map[string]any) map[string]string {
	if headers == nil {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		out[k] = Render(v, scope)
	}
	return out
}

// Stringify converts a resolved value to its placeholder text form.
// Strings pass through, numbers and booleans render as literal text,
// nil renders as "null", and structured values render as compact JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
