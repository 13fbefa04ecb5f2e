package extract

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"httpchain/internal/logging"
	"httpchain/internal/util"
)

// Fields pulls named values out of a JSON-like body via dot-paths.
// Each entry of paths maps a variable name to a dotted path; numeric path
// segments address array indices. Segments are literal keys, there is no
// wildcard or query syntax. A missing or null intermediate yields
// nil for that variable. Fields never fails: unresolvable paths simply
// produce nil entries.
func Fields(body any, paths map[string]string) map[string]any {
	out := make(map[string]any, len(paths))
	if len(paths) == 0 {
		return out
	}

	raw, err := json.Marshal(body)
	if err != nil {
		// Body is not representable as JSON; nothing can resolve.
		for name := range paths {
			out[name] = nil
		}
		return out
	}

	for name, path := range paths {
		res := gjson.GetBytes(raw, gjsonPath(path))
		if !res.Exists() {
			out[name] = nil
			continue
		}
		out[name] = res.Value()
		logging.Logf(logging.Debug, "Extracted variable '%s' = %s (path %s)", name, util.Snippet([]byte(res.Raw)), path)
	}
	return out
}

// gjsonPath converts a plain dot-path into a gjson path whose segments
// are taken literally: wildcard, query and modifier characters carry no
// meaning here, only key-by-key and index-by-index walking.
func gjsonPath(path string) string {
	segments := strings.Split(strings.TrimSpace(path), ".")
	for i, seg := range segments {
		segments[i] = escapeSegment(seg)
	}
	return strings.Join(segments, ".")
}

func escapeSegment(seg string) string {
	if !strings.ContainsAny(seg, `\*?#|@`) {
		return seg
	}
	var b strings.Builder
	for _, r := range seg {
		switch r {
		case '\\', '*', '?', '#', '|', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Lookup resolves a dotted path against an in-memory variable scope.
// Maps are traversed by key, slices by numeric segment. The boolean
// result distinguishes an absent path from one that resolves to nil.
func Lookup(scope map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	var current any = scope
	for _, seg := range segments {
		switch v := current.(type) {
		case map[string]any:
			val, ok := v[seg]
			if !ok {
				return nil, false
			}
			current = val
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, false
			}
			current = v[idx]
		default:
			return nil, false
		}
	}
	return current, true
}
