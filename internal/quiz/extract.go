package quiz

import (
	"encoding/json"
	"strings"
)

// Record is one raw question record as decoded from model output:
// usually a map[string]any, but arrays may hold anything.
type Record = any

// ExtractRecords finds the first complete JSON object or array in raw model
// output and normalizes it into a flat list of records.
//
// Accepted shapes: {"questions": [...]}, a single record object carrying
// qtype, question and answer, or a bare array. Text before and after the
// JSON value is ignored.
func ExtractRecords(raw string) ([]Record, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, newFormatError("empty model response", raw)
	}

	value, _, ok := FirstJSONValue(s)
	if !ok {
		return nil, newFormatError("no valid JSON found", s)
	}

	return normalize(value, s)
}

// maxNesting bounds how deep a candidate value may nest. Candidates that
// open more brackets than this are skipped without decoding.
const maxNesting = 64

// FirstJSONValue scans s left to right and decodes the first syntactically
// complete JSON value that starts at a '{' or '['. It returns the value
// and the offset just past its end. Numbers decode as json.Number.
func FirstJSONValue(s string) (any, int, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != '{' && s[i] != '[' {
			continue
		}
		end, ok := bracketSpan(s, i)
		if !ok {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(s[i:end]))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			continue
		}
		return v, i + int(dec.InputOffset()), true
	}
	return nil, 0, false
}

// bracketSpan returns the offset just past the bracket that balances the
// one at s[start], skipping brackets inside strings. It fails when the
// brackets never balance or nest deeper than maxNesting. Every complete
// value starting at s[start] ends exactly there.
func bracketSpan(s string, start int) (int, bool) {
	depth := 0
	inString, escaped := false, false
	for j := start; j < len(s); j++ {
		c := s[j]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
			if depth > maxNesting {
				return 0, false
			}
		case '}', ']':
			depth--
			if depth == 0 {
				return j + 1, true
			}
		}
	}
	return 0, false
}

func normalize(value any, s string) ([]Record, error) {
	switch v := value.(type) {
	case map[string]any:
		if qs, ok := v["questions"].([]any); ok {
			return qs, nil
		}
		if hasKeys(v, "qtype", "question", "answer") {
			return []Record{v}, nil
		}
	case []any:
		return v, nil
	}
	return nil, newFormatError("unexpected JSON structure", s)
}

func hasKeys(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}
