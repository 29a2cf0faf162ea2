package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// UnparseableResponseError is returned when no JSON value can be recovered
// from the model output. Raw carries the output verbatim for diagnostics.
type UnparseableResponseError struct {
	Raw string
	Err error
}

func (e *UnparseableResponseError) Error() string {
	return fmt.Sprintf("unparseable model response: %v", e.Err)
}

func (e *UnparseableResponseError) Unwrap() error {
	return e.Err
}

// Extract recovers a JSON value from arbitrary model output.
//
// The first balanced [...] span that parses as an array holding at least one
// object wins, so prose before or after the array, bracketed footnotes such as
// "[1]", and a second array later in the text are ignored. When no span holds
// an object, the first span that parses at all is used, which keeps "[]" as a
// valid empty answer. When no span parses, the whole text is parsed after
// removing Markdown code fences. Numbers are kept as json.Number so amounts are
// not rounded through float64.
func Extract(raw string) (any, error) {
	var fallback any
	found := false

	for start := strings.IndexByte(raw, '['); start >= 0; {
		if end := matchingBracket(raw, start); end > start {
			if value, err := decodeJSON(raw[start : end+1]); err == nil {
				if holdsObject(value) {
					return value, nil
				}
				if !found {
					fallback, found = value, true
				}
			}
		}

		next := strings.IndexByte(raw[start+1:], '[')
		if next < 0 {
			break
		}
		start += next + 1
	}
	if found {
		return fallback, nil
	}

	value, err := decodeJSON(stripCodeFences(raw))
	if err != nil {
		return nil, &UnparseableResponseError{Raw: raw, Err: err}
	}
	return value, nil
}

func holdsObject(value any) bool {
	list, ok := value.([]any)
	if !ok {
		return false
	}
	for _, entry := range list {
		if _, ok := entry.(map[string]any); ok {
			return true
		}
	}
	return false
}

// matchingBracket returns the index of the ']' closing the '[' at start,
// skipping brackets inside JSON strings, or -1.
func matchingBracket(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func decodeJSON(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return value, nil
}

func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line, with or without a language tag.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}
