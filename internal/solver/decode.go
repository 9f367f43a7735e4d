package solver

import (
	"encoding/json"
	"fmt"
	"strings"
)

// wireResponse mirrors Response with a pointer so a missing "feasible"
// key can be told apart from false.
type wireResponse struct {
	Feasible    *bool        `json:"feasible"`
	Assignments []Pair       `json:"assignments"`
	Bottlenecks []Bottleneck `json:"bottlenecks"`
}

// DecodeResponse parses raw solver stdout. Bytes before the first '{' and
// after the matching '}' are ignored.
func DecodeResponse(raw []byte) (*Response, error) {
	block := extractJSONBlock(string(raw))
	if block == "" {
		return nil, fmt.Errorf("%w: no JSON object in output", ErrProtocol)
	}

	var w wireResponse
	if err := json.Unmarshal([]byte(block), &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	if w.Feasible == nil {
		return nil, fmt.Errorf("%w: missing \"feasible\"", ErrProtocol)
	}
	return &Response{
		Feasible:    *w.Feasible,
		Assignments: w.Assignments,
		Bottlenecks: w.Bottlenecks,
	}, nil
}

// CheckResponse verifies that a feasible response only speaks about days
// and doctors that were part of the request.
func CheckResponse(req Request, resp *Response) error {
	if resp == nil {
		return fmt.Errorf("%w: empty response", ErrProtocol)
	}
	if !resp.Feasible {
		return nil
	}
	days := make(map[string]bool, len(req.Days))
	for _, d := range req.Days {
		days[d] = true
	}
	doctors := make(map[string]bool, len(req.Doctors))
	for _, d := range req.Doctors {
		doctors[d] = true
	}
	seen := make(map[Pair]bool, len(resp.Assignments))
	for _, p := range resp.Assignments {
		if !days[p.Day] {
			return fmt.Errorf("%w: unknown day %q", ErrProtocol, p.Day)
		}
		if !doctors[p.Doctor] {
			return fmt.Errorf("%w: unknown doctor %q", ErrProtocol, p.Doctor)
		}
		if seen[p] {
			return fmt.Errorf("%w: duplicate assignment %s/%s", ErrProtocol, p.Day, p.Doctor)
		}
		seen[p] = true
	}
	return nil
}

// extractJSONBlock finds the first balanced { ... } block in the text.
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}

		if c == '\\' && inString {
			escaped = true
			continue
		}

		if c == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
