package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		feasible bool
		pairs    int
		wantErr  bool
	}{
		{name: "clean", raw: `{"feasible":true,"assignments":[{"day":"2025-12-24","doctor":"A"}]}`, feasible: true, pairs: 1},
		{name: "leading noise", raw: "warming up...\n{\"feasible\":false,\"assignments\":[]}", feasible: false},
		{name: "trailing noise", raw: `{"feasible":true,"assignments":[]} done in 3ms`, feasible: true},
		{name: "brace in string", raw: `{"feasible":false,"assignments":[],"bottlenecks":[{"id":"x","kind":"day","reason":"cut {a,b}"}]}`, feasible: false},
		{name: "no object", raw: "panic: oops", wantErr: true},
		{name: "unterminated", raw: `{"feasible":true,"assignments":[`, wantErr: true},
		{name: "missing feasible", raw: `{"assignments":[]}`, wantErr: true},
		{name: "wrong type", raw: `{"feasible":"yes"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := DecodeResponse([]byte(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrProtocol)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.feasible, resp.Feasible)
			assert.Len(t, resp.Assignments, tt.pairs)
		})
	}
}

func TestCheckResponse(t *testing.T) {
	req := sampleRequest()

	ok := &Response{Feasible: true, Assignments: []Pair{{Day: "2025-12-24", Doctor: "Dr. Ana"}}}
	assert.NoError(t, CheckResponse(req, ok))

	badDay := &Response{Feasible: true, Assignments: []Pair{{Day: "2026-01-01", Doctor: "Dr. Ana"}}}
	assert.ErrorIs(t, CheckResponse(req, badDay), ErrProtocol)

	dup := &Response{Feasible: true, Assignments: []Pair{
		{Day: "2025-12-24", Doctor: "Dr. Ana"},
		{Day: "2025-12-24", Doctor: "Dr. Ana"},
	}}
	assert.ErrorIs(t, CheckResponse(req, dup), ErrProtocol)

	// Infeasible answers are not cross-checked.
	infeasible := &Response{Feasible: false, Assignments: []Pair{{Day: "nope", Doctor: "nobody"}}}
	assert.NoError(t, CheckResponse(req, infeasible))
}

func TestRequest_CapacityFor(t *testing.T) {
	req := sampleRequest()
	assert.Equal(t, 3, req.CapacityFor("Dr. Ana"))

	req.Capacities = map[string]int{"Dr. Ana": 1}
	assert.Equal(t, 1, req.CapacityFor("Dr. Ana"))
	assert.Equal(t, 3, req.CapacityFor("Dr. Bruno"))
}
