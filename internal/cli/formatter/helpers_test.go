package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"Date", "Doctor"},
		[][]string{{"2025-12-24", StyleGreen.Render("Dr. Ana")}, {"2025-12-25"}},
	))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "Date        Doctor", lines[0])
	assert.Equal(t, "──────────  ───────", lines[1])
	assert.Equal(t, "2025-12-24  Dr. Ana", lines[2])
	assert.Equal(t, "2025-12-25  ", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "--", Timestamp(time.Time{}))
	loc := time.FixedZone("CET", 3600)
	assert.Equal(t, "2025-12-24 08:30", Timestamp(time.Date(2025, 12, 24, 9, 30, 0, 0, loc)))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f2a9c1e", ShortID("3f2a9c1e-8b7d-4c1a-9e0f-123456789abc"))
	assert.Equal(t, "plain", ShortID("plain"))
}

func TestKeyValues_SortedByKey(t *testing.T) {
	assert.Equal(t, "a=1 b=two", KeyValues(map[string]any{"b": "two", "a": 1}))
	assert.Empty(t, KeyValues(nil))
}

func TestCountsLine_OrdersByCountThenName(t *testing.T) {
	got := countsLine(map[string]int{"Dr. Carla": 1, "Dr. Ana": 2, "Dr. Bruno": 1})
	assert.Equal(t, "Dr. Ana (2), Dr. Bruno (1), Dr. Carla (1)", got)
}
