package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTopics(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"comma separated", "Algebra, Geometry", []string{"Algebra", "Geometry"}},
		{"trailing junk", "Algebra, Geometry\n", []string{"Algebra", "Geometry"}},
		{"newline separated", "Algebra\nGeometry", []string{"Algebra", "Geometry"}},
		{"single topic", "  Algebra  ", []string{"Algebra"}},
		{"empty", "", nil},
		{"only separators", " , ,, ", nil},
		// Comma wins when both delimiters appear; the newline stays inside
		// the piece. Long-standing behavior of the stored data format.
		{"mixed delimiters", "A, B\nC", []string{"A", "B\nC"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseTopics(tc.raw)
			if tc.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestJoinTopicsRoundTrip(t *testing.T) {
	// serialize(parse(s)) yields the canonical comma-joined form.
	assert.Equal(t, "Algebra, Geometry", JoinTopics(ParseTopics("Algebra, Geometry\n")))
	assert.Equal(t, "Algebra, Geometry", JoinTopics(ParseTopics("Algebra\nGeometry")))
	assert.Equal(t, "Algebra", JoinTopics(ParseTopics(" Algebra ")))
	assert.Equal(t, "", JoinTopics(ParseTopics("")))
}

func TestAddTopic(t *testing.T) {
	list := []string{"Fractions"}

	assert.Equal(t, []string{"Fractions"}, AddTopic(list, "   "))
	assert.Equal(t, []string{"Fractions", "Decimals"}, AddTopic(list, "  Decimals "))

	// The input list is never mutated.
	assert.Equal(t, []string{"Fractions"}, list)
}

func TestRemoveTopic(t *testing.T) {
	list := []string{"a", "b", "c"}

	assert.Equal(t, []string{"a", "c"}, RemoveTopic(list, 1))
	assert.Equal(t, []string{"b", "c"}, RemoveTopic(list, 0))
	assert.Equal(t, list, RemoveTopic(list, 3))
	assert.Equal(t, list, RemoveTopic(list, -1))
}

func TestUpdateTopic(t *testing.T) {
	list := []string{"a", "b"}

	assert.Equal(t, []string{"a", "z"}, UpdateTopic(list, 1, "z"))
	assert.Equal(t, list, UpdateTopic(list, 5, "z"))
	assert.Equal(t, []string{"a", "b"}, list)
}
