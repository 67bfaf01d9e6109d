package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splotbio/splot/pkg/errors"
)

func TestSet(t *testing.T) {
	s := NewSet()
	s.Add(Sequence{Label: "B", Bases: "ACGT"})
	s.Add(Sequence{Label: "A", Bases: "AC"})
	s.Add(Sequence{Label: "B", Bases: "ACGTACGT"})

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 8, s.MaxLength())
	assert.Equal(t, []string{"B", "A"}, s.Labels())
	assert.Equal(t, []string{"ACGT", "ACGTACGT"}, s.Partition("B"))
	assert.Equal(t, map[string]int{"A": 1, "B": 2}, s.Counts())
	assert.Equal(t, []Sequence{
		{"B", "ACGT"}, {"B", "ACGTACGT"}, {"A", "AC"},
	}, s.All())
}

func TestFromMap(t *testing.T) {
	s := FromMap(map[string][]string{"B": {"G"}, "A": {"CC", "T"}})
	assert.Equal(t, []string{"A", "B"}, s.Labels())
	assert.Equal(t, 2, s.MaxLength())
	assert.Equal(t, 3, s.Len())
}

func TestEmptySet(t *testing.T) {
	s := NewSet()
	assert.Zero(t, s.Len())
	assert.Zero(t, s.MaxLength())
	assert.Empty(t, s.Labels())
}

func TestBasesChecker(t *testing.T) {
	tests := []struct {
		bases string
		ok    bool
	}{
		{"ACGT", true},
		{"acgt", true},
		{"AC00", true},
		{"0", true},
		{"", false},
		{"ACGN", false},
		{"AC GT", false},
		{"ACGU", false},
	}

	var c BasesChecker
	for _, tt := range tests {
		err := c.Check(Sequence{Label: "A", Bases: tt.bases})
		if tt.ok {
			assert.NoError(t, err, tt.bases)
			continue
		}
		var se *errors.InvalidSequenceError
		require.True(t, errors.As(err, &se), tt.bases)
		assert.Equal(t, tt.bases, se.Sequence)
	}
}

func TestCheckAll(t *testing.T) {
	s := FromMap(map[string][]string{"A": {"ACGT", "XX"}, "B": {"N"}})

	err := CheckAll(s, BasesChecker{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSequence))
	assert.Len(t, errors.Problems(err), 2)

	assert.NoError(t, CheckAll(s, nil))
	assert.NoError(t, CheckAll(s, CheckerFunc(func(Sequence) error { return nil })))
}
