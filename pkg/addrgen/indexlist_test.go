package addrgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/keygen/pkg/addrgen"
)

func TestParseIndexList(t *testing.T) {
	tests := []struct {
		list      string
		expected  []addrgen.IndexRange
		formatted string
	}{
		{"1", []addrgen.IndexRange{{1, 1}}, "1"},
		{"1-5", []addrgen.IndexRange{{1, 5}}, "1-5"},
		{"1-5,8,10-12", []addrgen.IndexRange{{1, 5}, {8, 8}, {10, 12}}, "1-5,8,10-12"},
		{"10-12, 1-5 ,8", []addrgen.IndexRange{{1, 5}, {8, 8}, {10, 12}}, "1-5,8,10-12"},
		{"1-5,3-8", []addrgen.IndexRange{{1, 8}}, "1-8"},
		{"1-5,6,7-9", []addrgen.IndexRange{{1, 9}}, "1-9"},
		{"2,2,2", []addrgen.IndexRange{{2, 2}}, "2"},
		{"1-10,2-3", []addrgen.IndexRange{{1, 10}}, "1-10"},
		{"4294967295", []addrgen.IndexRange{{4294967295, 4294967295}}, "4294967295"},
	}

	for _, tt := range tests {
		ranges, err := addrgen.ParseIndexList(tt.list)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, ranges)
		assert.Equal(t, tt.formatted, addrgen.FormatIndexList(ranges))
	}
}

func TestFailingParseIndexList(t *testing.T) {
	tests := []string{
		"",
		"0",
		"0-3",
		"5-3",
		"a",
		"1,,2",
		"1-",
		"-1",
		"1-2-3",
		"4294967296",
	}

	for _, tt := range tests {
		ranges, err := addrgen.ParseIndexList(tt)
		require.Nil(t, ranges, tt)
		require.ErrorIs(t, err, addrgen.ErrInvalidRange, tt)
	}
}

func TestIndexRangeLen(t *testing.T) {
	assert.Equal(t, 1, addrgen.IndexRange{Start: 3, End: 3}.Len())
	assert.Equal(t, 10, addrgen.IndexRange{Start: 1, End: 10}.Len())
}
