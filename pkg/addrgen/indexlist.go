package addrgen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// IndexRange is an inclusive range of derivation indexes.
type IndexRange struct {
	Start uint32
	End   uint32
}

func (r IndexRange) String() string {
	if r.Start == r.End {
		return strconv.FormatUint(uint64(r.Start), 10)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Len returns the number of indexes of the range.
func (r IndexRange) Len() int {
	return int(r.End-r.Start) + 1
}

// ParseIndexList parses a comma separated list of indexes and ranges like
// "1-5,8,10-12". The result is sorted, with overlapping and adjacent ranges
// merged.
func ParseIndexList(s string) ([]IndexRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty index list", ErrInvalidRange)
	}

	ranges := make([]IndexRange, 0)
	for _, item := range strings.Split(s, ",") {
		r, err := parseIndexRange(strings.TrimSpace(item))
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}

	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})

	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if uint64(r.Start) <= uint64(last.End)+1 {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged, nil
}

// FormatIndexList is the inverse of ParseIndexList.
func FormatIndexList(ranges []IndexRange) string {
	items := make([]string, 0, len(ranges))
	for _, r := range ranges {
		items = append(items, r.String())
	}
	return strings.Join(items, ",")
}

func parseIndexRange(item string) (IndexRange, error) {
	bounds := strings.SplitN(item, "-", 2)
	start, err := parseIndex(bounds[0])
	if err != nil {
		return IndexRange{}, err
	}
	end := start
	if len(bounds) == 2 {
		if end, err = parseIndex(bounds[1]); err != nil {
			return IndexRange{}, err
		}
	}
	if end < start {
		return IndexRange{}, fmt.Errorf("%w: %s", ErrInvalidRange, item)
	}
	return IndexRange{start, end}, nil
}

func parseIndex(s string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: bad index %q", ErrInvalidRange, s)
	}
	return uint32(n), nil
}
