// Package hexdump renders binary data as columns of hex groups, optionally
// prefixed by the byte offset of every line, and parses it back.
//
//	000000: 0001 0203 0405 0607 0809 0a0b 0c0d 0e0f
//	000010: 1011 12
package hexdump

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultColumns ...
	DefaultColumns = 8
	// DefaultGroupSize ...
	DefaultGroupSize = 2

	offsetWidth = 6
)

var (
	// ErrInvalidColumns ...
	ErrInvalidColumns = errors.New("number of columns must be positive")
	// ErrInvalidGroupSize ...
	ErrInvalidGroupSize = errors.New("group size must be positive")
	// ErrMalformedDump ...
	ErrMalformedDump = errors.New("malformed hexdump")
)

// Opts ...
type Opts struct {
	// Columns is the number of groups per line, defaults to DefaultColumns.
	Columns int
	// GroupSize is the number of bytes per group, defaults to DefaultGroupSize.
	GroupSize   int
	ShowOffsets bool
}

func (o *Opts) validate() error {
	if o.Columns < 0 {
		return ErrInvalidColumns
	}
	if o.GroupSize < 0 {
		return ErrInvalidGroupSize
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if o.GroupSize == 0 {
		o.GroupSize = DefaultGroupSize
	}
	return nil
}

// Encode returns the hexdump of data. Every line, the last one included, is
// terminated by a newline.
func Encode(data []byte, opts Opts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	lineSize := opts.Columns * opts.GroupSize
	sb := &strings.Builder{}
	for offset := 0; offset < len(data); offset += lineSize {
		if opts.ShowOffsets {
			fmt.Fprintf(sb, "%0*x: ", offsetWidth, offset)
		}

		end := min(offset+lineSize, len(data))
		for i := offset; i < end; i += opts.GroupSize {
			if i > offset {
				sb.WriteByte(' ')
			}
			sb.WriteString(hex.EncodeToString(data[i:min(i+opts.GroupSize, end)]))
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

type dumpLine struct {
	num       int
	hasOffset bool
	offset    int
	groups    []string
}

// Decode parses a hexdump produced by Encode with any options. Blank lines
// and surrounding whitespace are ignored.
func Decode(text string) ([]byte, error) {
	lines, err := splitLines(text)
	if err != nil {
		return nil, err
	}
	if len(lines) <= 0 {
		return []byte{}, nil
	}

	groupWidth := len(lines[0].groups[0])
	columns := len(lines[0].groups)
	data := make([]byte, 0, len(lines)*columns*groupWidth/2)

	for i, line := range lines {
		isLastLine := i == len(lines)-1

		if line.hasOffset != lines[0].hasOffset {
			return nil, malformed(line.num, "mixed lines with and without offsets")
		}
		if line.hasOffset && line.offset != len(data) {
			return nil, malformed(line.num, fmt.Sprintf(
				"offset %x does not match position %x", line.offset, len(data),
			))
		}
		if len(line.groups) > columns || (!isLastLine && len(line.groups) < columns) {
			return nil, malformed(line.num, fmt.Sprintf(
				"expected %d columns, got %d", columns, len(line.groups),
			))
		}

		for j, group := range line.groups {
			isLastGroup := isLastLine && j == len(line.groups)-1
			if len(group) > groupWidth || (!isLastGroup && len(group) < groupWidth) {
				return nil, malformed(line.num, fmt.Sprintf(
					"group %q has inconsistent width", group,
				))
			}
			if len(group)%2 != 0 {
				return nil, malformed(line.num, fmt.Sprintf(
					"group %q has odd length", group,
				))
			}
			b, err := hex.DecodeString(group)
			if err != nil {
				return nil, malformed(line.num, err.Error())
			}
			data = append(data, b...)
		}
	}

	return data, nil
}

func splitLines(text string) ([]dumpLine, error) {
	lines := make([]dumpLine, 0)
	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		line := dumpLine{num: i + 1}
		body := raw
		if prefix, rest, ok := strings.Cut(raw, ":"); ok {
			offset, err := strconv.ParseUint(prefix, 16, 32)
			if err != nil {
				return nil, malformed(line.num, fmt.Sprintf("bad offset %q", prefix))
			}
			line.hasOffset = true
			line.offset = int(offset)
			body = rest
		}

		line.groups = strings.Fields(body)
		if len(line.groups) <= 0 {
			return nil, malformed(line.num, "no data")
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func malformed(line int, reason string) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedDump, line, reason)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
