// Package pbm decodes binary PBM (P4) bitmaps, the format the display icons
// are stored in:
//
//	P4
//	# optional comment
//	<width> <height>
//	<packed 1-bit rows, MSB-first>
//
// Rows are packed most-significant-bit-first, each row padded to a whole
// byte.
package pbm

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	ErrFormat    = errors.New("pbm: not a P4 bitmap")
	ErrTruncated = errors.New("pbm: truncated pixel data")
)

// Image is a decoded monochrome bitmap.
type Image struct {
	Width  int
	Height int

	stride int
	pix    []byte
}

// At reports whether the pixel at (x, y) is set. Out-of-range coordinates
// are unset.
func (m *Image) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.pix[y*m.stride+x/8]&(0x80>>uint(x%8)) != 0
}

// Decode reads a P4 bitmap.
func Decode(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	line, rest, ok := cutLine(data)
	if !ok || string(line) != "P4" {
		return nil, ErrFormat
	}

	// Comment lines (if any) precede the dimensions.
	for {
		line, rest, ok = cutLine(rest)
		if !ok {
			return nil, ErrFormat
		}
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		break
	}

	width, height, err := parseDims(line)
	if err != nil {
		return nil, err
	}

	stride := (width + 7) / 8
	need := stride * height
	if len(rest) < need {
		return nil, ErrTruncated
	}

	return &Image{Width: width, Height: height, stride: stride, pix: rest[:need]}, nil
}

func cutLine(data []byte) (line, rest []byte, ok bool) {
	for i, b := range data {
		if b == '\n' {
			return data[:i], data[i+1:], true
		}
	}
	return nil, nil, false
}

func parseDims(line []byte) (width, height int, err error) {
	fields := make([]string, 0, 2)
	start := -1
	for i := 0; i <= len(line); i++ {
		if i < len(line) && line[i] != ' ' && line[i] != '\t' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			fields = append(fields, string(line[start:i]))
			start = -1
		}
	}
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("pbm: bad dimension line %q", line)
	}
	width, err = strconv.Atoi(fields[0])
	if err == nil {
		height, err = strconv.Atoi(fields[1])
	}
	if err != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("pbm: bad dimensions %q", line)
	}
	return width, height, nil
}
