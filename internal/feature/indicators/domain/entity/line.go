package entity

import (
	"bytes"
	"math"
	"strconv"
)

// Line is a nullable numeric series aligned index-for-index with a PriceSeries.
// NaN marks a null entry: not enough history at or before that index, or a
// degenerate window (zero range) that has no defined value.
type Line []float64

// NewNullLine returns a line of length n with every entry null.
func NewNullLine(n int) Line {
	l := make(Line, n)
	for i := range l {
		l[i] = math.NaN()
	}
	return l
}

// At returns the value at i and whether it is non-null.
func (l Line) At(i int) (float64, bool) {
	v := l[i]
	return v, !math.IsNaN(v)
}

// IsNull reports whether the entry at i is null.
func (l Line) IsNull(i int) bool { return math.IsNaN(l[i]) }

// FirstValid returns the index of the first non-null entry, or -1.
func (l Line) FirstValid() int {
	for i, v := range l {
		if !math.IsNaN(v) {
			return i
		}
	}
	return -1
}

// Clone returns an independent copy of the line.
func (l Line) Clone() Line {
	if l == nil {
		return nil
	}
	cp := make(Line, len(l))
	copy(cp, l)
	return cp
}

// MarshalJSON writes null entries as JSON null.
func (l Line) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
