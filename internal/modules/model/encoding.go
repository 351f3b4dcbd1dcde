// README: Categorical one-hot vocabularies and min-max normalization, both frozen at training time.
package model

import "sort"

// Vocabulary is the category set observed at training time, sorted for
// a stable column order. Unseen values encode to the all-zero vector:
// that zero row is the reserved "unknown" bucket, never an error.
type Vocabulary struct {
	Values []string
}

func BuildVocabulary(values []string) Vocabulary {
	seen := make(map[string]bool, len(values))
	var uniq []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			uniq = append(uniq, v)
		}
	}
	sort.Strings(uniq)
	return Vocabulary{Values: uniq}
}

func (v Vocabulary) Size() int {
	return len(v.Values)
}

// AppendOneHot appends the encoding of value to dst.
func (v Vocabulary) AppendOneHot(dst []float64, value string) []float64 {
	start := len(dst)
	for range v.Values {
		dst = append(dst, 0)
	}
	for i, known := range v.Values {
		if known == value {
			dst[start+i] = 1
			break
		}
	}
	return dst
}

// MinMax holds per-column normalization bounds captured on the numeric
// feature block during training; inference reapplies them verbatim.
type MinMax struct {
	Min []float64
	Max []float64
}

func FitMinMax(rows [][]float64) *MinMax {
	if len(rows) == 0 {
		return &MinMax{}
	}
	width := len(rows[0])
	m := &MinMax{
		Min: make([]float64, width),
		Max: make([]float64, width),
	}
	copy(m.Min, rows[0])
	copy(m.Max, rows[0])
	for _, row := range rows[1:] {
		for i, x := range row {
			if x < m.Min[i] {
				m.Min[i] = x
			}
			if x > m.Max[i] {
				m.Max[i] = x
			}
		}
	}
	return m
}

// Transform scales row into [0,1] per column. A constant column maps
// to zero; out-of-range inference values extrapolate linearly rather
// than clamp, keeping monotonicity intact.
func (m *MinMax) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for i, x := range row {
		span := m.Max[i] - m.Min[i]
		if span == 0 {
			out[i] = 0
			continue
		}
		out[i] = (x - m.Min[i]) / span
	}
	return out
}
