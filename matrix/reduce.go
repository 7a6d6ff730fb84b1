// SPDX-License-Identifier: MIT

// Package matrix - row/column reductions behind shipment totals per
// facility and per warehouse.

package matrix

// RowSums returns s where s[i] = Σ_j m[i][j].
//
// Complexity: O(r*c) time, O(r) space.
func (m *Dense) RowSums() []float64 {
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		var s float64
		for _, v := range m.data[i*m.c : (i+1)*m.c] {
			s += v
		}
		out[i] = s
	}

	return out
}

// ColSums returns s where s[j] = Σ_i m[i][j].
//
// Complexity: O(r*c) time, O(c) space.
func (m *Dense) ColSums() []float64 {
	out := make([]float64, m.c)
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			out[j] += m.data[base+j]
		}
	}

	return out
}
