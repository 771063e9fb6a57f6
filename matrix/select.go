// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Gather a sub-block of a matrix by explicit row and column index lists
//     (pandas-style m.loc[rows, cols]); the basis of module aggregation.
//
// Contract:
//   - Index lists are 0-based, may repeat and may overlap.
//   - Empty row or column lists produce an empty selection, not an error.

package matrix

const (
	opSelect = "Select"
	opTotal  = "Total"
)

// Selection is a gathered sub-block: Values holds len(Rows)*len(Cols)
// entries in row-major order over the requested index lists.
type Selection struct {
	Rows   []int
	Cols   []int
	Values []float64
}

// Select gathers m[rows[a], cols[b]] for every (a, b), row-major.
// Any index outside the matrix bounds yields ErrOutOfRange.
//
// Complexity: O(len(rows)*len(cols)).
func Select(m Matrix, rows, cols []int) (Selection, error) {
	if err := ValidateNotNil(m); err != nil {
		return Selection{}, matrixErrorf(opSelect, err)
	}
	if err := ValidateIndices(rows, m.Rows()); err != nil {
		return Selection{}, matrixErrorf(opSelect, err)
	}
	if err := ValidateIndices(cols, m.Cols()); err != nil {
		return Selection{}, matrixErrorf(opSelect, err)
	}

	out := Selection{
		Rows:   append([]int(nil), rows...),
		Cols:   append([]int(nil), cols...),
		Values: make([]float64, 0, len(rows)*len(cols)),
	}
	if d, ok := m.(*Dense); ok {
		for _, i := range rows {
			base := i * d.c
			for _, j := range cols {
				out.Values = append(out.Values, d.data[base+j])
			}
		}
		return out, nil
	}

	for _, i := range rows {
		for _, j := range cols {
			v, err := m.At(i, j)
			if err != nil {
				return Selection{}, matrixErrorf(opSelect, err)
			}
			out.Values = append(out.Values, v)
		}
	}

	return out, nil
}

// Dense materializes the selection as a len(Rows)×len(Cols) matrix.
// Returns ErrInvalidDimensions for an empty selection.
func (s Selection) Dense() (*Dense, error) {
	d, err := NewDense(len(s.Rows), len(s.Cols))
	if err != nil {
		return nil, err
	}
	copy(d.data, s.Values)

	return d, nil
}

// Total returns the row-major sum of all entries of m.
func Total(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opTotal, err)
	}
	d, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opTotal, err)
	}
	var s float64
	for _, v := range d.data {
		s += v
	}

	return s, nil
}
