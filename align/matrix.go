package align

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// A Cell is one entry of a dissimilarity matrix: either a finite
// non-negative RMSD, or a marker that no valid chain correspondence was
// found between the two structures.
type Cell struct {
	RMSD        float64
	Unalignable bool
}

// A Matrix is a square, symmetric dissimilarity matrix over a fixed,
// ordered set of structure names. The diagonal is identically zero and is
// never computed. Once built, a matrix is treated as immutable; derived
// forms (see Neutralized) are always copies.
type Matrix struct {
	Names []string
	Cells [][]Cell
}

// NewMatrix creates a zero matrix over the given names, in the given
// order.
func NewMatrix(names []string) *Matrix {
	m := &Matrix{
		Names: append([]string(nil), names...),
		Cells: make([][]Cell, len(names)),
	}
	for i := range m.Cells {
		m.Cells[i] = make([]Cell, len(names))
	}
	return m
}

// Len returns the number of structures the matrix is indexed by.
func (m *Matrix) Len() int {
	return len(m.Names)
}

// At returns the cell for the pair (i, j).
func (m *Matrix) At(i, j int) Cell {
	return m.Cells[i][j]
}

// Set stores a cell in both symmetric positions. Setting a diagonal entry
// is a programming error and panics.
func (m *Matrix) Set(i, j int, c Cell) {
	if i == j {
		panic("Diagonal entries of a dissimilarity matrix are fixed at 0.")
	}
	m.Cells[i][j] = c
	m.Cells[j][i] = c
}

// MaxFinite returns the largest finite (alignable) entry of the matrix, or
// 0 if there is none.
func (m *Matrix) MaxFinite() float64 {
	var finite []float64
	for i := 0; i < m.Len(); i++ {
		for j := i + 1; j < m.Len(); j++ {
			if !m.Cells[i][j].Unalignable {
				finite = append(finite, m.Cells[i][j].RMSD)
			}
		}
	}
	if len(finite) == 0 {
		return 0
	}
	return floats.Max(finite)
}

// A NeutralizePolicy chooses the finite value that stands in for
// unalignable pairs when a matrix is handed to a numeric routine that
// cannot represent them. The right choice is domain dependent, so it is
// supplied by the caller rather than baked in.
type NeutralizePolicy func(*Matrix) float64

// TwiceMaxFinite is the conventional neutralization policy: unalignable
// pairs are pushed to twice the largest genuine entry, i.e. "maximally
// dissimilar". If the matrix has no finite off-diagonal entry at all, the
// stand-in value is 1.
func TwiceMaxFinite(m *Matrix) float64 {
	if max := m.MaxFinite(); max > 0 {
		return 2 * max
	}
	return 1
}

// Neutralized returns a dense copy of the matrix in which every
// unalignable entry has been replaced by the policy's stand-in value. The
// original matrix is not modified. The policy is only consulted if the
// matrix actually contains unalignable entries.
func (m *Matrix) Neutralized(policy NeutralizePolicy) [][]float64 {
	standIn := 0.0
	picked := false

	dense := make([][]float64, m.Len())
	for i := range dense {
		dense[i] = make([]float64, m.Len())
		for j := range dense[i] {
			cell := m.Cells[i][j]
			if i != j && cell.Unalignable {
				if !picked {
					standIn = policy(m)
					picked = true
				}
				dense[i][j] = standIn
			} else {
				dense[i][j] = cell.RMSD
			}
		}
	}
	return dense
}

// WriteCSV writes the matrix as CSV: a header row of structure names, then
// one row per structure with its name in the first column. Unalignable
// entries are written as "NaN", matching the convention of numeric tools
// downstream.
func (m *Matrix) WriteCSV(w io.Writer) error {
	out := csv.NewWriter(w)
	if err := out.Write(append([]string{""}, m.Names...)); err != nil {
		return err
	}
	record := make([]string, m.Len()+1)
	for i := 0; i < m.Len(); i++ {
		record[0] = m.Names[i]
		for j := 0; j < m.Len(); j++ {
			cell := m.Cells[i][j]
			if i != j && cell.Unalignable {
				record[j+1] = "NaN"
			} else {
				record[j+1] = strconv.FormatFloat(cell.RMSD, 'g', -1, 64)
			}
		}
		if err := out.Write(record); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

// ReadCSV reads a matrix written by WriteCSV. The matrix must be square
// and symmetric; asymmetric input is rejected.
func ReadCSV(r io.Reader) (*Matrix, error) {
	in := csv.NewReader(r)
	records, err := in.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dissimilarity CSV is empty")
	}

	names := records[0][1:]
	if len(records)-1 != len(names) {
		return nil, fmt.Errorf("dissimilarity CSV is not square: "+
			"%d names but %d rows", len(names), len(records)-1)
	}
	m := NewMatrix(names)
	for i, record := range records[1:] {
		if len(record) != len(names)+1 {
			return nil, fmt.Errorf("row %d has %d columns; expected %d",
				i+1, len(record), len(names)+1)
		}
		if record[0] != names[i] {
			return nil, fmt.Errorf("row %d is named '%s', but column %d "+
				"is named '%s'", i+1, record[0], i+1, names[i])
		}
		for j, field := range record[1:] {
			if field == "NaN" {
				m.Cells[i][j] = Cell{Unalignable: true}
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("bad entry at (%s, %s): %s",
					names[i], names[j], err)
			}
			m.Cells[i][j] = Cell{RMSD: v}
		}
	}
	for i := 0; i < m.Len(); i++ {
		if m.Cells[i][i].Unalignable || m.Cells[i][i].RMSD != 0 {
			return nil, fmt.Errorf("diagonal entry for '%s' is not 0",
				m.Names[i])
		}
		for j := i + 1; j < m.Len(); j++ {
			if m.Cells[i][j] != m.Cells[j][i] {
				return nil, fmt.Errorf("matrix is asymmetric at (%s, %s)",
					m.Names[i], m.Names[j])
			}
		}
	}
	return m, nil
}
