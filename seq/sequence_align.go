package seq

// An Alignment is a pair of equal length gapped residue sequences.
type Alignment struct {
	A, B []Residue
}

// Len returns the number of columns in the alignment.
func (a Alignment) Len() int {
	return len(a.A)
}

// NeedlemanWunsch computes a global alignment of A and B using BLOSUM62
// scoring with a linear gap penalty.
//
// The algorithm is the textbook dynamic program: fill an
// (len(A)+1)x(len(B)+1) score table, then trace an optimal path back from
// the bottom-right corner. When several paths are optimal, the diagonal
// move is preferred, then the move consuming a residue of A. This makes
// the alignment deterministic for fixed inputs.
func NeedlemanWunsch(A, B []Residue) Alignment {
	gapPenalty := Blosum62('A', Gap)

	// rows correspond to residues in A, cols to residues in B
	table := make([][]int, len(A)+1)
	for i := range table {
		table[i] = make([]int, len(B)+1)
		table[i][0] = gapPenalty * i
	}
	for j := 0; j <= len(B); j++ {
		table[0][j] = gapPenalty * j
	}
	for i := 1; i <= len(A); i++ {
		for j := 1; j <= len(B); j++ {
			table[i][j] = max(
				table[i-1][j-1]+Blosum62(A[i-1], B[j-1]),
				table[i-1][j]+gapPenalty,
				table[i][j-1]+gapPenalty)
		}
	}

	aligned := Alignment{
		A: make([]Residue, 0, max(len(A), len(B))),
		B: make([]Residue, 0, max(len(A), len(B))),
	}
	i, j := len(A), len(B)
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 &&
			table[i][j] == table[i-1][j-1]+Blosum62(A[i-1], B[j-1]):
			aligned.A = append(aligned.A, A[i-1])
			aligned.B = append(aligned.B, B[j-1])
			i--
			j--
		case i > 0 && table[i][j] == table[i-1][j]+gapPenalty:
			aligned.A = append(aligned.A, A[i-1])
			aligned.B = append(aligned.B, Gap)
			i--
		default:
			aligned.A = append(aligned.A, Gap)
			aligned.B = append(aligned.B, B[j-1])
			j--
		}
	}

	// The trace back builds the alignment in reverse.
	for i, j := 0, len(aligned.A)-1; i < j; i, j = i+1, j-1 {
		aligned.A[i], aligned.A[j] = aligned.A[j], aligned.A[i]
		aligned.B[i], aligned.B[j] = aligned.B[j], aligned.B[i]
	}
	return aligned
}
