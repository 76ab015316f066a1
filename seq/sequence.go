package seq

// A Sequence corresponds to any kind of biological sequence: DNA, RNA,
// amino acid, etc. Here it is always an amino acid sequence derived from
// the alpha-carbon atoms of a structure.
type Sequence struct {
	Name     string
	Residues []Residue
}

// A Residue corresponds to a single entry in a sequence.
type Residue byte

// Gap is the residue used to represent an insertion or deletion in an
// alignment.
const Gap Residue = '-'

// Bytes converts a string of one letter residues to a residue slice.
func Bytes(s string) []Residue {
	rs := make([]Residue, len(s))
	for i := 0; i < len(s); i++ {
		rs[i] = Residue(s[i])
	}
	return rs
}

// Copy returns a deep copy of the sequence.
func (s Sequence) Copy() Sequence {
	residues := make([]Residue, len(s.Residues))
	copy(residues, s.Residues)
	return Sequence{
		Name:     s.Name,
		Residues: residues,
	}
}

// Len returns the number of residues in the sequence.
func (s Sequence) Len() int {
	return len(s.Residues)
}

// String returns the residues as a plain string.
func (s Sequence) String() string {
	bs := make([]byte, len(s.Residues))
	for i, r := range s.Residues {
		bs[i] = byte(r)
	}
	return string(bs)
}
