package align

import (
	"github.com/ulupo/JClinic/pdb"
	"github.com/ulupo/JClinic/seq"
)

// A ChainMatch is a residue correspondence found between a chain of one
// structure and a chain of another. Ref and Mob hold the alpha-carbons of
// the matched residues from each side, in alignment order, and always have
// equal length.
type ChainMatch struct {
	Ref, Mob []pdb.Coords

	// SeqIdentity is the fraction of matched residue pairs that are the
	// same amino acid. SeqOverlap is the fraction of the shorter chain's
	// residues that were matched at all.
	SeqIdentity float64
	SeqOverlap  float64
}

// Len returns the number of matched residue pairs.
func (m ChainMatch) Len() int {
	return len(m.Ref)
}

// MatchChains searches for residue correspondences between the chains of
// two structures. Every chain of 'a' is compared against every chain of
// 'b', in enumeration order, by a global sequence alignment of their
// alpha-carbon sequences; aligned columns with a residue on both sides
// become matched atom pairs. A correspondence is kept only if its sequence
// identity and overlap reach the given thresholds (fractions in [0, 1]).
//
// The result order is deterministic for fixed inputs. A nil or empty
// result means the structures are unalignable at these thresholds.
func MatchChains(a, b Structure, minIdentity, minOverlap float64) []ChainMatch {
	var matches []ChainMatch
	for _, ca := range a.Chains() {
		for _, cb := range b.Chains() {
			if m, ok := matchChain(ca, cb, minIdentity, minOverlap); ok {
				matches = append(matches, m)
			}
		}
	}
	return matches
}

func matchChain(ca, cb ChainView, minIdentity, minOverlap float64) (ChainMatch, bool) {
	sa, sb := ca.CaSequence(), cb.CaSequence()
	if len(sa) == 0 || len(sb) == 0 {
		return ChainMatch{}, false
	}
	aligned := seq.NeedlemanWunsch(sa, sb)

	atomsA, atomsB := ca.CaAtoms(), cb.CaAtoms()
	match := ChainMatch{}
	identical := 0

	// Walk the alignment, tracking the residue index on each side so that
	// matched columns can be mapped back to their alpha-carbons.
	ia, ib := 0, 0
	for k := 0; k < aligned.Len(); k++ {
		ra, rb := aligned.A[k], aligned.B[k]
		if ra != seq.Gap && rb != seq.Gap {
			match.Ref = append(match.Ref, atomsA[ia])
			match.Mob = append(match.Mob, atomsB[ib])
			if ra == rb {
				identical++
			}
		}
		if ra != seq.Gap {
			ia++
		}
		if rb != seq.Gap {
			ib++
		}
	}

	if match.Len() == 0 {
		return ChainMatch{}, false
	}
	match.SeqIdentity = float64(identical) / float64(match.Len())
	match.SeqOverlap = float64(match.Len()) / float64(min(len(sa), len(sb)))
	if match.SeqIdentity < minIdentity || match.SeqOverlap < minOverlap {
		return ChainMatch{}, false
	}
	return match, true
}

// combineMatches concatenates the matched atom subsets of every
// correspondence, in discovery order, into two parallel atom sequences
// ready for superposition.
func combineMatches(matches []ChainMatch) (ref, mob []pdb.Coords) {
	n := 0
	for _, m := range matches {
		n += m.Len()
	}
	ref = make([]pdb.Coords, 0, n)
	mob = make([]pdb.Coords, 0, n)
	for _, m := range matches {
		ref = append(ref, m.Ref...)
		mob = append(mob, m.Mob...)
	}
	return ref, mob
}
