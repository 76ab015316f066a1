package align

import (
	"github.com/ulupo/JClinic/pdb"
	"github.com/ulupo/JClinic/seq"
)

// A Structure is the minimal view of a protein structure needed for
// pairwise alignment. Any concrete representation (parsed-file-backed or
// in-memory) can be aligned by implementing it.
type Structure interface {
	// Chains enumerates the chains of the structure in a stable order.
	Chains() []ChainView

	// Merged returns a deep copy of the structure with every chain
	// relabeled to the given synthetic label and concatenated into a
	// single chain. Implementations must not mutate the receiver.
	Merged(label byte) Structure
}

// A ChainView exposes one representative atom per residue of a chain: the
// alpha-carbon. CaSequence and CaAtoms are parallel, with exactly one
// entry per residue that has an alpha-carbon.
type ChainView interface {
	Ident() byte
	CaSequence() []seq.Residue
	CaAtoms() []pdb.Coords
}

// FromEntry wraps a parsed PDB entry so it can be aligned.
func FromEntry(e *pdb.Entry) Structure {
	return entryStructure{e}
}

type entryStructure struct {
	entry *pdb.Entry
}

func (s entryStructure) Chains() []ChainView {
	views := make([]ChainView, len(s.entry.Chains))
	for i, chain := range s.entry.Chains {
		views[i] = entryChain{chain}
	}
	return views
}

func (s entryStructure) Merged(label byte) Structure {
	return entryStructure{s.entry.Merged(label)}
}

type entryChain struct {
	chain *pdb.Chain
}

func (c entryChain) Ident() byte {
	return c.chain.Ident
}

func (c entryChain) CaSequence() []seq.Residue {
	rs := make([]seq.Residue, len(c.chain.CaAtoms))
	for i, a := range c.chain.CaAtoms {
		rs[i] = seq.Residue(a.Residue)
	}
	return rs
}

func (c entryChain) CaAtoms() []pdb.Coords {
	return c.chain.CaAtoms.Coords()
}
