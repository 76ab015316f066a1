package pdb

import (
	"strings"
	"testing"
)

// A tiny two-chain entry. Includes records that the parser must skip: a
// non-CA atom, an alternate location 'B' and a water.
var testPDB = `ATOM      1  N   MET A   1      10.000   5.000  -6.000  1.00  0.00           N
ATOM      2  CA  MET A   1      11.104   6.134  -6.504  1.00  0.00           C
ATOM      3  CA  GLY A   2      12.560   6.351  -2.943  1.00  0.00           C
ATOM      4  CA BGLY A   2      12.999   6.999  -2.999  1.00  0.00           C
ATOM      5  CA  LYS A   3      15.987   8.236  -1.912  1.00  0.00           C
ATOM      6  CA  ALA B   1       1.104   2.134   3.504  1.00  0.00           C
ATOM      7  CA  VAL B   2       3.560   3.351   5.943  1.00  0.00           C
ATOM      8  O   HOH B 101       0.000   0.000   0.000  1.00  0.00           O
`

func testEntry(t *testing.T) *Entry {
	entry, err := Read(strings.NewReader(testPDB), "testdata/1abc.pdb.gz")
	if err != nil {
		t.Fatalf("Could not parse test PDB: %s", err)
	}
	return entry
}

func TestReadChains(t *testing.T) {
	entry := testEntry(t)
	if len(entry.Chains) != 2 {
		t.Fatalf("Expected 2 chains but got %d.", len(entry.Chains))
	}
	if entry.Chains[0].Ident != 'A' || entry.Chains[1].Ident != 'B' {
		t.Fatalf("Chains out of file order: %c, %c.",
			entry.Chains[0].Ident, entry.Chains[1].Ident)
	}
	if s := string(entry.Chain('A').Sequence()); s != "MGK" {
		t.Fatalf("Chain A sequence is '%s', but should be 'MGK'.", s)
	}
	if s := string(entry.Chain('B').Sequence()); s != "AV" {
		t.Fatalf("Chain B sequence is '%s', but should be 'AV'.", s)
	}
	if n := entry.NumResidues(); n != 5 {
		t.Fatalf("Expected 5 residues but got %d.", n)
	}
}

func TestReadCoords(t *testing.T) {
	entry := testEntry(t)
	got := entry.Chain('A').CaAtoms[0].Coords
	want := Coords{11.104, 6.134, -6.504}
	if got != want {
		t.Fatalf("First CA of chain A is %v, but should be %v.", got, want)
	}
	if ind := entry.Chain('A').CaAtoms[2].ResidueInd; ind != 3 {
		t.Fatalf("Third CA of chain A has residue index %d, not 3.", ind)
	}
}

func TestName(t *testing.T) {
	entry := testEntry(t)
	if entry.Name() != "1abc" {
		t.Fatalf("Entry name is '%s', but should be '1abc'.", entry.Name())
	}
}

func TestMerged(t *testing.T) {
	entry := testEntry(t)
	merged := entry.Merged('X')

	if len(merged.Chains) != 1 || merged.Chains[0].Ident != 'X' {
		t.Fatalf("Merged entry should have a single chain 'X'.")
	}
	if s := string(merged.Chains[0].Sequence()); s != "MGKAV" {
		t.Fatalf("Merged sequence is '%s', but should be 'MGKAV'.", s)
	}

	// Merging is a deep copy: mutating it must not leak into the original.
	merged.Chains[0].CaAtoms[0].Coords = Coords{0, 0, 0}
	if entry.Chain('A').CaAtoms[0].Coords == (Coords{0, 0, 0}) {
		t.Fatalf("Merged entry shares atoms with the original.")
	}
	if len(entry.Chains) != 2 {
		t.Fatalf("Merging mutated the original entry.")
	}
}
