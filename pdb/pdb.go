package pdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
)

// AminoThreeToOne is a map from three letter amino acids to their
// corresponding single letter representation.
var AminoThreeToOne = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O',
}

// AminoOneToThree is the reverse of AminoThreeToOne. It is created in
// this package's 'init' function.
var AminoOneToThree = map[byte]string{}

func init() {
	for k, v := range AminoThreeToOne {
		AminoOneToThree[v] = k
	}
}

// Coords is a triple of (x, y, z) atomic coordinates in Angstroms.
type Coords [3]float64

// Atom is a single alpha-carbon ATOM record: its residue (as a one letter
// amino acid), the residue sequence number from the PDB file, and its
// coordinates.
type Atom struct {
	Residue    byte
	ResidueInd int
	Coords     Coords
}

// Atoms names a list of atoms for convenient conversion to raw coordinates.
type Atoms []Atom

// Coords returns the bare coordinates of every atom, in order.
func (as Atoms) Coords() []Coords {
	cs := make([]Coords, len(as))
	for i, a := range as {
		cs[i] = a.Coords
	}
	return cs
}

// Chain represents a protein chain or subunit in a PDB file. Each chain has
// its own identifier and the alpha-carbon atoms of its residues, in file
// order.
type Chain struct {
	Ident   byte
	CaAtoms Atoms
}

// Sequence returns the one-letter amino acid sequence of the chain, with
// exactly one letter per alpha-carbon atom.
func (c *Chain) Sequence() []byte {
	s := make([]byte, len(c.CaAtoms))
	for i, a := range c.CaAtoms {
		s[i] = a.Residue
	}
	return s
}

// String returns a FASTA-like formatted string of this chain.
func (c *Chain) String() string {
	return fmt.Sprintf("> Chain %c :: length %d\n%s",
		c.Ident, len(c.CaAtoms), string(c.Sequence()))
}

// Entry represents all information read from a particular PDB file that is
// needed for structural comparison: the chains and their alpha-carbon
// coordinates.
//
// Chains are kept in the order in which they first appear in the file, so
// that every traversal of an entry is reproducible.
type Entry struct {
	Path   string
	Chains []*Chain
}

// New creates a new PDB Entry from a file. If the file cannot be read, or
// there is an error parsing the PDB file, an error is returned.
//
// If the file name ends with ".gz", gzip decompression will be used.
func New(fileName string) (*Entry, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fileName) == ".gz" {
		if reader, err = gzip.NewReader(f); err != nil {
			return nil, err
		}
	}
	return Read(reader, fileName)
}

// Read parses PDB formatted text from the given reader. Only alpha-carbon
// ATOM records are retained; everything else in the file is ignored.
func Read(reader io.Reader, fileName string) (*Entry, error) {
	entry := &Entry{
		Path:   fileName,
		Chains: make([]*Chain, 0, 2),
	}

	breader := bufio.NewReaderSize(reader, 1000)
	for {
		// We ignore 'isPrefix' here, since we never care about lines longer
		// than 1000 characters, which is the size of our buffer.
		line, _, err := breader.ReadLine()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if len(line) < 54 {
			continue
		}
		if strings.TrimSpace(string(line[0:6])) == "ATOM" {
			if err := entry.parseAtom(line); err != nil {
				return nil, fmt.Errorf("Error parsing ATOM record in '%s': %s",
					fileName, err)
			}
		}
	}
	return entry, nil
}

// Name returns the structure name of the entry, which is its file name
// without directories or extensions. (A trailing ".gz" is stripped before
// the format extension.)
func (e *Entry) Name() string {
	name := path.Base(e.Path)
	if strings.HasSuffix(name, ".gz") {
		name = name[:len(name)-3]
	}
	if ext := path.Ext(name); len(ext) > 0 {
		name = name[:len(name)-len(ext)]
	}
	return name
}

// String returns a list of all chains and their sequences.
func (e *Entry) String() string {
	lines := make([]string, 0, len(e.Chains))
	for _, chain := range e.Chains {
		lines = append(lines, chain.String())
	}
	return strings.Join(lines, "\n")
}

// Chain returns the chain with the given identifier, or nil if the entry
// has no such chain.
func (e *Entry) Chain(ident byte) *Chain {
	for _, chain := range e.Chains {
		if chain.Ident == ident {
			return chain
		}
	}
	return nil
}

// Copy returns a deep copy of the entry. Modifying the copy never mutates
// the original.
func (e *Entry) Copy() *Entry {
	chains := make([]*Chain, len(e.Chains))
	for i, chain := range e.Chains {
		atoms := make(Atoms, len(chain.CaAtoms))
		copy(atoms, chain.CaAtoms)
		chains[i] = &Chain{Ident: chain.Ident, CaAtoms: atoms}
	}
	return &Entry{Path: e.Path, Chains: chains}
}

// Merged returns a deep copy of the entry in which every chain has been
// relabeled to 'label' and concatenated, in chain order, into a single
// chain. The original entry is left untouched.
//
// Merging makes cross-chain correspondences visible to chain matching,
// which matters for homo-oligomeric complexes where the correct chain
// pairing is not known ahead of time.
func (e *Entry) Merged(label byte) *Entry {
	atoms := make(Atoms, 0, e.NumResidues())
	for _, chain := range e.Chains {
		atoms = append(atoms, chain.CaAtoms...)
	}
	return &Entry{
		Path:   e.Path,
		Chains: []*Chain{{Ident: label, CaAtoms: atoms}},
	}
}

// NumResidues returns the total number of residues with alpha-carbon atoms
// across all chains.
func (e *Entry) NumResidues() int {
	n := 0
	for _, chain := range e.Chains {
		n += len(chain.CaAtoms)
	}
	return n
}

// getOrMakeChain looks for a chain corresponding to the chain identifier.
// If one doesn't exist, it is created and appended in encounter order.
func (e *Entry) getOrMakeChain(ident byte) *Chain {
	if chain := e.Chain(ident); chain != nil {
		return chain
	}
	chain := &Chain{
		Ident:   ident,
		CaAtoms: make(Atoms, 0, 30),
	}
	e.Chains = append(e.Chains, chain)
	return chain
}

// parseAtom loads an alpha-carbon ATOM record. Records for other atoms, for
// non amino acid residues, or for alternate locations other than the first
// are ignored.
func (e *Entry) parseAtom(line []byte) error {
	// The atom name is in columns 12-15, the alternate location indicator
	// in column 16 and the chain identifier in column 21.
	if strings.TrimSpace(string(line[12:16])) != "CA" {
		return nil
	}
	if altLoc := line[16]; altLoc != ' ' && altLoc != 'A' {
		return nil
	}

	// The three letter residue name is in columns 17-19. Anything that isn't
	// a known amino acid is skipped (waters, ligands, modified residues).
	residue := strings.TrimSpace(string(line[17:20]))
	single, ok := AminoThreeToOne[residue]
	if !ok {
		return nil
	}

	snum := strings.TrimSpace(string(line[22:26]))
	num, err := strconv.ParseInt(snum, 10, 32)
	if err != nil {
		return fmt.Errorf("could not parse residue number '%s'", snum)
	}

	var coords Coords
	for i := 0; i < 3; i++ {
		field := strings.TrimSpace(string(line[30+8*i : 38+8*i]))
		if coords[i], err = strconv.ParseFloat(field, 64); err != nil {
			return fmt.Errorf("could not parse coordinate '%s'", field)
		}
	}

	chain := e.getOrMakeChain(line[21])
	chain.CaAtoms = append(chain.CaAtoms, Atom{
		Residue:    single,
		ResidueInd: int(num),
		Coords:     coords,
	})
	return nil
}
