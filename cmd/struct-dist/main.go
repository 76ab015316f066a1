// struct-dist computes an all-versus-all structural dissimilarity matrix
// from a set of PDB files and writes it as CSV.
//
// Every unordered pair of structures is aligned: all chains of each
// structure are merged under one synthetic chain, chains are matched on
// their alpha-carbon sequences, and the matched atoms are superposed by an
// optimal rigid-body transformation. The post-alignment RMSD fills both
// symmetric matrix cells. Pairs with no acceptable chain correspondence
// are written as NaN.
//
// Structure names are the PDB file names without directory or extension,
// in command line order, and become the matrix row/column labels.
package main

import (
	"fmt"
	"os"

	"github.com/ulupo/JClinic/align"
	"github.com/ulupo/JClinic/cmd/util"
	"github.com/ulupo/JClinic/pdb"
)

func init() {
	util.FlagUse("cpu", "verbose", "seq-id", "seq-overlap")
	util.FlagParse("out-csv pdb-file [pdb-file ...]",
		"Computes the pairwise RMSD matrix of the given structures.")
	util.AssertLeastNArg(2)
}

func main() {
	outPath := util.Arg(0)
	pdbFiles := util.Args()[1:]

	names := make([]string, 0, len(pdbFiles))
	structures := make(map[string]align.Structure, len(pdbFiles))
	for _, fpath := range pdbFiles {
		entry, err := pdb.New(fpath)
		util.Assert(err, "Could not read PDB file '%s'", fpath)
		if entry.NumResidues() == 0 {
			util.Fatalf("PDB file '%s' has no alpha-carbon atoms.", fpath)
		}
		name := entry.Name()
		if _, ok := structures[name]; ok {
			util.Fatalf("Duplicate structure name '%s'.", name)
		}
		names = append(names, name)
		structures[name] = align.FromEntry(entry)
	}

	conf := align.DefaultConfig
	conf.MinSeqIdentity = util.FlagSeqIdentity
	conf.MinSeqOverlap = util.FlagSeqOverlap
	conf.NumWorkers = util.FlagCpu
	if util.FlagVerbose {
		conf.Verbose = os.Stderr
	}

	progress := util.NewProgress(len(names) * (len(names) - 1) / 2)
	conf.PairDone = func() { progress.JobDone(nil) }

	m, err := align.PairwiseMatrix(names, structures, conf)
	progress.Close()
	util.Assert(err, "Could not compute dissimilarity matrix")

	out := util.CreateFile(outPath)
	util.Assert(m.WriteCSV(out), "Could not write matrix to '%s'", outPath)
	util.Assert(out.Close(), "Could not write matrix to '%s'", outPath)

	unalignable := 0
	for i := 0; i < m.Len(); i++ {
		for j := i + 1; j < m.Len(); j++ {
			if m.At(i, j).Unalignable {
				unalignable++
			}
		}
	}
	if unalignable > 0 {
		fmt.Printf("%d of %d pairs were unalignable.\n",
			unalignable, m.Len()*(m.Len()-1)/2)
	}
}
