// struct-split partitions a dataset of structures into training and
// validation subsets using a dissimilarity matrix produced by struct-dist.
//
// Unalignable (NaN) entries are first replaced with twice the largest
// finite RMSD in the matrix, pushing such pairs to "maximally dissimilar".
// The matrix is then clustered hierarchically under complete linkage, the
// tree is cut at the -cutoff distance, and whole clusters are assigned
// greedily so the training set approaches -train-frac of the dataset. A
// cluster is never split across the two sets, which is the whole point:
// near-duplicate structures must not leak between them.
package main

import (
	"fmt"

	"github.com/ulupo/JClinic/align"
	"github.com/ulupo/JClinic/cluster"
	"github.com/ulupo/JClinic/cmd/util"
)

func init() {
	util.FlagUse("verbose", "cutoff", "train-frac")
	util.FlagParse("dist-csv train-out validation-out",
		"Splits structures into train/validation sets without splitting\n"+
			"any structural cluster.")
	util.AssertNArg(3)
}

func main() {
	in := util.OpenFile(util.Arg(0))
	m, err := align.ReadCSV(in)
	util.Assert(err, "Could not read dissimilarity matrix '%s'", util.Arg(0))
	in.Close()

	dists := m.Neutralized(align.TwiceMaxFinite)
	clusters, err := cluster.Clusters(dists, util.FlagCutoff)
	util.Assert(err, "Could not cluster dissimilarity matrix")
	util.Verbosef("%d structures in %d clusters at cutoff %g.\n",
		m.Len(), len(clusters), util.FlagCutoff)

	split, err := cluster.Assign(clusters, util.FlagTrainFrac)
	util.Assert(err, "Could not assign clusters")

	// A cutoff larger than every pairwise distance forces the whole
	// dataset into one partition. That's a tuning problem, not a bug, but
	// it deserves a loud warning.
	if len(split.Train) == 0 || len(split.Validation) == 0 {
		util.Warnf("WARNING: one partition is empty; the cutoff %g is "+
			"probably too large for %d structures.",
			util.FlagCutoff, m.Len())
	}

	writeIndices(util.Arg(1), m.Names, split.Train)
	writeIndices(util.Arg(2), m.Names, split.Validation)
	fmt.Printf("train: %d structures, validation: %d structures "+
		"(target fraction %g)\n",
		len(split.Train), len(split.Validation), util.FlagTrainFrac)
}

// writeIndices writes one "index name" line per structure.
func writeIndices(path string, names []string, indices []int) {
	f := util.CreateFile(path)
	for _, i := range indices {
		_, err := fmt.Fprintf(f, "%d\t%s\n", i, names[i])
		util.Assert(err, "Could not write to '%s'", path)
	}
	util.Assert(f.Close(), "Could not write to '%s'", path)
}
