package align

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulupo/JClinic/rmsd"
)

// Config controls pairwise alignment. The zero value is not useful; start
// from DefaultConfig.
type Config struct {
	// MinSeqIdentity and MinSeqOverlap are the chain matching thresholds,
	// as fractions in [0, 1]. A candidate correspondence below either
	// threshold is discarded.
	MinSeqIdentity float64
	MinSeqOverlap  float64

	// MergedLabel is the synthetic chain identifier that every chain of
	// both structures is relabeled to before matching.
	MergedLabel byte

	// NumWorkers sets how many pairs are aligned concurrently. Values
	// below 2 select the synchronous loop. The resulting matrix is
	// identical either way; pairs are independent.
	NumWorkers int

	// Verbose, when non-nil, receives a diagnostic block per pair. With
	// NumWorkers > 1 the blocks may appear in any order.
	Verbose io.Writer

	// PairDone, when non-nil, is called once per completed pair, always
	// from the calling goroutine. Useful for progress reporting.
	PairDone func()
}

// DefaultConfig mirrors the usual chain matching thresholds: 90% sequence
// identity and 90% overlap, with all chains merged under 'X'.
var DefaultConfig = Config{
	MinSeqIdentity: 0.9,
	MinSeqOverlap:  0.9,
	MergedLabel:    'X',
	NumWorkers:     1,
}

// PairwiseMatrix aligns every unordered pair of distinct structures and
// returns the dissimilarity matrix over exactly the given names, in the
// given order. Names must be unique and each must have a structure in the
// map.
//
// A pair with no acceptable chain correspondence is recorded as
// unalignable and does not abort the rest of the computation; no retries
// are attempted. Self-alignments are never computed: a structure is
// trivially identical to itself and the diagonal stays 0.
func PairwiseMatrix(names []string, structures map[string]Structure, conf Config) (*Matrix, error) {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("duplicate structure name '%s'", name)
		}
		seen[name] = true
		if structures[name] == nil {
			return nil, fmt.Errorf("no structure supplied for '%s'", name)
		}
	}

	m := NewMatrix(names)
	alignOne := func(i, j int) Cell {
		return alignPair(names[i], names[j],
			structures[names[i]], structures[names[j]], conf)
	}

	if conf.NumWorkers > 1 {
		p := newAlignWorkers(conf.NumWorkers, alignOne)
		go func() {
			for i := 0; i < len(names); i++ {
				for j := i + 1; j < len(names); j++ {
					p.enqueue(i, j)
				}
			}
			p.done()
		}()
		for res := range p.results {
			m.Set(res.i, res.j, res.cell)
			if conf.PairDone != nil {
				conf.PairDone()
			}
		}
	} else {
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				m.Set(i, j, alignOne(i, j))
				if conf.PairDone != nil {
					conf.PairDone()
				}
			}
		}
	}
	return m, nil
}

// alignPair aligns a single pair of structures: merge the chains of deep
// copies of both under one label, match chains on alpha-carbons,
// concatenate the matched subsets, superpose and measure the deviation.
func alignPair(nameA, nameB string, a, b Structure, conf Config) Cell {
	am := a.Merged(conf.MergedLabel)
	bm := b.Merged(conf.MergedLabel)

	matches := MatchChains(am, bm, conf.MinSeqIdentity, conf.MinSeqOverlap)
	ref, mob := combineMatches(matches)
	if len(ref) == 0 {
		verbosePair(conf.Verbose, nameA, nameB, matches, Cell{Unalignable: true})
		return Cell{Unalignable: true}
	}

	trans := rmsd.Superpose(ref, mob)
	cell := Cell{RMSD: rmsd.Deviation(ref, trans.Apply(mob))}
	verbosePair(conf.Verbose, nameA, nameB, matches, cell)
	return cell
}

func verbosePair(w io.Writer, nameA, nameB string, matches []ChainMatch, cell Cell) {
	if w == nil {
		return
	}
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%s vs %s\n", nameA, nameB)
	for _, m := range matches {
		fmt.Fprintf(buf, "  match: length %d, seq identity %0.2f, "+
			"seq overlap %0.2f\n", m.Len(), m.SeqIdentity, m.SeqOverlap)
	}
	if cell.Unalignable {
		fmt.Fprintf(buf, "  unalignable\n")
	} else {
		fmt.Fprintf(buf, "  RMSD = %f\n", cell.RMSD)
	}
	w.Write(buf.Bytes())
}
