package util

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"strings"
)

var (
	FlagCpu     = runtime.NumCPU()
	FlagVerbose = false

	// Chain matching thresholds, as fractions.
	FlagSeqIdentity = 0.9
	FlagSeqOverlap  = 0.9

	// Clustering cutoff (Angstroms) and target training fraction.
	FlagCutoff    = 8.0
	FlagTrainFrac = 0.8
)

type commonFlag struct {
	set, init func()
	use       bool
}

var commonFlags = map[string]*commonFlag{
	"cpu": {
		set: func() {
			flag.IntVar(&FlagCpu, "cpu", FlagCpu,
				"The max number of CPUs to use.")
		},
		init: func() {
			runtime.GOMAXPROCS(FlagCpu)
		},
	},
	"verbose": {
		set: func() {
			flag.BoolVar(&FlagVerbose, "verbose", FlagVerbose,
				"When set, progress and diagnostics are printed to stderr.")
		},
	},
	"seq-id": {
		set: func() {
			flag.Float64Var(&FlagSeqIdentity, "seq-id", FlagSeqIdentity,
				"The minimum sequence identity fraction for a chain match.")
		},
	},
	"seq-overlap": {
		set: func() {
			flag.Float64Var(&FlagSeqOverlap, "seq-overlap", FlagSeqOverlap,
				"The minimum sequence overlap fraction for a chain match.")
		},
	},
	"cutoff": {
		set: func() {
			flag.Float64Var(&FlagCutoff, "cutoff", FlagCutoff,
				"The dendrogram cut distance. Structures closer than this\n"+
					"end up in the same cluster.")
		},
	},
	"train-frac": {
		set: func() {
			flag.Float64Var(&FlagTrainFrac, "train-frac", FlagTrainFrac,
				"The target fraction of structures in the training set.")
		},
	},
}

func FlagUse(names ...string) {
	for _, name := range names {
		commonFlags[name].use = true
	}
}

// Usage just calls `flag.Usage`. It's included here to avoid
// an extra import to `flag` just to call Usage.
func Usage() {
	flag.Usage()
}

// Arg just calls `flag.Arg`. It's included here to avoid
// an extra import to `flag` just to call Arg.
func Arg(i int) string {
	return flag.Arg(i)
}

// Args just calls `flag.Args`.
func Args() []string {
	return flag.Args()
}

// NArg just calls `flag.NArg`.
func NArg() int {
	return flag.NArg()
}

func AssertNArg(n int) {
	if flag.NArg() != n {
		flag.Usage()
	}
}

func AssertLeastNArg(n int) {
	if flag.NArg() < n {
		flag.Usage()
	}
}

func FlagParse(positional string, desc string) {
	for _, fl := range commonFlags {
		if fl.use {
			fl.set()
		}
	}

	flag.Usage = func() {
		log.Printf("Usage: %s [flags] %s\n\n",
			path.Base(os.Args[0]), positional)
		if len(desc) > 0 {
			log.Printf("%s\n", desc)
		}
		flag.VisitAll(func(fl *flag.Flag) {
			var def string
			if len(fl.DefValue) > 0 {
				def = fmt.Sprintf(" (default: %s)", fl.DefValue)
			}

			usage := strings.Replace(fl.Usage, "\n", "\n    ", -1)
			log.Printf("-%s%s\n", fl.Name, def)
			log.Printf("    %s\n", usage)
		})
		os.Exit(1)
	}
	flag.Parse()

	for _, fl := range commonFlags {
		if fl.use && fl.init != nil {
			fl.init()
		}
	}
}
