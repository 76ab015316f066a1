package cluster

import (
	"fmt"
	"sort"
)

// A Split is a partition of the dataset row indices into a training set
// and a validation set. The two sets are disjoint and together cover
// every index; all members of a structural cluster always land on the
// same side.
type Split struct {
	Train      []int
	Validation []int
}

// Assign distributes whole clusters between the training and validation
// sets, aiming for the given training fraction. Clusters are processed in
// discovery order; each goes to whichever side is currently furthest
// below its proportional target, with ties going to the training side.
//
// Clusters are never divided, so the realized fraction only approximates
// the target; in the extreme, a single all-encompassing cluster leaves
// one side empty. That outcome is returned as-is: it signals a cutoff too
// large for the dataset, which is a tuning concern for the caller, not an
// error here.
//
// A trainFrac outside the open interval (0, 1) is a caller bug and is
// rejected immediately.
func Assign(clusters [][]int, trainFrac float64) (Split, error) {
	if err := checkFraction(trainFrac); err != nil {
		return Split{}, err
	}

	total := 0
	for _, c := range clusters {
		total += len(c)
	}
	split := Split{Train: []int{}, Validation: []int{}}
	if total == 0 {
		return split, nil
	}

	trainTarget := trainFrac * float64(total)
	valTarget := (1 - trainFrac) * float64(total)
	for _, c := range clusters {
		trainFill := float64(len(split.Train)) / trainTarget
		valFill := float64(len(split.Validation)) / valTarget
		if trainFill <= valFill {
			split.Train = append(split.Train, c...)
		} else {
			split.Validation = append(split.Validation, c...)
		}
	}
	sort.Ints(split.Train)
	sort.Ints(split.Validation)
	return split, nil
}

// TrainValidationSplit clusters a dense dissimilarity matrix at the given
// cutoff and assigns whole clusters to the two sides. The training
// fraction is validated before any clustering work begins.
func TrainValidationSplit(dists [][]float64, cutoff, trainFrac float64) (Split, error) {
	if err := checkFraction(trainFrac); err != nil {
		return Split{}, err
	}
	clusters, err := Clusters(dists, cutoff)
	if err != nil {
		return Split{}, err
	}
	return Assign(clusters, trainFrac)
}

func checkFraction(trainFrac float64) error {
	if trainFrac <= 0 || trainFrac >= 1 {
		return fmt.Errorf("training fraction must be in (0, 1), got %g",
			trainFrac)
	}
	return nil
}
