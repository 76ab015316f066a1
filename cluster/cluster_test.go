package cluster

import (
	"math"
	"testing"
)

// dense builds a symmetric matrix from the strict upper triangle given in
// row-major order.
func dense(n int, upper ...float64) [][]float64 {
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d[i][j], d[j][i] = upper[k], upper[k]
			k++
		}
	}
	return d
}

// Four structures: {0, 1} and {2, 3} are tight pairs, far from each other.
func twoPairs() [][]float64 {
	return dense(4,
		1.0, 9.0, 9.5, // 0-1, 0-2, 0-3
		9.2, 9.7, // 1-2, 1-3
		0.5) // 2-3
}

func TestCondense(t *testing.T) {
	cond, err := Condense(dense(3, 1.5, 2.5, 3.5))
	if err != nil {
		t.Fatalf("Condense failed: %s", err)
	}
	want := []float64{1.5, 2.5, 3.5}
	if len(cond) != len(want) {
		t.Fatalf("Condensed form has %d entries, expected %d.",
			len(cond), len(want))
	}
	for i := range want {
		if cond[i] != want[i] {
			t.Fatalf("Condensed entry %d is %g, expected %g.",
				i, cond[i], want[i])
		}
	}
}

func TestCondenseRejectsBadMatrices(t *testing.T) {
	asym := dense(3, 1, 2, 3)
	asym[0][1] = 99
	if _, err := Condense(asym); err == nil {
		t.Fatalf("Asymmetric matrix should be rejected.")
	}

	nan := dense(3, 1, math.NaN(), 3)
	if _, err := Condense(nan); err == nil {
		t.Fatalf("A NaN entry should be rejected.")
	}

	diag := dense(3, 1, 2, 3)
	diag[1][1] = 0.1
	if _, err := Condense(diag); err == nil {
		t.Fatalf("A nonzero diagonal should be rejected.")
	}

	neg := dense(3, -1, 2, 3)
	if _, err := Condense(neg); err == nil {
		t.Fatalf("A negative entry should be rejected.")
	}
}

func TestCompleteLinkageMerges(t *testing.T) {
	den, err := CompleteLinkage(twoPairs())
	if err != nil {
		t.Fatalf("CompleteLinkage failed: %s", err)
	}
	if len(den.Merges) != 3 {
		t.Fatalf("Expected 3 merges, got %d.", len(den.Merges))
	}

	// The tightest pair (2, 3) merges first, then (0, 1), and the final
	// merge happens at the furthest inter-pair distance.
	if m := den.Merges[0]; m.A != 2 || m.B != 3 || m.Distance != 0.5 {
		t.Fatalf("First merge is %+v; expected 2 and 3 at 0.5.", m)
	}
	if m := den.Merges[1]; m.A != 0 || m.B != 1 || m.Distance != 1.0 {
		t.Fatalf("Second merge is %+v; expected 0 and 1 at 1.0.", m)
	}
	if m := den.Merges[2]; m.Distance != 9.7 || m.Size != 4 {
		t.Fatalf("Final merge is %+v; expected all 4 at 9.7.", m)
	}

	for i := 1; i < len(den.Merges); i++ {
		if den.Merges[i].Distance < den.Merges[i-1].Distance {
			t.Fatalf("Merge distances are not non-decreasing: %+v.",
				den.Merges)
		}
	}
}

func TestCutTwoPairs(t *testing.T) {
	clusters, err := Clusters(twoPairs(), 8)
	if err != nil {
		t.Fatalf("Clusters failed: %s", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("Expected 2 clusters, got %d: %v.", len(clusters), clusters)
	}
	if !sameMembers(clusters[0], []int{0, 1}) ||
		!sameMembers(clusters[1], []int{2, 3}) {
		t.Fatalf("Expected clusters {0 1} and {2 3}, got %v.", clusters)
	}
}

func TestCutIsPartition(t *testing.T) {
	for _, cutoff := range []float64{0, 0.5, 1, 5, 8, 9.7, 100} {
		clusters, err := Clusters(twoPairs(), cutoff)
		if err != nil {
			t.Fatalf("Clusters failed at cutoff %g: %s", cutoff, err)
		}
		seen := make(map[int]bool)
		for _, c := range clusters {
			for _, i := range c {
				if seen[i] {
					t.Fatalf("Index %d appears in two clusters at "+
						"cutoff %g.", i, cutoff)
				}
				seen[i] = true
			}
		}
		if len(seen) != 4 {
			t.Fatalf("Clusters cover %d of 4 indices at cutoff %g.",
				len(seen), cutoff)
		}
	}
}

func TestClusterCountMonotoneInCutoff(t *testing.T) {
	prev := math.MaxInt32
	for _, cutoff := range []float64{0, 0.25, 0.5, 1, 3, 8, 9.7, 50} {
		clusters, err := Clusters(twoPairs(), cutoff)
		if err != nil {
			t.Fatalf("Clusters failed at cutoff %g: %s", cutoff, err)
		}
		if len(clusters) > prev {
			t.Fatalf("Raising the cutoff to %g increased the cluster "+
				"count from %d to %d.", cutoff, prev, len(clusters))
		}
		prev = len(clusters)
	}
}

func TestZeroCutoffSingletons(t *testing.T) {
	clusters, err := Clusters(twoPairs(), 0)
	if err != nil {
		t.Fatalf("Clusters failed: %s", err)
	}
	if len(clusters) != 4 {
		t.Fatalf("A zero cutoff should produce 4 singletons, got %v.",
			clusters)
	}
}

func TestSplitTwoPairs(t *testing.T) {
	split, err := TrainValidationSplit(twoPairs(), 8, 0.5)
	if err != nil {
		t.Fatalf("TrainValidationSplit failed: %s", err)
	}
	if !sameMembers(split.Train, []int{0, 1}) ||
		!sameMembers(split.Validation, []int{2, 3}) {
		t.Fatalf("Expected train {0 1} and validation {2 3}, got %+v.", split)
	}
}

func TestSplitNeverDividesClusters(t *testing.T) {
	for _, cutoff := range []float64{0, 0.5, 1, 8, 100} {
		clusters, err := Clusters(twoPairs(), cutoff)
		if err != nil {
			t.Fatalf("Clusters failed: %s", err)
		}
		split, err := Assign(clusters, 0.75)
		if err != nil {
			t.Fatalf("Assign failed: %s", err)
		}

		side := make(map[int]string)
		for _, i := range split.Train {
			side[i] = "train"
		}
		for _, i := range split.Validation {
			if side[i] != "" {
				t.Fatalf("Index %d is in both sides at cutoff %g.", i, cutoff)
			}
			side[i] = "validation"
		}
		if len(side) != 4 {
			t.Fatalf("Split covers %d of 4 indices at cutoff %g.",
				len(side), cutoff)
		}
		for _, c := range clusters {
			for _, i := range c[1:] {
				if side[i] != side[c[0]] {
					t.Fatalf("Cluster %v is split across sides at "+
						"cutoff %g.", c, cutoff)
				}
			}
		}
	}
}

// Two structures that land in one cluster cannot satisfy an 80/20 split:
// the whole dataset must end up on one side, leaving the other empty.
func TestDegenerateSingleCluster(t *testing.T) {
	split, err := TrainValidationSplit(dense(2, 1.5), 8, 0.8)
	if err != nil {
		t.Fatalf("TrainValidationSplit failed: %s", err)
	}
	if !sameMembers(split.Train, []int{0, 1}) {
		t.Fatalf("Both structures should land in training, got %+v.", split)
	}
	if len(split.Validation) != 0 {
		t.Fatalf("Validation should be empty, got %v.", split.Validation)
	}
}

func TestInvalidFraction(t *testing.T) {
	for _, frac := range []float64{0, 1, -0.2, 1.7} {
		if _, err := TrainValidationSplit(twoPairs(), 8, frac); err == nil {
			t.Fatalf("Training fraction %g should be rejected.", frac)
		}
		if _, err := Assign([][]int{{0}}, frac); err == nil {
			t.Fatalf("Training fraction %g should be rejected by Assign.",
				frac)
		}
	}
}

func TestSingletonSplitTracksFraction(t *testing.T) {
	// With every structure in its own cluster, the greedy assignment can
	// track the target closely: 8 singletons at 0.75 give a 6/2 split.
	d := make([][]float64, 8)
	for i := range d {
		d[i] = make([]float64, 8)
		for j := range d[i] {
			if i != j {
				d[i][j] = 10 + float64(i+j)
			}
		}
	}
	split, err := TrainValidationSplit(d, 0, 0.75)
	if err != nil {
		t.Fatalf("TrainValidationSplit failed: %s", err)
	}
	if len(split.Train) != 6 || len(split.Validation) != 2 {
		t.Fatalf("Expected a 6/2 split, got %d/%d.",
			len(split.Train), len(split.Validation))
	}
}

func sameMembers(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
