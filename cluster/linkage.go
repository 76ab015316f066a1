package cluster

import (
	"fmt"
	"math"
)

// A Merge records one agglomeration step: the clusters with ids A and B
// were joined at the given linkage distance into a cluster with Size
// members. Ids follow the usual convention: observation i is cluster i,
// and the cluster created by the k-th merge of an n-observation problem
// gets id n+k.
type Merge struct {
	A, B     int
	Distance float64
	Size     int
}

// A Dendrogram is the merge history of a hierarchical clustering of N
// observations: exactly N-1 merges. Under complete linkage the merge
// distances are non-decreasing.
type Dendrogram struct {
	N      int
	Merges []Merge
}

// Condense validates a dense dissimilarity matrix and returns its strict
// upper triangle in row-major order over the index pairs i<j, the compact
// form the clustering works on.
//
// The matrix must be square and symmetric with a zero diagonal, and every
// entry must be a finite non-negative number: missing-pair markers must
// have been neutralized by the caller beforehand.
func Condense(dists [][]float64) ([]float64, error) {
	n := len(dists)
	for i, row := range dists {
		if len(row) != n {
			return nil, fmt.Errorf("dissimilarity matrix is not square: "+
				"row %d has %d entries, expected %d", i, len(row), n)
		}
	}
	cond := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		if dists[i][i] != 0 {
			return nil, fmt.Errorf("dissimilarity matrix has nonzero "+
				"diagonal entry %g at %d", dists[i][i], i)
		}
		for j := i + 1; j < n; j++ {
			d := dists[i][j]
			if math.IsNaN(d) || math.IsInf(d, 0) {
				return nil, fmt.Errorf("dissimilarity matrix entry (%d, %d) "+
					"is %g; neutralize missing pairs first", i, j, d)
			}
			if d < 0 {
				return nil, fmt.Errorf("dissimilarity matrix entry (%d, %d) "+
					"is negative: %g", i, j, d)
			}
			if d != dists[j][i] {
				return nil, fmt.Errorf("dissimilarity matrix is asymmetric "+
					"at (%d, %d): %g vs %g", i, j, d, dists[j][i])
			}
			cond = append(cond, d)
		}
	}
	return cond, nil
}

// condensedIndex maps a pair i<j to its position in the condensed form of
// an n-observation matrix.
func condensedIndex(n, i, j int) int {
	return i*n - i*(i+1)/2 + (j - i - 1)
}

// CompleteLinkage runs agglomerative hierarchical clustering under the
// complete linkage rule: at every step the two clusters whose furthest
// pair of members is nearest are merged, until a single cluster remains.
// Ties break towards the pair found first in index order, so the result
// is deterministic for fixed input.
func CompleteLinkage(dists [][]float64) (*Dendrogram, error) {
	cond, err := Condense(dists)
	if err != nil {
		return nil, err
	}
	n := len(dists)
	den := &Dendrogram{N: n}
	if n < 2 {
		return den, nil
	}
	den.Merges = make([]Merge, 0, n-1)

	// Working inter-cluster distances, collapsed in place as clusters
	// merge: d(p+q, k) = max(d(p, k), d(q, k)).
	work := make([][]float64, n)
	for i := range work {
		work[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := cond[condensedIndex(n, i, j)]
			work[i][j], work[j][i] = d, d
		}
	}

	ids := make([]int, n)
	sizes := make([]int, n)
	active := make([]int, n)
	for i := range active {
		ids[i], sizes[i], active[i] = i, 1, i
	}

	for step := 0; step < n-1; step++ {
		bp, bq := 0, 1
		best := math.Inf(1)
		for ai := 0; ai < len(active); ai++ {
			for aj := ai + 1; aj < len(active); aj++ {
				if d := work[active[ai]][active[aj]]; d < best {
					best, bp, bq = d, ai, aj
				}
			}
		}
		p, q := active[bp], active[bq]

		den.Merges = append(den.Merges, Merge{
			A:        ids[p],
			B:        ids[q],
			Distance: best,
			Size:     sizes[p] + sizes[q],
		})
		for _, k := range active {
			if k == p || k == q {
				continue
			}
			d := math.Max(work[p][k], work[q][k])
			work[p][k], work[k][p] = d, d
		}
		ids[p] = n + step
		sizes[p] += sizes[q]
		active = append(active[:bq], active[bq+1:]...)
	}
	return den, nil
}

// Cut flattens the dendrogram into disjoint clusters: two observations end
// up together exactly when every merge joining them happened at a distance
// within the cutoff. Clusters are returned in order of their smallest
// member, members ascending; their union is always the full index range.
func (den *Dendrogram) Cut(cutoff float64) [][]int {
	parent := make([]int, den.N)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	// repr maps every dendrogram cluster id to one of its observations.
	repr := make(map[int]int, 2*den.N)
	for i := 0; i < den.N; i++ {
		repr[i] = i
	}
	for k, merge := range den.Merges {
		ra, rb := repr[merge.A], repr[merge.B]
		if merge.Distance <= cutoff {
			parent[find(rb)] = find(ra)
		}
		repr[den.N+k] = ra
	}

	clusterOf := make(map[int]int, den.N)
	var clusters [][]int
	for i := 0; i < den.N; i++ {
		root := find(i)
		c, ok := clusterOf[root]
		if !ok {
			c = len(clusters)
			clusterOf[root] = c
			clusters = append(clusters, nil)
		}
		clusters[c] = append(clusters[c], i)
	}
	return clusters
}

// Clusters is a convenience wrapper: cluster the matrix under complete
// linkage and cut the tree at the cutoff.
func Clusters(dists [][]float64, cutoff float64) ([][]int, error) {
	den, err := CompleteLinkage(dists)
	if err != nil {
		return nil, err
	}
	return den.Cut(cutoff), nil
}
