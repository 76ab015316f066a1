/*
Package cluster groups structures by structural dissimilarity and carves
the dataset into training and validation subsets that never share a
structural cluster, so that near-duplicate structures cannot leak
information across the two sets.

The input is a dense symmetric dissimilarity matrix with no missing
entries (see align.Matrix.Neutralized for turning unalignable markers into
finite values). Hierarchical agglomerative clustering under the complete
(furthest-neighbor) linkage rule produces a dendrogram; cutting it at a
distance threshold yields disjoint clusters; a greedy size-driven pass
then assigns whole clusters to one side or the other, tracking a target
training fraction as closely as the cluster sizes allow.
*/
package cluster
