/*
Package align performs all-versus-all structural alignment of a collection
of protein structures and collects the resulting RMSDs into a symmetric
dissimilarity matrix.

For every unordered pair of structures, both structures are deep-copied and
all of their chains are merged under a single synthetic chain label, so that
chain matching can consider cross-chain correspondences (important for
homo-oligomers). Matching is restricted to alpha-carbon atoms. If no chain
correspondence passes the sequence identity and overlap thresholds, the
pair is recorded as unalignable; otherwise the matched atoms are superposed
by an optimal rigid-body transformation and the post-alignment RMSD is
recorded in both symmetric cells.

Unalignable pairs are an expected outcome, not an error: they are carried
as an explicit marker in the matrix and are only replaced by a finite value
(see Matrix.Neutralized) at the boundary where a downstream numeric routine
requires one.
*/
package align
