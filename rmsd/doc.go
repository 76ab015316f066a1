/*
Package rmsd computes the optimal rigid-body superposition of two equal
length sets of atoms using the Kabsch algorithm, and the root-mean-square
deviation of the atoms after superposition.

A superposition is returned as an explicit Transformation (a rotation and a
translation, no scaling) so that it can be applied to any other coordinates
of the mobile structure.
*/
package rmsd
