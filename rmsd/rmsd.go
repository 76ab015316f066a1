package rmsd

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ulupo/JClinic/pdb"
)

// A Transformation is a rigid-body transformation mapping one set of atoms
// (the "mobile" set) onto another (the "reference" set): translate the
// mobile centroid to the origin, rotate, then translate to the reference
// centroid.
type Transformation struct {
	// Rotation is a 3x3 rotation matrix in row-major order.
	Rotation [9]float64

	// MobCenter and RefCenter are the centroids of the mobile and reference
	// atom sets used to compute the transformation.
	MobCenter, RefCenter pdb.Coords
}

// Apply returns a transformed copy of the given coordinates. The input is
// never modified.
func (t Transformation) Apply(atoms []pdb.Coords) []pdb.Coords {
	out := make([]pdb.Coords, len(atoms))
	r := t.Rotation
	for i, a := range atoms {
		x := a[0] - t.MobCenter[0]
		y := a[1] - t.MobCenter[1]
		z := a[2] - t.MobCenter[2]
		out[i] = pdb.Coords{
			r[0]*x + r[1]*y + r[2]*z + t.RefCenter[0],
			r[3]*x + r[4]*y + r[5]*z + t.RefCenter[1],
			r[6]*x + r[7]*y + r[8]*z + t.RefCenter[2],
		}
	}
	return out
}

// Superpose computes the least-squares rigid-body transformation mapping
// the mobile atoms onto the reference atoms using the Kabsch algorithm:
//
// Center both atom sets by subtracting their centroids. Build the 3x3
// covariance matrix H = P^T Q from the centered mobile (P) and reference
// (Q) coordinates. Compute the SVD H = U S V^T. The optimal rotation is
// then R = V D U^T, where D is the identity except that its last diagonal
// entry is sign(det(V U^T)). The sign correction avoids an improper
// rotation (a reflection) when the determinant is negative.
//
// Superpose panics if the two sets do not have the same nonzero length, or
// if the SVD fails to converge.
func Superpose(ref, mob []pdb.Coords) Transformation {
	if len(ref) != len(mob) {
		panic(fmt.Sprintf("Superposing two structures requires that they "+
			"have equal length. But the lengths of the two structures "+
			"provided are %d and %d.", len(ref), len(mob)))
	}
	if len(ref) == 0 {
		panic("Cannot superpose empty atom sets.")
	}

	refCenter := centroid(ref)
	mobCenter := centroid(mob)

	n := len(ref)
	p := mat.NewDense(n, 3, nil)
	q := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			p.Set(i, k, mob[i][k]-mobCenter[k])
			q.Set(i, k, ref[i][k]-refCenter[k])
		}
	}

	var h mat.Dense
	h.Mul(p.T(), q)

	var svd mat.SVD
	if ok := svd.Factorize(&h, mat.SVDFull); !ok {
		panic("SVD of the covariance matrix did not converge.")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var vut mat.Dense
	vut.Mul(&v, u.T())
	d := mat.NewDiagDense(3, []float64{1, 1, 1})
	if mat.Det(&vut) < 0 {
		d.SetDiag(2, -1)
	}

	var vd, rot mat.Dense
	vd.Mul(&v, d)
	rot.Mul(&vd, u.T())

	t := Transformation{MobCenter: mobCenter, RefCenter: refCenter}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t.Rotation[i*3+j] = rot.At(i, j)
		}
	}
	return t
}

// RMSD superposes the mobile atoms onto the reference atoms and returns the
// root-mean-square deviation of corresponding atom positions afterwards.
//
// RMSD panics if the two sets do not have the same nonzero length.
func RMSD(ref, mob []pdb.Coords) float64 {
	return Deviation(ref, Superpose(ref, mob).Apply(mob))
}

// Deviation returns the root-mean-square deviation between corresponding
// atom positions, without superposing. It panics if the lengths differ.
func Deviation(a, b []pdb.Coords) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("Computing the deviation of two structures "+
			"requires that they have equal length. But the lengths of the "+
			"two structures provided are %d and %d.", len(a), len(b)))
	}
	var sum float64
	for i := range a {
		for k := 0; k < 3; k++ {
			d := a[i][k] - b[i][k]
			sum += d * d
		}
	}
	return math.Sqrt(sum / float64(len(a)))
}

// centroid calculates the average position of a set of atoms.
func centroid(atoms []pdb.Coords) pdb.Coords {
	var c pdb.Coords
	for _, a := range atoms {
		c[0] += a[0]
		c[1] += a[1]
		c[2] += a[2]
	}
	n := float64(len(atoms))
	return pdb.Coords{c[0] / n, c[1] / n, c[2] / n}
}
