package rmsd

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	matrix "github.com/skelterjohn/go.matrix"
	"gonum.org/v1/gonum/mat"

	"github.com/ulupo/JClinic/pdb"
)

func ExampleRMSD() {
	atoms := []pdb.Coords{
		{-2.803, -15.373, 24.556},
		{0.893, -16.062, 25.147},
		{1.368, -12.371, 25.885},
		{-1.651, -12.153, 28.177},
		{-0.440, -15.218, 30.068},
		{2.551, -13.273, 31.372},
		{0.105, -11.330, 33.567},
	}

	// A rotated and translated copy of a structure superposes exactly.
	moved := rotateZ(translate(atoms, 5, -3, 12), math.Pi/3)
	fmt.Printf("RMSD: %f\n", RMSD(atoms, moved))
	// Output:
	// RMSD: 0.000000
}

func TestIdentical(t *testing.T) {
	atoms := randomAtoms(25)
	if r := RMSD(atoms, atoms); r > 1e-12 {
		t.Fatalf("RMSD of a structure with itself is %g, not 0.", r)
	}
}

func TestKnownDeviation(t *testing.T) {
	// Two atoms 1 apart against two atoms 2 apart: after centering, the
	// best superposition leaves each atom off by 0.5.
	ref := []pdb.Coords{{0, 0, 0}, {1, 0, 0}}
	mob := []pdb.Coords{{0, 0, 0}, {2, 0, 0}}
	if r := RMSD(ref, mob); math.Abs(r-0.5) > 1e-12 {
		t.Fatalf("RMSD = %g, but should be 0.5.", r)
	}
}

func TestProperRotation(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		ref := randomAtoms(12)
		mob := randomAtoms(12)
		rot := Superpose(ref, mob).Rotation

		// R^T R = I
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				var dot float64
				for k := 0; k < 3; k++ {
					dot += rot[k*3+i] * rot[k*3+j]
				}
				want := 0.0
				if i == j {
					want = 1.0
				}
				if math.Abs(dot-want) > 1e-9 {
					t.Fatalf("Rotation is not orthogonal: (R^T R)[%d][%d] "+
						"= %g.", i, j, dot)
				}
			}
		}

		// det R = +1: no reflections.
		det := rot[0]*(rot[4]*rot[8]-rot[5]*rot[7]) -
			rot[1]*(rot[3]*rot[8]-rot[5]*rot[6]) +
			rot[2]*(rot[3]*rot[7]-rot[4]*rot[6])
		if math.Abs(det-1) > 1e-9 {
			t.Fatalf("Rotation has determinant %g, not +1.", det)
		}
	}
}

func TestSuperposeIsOptimalUnderJitter(t *testing.T) {
	// Perturbing the optimal rotation must never lower the deviation.
	ref := randomAtoms(20)
	mob := randomAtoms(20)
	trans := Superpose(ref, mob)
	best := Deviation(ref, trans.Apply(mob))

	for _, angle := range []float64{-0.1, -0.01, 0.01, 0.1} {
		jittered := trans
		jittered.Rotation = composeZ(trans.Rotation, angle)
		if d := Deviation(ref, jittered.Apply(mob)); d < best-1e-9 {
			t.Fatalf("Jittered rotation gives deviation %g below the "+
				"optimum %g.", d, best)
		}
	}
}

// TestCovariant checks the covariance product at the heart of Superpose
// against the go.matrix reference implementation.
func TestCovariant(t *testing.T) {
	cols := 11
	for trial := 0; trial < 100; trial++ {
		a := randomSlice(3 * cols)
		b := randomSlice(3 * cols)

		g1 := mat.NewDense(3, cols, a)
		g2 := mat.NewDense(3, cols, b)
		var gc mat.Dense
		gc.Mul(g1, g2.T())

		m1 := matrix.MakeDenseMatrix(a, 3, cols)
		m2 := matrix.MakeDenseMatrix(b, 3, cols)
		mc, err := m1.TimesDense(m2.Transpose())
		if err != nil {
			t.Fatalf("go.matrix product failed: %s", err)
		}

		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if math.Abs(gc.At(i, j)-mc.Get(i, j)) > 1e-6 {
					t.Fatalf("Covariance disagrees at (%d, %d): %g vs %g.",
						i, j, gc.At(i, j), mc.Get(i, j))
				}
			}
		}
	}
}

func translate(atoms []pdb.Coords, x, y, z float64) []pdb.Coords {
	out := make([]pdb.Coords, len(atoms))
	for i, a := range atoms {
		out[i] = pdb.Coords{a[0] + x, a[1] + y, a[2] + z}
	}
	return out
}

func rotateZ(atoms []pdb.Coords, angle float64) []pdb.Coords {
	sin, cos := math.Sin(angle), math.Cos(angle)
	out := make([]pdb.Coords, len(atoms))
	for i, a := range atoms {
		out[i] = pdb.Coords{cos*a[0] - sin*a[1], sin*a[0] + cos*a[1], a[2]}
	}
	return out
}

func composeZ(r [9]float64, angle float64) [9]float64 {
	sin, cos := math.Sin(angle), math.Cos(angle)
	z := [9]float64{cos, -sin, 0, sin, cos, 0, 0, 0, 1}
	var out [9]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i*3+j] += z[i*3+k] * r[k*3+j]
			}
		}
	}
	return out
}

func randomAtoms(cnt int) []pdb.Coords {
	atoms := make([]pdb.Coords, cnt)
	for i := range atoms {
		atoms[i] = pdb.Coords{
			rand.Float64() * 50,
			rand.Float64() * 50,
			rand.Float64() * 50,
		}
	}
	return atoms
}

func randomSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = rand.Float64() * 100
	}
	return s
}
