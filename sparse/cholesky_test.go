package sparse

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"
)

func TestIChol(t *testing.T) {
	data := []complex128{
		4, 12, -16,
		12, 37, -43,
		-16, -43, 98,
	}
	wantdata := []complex128{
		2, 0, 0,
		6, 1, 0,
		-8, 5, 3,
	}

	A := makeSparse(3, 3, data)
	wantL := makeSparse(3, 3, wantdata)

	chol, err := IChol(A, 0)
	if err != nil {
		t.Fatal(err)
	}
	approxEqual(t, chol.L, wantL, 1e-12)
}

func TestIChol_Hermitian(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, size := range []int{5, 20, 60} {
		A := randHermitian(size, 4, rng)
		chol, err := IChol(A, 0)
		if err != nil {
			t.Fatalf("size=%v: %v", size, err)
		}
		// complete factorization reproduces A
		approxEqual(t, Mul(chol.L, chol.L.ConjTranspose()), A, 1e-10)
	}
}

func TestIChol_DropTolerance(t *testing.T) {
	// strongly diagonally dominant ring: large droptol discards the ring
	// entries, small droptol keeps them
	size := 12
	A := New(size, size)
	for i := 0; i < size; i++ {
		A.Set(i, i, 4)
		j := (i + 1) % size
		v := cmplx.Rect(0.1, 0.3)
		A.Set(i, j, v)
		A.Set(j, i, cmplx.Conj(v))
	}

	full, err := IChol(A, 0)
	if err != nil {
		t.Fatal(err)
	}
	approxEqual(t, Mul(full.L, full.L.ConjTranspose()), A, 1e-12)

	inc, err := IChol(A, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if inc.L.NNZ() >= full.L.NNZ() {
		t.Fatalf("dropping kept %v nonzeros, full factor has %v", inc.L.NNZ(), full.L.NNZ())
	}
	// the incomplete factor still reproduces A up to the dropped magnitude
	prod := Mul(inc.L, inc.L.ConjTranspose())
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if cmplx.Abs(prod.At(i, j)-A.At(i, j)) > 0.2 {
				t.Fatalf("residual %v at (%v,%v) exceeds drop scale", cmplx.Abs(prod.At(i, j)-A.At(i, j)), i, j)
			}
		}
	}
}

func TestIChol_NotPositiveDefinite(t *testing.T) {
	A := makeSparse(2, 2, []complex128{
		1, 2,
		2, 1,
	})
	_, err := IChol(A, 0)
	if !errors.Is(err, ErrNotPositiveDefinite) {
		t.Fatalf("got %v, want ErrNotPositiveDefinite", err)
	}

	zero := New(2, 2)
	if _, err := IChol(zero, 0); !errors.Is(err, ErrNotPositiveDefinite) {
		t.Fatalf("got %v, want ErrNotPositiveDefinite", err)
	}
}

func TestCholesky_Solve(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, size := range []int{3, 25, 80} {
		A := randHermitian(size, 5, rng)
		chol, err := IChol(A, 0)
		if err != nil {
			t.Fatalf("size=%v: %v", size, err)
		}

		b := make([]complex128, size)
		for i := range b {
			b[i] = cmplx.Rect(rng.Float64()+0.5, rng.Float64())
		}
		x, err := chol.Solve(b)
		if err != nil {
			t.Fatal(err)
		}

		got := MulVec(A, x)
		for i := range b {
			if cmplx.Abs(got[i]-b[i]) > 1e-8 {
				t.Fatalf("size=%v: residual %v at %v", size, cmplx.Abs(got[i]-b[i]), i)
			}
		}
	}
}

func TestCholesky_SolveMat(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	size := 10
	A := randHermitian(size, 4, rng)
	chol, err := IChol(A, 0)
	if err != nil {
		t.Fatal(err)
	}

	B := New(size, 3)
	for k := 0; k < 12; k++ {
		B.Set(rng.Intn(size), rng.Intn(3), cmplx.Rect(rng.Float64()+0.1, rng.Float64()))
	}
	X, err := chol.SolveMat(B)
	if err != nil {
		t.Fatal(err)
	}
	approxEqual(t, Mul(A, X), B, 1e-9)
}

func TestCholesky_SolveBadLength(t *testing.T) {
	A := makeSparse(2, 2, []complex128{4, 0, 0, 4})
	chol, err := IChol(A, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := chol.Solve(make([]complex128, 3)); err == nil {
		t.Fatal("expected length mismatch error")
	}
	if math.IsNaN(real(chol.L.At(0, 0))) {
		t.Fatal("factor corrupted by failed solve")
	}
}
