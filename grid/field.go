// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grid owns the per-process field storage (T, T0) and the
// subdomain geometry they are sized to, plus the Dirichlet initializer.
//
// Field uses a single flat buffer of size nx*ny*nz with explicit strided
// indexing rather than a jagged array-of-arrays: the stencil's read
// pattern is then dense and linear, which is friendlier to the compiler
// and to any future vectorized or GPU interior kernel.
package grid

// Field is one dense scalar array over a local subdomain, indices
// [0..Nx-1][0..Ny-1][0..Nz-1] flattened with Z fastest.
type Field struct {
	Nx, Ny, Nz int
	Data       []float64
}

// NewField allocates a zero-filled field of the given local extents.
func NewField(nx, ny, nz int) *Field {
	return &Field{Nx: nx, Ny: ny, Nz: nz, Data: make([]float64, nx*ny*nz)}
}

func (f *Field) idx(i, j, k int) int {
	return (i*f.Ny+j)*f.Nz + k
}

// At returns the value at (i,j,k).
func (f *Field) At(i, j, k int) float64 {
	return f.Data[f.idx(i, j, k)]
}

// Set writes the value at (i,j,k).
func (f *Field) Set(i, j, k int, v float64) {
	f.Data[f.idx(i, j, k)] = v
}

// CopyFrom overwrites f with src's values; both must share shape. This is
// the phase-1 snapshot (T0 ← T) every iteration begins with.
func (f *Field) CopyFrom(src *Field) {
	copy(f.Data, src.Data)
}
