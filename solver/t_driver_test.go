// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_solver01_minimal_cube(tst *testing.T) {

	chk.PrintTitle("solver01. minimal cube: one interior cell, one step")

	res, err := Run(Config{Nx: 3, Ny: 3, Nz: 3, IterMax: 1, Eps: 0})
	if err != nil {
		tst.Errorf("Run failed: %v", err)
		return
	}
	chk.IntAssert(res.Iterations, 1)
	if res.Converged {
		tst.Errorf("eps=0 should never report convergence")
	}

	// h = 0.5 everywhere, dt = (0.4/6)*h*h, so Dx = Dy = Dz = dt/h^2 = 0.4/6;
	// the single interior cell sees the top Dirichlet value 1.0, the bottom
	// value 0, and y = 0.5 on each of the four side faces, so it becomes
	// Dx*(0.5+0.5) + Dy*(1+0) + Dz*(0.5+0.5) = 3*Dy
	dy := 0.4 / 6.0
	chk.Float64(tst, "T(1,1,1)", 1e-14, res.T.At(1, 1, 1), 3*dy)
}

func Test_solver02_converges_to_linear_profile(tst *testing.T) {

	chk.PrintTitle("solver02. serial convergence to the linear-in-Y profile")

	res, err := Run(Config{Nx: 11, Ny: 11, Nz: 11, IterMax: 10000, Eps: 1e-6})
	if err != nil {
		tst.Errorf("Run failed: %v", err)
		return
	}
	if !res.Converged {
		tst.Errorf("expected convergence within %d iterations", 10000)
		return
	}

	// the steady state is T = y: linear in Y, harmonic, and matching
	// every boundary condition
	if res.L2Error > 0.05 {
		tst.Errorf("L2-norm error too large: %g", res.L2Error)
	}
	for j := 0; j < res.Sub.Ny; j++ {
		want := float64(j) * res.Sub.Hy
		chk.Float64(tst, "T(5,j,5)", 0.05, res.T.At(5, j, 5), want)
	}
}

func Test_solver03_itermax_reached(tst *testing.T) {

	chk.PrintTitle("solver03. iterMax reached without convergence is not an error")

	res, err := Run(Config{Nx: 9, Ny: 9, Nz: 9, IterMax: 2, Eps: 1e-12})
	if err != nil {
		tst.Errorf("Run failed: %v", err)
		return
	}
	chk.IntAssert(res.Iterations, 2)
	if res.Converged {
		tst.Errorf("two iterations at eps=1e-12 must not converge")
	}
}
