// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conv

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/heat3d/grid"
	"github.com/cpmech/heat3d/topo"
)

func Test_conv01_normalizer_and_break(tst *testing.T) {

	chk.PrintTitle("conv01. normalizer fixed on iteration 0; eps=0 never converges")

	tp, err := topo.New(0, 1, 5, 5, 5)
	if err != nil {
		tst.Errorf("topo.New: %v", err)
		return
	}
	sub := grid.NewSubdomain(tp)
	T := grid.NewField(sub.Nx, sub.Ny, sub.Nz)
	T0 := grid.NewField(sub.Nx, sub.Ny, sub.Nz)

	T.Set(2, 2, 2, 1.0) // a nonzero residual cell

	m := NewMonitor()
	res, converged := m.Step(sub, T, T0, 0, 0)
	chk.Scalar(tst, "res", 1e-15, res, 1.0)
	chk.Scalar(tst, "norm", 1e-15, m.Norm(), 1.0)
	if converged {
		tst.Errorf("eps=0 should never report convergence")
	}
}

func Test_conv02_zero_residual_normalizes_to_one(tst *testing.T) {

	chk.PrintTitle("conv02. a zero first-iteration residual normalizes to 1.0")

	tp, err := topo.New(0, 1, 5, 5, 5)
	if err != nil {
		tst.Errorf("topo.New: %v", err)
		return
	}
	sub := grid.NewSubdomain(tp)
	T := grid.NewField(sub.Nx, sub.Ny, sub.Nz)
	T0 := grid.NewField(sub.Nx, sub.Ny, sub.Nz)

	m := NewMonitor()
	_, converged := m.Step(sub, T, T0, 1e-6, 0)
	chk.Scalar(tst, "norm", 1e-15, m.Norm(), 1.0)
	if !converged {
		tst.Errorf("zero residual relative to eps>0 should converge")
	}
}

func Test_conv03_l2_error_of_exact_field(tst *testing.T) {

	chk.PrintTitle("conv03. L2Error is 0 for the exact analytic field")

	tp, err := topo.New(0, 1, 5, 5, 5)
	if err != nil {
		tst.Errorf("topo.New: %v", err)
		return
	}
	sub := grid.NewSubdomain(tp)
	T := grid.NewField(sub.Nx, sub.Ny, sub.Nz)
	for i := 0; i < sub.Nx; i++ {
		for j := 0; j < sub.Ny; j++ {
			for k := 0; k < sub.Nz; k++ {
				T.Set(i, j, k, float64(sub.GlobalJ(j))*sub.Hy)
			}
		}
	}
	chk.Scalar(tst, "L2Error", 1e-14, L2Error(sub, T), 0)
}
