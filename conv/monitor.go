// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package conv implements the distributed convergence test: the local
// max-delta residual, the iteration-0 normalizer, the global break-flag
// reduction, and the L2 error against the analytic reference field.
package conv

import (
	"math"

	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/heat3d/grid"
)

// Monitor tracks the normalizer established on the first iteration and
// drives the two collective reductions the convergence test needs. In a
// serial run (MPI off or a single process) the reductions degenerate to
// the local values.
type Monitor struct {
	norm  float64
	distr bool
	rank  int
	nproc int

	// break-flag workspace: one slot per rank, reduced elementwise with
	// IntAllReduceMax so every rank sees who reported convergence
	flags []int
	winum []int

	// scalar float64 reduce workspace
	x, w []float64
}

// NewMonitor returns a Monitor ready for iteration 0.
func NewMonitor() *Monitor {
	m := &Monitor{nproc: 1}
	if mpi.IsOn() {
		m.rank = mpi.Rank()
		m.nproc = mpi.Size()
		m.distr = m.nproc > 1
	}
	m.flags = make([]int, m.nproc)
	m.winum = make([]int, m.nproc)
	m.x = make([]float64, 1)
	m.w = make([]float64, 1)
	return m
}

// Step computes the local residual over the strict interior, on iter==0
// establishes the global normalizer via a MIN reduction, and decides
// termination via a MAX reduction of the per-rank break flags.
//
// The break-flag reduction is MAX: the loop terminates as soon as any
// single process reports local convergence. This can terminate earlier
// than a stricter MIN reduction would; it is the faithfully-reproduced
// (if debatable) behavior, and a MIN variant is a one-line swap.
func (m *Monitor) Step(sub *grid.Subdomain, T, T0 *grid.Field, eps float64, iter int) (res float64, converged bool) {
	res = localResidual(sub, T, T0)

	if iter == 0 {
		local := res
		if local <= 0 {
			local = 1.0
		}
		if m.distr {
			m.x[0] = local
			mpi.AllReduceMin(m.x, m.w)
			m.norm = m.x[0]
		} else {
			m.norm = local
		}
	}

	for i := 0; i < m.nproc; i++ {
		m.flags[i] = 0
	}
	if res/m.norm < eps {
		m.flags[m.rank] = 1 // this processor wants to stop
	}
	if m.distr {
		mpi.IntAllReduceMax(m.flags, m.winum)
	}
	for i := 0; i < m.nproc; i++ {
		if m.flags[i] > 0 {
			converged = true
		}
	}
	return
}

// Norm is the normalizer established on iteration 0; identical on every
// process by construction.
func (m *Monitor) Norm() float64 {
	return m.norm
}

func localResidual(sub *grid.Subdomain, T, T0 *grid.Field) float64 {
	nx, ny, nz := sub.Nx, sub.Ny, sub.Nz
	res := 0.0
	for i := 1; i <= nx-2; i++ {
		for j := 1; j <= ny-2; j++ {
			for k := 1; k <= nz-2; k++ {
				d := math.Abs(T.At(i, j, k) - T0.At(i, j, k))
				if d > res {
					res = d
				}
			}
		}
	}
	return res
}

// L2Error reports the relative L2 error of the field against the
// analytic reference T(i,j,k) = j_global*Δy, reduced across every
// process. It is a reporting aid for the final summary, not part of the
// convergence test itself.
func L2Error(sub *grid.Subdomain, T *grid.Field) float64 {
	nx, ny, nz := sub.Nx, sub.Ny, sub.Nz
	var sumSq, sumRefSq float64
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			ref := float64(sub.GlobalJ(j)) * sub.Hy
			for k := 0; k < nz; k++ {
				d := T.At(i, j, k) - ref
				sumSq += d * d
				sumRefSq += ref * ref
			}
		}
	}
	totals := []float64{sumSq, sumRefSq}
	if mpi.IsOn() && mpi.Size() > 1 {
		wspc := make([]float64, 2)
		mpi.AllReduceSum(totals, wspc)
	}
	if totals[1] <= 0 {
		return 0
	}
	return math.Sqrt(totals[0] / totals[1])
}
