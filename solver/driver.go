// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solver is the Driver: it runs the outer time loop, sequencing
// topology, field storage, halo exchange, the stencil update and the
// convergence monitor every iteration, and reports the final timing and
// error summary.
package solver

import (
	"time"

	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/heat3d/conv"
	"github.com/cpmech/heat3d/grid"
	"github.com/cpmech/heat3d/halo"
	"github.com/cpmech/heat3d/stencil"
	"github.com/cpmech/heat3d/topo"
)

// physical constants
const (
	alpha = 1.0
	cfl   = 0.4
)

// Config is the five scalars the CLI accepts: NX NY NZ ITER_MAX EPS.
type Config struct {
	Nx, Ny, Nz int
	IterMax    int
	Eps        float64
}

// Result is what the Driver reports back to main for the rank-0 summary.
type Result struct {
	Iterations int
	Converged  bool
	Elapsed    time.Duration
	L2Error    float64

	Topo *topo.Topology
	Sub  *grid.Subdomain
	T    *grid.Field
}

// Run executes the full time loop for this process's rank within the
// current MPI world, returning once convergence fires or IterMax is
// reached. Both termination paths are observed collectively, so every
// rank leaves the loop on the same iteration.
func Run(cfg Config) (*Result, error) {
	rank, size := 0, 1
	if mpi.IsOn() {
		rank, size = mpi.Rank(), mpi.Size()
	}

	tp, err := topo.New(rank, size, cfg.Nx, cfg.Ny, cfg.Nz)
	if err != nil {
		return nil, err
	}
	sub := grid.NewSubdomain(tp)

	T := grid.NewField(sub.Nx, sub.Ny, sub.Nz)
	T0 := grid.NewField(sub.Nx, sub.Ny, sub.Nz)
	grid.InitializeDirichlet(sub, T)

	hmin := utl.Min(sub.Hx, utl.Min(sub.Hy, sub.Hz))
	dt := (cfl / (2 * topo.NUMDIM)) * hmin * hmin / alpha
	coeffs := stencil.NewCoeffs(alpha, dt, sub.Hx, sub.Hy, sub.Hz)

	ex := halo.NewExchanger(tp, sub, halo.NewMPITransport())
	upd := stencil.NewUpdater()
	mon := conv.NewMonitor()

	start := time.Now()
	iterations := 0
	converged := false
	for iter := 0; iter < cfg.IterMax; iter++ {
		if err := upd.Step(tp, sub, T, T0, ex, coeffs); err != nil {
			return nil, err
		}
		_, converged = mon.Step(sub, T, T0, cfg.Eps, iter)
		iterations = iter + 1
		if converged {
			break
		}
	}
	elapsed := time.Since(start)

	return &Result{
		Iterations: iterations,
		Converged:  converged,
		Elapsed:    elapsed,
		L2Error:    conv.L2Error(sub, T),
		Topo:       tp,
		Sub:        sub,
		T:          T,
	}, nil
}
