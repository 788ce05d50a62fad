// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/heat3d/topo"
)

// topFace is the +Y Dirichlet driver, a constant 1.0 carried as a
// fun.Func so a time- or space-varying boundary can be swapped in
// without touching the initializer.
var topFace fun.Func = &fun.Cte{C: 1.0}

// InitializeDirichlet expects T to be freshly allocated, and so all zeros
// (it does not clear T itself), and writes the Dirichlet boundary values on every face
// that lies on the physical domain boundary, i.e. every direction whose
// neighbor is topo.NONE.
//
// Faces are written in the order -X,+X,-Z,+Z,-Y,+Y so that +Y's constant
// 1.0 always wins at any edge it shares with another physical boundary.
// -Y is a no-op: at cy==0 the Y-coordinate formula already evaluates to
// 0, so leaving it unwritten agrees with the X/Z pass.
func InitializeDirichlet(sub *Subdomain, T *Field) {
	t := sub.Topo

	// -X face: i=0, vary (j,k)
	if !t.HasNeighbor(topo.Xneg) {
		for j := 0; j < T.Ny; j++ {
			for k := 0; k < T.Nz; k++ {
				T.Set(0, j, k, yCoord(sub, j))
			}
		}
	}

	// +X face: i=Nx-1, vary (j,k)
	if !t.HasNeighbor(topo.Xpos) {
		i := T.Nx - 1
		for j := 0; j < T.Ny; j++ {
			for k := 0; k < T.Nz; k++ {
				T.Set(i, j, k, yCoord(sub, j))
			}
		}
	}

	// -Z face: k=0, vary (i,j)
	if !t.HasNeighbor(topo.Zneg) {
		for i := 0; i < T.Nx; i++ {
			for j := 0; j < T.Ny; j++ {
				T.Set(i, j, 0, yCoord(sub, j))
			}
		}
	}

	// +Z face: k=Nz-1, vary (i,j)
	if !t.HasNeighbor(topo.Zpos) {
		k := T.Nz - 1
		for i := 0; i < T.Nx; i++ {
			for j := 0; j < T.Ny; j++ {
				T.Set(i, j, k, yCoord(sub, j))
			}
		}
	}

	// -Y face: unchanged (already 0 from allocation)

	// +Y face: constant 1.0, applied last so it wins any shared edge
	if !t.HasNeighbor(topo.Ypos) {
		j := T.Ny - 1
		v := topFace.F(0, nil)
		for i := 0; i < T.Nx; i++ {
			for k := 0; k < T.Nz; k++ {
				T.Set(i, j, k, v)
			}
		}
	}
}

// yCoord is the analytic reference field: the global Y-coordinate of node
// (·,j,·), T(i,j,k) = j_global * Δy.
func yCoord(sub *Subdomain, j int) float64 {
	return float64(sub.GlobalJ(j)) * sub.Hy
}
