// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package stencil applies the 7-point update to the interior, the
// face-interiors using halo data, the edge extrapolations, and the
// corner averages — the five phases of one iteration's Updater.
package stencil

import "github.com/cpmech/heat3d/grid"

// Coeffs holds the per-axis diffusion numbers Dx = αΔt/Δx² (and
// symmetrically for Y,Z) that the stencil multiplies its second
// differences by.
type Coeffs struct {
	Dx, Dy, Dz float64
}

// NewCoeffs computes Dx,Dy,Dz from the physical constants and a
// subdomain's spacing.
func NewCoeffs(alpha, dt, hx, hy, hz float64) Coeffs {
	return Coeffs{
		Dx: alpha * dt / (hx * hx),
		Dy: alpha * dt / (hy * hy),
		Dz: alpha * dt / (hz * hz),
	}
}

// InteriorKernel applies the 7-point stencil over the strict interior of
// the local subdomain. It is an interface so that the hot loop's
// hardware realization — plain Go, SIMD-friendly unrolling, or a GPU
// offload — can vary without touching the rest of the Updater; only the
// CPU path is implemented here (the GPU realization is out of scope).
type InteriorKernel interface {
	Apply(T, T0 *grid.Field, c Coeffs)
}

// cpuKernel is the reference InteriorKernel: a plain nested loop over
// the flat field buffer.
type cpuKernel struct{}

// DefaultKernel is the CPU interior kernel used unless an Updater is
// configured otherwise.
var DefaultKernel InteriorKernel = cpuKernel{}

func (cpuKernel) Apply(T, T0 *grid.Field, c Coeffs) {
	nx, ny, nz := T.Nx, T.Ny, T.Nz
	for i := 1; i <= nx-2; i++ {
		for j := 1; j <= ny-2; j++ {
			for k := 1; k <= nz-2; k++ {
				self := T0.At(i, j, k)
				lap := c.Dx*(T0.At(i+1, j, k)-2*self+T0.At(i-1, j, k)) +
					c.Dy*(T0.At(i, j+1, k)-2*self+T0.At(i, j-1, k)) +
					c.Dz*(T0.At(i, j, k+1)-2*self+T0.At(i, j, k-1))
				T.Set(i, j, k, self+lap)
			}
		}
	}
}
