// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "github.com/cpmech/heat3d/topo"

// Lx, Ly, Lz are the physical side lengths of the domain. A unit cube
// makes the analytic reference field T(i,j,k) = j*Δy agree with the +Y
// boundary value of 1.0 at the top face.
const (
	Lx = 1.0
	Ly = 1.0
	Lz = 1.0
)

// Subdomain carries one process's local geometry: its extents (including
// the one-cell halo/boundary layer) and the uniform grid spacing.
type Subdomain struct {
	Topo *topo.Topology

	Nx, Ny, Nz int     // local extents, same as Topo.Nlx/Nly/Nlz
	Hx, Hy, Hz float64 // Δx, Δy, Δz
}

// NewSubdomain derives the local geometry for a process's topology.
func NewSubdomain(t *topo.Topology) *Subdomain {
	return &Subdomain{
		Topo: t,
		Nx:   t.Nlx, Ny: t.Nly, Nz: t.Nlz,
		Hx: Lx / float64(t.Nx-1),
		Hy: Ly / float64(t.Ny-1),
		Hz: Lz / float64(t.Nz-1),
	}
}

// GlobalJ returns the global Y-axis node index for a local j index,
// accounting for the shared boundary plane between adjacent subdomains.
func (s *Subdomain) GlobalJ(j int) int {
	return s.Topo.Cy*(s.Ny-1) + j
}

// GlobalI is the X-axis analog of GlobalJ.
func (s *Subdomain) GlobalI(i int) int {
	return s.Topo.Cx*(s.Nx-1) + i
}

// GlobalK is the Z-axis analog of GlobalJ.
func (s *Subdomain) GlobalK(k int) int {
	return s.Topo.Cz*(s.Nz-1) + k
}
