// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package topo builds the process cartesian topology that the stencil
// engine is partitioned over: it factors the process count into a
// Px×Py×Pz grid, assigns each rank its 3D coordinates, resolves the six
// neighbor ranks, and derives the local subdomain extents.
package topo

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// NUMDIM is the number of spatial dimensions the process grid is built over.
const NUMDIM = 3

// NONE is the neighbor-table sentinel for "no peer on this side".
const NONE = -1

// direction indices into the six-entry neighbor table
const (
	Xneg = iota
	Xpos
	Yneg
	Ypos
	Zneg
	Zpos
)

// DirNames gives a readable label per direction, used in diagnostics.
var DirNames = [6]string{"-X", "+X", "-Y", "+Y", "-Z", "+Z"}

// Topology holds one process's view of the cartesian grid: its rank, its
// 3D coordinates within the Px×Py×Pz process grid, and its neighbor table.
type Topology struct {
	Rank int // this process's rank

	Px, Py, Pz int // process grid extents
	Cx, Cy, Cz int // this process's coordinates in the process grid

	Neighbors [6]int // peer rank per direction, or NONE

	// global grid and local subdomain sizing
	Nx, Ny, Nz    int // global lattice extents
	Nlx, Nly, Nlz int // local subdomain extents including halo layer
}

// New builds the topology for one rank given the world size and the global
// grid extents. It is deterministic with respect to (nprocs, Nx, Ny, Nz):
// every rank that calls New with the same arguments computes the same
// (Px,Py,Pz) factoring, so no negotiation message is required.
func New(rank, nprocs, Nx, Ny, Nz int) (*Topology, error) {
	if nprocs < 1 {
		return nil, chk.Err("process count must be at least 1; got %d", nprocs)
	}
	nx1, ny1, nz1 := Nx-1, Ny-1, Nz-1
	px, py, pz, ok := bestFactoring(nprocs, nx1, ny1, nz1)
	if !ok {
		return nil, chk.Err("cannot find a Px×Py×Pz factoring of %d processes for which (Nx-1,Ny-1,Nz-1)=(%d,%d,%d) divides evenly along each axis", nprocs, nx1, ny1, nz1)
	}

	o := &Topology{
		Rank: rank,
		Px:   px, Py: py, Pz: pz,
		Nx: Nx, Ny: Ny, Nz: Nz,
	}
	o.Cx, o.Cy, o.Cz = coordsOf(rank, px, py)
	o.Nlx = nx1/px + 1
	o.Nly = ny1/py + 1
	o.Nlz = nz1/pz + 1

	offsets := [6][3]int{
		Xneg: {-1, 0, 0}, Xpos: {1, 0, 0},
		Yneg: {0, -1, 0}, Ypos: {0, 1, 0},
		Zneg: {0, 0, -1}, Zpos: {0, 0, 1},
	}
	for d := 0; d < 6; d++ {
		cx := o.Cx + offsets[d][0]
		cy := o.Cy + offsets[d][1]
		cz := o.Cz + offsets[d][2]
		if cx < 0 || cx >= px || cy < 0 || cy >= py || cz < 0 || cz >= pz {
			o.Neighbors[d] = NONE
			continue
		}
		o.Neighbors[d] = rankOf(cx, cy, cz, px, py)
	}
	return o, nil
}

// rankOf and coordsOf agree with each other: Px varies fastest, then Py,
// then Pz. This is an internal convention only; the neighbor table is
// the public contract and is correct under any consistent choice.
func rankOf(cx, cy, cz, px, py int) int {
	return (cz*py+cy)*px + cx
}

func coordsOf(rank, px, py int) (cx, cy, cz int) {
	cz = rank / (px * py)
	rem := rank % (px * py)
	cy = rem / px
	cx = rem % px
	return
}

// bestFactoring enumerates every (a,b,c) triple with a*b*c==p and every
// assignment of that triple to (px,py,pz), keeping the assignment that
// divides (nx1,ny1,nz1) evenly per axis and, among those, is most
// balanced (smallest spread between the three factors). Equal-spread ties
// resolve to non-increasing factors (larger Px first), the same
// convention MPI_Dims_create uses; two processes therefore split along
// X, not Z.
func bestFactoring(p, nx1, ny1, nz1 int) (px, py, pz int, ok bool) {
	bestSpread := -1
	for a := 1; a <= p; a++ {
		if p%a != 0 {
			continue
		}
		qa := p / a
		for b := 1; b <= qa; b++ {
			if qa%b != 0 {
				continue
			}
			c := qa / b
			for _, perm := range permutations(a, b, c) {
				cpx, cpy, cpz := perm[0], perm[1], perm[2]
				if nx1%cpx != 0 || ny1%cpy != 0 || nz1%cpz != 0 {
					continue
				}
				spread := spreadOf(cpx, cpy, cpz)
				better := !ok || spread < bestSpread ||
					(spread == bestSpread && lexGreater(cpx, cpy, cpz, px, py, pz))
				if better {
					ok = true
					bestSpread = spread
					px, py, pz = cpx, cpy, cpz
				}
			}
		}
	}
	return
}

func lexGreater(a, b, c, x, y, z int) bool {
	if a != x {
		return a > x
	}
	if b != y {
		return b > y
	}
	return c > z
}

func spreadOf(a, b, c int) int {
	mx := utl.Imax(a, utl.Imax(b, c))
	mn := utl.Imin(a, utl.Imin(b, c))
	return mx - mn
}

// permutations returns the (up to six) distinct orderings of a,b,c.
func permutations(a, b, c int) [][3]int {
	raw := [][3]int{
		{a, b, c}, {a, c, b},
		{b, a, c}, {b, c, a},
		{c, a, b}, {c, b, a},
	}
	seen := make(map[[3]int]bool, 6)
	out := make([][3]int, 0, 6)
	for _, p := range raw {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// HasNeighbor reports whether direction d has a peer (not a physical boundary).
func (o *Topology) HasNeighbor(d int) bool {
	return o.Neighbors[d] != NONE
}
