// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stencil

import (
	"github.com/cpmech/heat3d/grid"
	"github.com/cpmech/heat3d/halo"
	"github.com/cpmech/heat3d/topo"
)

// Updater runs the five phases of one iteration: snapshot, interior
// update, face-interior update from halos, edge extrapolation, and
// corner averaging.
type Updater struct {
	Kernel InteriorKernel
}

// NewUpdater returns an Updater using the default CPU interior kernel.
func NewUpdater() *Updater {
	return &Updater{Kernel: DefaultKernel}
}

// Step advances T by one iteration given the previous state, returning
// after all five phases have completed. The interior computation
// (phase 2) overlaps the halo transport (phase 3's send/recv): the
// exchange is started before the interior kernel runs, and only drained
// afterward.
func (u *Updater) Step(t *topo.Topology, sub *grid.Subdomain, T, T0 *grid.Field, ex *halo.Exchanger, c Coeffs) error {
	// phase 1: snapshot
	T0.CopyFrom(T)

	// phase 3 (transport): issue sends/receives, to be drained after
	// the interior compute below
	pending := ex.Start(T0)

	// phase 2: interior update, independent of the halo traffic
	u.Kernel.Apply(T, T0, c)

	if err := pending.Wait(); err != nil {
		return err
	}

	// phase 3 (compute): face-interior update from delivered halos
	u.faceInterior(t, sub, T, T0, ex, c)

	// phase 4: edge extrapolation
	u.edges(t, sub, T)

	// phase 5: corner averaging
	u.corners(t, sub, T)

	return nil
}

func (u *Updater) faceInterior(t *topo.Topology, sub *grid.Subdomain, T, T0 *grid.Field, ex *halo.Exchanger, c Coeffs) {
	nx, ny, nz := sub.Nx, sub.Ny, sub.Nz

	if t.HasNeighbor(topo.Xneg) {
		for j := 1; j <= ny-2; j++ {
			for k := 1; k <= nz-2; k++ {
				self := T0.At(0, j, k)
				ghost := ex.At(topo.Xneg, j, k)
				v := self +
					c.Dx*(T0.At(1, j, k)-2*self+ghost) +
					c.Dy*(T0.At(0, j+1, k)-2*self+T0.At(0, j-1, k)) +
					c.Dz*(T0.At(0, j, k+1)-2*self+T0.At(0, j, k-1))
				T.Set(0, j, k, v)
			}
		}
	}
	if t.HasNeighbor(topo.Xpos) {
		i := nx - 1
		for j := 1; j <= ny-2; j++ {
			for k := 1; k <= nz-2; k++ {
				self := T0.At(i, j, k)
				ghost := ex.At(topo.Xpos, j, k)
				v := self +
					c.Dx*(ghost-2*self+T0.At(i-1, j, k)) +
					c.Dy*(T0.At(i, j+1, k)-2*self+T0.At(i, j-1, k)) +
					c.Dz*(T0.At(i, j, k+1)-2*self+T0.At(i, j, k-1))
				T.Set(i, j, k, v)
			}
		}
	}
	if t.HasNeighbor(topo.Yneg) {
		for i := 1; i <= nx-2; i++ {
			for k := 1; k <= nz-2; k++ {
				self := T0.At(i, 0, k)
				ghost := ex.At(topo.Yneg, i, k)
				v := self +
					c.Dx*(T0.At(i+1, 0, k)-2*self+T0.At(i-1, 0, k)) +
					c.Dy*(T0.At(i, 1, k)-2*self+ghost) +
					c.Dz*(T0.At(i, 0, k+1)-2*self+T0.At(i, 0, k-1))
				T.Set(i, 0, k, v)
			}
		}
	}
	if t.HasNeighbor(topo.Ypos) {
		j := ny - 1
		for i := 1; i <= nx-2; i++ {
			for k := 1; k <= nz-2; k++ {
				self := T0.At(i, j, k)
				ghost := ex.At(topo.Ypos, i, k)
				v := self +
					c.Dx*(T0.At(i+1, j, k)-2*self+T0.At(i-1, j, k)) +
					c.Dy*(ghost-2*self+T0.At(i, j-1, k)) +
					c.Dz*(T0.At(i, j, k+1)-2*self+T0.At(i, j, k-1))
				T.Set(i, j, k, v)
			}
		}
	}
	if t.HasNeighbor(topo.Zneg) {
		for i := 1; i <= nx-2; i++ {
			for j := 1; j <= ny-2; j++ {
				self := T0.At(i, j, 0)
				ghost := ex.At(topo.Zneg, i, j)
				v := self +
					c.Dx*(T0.At(i+1, j, 0)-2*self+T0.At(i-1, j, 0)) +
					c.Dy*(T0.At(i, j+1, 0)-2*self+T0.At(i, j-1, 0)) +
					c.Dz*(T0.At(i, j, 1)-2*self+ghost)
				T.Set(i, j, 0, v)
			}
		}
	}
	if t.HasNeighbor(topo.Zpos) {
		k := nz - 1
		for i := 1; i <= nx-2; i++ {
			for j := 1; j <= ny-2; j++ {
				self := T0.At(i, j, k)
				ghost := ex.At(topo.Zpos, i, j)
				v := self +
					c.Dx*(T0.At(i+1, j, k)-2*self+T0.At(i-1, j, k)) +
					c.Dy*(T0.At(i, j+1, k)-2*self+T0.At(i, j-1, k)) +
					c.Dz*(ghost-2*self+T0.At(i, j, k-1))
				T.Set(i, j, k, v)
			}
		}
	}
}

// edges fills the 12 edge lines where two perpendicular faces both have
// a live neighbor, by linear extrapolation inward along the lower of the
// two axes forming the edge; axis priority is X before Y before Z.
func (u *Updater) edges(t *topo.Topology, sub *grid.Subdomain, T *grid.Field) {
	nx, ny, nz := sub.Nx, sub.Ny, sub.Nz

	// X-Y edges: extrapolate along X, free axis is Z
	for _, ei := range []struct{ dir, i int }{{topo.Xneg, 0}, {topo.Xpos, nx - 1}} {
		for _, ej := range []struct{ dir, j int }{{topo.Yneg, 0}, {topo.Ypos, ny - 1}} {
			if !t.HasNeighbor(ei.dir) || !t.HasNeighbor(ej.dir) {
				continue
			}
			i1, i2 := inwardPair(ei.i, nx)
			for k := 1; k <= nz-2; k++ {
				v := 2*T.At(i1, ej.j, k) - T.At(i2, ej.j, k)
				T.Set(ei.i, ej.j, k, v)
			}
		}
	}

	// X-Z edges: extrapolate along X, free axis is Y
	for _, ei := range []struct{ dir, i int }{{topo.Xneg, 0}, {topo.Xpos, nx - 1}} {
		for _, ek := range []struct{ dir, k int }{{topo.Zneg, 0}, {topo.Zpos, nz - 1}} {
			if !t.HasNeighbor(ei.dir) || !t.HasNeighbor(ek.dir) {
				continue
			}
			i1, i2 := inwardPair(ei.i, nx)
			for j := 1; j <= ny-2; j++ {
				v := 2*T.At(i1, j, ek.k) - T.At(i2, j, ek.k)
				T.Set(ei.i, j, ek.k, v)
			}
		}
	}

	// Y-Z edges: extrapolate along Y, free axis is X
	for _, ej := range []struct{ dir, j int }{{topo.Yneg, 0}, {topo.Ypos, ny - 1}} {
		for _, ek := range []struct{ dir, k int }{{topo.Zneg, 0}, {topo.Zpos, nz - 1}} {
			if !t.HasNeighbor(ej.dir) || !t.HasNeighbor(ek.dir) {
				continue
			}
			j1, j2 := inwardPair(ej.j, ny)
			for i := 1; i <= nx-2; i++ {
				v := 2*T.At(i, j1, ek.k) - T.At(i, j2, ek.k)
				T.Set(i, ej.j, ek.k, v)
			}
		}
	}
}

// corners fills the 8 corners where all three adjoining faces have a
// live neighbor, averaging the three immediate inward cells. Corners
// are written only after all edges are in place.
func (u *Updater) corners(t *topo.Topology, sub *grid.Subdomain, T *grid.Field) {
	nx, ny, nz := sub.Nx, sub.Ny, sub.Nz

	xs := []struct{ dir, i int }{{topo.Xneg, 0}, {topo.Xpos, nx - 1}}
	ys := []struct{ dir, j int }{{topo.Yneg, 0}, {topo.Ypos, ny - 1}}
	zs := []struct{ dir, k int }{{topo.Zneg, 0}, {topo.Zpos, nz - 1}}

	for _, ex := range xs {
		for _, ey := range ys {
			for _, ez := range zs {
				if !t.HasNeighbor(ex.dir) || !t.HasNeighbor(ey.dir) || !t.HasNeighbor(ez.dir) {
					continue
				}
				i1, _ := inwardPair(ex.i, nx)
				j1, _ := inwardPair(ey.j, ny)
				k1, _ := inwardPair(ez.k, nz)
				v := (T.At(i1, ey.j, ez.k) + T.At(ex.i, j1, ez.k) + T.At(ex.i, ey.j, k1)) / 3.0
				T.Set(ex.i, ey.j, ez.k, v)
			}
		}
	}
}

// inwardPair returns the two cells one and two steps inward from a
// boundary index (0 or n-1) along its axis.
func inwardPair(boundary, n int) (first, second int) {
	if boundary == 0 {
		return 1, 2
	}
	return n - 2, n - 3
}
