// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package halo

import (
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/heat3d/grid"
	"github.com/cpmech/heat3d/topo"
)

// Exchanger owns the six pairs of send/receive plane buffers for one
// process and drives the pack/transport/deliver protocol each iteration.
// Buffers are allocated once in NewExchanger and reused every iteration.
type Exchanger struct {
	topo *topo.Topology
	sub  *grid.Subdomain
	tr   Transport

	send [6][]float64
	recv [6][]float64
}

// NewExchanger allocates the plane buffers: ±X is (ny-1)(nz-1), ±Y is
// (nx-1)(nz-1), ±Z is (nx-1)(ny-1). Buffers exist for every direction,
// including ones whose neighbor is NONE; those simply carry no traffic.
func NewExchanger(t *topo.Topology, sub *grid.Subdomain, tr Transport) *Exchanger {
	nx, ny, nz := sub.Nx, sub.Ny, sub.Nz
	e := &Exchanger{topo: t, sub: sub, tr: tr}
	sizes := [6]int{
		topo.Xneg: (ny - 1) * (nz - 1), topo.Xpos: (ny - 1) * (nz - 1),
		topo.Yneg: (nx - 1) * (nz - 1), topo.Ypos: (nx - 1) * (nz - 1),
		topo.Zneg: (nx - 1) * (ny - 1), topo.Zpos: (nx - 1) * (ny - 1),
	}
	for d := 0; d < 6; d++ {
		e.send[d] = make([]float64, sizes[d])
		e.recv[d] = make([]float64, sizes[d])
	}
	return e
}

// strides for packing: (outerAxisRange-1, innerStride) per direction,
// with the two in-plane axes ordered by axis precedence X<Y<Z, earlier
// axis outer. ±X varies (j,k); ±Y varies (i,k); ±Z varies (i,j).
func (e *Exchanger) planeIndex(dir, outer, inner int) int {
	switch dir {
	case topo.Xneg, topo.Xpos:
		return (outer-1)*(e.sub.Nz-1) + (inner - 1)
	case topo.Yneg, topo.Ypos:
		return (outer-1)*(e.sub.Nz-1) + (inner - 1)
	case topo.Zneg, topo.Zpos:
		return (outer-1)*(e.sub.Ny-1) + (inner - 1)
	}
	chk.Panic("invalid halo direction %d", dir)
	return 0
}

// pack linearizes the first interior slab of T0 into each direction's
// send buffer, for directions that have a live neighbor.
func (e *Exchanger) pack(T0 *grid.Field) {
	nx, ny, nz := e.sub.Nx, e.sub.Ny, e.sub.Nz

	if e.topo.HasNeighbor(topo.Xneg) {
		for j := 1; j <= ny-2; j++ {
			for k := 1; k <= nz-2; k++ {
				e.send[topo.Xneg][e.planeIndex(topo.Xneg, j, k)] = T0.At(1, j, k)
			}
		}
	}
	if e.topo.HasNeighbor(topo.Xpos) {
		for j := 1; j <= ny-2; j++ {
			for k := 1; k <= nz-2; k++ {
				e.send[topo.Xpos][e.planeIndex(topo.Xpos, j, k)] = T0.At(nx-2, j, k)
			}
		}
	}
	if e.topo.HasNeighbor(topo.Yneg) {
		for i := 1; i <= nx-2; i++ {
			for k := 1; k <= nz-2; k++ {
				e.send[topo.Yneg][e.planeIndex(topo.Yneg, i, k)] = T0.At(i, 1, k)
			}
		}
	}
	if e.topo.HasNeighbor(topo.Ypos) {
		for i := 1; i <= nx-2; i++ {
			for k := 1; k <= nz-2; k++ {
				e.send[topo.Ypos][e.planeIndex(topo.Ypos, i, k)] = T0.At(i, ny-2, k)
			}
		}
	}
	if e.topo.HasNeighbor(topo.Zneg) {
		for i := 1; i <= nx-2; i++ {
			for j := 1; j <= ny-2; j++ {
				e.send[topo.Zneg][e.planeIndex(topo.Zneg, i, j)] = T0.At(i, j, 1)
			}
		}
	}
	if e.topo.HasNeighbor(topo.Zpos) {
		for i := 1; i <= nx-2; i++ {
			for j := 1; j <= ny-2; j++ {
				e.send[topo.Zpos][e.planeIndex(topo.Zpos, i, j)] = T0.At(i, j, nz-2)
			}
		}
	}
}

// At returns the value received on direction dir's plane at in-plane
// coordinates (outer,inner), following the same ordering pack used.
func (e *Exchanger) At(dir, outer, inner int) float64 {
	return e.recv[dir][e.planeIndex(dir, outer, inner)]
}

// Pending represents the six in-flight sends and receives of one
// iteration's halo exchange, issued by Start and drained by Wait.
type Pending struct {
	e    *Exchanger
	wg   sync.WaitGroup
	errs chan error
}

// Start packs the send planes from T0 and issues a non-blocking send and
// a receive for every direction with a live neighbor. The caller is
// expected to run the interior computation while this is in flight,
// then call Wait to drain it.
func (e *Exchanger) Start(T0 *grid.Field) *Pending {
	e.pack(T0)

	p := &Pending{e: e}
	active := 0
	for d := 0; d < 6; d++ {
		if e.topo.HasNeighbor(d) {
			active += 2 // one send, one recv
		}
	}
	p.errs = make(chan error, active)

	for d := 0; d < 6; d++ {
		if !e.topo.HasNeighbor(d) {
			continue
		}
		peer := e.topo.Neighbors[d]
		p.wg.Add(2)
		go func(d, peer int) {
			defer p.wg.Done()
			defer recoverInto(p.errs)
			e.tr.Send(e.send[d], peer)
		}(d, peer)
		go func(d, peer int) {
			defer p.wg.Done()
			defer recoverInto(p.errs)
			e.tr.Recv(e.recv[d], peer)
		}(d, peer)
	}
	return p
}

// Wait blocks until every outstanding send and receive of this iteration
// has completed, surfacing the first transport failure encountered (if
// any). Transport failures are fatal; there is no retry.
func (p *Pending) Wait() error {
	p.wg.Wait()
	close(p.errs)
	for err := range p.errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func recoverInto(errs chan<- error) {
	if r := recover(); r != nil {
		errs <- chk.Err("halo transport failed: %v", r)
	}
}
