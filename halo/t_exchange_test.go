// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package halo

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/heat3d/grid"
	"github.com/cpmech/heat3d/topo"
)

// pairTransport connects two in-process "ranks" over buffered channels,
// so the pack/transport/deliver protocol can be exercised without a live
// MPI world.
type pairTransport struct {
	outbox map[int]chan []float64 // keyed by destination rank
	inbox  map[int]chan []float64 // keyed by source rank
}

func newPairTransports() (a, b Transport) {
	ab := make(chan []float64, 8)
	ba := make(chan []float64, 8)
	ta := &pairTransport{
		outbox: map[int]chan []float64{1: ab},
		inbox:  map[int]chan []float64{1: ba},
	}
	tb := &pairTransport{
		outbox: map[int]chan []float64{0: ba},
		inbox:  map[int]chan []float64{0: ab},
	}
	return ta, tb
}

func (t *pairTransport) Send(vals []float64, toRank int) {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	t.outbox[toRank] <- cp
}

func (t *pairTransport) Recv(vals []float64, fromRank int) {
	cp := <-t.inbox[fromRank]
	copy(vals, cp)
}

func Test_halo01_roundtrip_two_ranks(tst *testing.T) {

	chk.PrintTitle("halo01. pack/send/recv round-trip for P=2 along X")

	Nx, Ny, Nz := 5, 5, 5
	t0, err := topo.New(0, 2, Nx, Ny, Nz)
	if err != nil {
		tst.Errorf("topo.New rank0: %v", err)
		return
	}
	t1, err := topo.New(1, 2, Nx, Ny, Nz)
	if err != nil {
		tst.Errorf("topo.New rank1: %v", err)
		return
	}

	sub0 := grid.NewSubdomain(t0)
	sub1 := grid.NewSubdomain(t1)

	T0a := grid.NewField(sub0.Nx, sub0.Ny, sub0.Nz)
	T0b := grid.NewField(sub1.Nx, sub1.Ny, sub1.Nz)

	// seed rank 0's field with a recognizable pattern on the plane it packs
	// for its +X neighbor (i=nx-2)
	for j := 0; j < sub0.Ny; j++ {
		for k := 0; k < sub0.Nz; k++ {
			T0a.Set(sub0.Nx-2, j, k, float64(j*10+k))
		}
	}

	tra, trb := newPairTransports()
	exA := NewExchanger(t0, sub0, tra)
	exB := NewExchanger(t1, sub1, trb)

	pendA := exA.Start(T0a)
	pendB := exB.Start(T0b)
	if err := pendA.Wait(); err != nil {
		tst.Errorf("rank0 wait: %v", err)
		return
	}
	if err := pendB.Wait(); err != nil {
		tst.Errorf("rank1 wait: %v", err)
		return
	}

	// rank 1's -X receive buffer must equal rank 0's T0 at i=nx-2, for
	// (j,k) in [1,3]x[1,3] (the strictly-interior in-plane range)
	for j := 1; j <= sub0.Ny-2; j++ {
		for k := 1; k <= sub0.Nz-2; k++ {
			want := T0a.At(sub0.Nx-2, j, k)
			got := exB.At(topo.Xneg, j, k)
			chk.Scalar(tst, "halo plane", 1e-15, got, want)
		}
	}
}
