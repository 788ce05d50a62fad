// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_topo01_single(tst *testing.T) {

	chk.PrintTitle("topo01. single process: no neighbors")

	o, err := New(0, 1, 5, 5, 5)
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	chk.IntAssert(o.Px, 1)
	chk.IntAssert(o.Py, 1)
	chk.IntAssert(o.Pz, 1)
	for d := 0; d < 6; d++ {
		if o.Neighbors[d] != NONE {
			tst.Errorf("direction %s should have no neighbor, got %d", DirNames[d], o.Neighbors[d])
		}
	}
	chk.IntAssert(o.Nlx, 5)
	chk.IntAssert(o.Nly, 5)
	chk.IntAssert(o.Nlz, 5)
}

func Test_topo02_two_along_x(tst *testing.T) {

	chk.PrintTitle("topo02. two processes along X")

	o0, err := New(0, 2, 5, 5, 5)
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	o1, err := New(1, 2, 5, 5, 5)
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}

	// ties in balance resolve to larger Px first, so two processes split along X
	chk.IntAssert(o0.Px, 2)
	chk.IntAssert(o0.Py, 1)
	chk.IntAssert(o0.Pz, 1)

	chk.IntAssert(o0.Neighbors[Xpos], 1)
	chk.IntAssert(o1.Neighbors[Xneg], 0)
	if o0.Neighbors[Xneg] != NONE {
		tst.Errorf("rank 0 lies on the -X boundary; got neighbor %d", o0.Neighbors[Xneg])
	}
	if o1.Neighbors[Xpos] != NONE {
		tst.Errorf("rank 1 lies on the +X boundary; got neighbor %d", o1.Neighbors[Xpos])
	}
}

func Test_topo03_eight_cube(tst *testing.T) {

	chk.PrintTitle("topo03. eight processes as 2x2x2")

	o, err := New(0, 8, 9, 9, 9)
	if err != nil {
		tst.Errorf("New failed: %v", err)
		return
	}
	chk.IntAssert(o.Px, 2)
	chk.IntAssert(o.Py, 2)
	chk.IntAssert(o.Pz, 2)
	chk.IntAssert(o.Nlx, 5)
	chk.IntAssert(o.Nly, 5)
	chk.IntAssert(o.Nlz, 5)
}

func Test_topo04_indivisible(tst *testing.T) {

	chk.PrintTitle("topo04. misconfiguration: 3 processes do not divide a 4x4x4 grid of spacings")

	_, err := New(0, 3, 5, 5, 5)
	if err == nil {
		tst.Errorf("expected a divisibility error for P=3, N=5")
	}
}

func Test_topo05_neighbor_symmetry(tst *testing.T) {

	chk.PrintTitle("topo05. neighbor table is symmetric across all ranks")

	nprocs := 8
	tops := make([]*Topology, nprocs)
	for r := 0; r < nprocs; r++ {
		var err error
		tops[r], err = New(r, nprocs, 9, 9, 9)
		if err != nil {
			tst.Errorf("New failed for rank %d: %v", r, err)
			return
		}
	}
	opposite := [6]int{Xpos, Xneg, Ypos, Yneg, Zpos, Zneg}
	for r, t := range tops {
		for d := 0; d < 6; d++ {
			peer := t.Neighbors[d]
			if peer == NONE {
				continue
			}
			back := tops[peer].Neighbors[opposite[d]]
			if back != r {
				tst.Errorf("rank %d direction %s -> %d, but %d's opposite direction points to %d, not %d",
					r, DirNames[d], peer, peer, back, r)
			}
		}
	}
}
