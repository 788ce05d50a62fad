// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package report is the post-processing gather and writer named by the
// external interfaces of the system: it is not part of the stencil
// engine, has no say over convergence, and the core packages (topo,
// grid, halo, stencil, conv) carry no dependency on it.
package report

import (
	"bytes"
	"os"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"
	"github.com/cpmech/heat3d/grid"
	"github.com/cpmech/heat3d/solver"
)

// OutDir and OutFile name the post-processing output path, output/out.dat.
const (
	OutDir  = "output"
	OutFile = "out.dat"
)

// TSendBase and TRecvBase are the tag bases named by the external
// interface contract: field data travels on 200+rank, coordinates on
// 300+rank. gosl/mpi's DblSend/DblRecv match a message purely by peer
// rank and do not expose a tag argument, so the contract is realized by
// always moving the two messages between a given pair of ranks in the
// same fixed order — field first, then coordinates — the same idiom
// halo's transport uses for its own tag contract.
const (
	TSendBase = 200
	TRecvBase = 300
)

// Write gathers every rank's local field and node coordinates to rank 0
// and writes the Tecplot-style output/out.dat: one TITLE/VARIABLES
// header followed by one ZONE block per rank, in rank order, each block
// in i-fastest (i,j,k) order.
func Write(res *solver.Result) error {
	rank, size := 0, 1
	if mpi.IsOn() {
		rank, size = mpi.Rank(), mpi.Size()
	}

	if rank != 0 {
		sendZone(res.Sub, res.T)
		return nil
	}

	if err := os.MkdirAll(OutDir, 0775); err != nil {
		return err
	}

	var header bytes.Buffer
	io.Ff(&header, "TITLE = \"heat3d\"\n")
	io.Ff(&header, "VARIABLES = \"X\", \"Y\", \"Z\", \"T\"\n")

	bufs := []*bytes.Buffer{&header}
	bufs = append(bufs, zoneBuffer(0, res.Sub, res.T))

	for peer := 1; peer < size; peer++ {
		sub := res.Sub // every rank shares the same local extents
		data, coords := recvZone(peer, sub.Nx, sub.Ny, sub.Nz)
		bufs = append(bufs, zoneBufferFromRaw(peer, sub.Nx, sub.Ny, sub.Nz, coords, data))
	}

	path := io.Sf("%s/%s", OutDir, OutFile)
	io.WriteFile(path, bufs...)
	return nil
}

// sendZone is the non-root side of Write: it ships this rank's field
// values and node-coordinate table to rank 0 over two point-to-point
// sends, field before coordinates. Both are linearized in the output's
// i-fastest order (k outer, j middle, i inner), NOT the Field's own
// storage order (which is Z-fastest, see grid.Field), so the receiver
// can pair data[idx] with coords[idx] without knowing about internal
// field layout.
func sendZone(sub *grid.Subdomain, T *grid.Field) {
	mpi.DblSend(flattenIFastest(T), 0)
	coords := flattenCoords(localCoords(sub, T.Nx, T.Ny, T.Nz))
	mpi.DblSend(coords, 0)
}

// flattenIFastest linearizes a field's values in i-fastest order,
// matching the node-coordinate ordering localCoords builds and the
// output file's required ordering.
func flattenIFastest(T *grid.Field) []float64 {
	out := make([]float64, 0, T.Nx*T.Ny*T.Nz)
	for k := 0; k < T.Nz; k++ {
		for j := 0; j < T.Ny; j++ {
			for i := 0; i < T.Nx; i++ {
				out = append(out, T.At(i, j, k))
			}
		}
	}
	return out
}

// recvZone is rank 0's side: it receives the field and coordinate
// buffers from one peer, in the same fixed order sendZone used.
func recvZone(peer, nx, ny, nz int) (data, coords []float64) {
	data = make([]float64, nx*ny*nz)
	mpi.DblRecv(data, peer)
	coords = make([]float64, 3*nx*ny*nz)
	mpi.DblRecv(coords, peer)
	return
}

// localCoords builds the dense [n][3] node-coordinate table for this
// rank's subdomain as a dense utl.Alloc matrix.
func localCoords(sub *grid.Subdomain, nx, ny, nz int) [][]float64 {
	coords := utl.Alloc(nx*ny*nz, 3)
	idx := 0
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				coords[idx][0] = float64(sub.GlobalI(i)) * sub.Hx
				coords[idx][1] = float64(sub.GlobalJ(j)) * sub.Hy
				coords[idx][2] = float64(sub.GlobalK(k)) * sub.Hz
				idx++
			}
		}
	}
	return coords
}

func flattenCoords(coords [][]float64) []float64 {
	flat := make([]float64, 0, len(coords)*3)
	for _, c := range coords {
		flat = append(flat, c[0], c[1], c[2])
	}
	return flat
}

// zoneBuffer writes one rank's ZONE block directly from its own field
// and subdomain geometry (the rank-0 case: no gather needed).
func zoneBuffer(rank int, sub *grid.Subdomain, T *grid.Field) *bytes.Buffer {
	buf := new(bytes.Buffer)
	io.Ff(buf, "ZONE T=\"P%03d\", I=%d, J=%d, K=%d, F=POINT\n", rank, T.Nx, T.Ny, T.Nz)
	for k := 0; k < T.Nz; k++ {
		for j := 0; j < T.Ny; j++ {
			for i := 0; i < T.Nx; i++ {
				x := float64(sub.GlobalI(i)) * sub.Hx
				y := float64(sub.GlobalJ(j)) * sub.Hy
				z := float64(sub.GlobalK(k)) * sub.Hz
				io.Ff(buf, "%23.15e %23.15e %23.15e %23.15e\n", x, y, z, T.At(i, j, k))
			}
		}
	}
	return buf
}

// zoneBufferFromRaw writes a ZONE block from the flattened field and
// coordinate data received from a peer rank.
func zoneBufferFromRaw(rank, nx, ny, nz int, coords, data []float64) *bytes.Buffer {
	buf := new(bytes.Buffer)
	io.Ff(buf, "ZONE T=\"P%03d\", I=%d, J=%d, K=%d, F=POINT\n", rank, nx, ny, nz)
	n := nx * ny * nz
	for idx := 0; idx < n; idx++ {
		x, y, z := coords[3*idx], coords[3*idx+1], coords[3*idx+2]
		io.Ff(buf, "%23.15e %23.15e %23.15e %23.15e\n", x, y, z, data[idx])
	}
	return buf
}
