// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package halo implements the per-iteration boundary exchange: packing
// the six send planes, issuing non-blocking sends to existing neighbors,
// posting blocking receives, waiting for all transfers, and exposing the
// received planes to the stencil updater.
package halo

import (
	"github.com/cpmech/gosl/mpi"
)

// Transport is the point-to-point messaging primitive the exchanger needs.
// It is an interface so the exchange protocol can be unit-tested without a
// live MPI world: see pairTransport in t_exchange_test.go.
type Transport interface {
	Send(vals []float64, toRank int)
	Recv(vals []float64, fromRank int)
}

// mpiTransport is the production Transport, a thin adapter over
// gosl/mpi's world communicator. DblSend/DblRecv match purely on the
// peer's rank; this is sufficient here because exactly one message flows
// per (iteration, direction, neighbor) pair, so source-rank matching
// alone realizes the tag contract — see DESIGN.md.
type mpiTransport struct{}

// NewMPITransport builds a Transport over the MPI world communicator.
func NewMPITransport() Transport {
	return mpiTransport{}
}

func (mpiTransport) Send(vals []float64, toRank int) {
	mpi.DblSend(vals, toRank)
}

func (mpiTransport) Recv(vals []float64, fromRank int) {
	mpi.DblRecv(vals, fromRank)
}
