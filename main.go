// Copyright 2024 The Heat3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/heat3d/report"
	"github.com/cpmech/heat3d/solver"
)

func main() {

	exitCode := 0

	// catch errors: a panic (configuration, divisibility, transport
	// failure) is turned into mpi.Stop and a nonzero exit on the rank that
	// raised it; its message is printed only when that rank is 0. Peers
	// are not aborted. Configuration and divisibility errors are raised
	// identically on every rank, so all ranks stop together on those.
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				io.PfRed("ERROR: %v\n", err)
			}
			exitCode = 1
		}
		mpi.Stop(false)
		os.Exit(exitCode)
	}()
	mpi.Start(false)

	if mpi.Rank() == 0 {
		io.PfWhite("\nHeat3D -- distributed 3D transient heat equation solver\n\n")
	}

	flag.Parse()
	args := flag.Args()
	if len(args) != 5 {
		chk.Panic("usage: heat3d NX NY NZ ITER_MAX EPS")
	}

	cfg := solver.Config{
		Nx:      io.Atoi(args[0]),
		Ny:      io.Atoi(args[1]),
		Nz:      io.Atoi(args[2]),
		IterMax: io.Atoi(args[3]),
		Eps:     io.Atof(args[4]),
	}

	if mpi.Rank() == 0 {
		io.Pf("nx=%d ny=%d nz=%d iterMax=%d eps=%g nprocs=%d\n",
			cfg.Nx, cfg.Ny, cfg.Nz, cfg.IterMax, cfg.Eps, mpi.Size())
	}

	res, err := solver.Run(cfg)
	if err != nil {
		chk.Panic("%v", err)
	}

	if err := report.Write(res); err != nil {
		chk.Panic("cannot write output file: %v", err)
	}

	if mpi.Rank() == 0 {
		if res.Converged {
			io.Pfgreen("converged after %d iterations (elapsed %v)\n", res.Iterations, res.Elapsed)
		} else {
			io.Pfyel("did not converge after %d iterations (elapsed %v)\n", res.Iterations, res.Elapsed)
		}
		io.Pfcyan("L2-norm error = %.6e\n", res.L2Error)
	}
}
