// Copyright ©2024 The vmperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vmperf measures the sustained throughput of low-level compute
// primitives (matrix multiply-accumulate, dot products, fused
// multiply-add) on every physical core of the host.
//
// A Platform is probed once at startup. A PerfMonitor pins one worker
// thread to each selected physical core; every Measure call runs the same
// operation on all workers and merges their PerfReports. A Driver cycles
// through the selected operations and prints one report per operation:
//
//	p, err := vmperf.NewHostPlatform(logger)
//	d, err := vmperf.NewDriver(p, nil, vmperf.DriverOptions{Duration: time.Second})
//	m, err := vmperf.NewPerfMonitor(p, 0)
//	defer m.Close()
//	err = d.Run(ctx, m, os.Stdout)
//
// The operation kinds and their kernels live in package ops; topology,
// thread placement and cycle clocks live in package sysinfo.
package vmperf
