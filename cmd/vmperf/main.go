// Copyright ©2024 The vmperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vmperf measures per-core compute throughput until interrupted
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/LynnColeArt/vmperf"
	"github.com/LynnColeArt/vmperf/sysinfo"
)

func main() {
	cfg := vmperf.DefaultConfig()
	var (
		opsList     = flag.String("ops", "", "Comma-separated operations to measure (default: all supported)")
		list        = flag.Bool("list", false, "List supported operations and exit")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.IntVar(&cfg.Cores, "cores", 0, "Physical cores to use (0 = all)")
	flag.Uint64Var(&cfg.Steps, "steps", cfg.Steps, "Kernel iterations per measurement call")
	flag.DurationVar(&cfg.Duration, "duration", cfg.Duration, "Kernel time per report and core")
	flag.IntVar(&cfg.Rounds, "rounds", 0, "Reports to print (0 = until interrupted)")
	flag.StringVar(&cfg.LogDir, "log-dir", "", "Write a JSON session log to this directory")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose output")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("vmperf: ")

	if *showVersion {
		v, _ := vmperf.Version()
		if v == "" {
			v = "(devel)"
		}
		fmt.Println("vmperf", v, runtime.Version())
		return
	}

	if *opsList != "" {
		cfg.Ops = strings.Split(*opsList, ",")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	p, err := vmperf.NewHostPlatform(log.Default())
	if err != nil {
		log.Fatal(err)
	}

	if *list {
		for _, k := range p.Source.Supported() {
			fmt.Println(k)
		}
		return
	}

	driver, err := vmperf.NewDriver(p, cfg.Ops, vmperf.DriverOptions{
		Steps:    cfg.Steps,
		Duration: cfg.Duration,
		Rounds:   cfg.Rounds,
		Verbose:  cfg.Verbose,
	})
	if err != nil {
		log.Fatal(err)
	}

	host := sysinfo.Describe(context.Background())

	if cfg.LogDir != "" {
		rl, err := vmperf.NewReportLogger(cfg.LogDir, "vmperf", vmperf.Session{
			Host:     host.String(),
			Family:   p.Family.String(),
			Features: p.Features.String(),
		})
		if err != nil {
			log.Fatal(err)
		}
		driver.SetReportLogger(rl)
		if cfg.Verbose {
			log.Printf("session log: %s", rl.Path())
		}
	}

	monitor, err := vmperf.NewPerfMonitor(p, cfg.Cores)
	if err != nil {
		log.Fatal(err)
	}
	defer monitor.Close()

	if cfg.Verbose {
		fmt.Println("=== vmperf ===")
		fmt.Printf("Host: %s\n", host)
		fmt.Printf("Family: %s\n", p.Family)
		fmt.Printf("Features: %s\n", p.Features)
		fmt.Printf("Threads: %d, physical cores: %d, workers: %d\n",
			len(p.Cores), len(p.PhysicalCores()), len(monitor.Cores()))
		fmt.Printf("Operations: %v\n", driver.Kinds())
		fmt.Println()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := driver.Run(ctx, monitor, os.Stdout); err != nil {
		monitor.Close()
		log.Fatal(err)
	}
}
