// Copyright ©2024 The vmperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vmperf-compare compares peak throughput between two session logs
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/LynnColeArt/vmperf"
)

func main() {
	var (
		baselineFile = flag.String("baseline", "", "Baseline session log")
		currentFile  = flag.String("current", "", "Current session log (default: latest in -log-dir)")
		logDir       = flag.String("log-dir", "vmperf_logs", "Directory searched for the latest session")
		confidence   = flag.Float64("confidence", vmperf.SpreadConfidence, "Confidence level of the intervals")
	)
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("vmperf-compare: ")

	if *baselineFile == "" {
		log.Fatal("-baseline is required")
	}
	if *currentFile == "" {
		latest, err := vmperf.LatestSession(*logDir)
		if err != nil {
			log.Fatalf("Failed to find current session: %v", err)
		}
		*currentFile = latest
	}

	baseline, err := vmperf.LoadSession(*baselineFile)
	if err != nil {
		log.Fatalf("Failed to load baseline: %v", err)
	}
	current, err := vmperf.LoadSession(*currentFile)
	if err != nil {
		log.Fatalf("Failed to load current session: %v", err)
	}
	if baseline.Family != current.Family {
		log.Fatalf("Sessions measure different families: %s vs %s", baseline.Family, current.Family)
	}

	deltas := vmperf.CompareSessions(baseline, current, *confidence)
	printSummary(deltas)

	for _, d := range deltas {
		if d.Missing {
			os.Exit(1)
		}
	}
}

func printSummary(deltas []vmperf.OperationDelta) {
	fmt.Println("=== vmperf Session Comparison ===")
	fmt.Println()
	fmt.Printf("%-16s %14s %14s %10s %s\n", "Operation", "Baseline", "Current", "Delta", "Note")
	fmt.Println(strings.Repeat("-", 72))

	for _, d := range deltas {
		if d.Missing {
			fmt.Printf("%-16s %14s %14s %10s\n", d.Name, "-", "-", d.Delta())
			continue
		}
		var notes []string
		for _, w := range d.Comparison.Warnings {
			notes = append(notes, w.Error())
		}
		fmt.Printf("%-16s %14s %14s %10s %s\n",
			d.Name,
			vmperf.FormatScaled(d.Old.Center, vmperf.CountBase, "Ops/s"),
			vmperf.FormatScaled(d.New.Center, vmperf.CountBase, "Ops/s"),
			d.Delta(),
			strings.Join(notes, "; "))
	}
}
