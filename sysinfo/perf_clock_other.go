//go:build !linux

package sysinfo

import (
	"errors"
	"time"
)

func openPerfCycles(epoch time.Time) (CycleClock, error) {
	return nil, errors.New("hardware cycle counters are only read on linux")
}
