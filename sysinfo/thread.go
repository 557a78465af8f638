package sysinfo

import "errors"

// ThreadControl places and prioritises the calling OS thread. Callers lock
// their goroutine to its thread first.
type ThreadControl interface {
	SetAffinity(cpu uint) error
	SetPriority() error
}

// ErrThreadControl is returned where thread placement is not implemented.
var ErrThreadControl = errors.New("sysinfo: thread control unsupported on this platform")

// HostThreads controls threads of the current process.
type HostThreads struct{}
