//go:build linux

package sysinfo

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// highestPriority is the most favourable nice value.
const highestPriority = -20

// SetAffinity pins the calling thread to cpu.
func (HostThreads) SetAffinity(cpu uint) error {
	var set unix.CPUSet
	set.Set(int(cpu))
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("sched_setaffinity(cpu %d): %w", cpu, err)
	}
	return nil
}

// SetPriority raises the calling thread's scheduling priority. Without
// CAP_SYS_NICE this fails with EACCES.
func (HostThreads) SetPriority() error {
	if err := unix.Setpriority(unix.PRIO_PROCESS, unix.Gettid(), highestPriority); err != nil {
		return fmt.Errorf("setpriority(%d): %w", highestPriority, err)
	}
	return nil
}
