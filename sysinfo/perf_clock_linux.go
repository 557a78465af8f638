//go:build linux

package sysinfo

import (
	"encoding/binary"
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// perfCycleClock reads PERF_COUNT_HW_CPU_CYCLES for the thread that opened it.
type perfCycleClock struct {
	fd    int
	epoch time.Time
	buf   [8]byte
}

// openPerfCycles opens a user-space cycle counter on the calling thread,
// on whichever CPU it runs.
func openPerfCycles(epoch time.Time) (CycleClock, error) {
	attr := &unix.PerfEventAttr{
		Type:   unix.PERF_TYPE_HARDWARE,
		Size:   uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
		Config: unix.PERF_COUNT_HW_CPU_CYCLES,
		Bits:   unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
	}

	fd, err := unix.PerfEventOpen(attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("perf_event_open(cycles): %w", err)
	}
	if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_RESET, 0); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("reset cycle counter: %w", err)
	}
	if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_ENABLE, 0); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("enable cycle counter: %w", err)
	}
	return &perfCycleClock{fd: fd, epoch: epoch}, nil
}

func (c *perfCycleClock) Now() CPUTime {
	var cycles uint64
	if n, err := unix.Read(c.fd, c.buf[:]); err == nil && n == len(c.buf) {
		cycles = binary.NativeEndian.Uint64(c.buf[:])
	}
	return CPUTime{
		Timestamp: time.Since(c.epoch).Nanoseconds(),
		Cycles:    cycles,
	}
}

func (c *perfCycleClock) Close() error {
	unix.IoctlSetInt(c.fd, unix.PERF_EVENT_IOC_DISABLE, 0)
	return unix.Close(c.fd)
}
