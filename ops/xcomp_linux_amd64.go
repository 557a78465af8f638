//go:build linux && amd64

package ops

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const (
	archReqXcompPerm  = 0x1023
	xfeatureXTileData = 18
)

// requestTileData asks the kernel for permission to use AMX tile state.
func requestTileData() error {
	_, _, errno := unix.Syscall(unix.SYS_ARCH_PRCTL, archReqXcompPerm, xfeatureXTileData, 0)
	if errno != 0 {
		return fmt.Errorf("arch_prctl(ARCH_REQ_XCOMP_PERM): %w", errno)
	}
	return nil
}
