//go:build !linux && amd64

package ops

import "errors"

func requestTileData() error {
	return errors.New("AMX tile permission is only requested on linux")
}
