//go:build !amd64 && !arm64

package ops

// No kernels are gated on anything outside arm64 and amd64.
func detectFeatures() Features { return Features{} }
