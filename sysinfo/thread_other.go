//go:build !linux

package sysinfo

func (HostThreads) SetAffinity(cpu uint) error { return ErrThreadControl }

func (HostThreads) SetPriority() error { return ErrThreadControl }
