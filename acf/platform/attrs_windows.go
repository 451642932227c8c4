//go:build windows

package platform

import "syscall"

func getAttribute(path string) uint8 {
	p, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return 0
	}
	attrs, err := syscall.GetFileAttributes(p)
	if err != nil {
		return 0
	}
	return uint8(attrs)
}

func setAttribute(path string, attr uint8) error {
	p, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	return syscall.SetFileAttributes(p, uint32(attr))
}
