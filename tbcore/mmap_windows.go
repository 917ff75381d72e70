//go:build windows

package tbcore

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

func unsafeSlice(addr uintptr, size int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
}

// osMapping holds the Windows file-mapping handles that must outlive the
// returned slice, mirroring the unix build's simpler raw-slice handle.
type osMapping struct {
	file    windows.Handle
	mapping windows.Handle
	addr    uintptr
	size    int
}

func mapFileOS(path string) ([]byte, osMapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, osMapping{}, fmt.Errorf("tbcore: open %s: %w", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, osMapping{}, fmt.Errorf("tbcore: stat %s: %w", path, err)
	}
	size := int(st.Size())
	if size == 0 {
		return nil, osMapping{}, fmt.Errorf("tbcore: %s: empty file", path)
	}

	fh := windows.Handle(f.Fd())
	mapping, err := windows.CreateFileMapping(fh, nil, windows.PAGE_READONLY, 0, 0, nil)
	if err != nil {
		return nil, osMapping{}, fmt.Errorf("tbcore: CreateFileMapping %s: %w", path, err)
	}

	addr, err := windows.MapViewOfFile(mapping, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(mapping)
		return nil, osMapping{}, fmt.Errorf("tbcore: MapViewOfFile %s: %w", path, err)
	}

	data := unsafeSlice(addr, size)
	return data, osMapping{file: fh, mapping: mapping, addr: addr, size: size}, nil
}

func unmapFileOS(m osMapping) {
	if m.addr != 0 {
		_ = windows.UnmapViewOfFile(m.addr)
	}
	if m.mapping != 0 {
		_ = windows.CloseHandle(m.mapping)
	}
}
