package tbcore

import "fmt"

// mmapHandle wraps a memory-mapped tablebase file. data is the full mapped
// region including the 4-byte magic header; callers slice past it. Grounded
// on other_examples/marmos91-dittofs__mmap_shared.go's split of OS-agnostic
// bookkeeping (this file) from the unix/windows syscalls (mmap_unix.go,
// mmap_windows.go).
type mmapHandle struct {
	data []byte
	os   osMapping
}

var (
	wdlMagic = [4]byte{0x71, 0xE8, 0x23, 0x5D}
	dtzMagic = [4]byte{0xD7, 0x66, 0x0C, 0xA5}
)

// mapFile memory-maps path read-only and verifies its magic header, per
// spec.md §4.1 "File Mapper". It never copies the file into the Go heap:
// every table structure built on top (pairsData's byte slices) is a window
// into this mapping, kept alive for the process lifetime once loaded.
//
// By the time mapFile is called, findTableFile has already established that
// path exists, so a failure here is not "table absent" (an ordinary miss) but
// a table the caller declared present turning out to be unmappable or
// corrupt — spec.md §7 channel 3 calls both cases fatal and says the process
// aborts; there is no success/miss value to return to the caller here.
func mapFile(path string, magic [4]byte) mmapHandle {
	data, osMap, err := mapFileOS(path)
	if err != nil {
		panic(fmt.Sprintf("tbcore: %s: mmap failed: %v", path, err))
	}
	if len(data) < 4 || data[0] != magic[0] || data[1] != magic[1] || data[2] != magic[2] || data[3] != magic[3] {
		unmapFileOS(osMap)
		panic(fmt.Sprintf("tbcore: %s: bad magic header", path))
	}
	return mmapHandle{data: data, os: osMap}
}

func (h mmapHandle) body() []byte { return h.data[4:] }
