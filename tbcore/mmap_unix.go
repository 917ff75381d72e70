//go:build unix || linux || darwin

package tbcore

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// osMapping is the platform-specific handle mapFileOS needs to later unmap
// the region; on unix it is just the mapped byte slice itself.
type osMapping struct {
	raw []byte
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
	if st.Size() == 0 {
		return nil, osMapping{}, fmt.Errorf("tbcore: %s: empty file", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, osMapping{}, fmt.Errorf("tbcore: mmap %s: %w", path, err)
	}
	return data, osMapping{raw: data}, nil
}

func unmapFileOS(m osMapping) {
	if m.raw != nil {
		_ = unix.Munmap(m.raw)
	}
}
