package tbcore

import (
	"os"
	"path/filepath"
	"strings"
)

// searchPaths splits a path list the way Init(paths) accepts it (spec.md
// §4.1, §6.2, §6.3: "`:` on POSIX, `;` on Windows"), using the host's own
// separator rather than guessing from content - a Windows drive letter like
// "C:\syzygy" must survive intact on its native platform.
func searchPaths(paths string) []string {
	paths = strings.TrimSpace(paths)
	if paths == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(paths, string(filepath.ListSeparator)) {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// findTableFile searches dirs in order for sig+ext (".rtbw" or ".rtbz"),
// returning the first hit. Missing files are not an error here; both callers
// cache a miss as a missing-flagged entry (WDL map, DTZ MRU).
func findTableFile(dirs []string, sig, ext string) (string, bool) {
	name := sig + ext
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
