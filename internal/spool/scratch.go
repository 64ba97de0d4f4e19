package spool

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
)

// scratchDir returns an ASCII-safe directory for transient spool files.
// Windows per-user temp paths can contain non-ASCII account names that
// the legacy print utilities mangle, so a fixed path is used there and
// created on demand.
func scratchDir() (string, error) {
	var dir string
	if runtime.GOOS == "windows" {
		dir = `C:\pos-print\spool`
	} else {
		dir = filepath.Join(os.TempDir(), "thermal-printer")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// writeScratch stores content under a request-unique name so concurrent
// prints never clobber each other, and returns a cleanup func the caller
// defers so the file is gone whatever the delivery outcome.
func writeScratch(content []byte) (string, func(), error) {
	dir, err := scratchDir()
	if err != nil {
		return "", nil, err
	}
	path := filepath.Join(dir, "job-"+uuid.NewString()+".txt")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}
