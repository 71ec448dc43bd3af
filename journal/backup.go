package journal

import (
	"os"
	"path/filepath"

	"github.com/oasisprotocol/deepspace/log"
)

// cleanupBackups removes pogreb's repeated index backups.
//
// When pogreb finds a stale lock file it renames the index to <name>.bac and
// rebuilds it; after repeated crashes ".bac" becomes ".bac.bac" and so on
// until the names exceed filesystem limits. Anything past the first backup is
// useless, so it is deleted before opening.
func cleanupBackups(path string, logger *log.Logger) {
	if _, err := os.Stat(filepath.Join(path, "lock")); err == nil {
		logger.Warn("journal lock file found; pogreb will rebuild its index", "path", path)
	}
	files, err := filepath.Glob(filepath.Join(path, "*.bac.bac"))
	if err != nil {
		logger.Warn("failed to glob for pogreb backups", "err", err, "path", path)
		return
	}
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			logger.Warn("failed to delete pogreb backup", "err", err, "file", f)
		}
	}
}
