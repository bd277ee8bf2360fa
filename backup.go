package crocket

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

// backupTimeLayout mirrors the teacher's timestamped-artifact naming
// (tq.go uses strftime for audio clip filenames); crocket reuses it for
// autosave backups so multiple SAVE events don't clobber each other.
const backupTimeLayout = "%Y%m%dT%H%M%S"

// backupPath builds the timestamped backup filename for a save, e.g.
// saving "demo.ctf" with dir "backups" at 2026-07-30T12:00:00 produces
// "backups/demo.20260730T120000.ctf".
func backupPath(dir, saveFile string, at time.Time) string {
	base := filepath.Base(saveFile)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	stamp, err := strftime.Format(backupTimeLayout, at)
	if err != nil {
		logger.Warn("backup timestamp format failed", "err", err)
		stamp = "unknown-time"
	}
	return filepath.Join(dir, stem+"."+stamp+ext)
}

// writeBackup writes data to the computed backup path, creating dir if
// needed. Failures are dropped silently (§7: "file I/O errors on save are
// silently dropped") after a debug log line.
func writeBackup(dir, saveFile string, at time.Time, data []byte) {
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Debug("backup mkdir failed", "dir", dir, "err", err)
		return
	}
	path := backupPath(dir, saveFile, at)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Debug("backup write failed", "path", path, "err", err)
	}
}
