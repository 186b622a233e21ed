package insights

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"patlens/internal/logging"

	"github.com/spf13/afero"
)

// TokenLog appends raw token-endpoint responses to a diagnostic file.
// Writes are best-effort: failures are reported to the error log and
// swallowed, never surfaced to the caller.
type TokenLog struct {
	fs   afero.Fs
	path string
}

// NewTokenLog creates a token log writing through fs at path.
// An empty path disables recording.
func NewTokenLog(fs afero.Fs, path string) *TokenLog {
	return &TokenLog{fs: fs, path: path}
}

// Record appends raw prefixed with an RFC 3339 UTC timestamp.
func (l *TokenLog) Record(raw []byte) {
	if l == nil || l.path == "" {
		return
	}
	_ = l.fs.MkdirAll(filepath.Dir(l.path), 0755)

	f, err := l.fs.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logging.Error("token log: %v", err)
		return
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s %s\n", time.Now().UTC().Format(time.RFC3339), raw); err != nil {
		logging.Error("token log: %v", err)
	}
}
