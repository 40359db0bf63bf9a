package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CreateFile opens a new replay file under dir named after userName, the
// current time, and gameID, creating dir if needed — the same
// "{user} - {timestamp} - {game_id}.swoq" naming scheme as
// original_source/src/swoq.rs's ReplayFile::new.
func CreateFile(dir, userName, gameID string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("replay: create directory %s: %w", dir, err)
	}
	name := fmt.Sprintf("%s - %s - %s.swoq", userName, now.Format("20060102-150405"), gameID)
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("replay: create file: %w", err)
	}
	return f, nil
}
