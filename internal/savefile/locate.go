package savefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// gameAppID is the Steam application id whose userdata holds the save.
const gameAppID = "221680"

// saveSuffix marks player-progress save files inside the remote directory.
const saveSuffix = "_PRFLDB"

// ErrNoSaveFile indicates no save file could be discovered under the Steam
// userdata tree.
var ErrNoSaveFile = errors.New("no save file found")

// Locate walks the Steam userdata tree and returns the most recently
// modified save file across all local users. The returned error wraps
// ErrNoSaveFile when the tree exists but holds no save.
func Locate(steamUserdata string) (string, error) {
	userDirs, err := os.ReadDir(steamUserdata)
	if err != nil {
		return "", fmt.Errorf("%w: read steam userdata %s: %v", ErrNoSaveFile, steamUserdata, err)
	}

	var (
		best      string
		bestMTime time.Time
	)
	for _, userDir := range userDirs {
		if !userDir.IsDir() {
			continue
		}
		remote := filepath.Join(steamUserdata, userDir.Name(), gameAppID, "remote")
		entries, err := os.ReadDir(remote)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), saveSuffix) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if best == "" || info.ModTime().After(bestMTime) {
				best = filepath.Join(remote, entry.Name())
				bestMTime = info.ModTime()
			}
		}
	}

	if best == "" {
		return "", fmt.Errorf("%w under %s", ErrNoSaveFile, steamUserdata)
	}
	return best, nil
}
