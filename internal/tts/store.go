package tts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Atharva080324/TrueScan/internal/domain"
)

// Clip file naming.
const (
	clipPrefix = "tts_"
	clipSuffix = ".mp3"
)

// Store manages the audio clip directory.
type Store struct {
	dir      string
	maxClips int
}

// NewStore creates the clip store and its directory.
func NewStore(dir string, maxClips int) (*Store, error) {
	if maxClips <= 0 {
		maxClips = 50
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}
	return &Store{dir: dir, maxClips: maxClips}, nil
}

// Save writes audio bytes as a new timestamped clip and returns it.
// Older clips beyond the configured maximum are pruned.
func (s *Store) Save(audio []byte) (domain.Clip, error) {
	now := time.Now()
	id := clipPrefix + now.Format("20060102_150405") + clipSuffix

	// Timestamp collisions get a nanosecond suffix.
	if _, err := os.Stat(filepath.Join(s.dir, id)); err == nil {
		id = fmt.Sprintf("%s%s_%d%s", clipPrefix, now.Format("20060102_150405"), now.Nanosecond(), clipSuffix)
	}

	path := filepath.Join(s.dir, id)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return domain.Clip{}, fmt.Errorf("write clip: %w", err)
	}

	if err := s.prune(); err != nil {
		return domain.Clip{}, err
	}

	return domain.Clip{
		ID:        id,
		Size:      int64(len(audio)),
		CreatedAt: now.UTC(),
	}, nil
}

// List returns stored clips, newest first.
func (s *Store) List() ([]domain.Clip, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read audio dir: %w", err)
	}

	clips := make([]domain.Clip, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isClipName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		clips = append(clips, domain.Clip{
			ID:        entry.Name(),
			Size:      info.Size(),
			CreatedAt: info.ModTime().UTC(),
		})
	}

	sort.Slice(clips, func(i, j int) bool {
		return clips[i].CreatedAt.After(clips[j].CreatedAt)
	})

	return clips, nil
}

// Path resolves a clip ID to its file path.
// IDs that do not look like clip names are rejected before any
// filesystem access, which also blocks path traversal.
func (s *Store) Path(id string) (string, error) {
	if !isClipName(id) {
		return "", fmt.Errorf("%w: %q", domain.ErrClipNotFound, id)
	}

	path := filepath.Join(s.dir, id)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrClipNotFound, id)
	}

	return path, nil
}

// prune removes the oldest clips beyond the configured maximum.
func (s *Store) prune() error {
	clips, err := s.List()
	if err != nil {
		return err
	}

	for _, clip := range clips[min(len(clips), s.maxClips):] {
		if err := os.Remove(filepath.Join(s.dir, clip.ID)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("prune clip %s: %w", clip.ID, err)
		}
	}

	return nil
}

// isClipName reports whether name matches the clip naming scheme.
func isClipName(name string) bool {
	return strings.HasPrefix(name, clipPrefix) &&
		strings.HasSuffix(name, clipSuffix) &&
		!strings.ContainsAny(name, "/\\") &&
		name == filepath.Base(name)
}
