// Package media persists generated scene art and narration to disk and maps
// the files to the URLs the HTTP layer serves them under.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/webp"
	"github.com/segmentio/ksuid"
)

const (
	imageDir = "images/scenes"
	audioDir = "audio/scenes"

	// URLPrefix is where the server mounts the store's root directory.
	URLPrefix = "/media"
)

type Store struct {
	root string
}

func NewStore(root string) *Store {
	if root == "" {
		root = "data"
	}
	return &Store{root: root}
}

// Root returns the on-disk directory the store writes under.
func (s *Store) Root() string { return s.root }

func (s *Store) ensureDir(sub string) error {
	path := filepath.Join(s.root, sub)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0755)
	}
	return nil
}

// SaveSceneImage re-encodes provider image bytes as a high-quality WebP and
// returns the URL path the file is served at.
func (s *Store) SaveSceneImage(data []byte) (string, error) {
	if err := s.ensureDir(imageDir); err != nil {
		return "", fmt.Errorf("failed to create image dir: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		// Fallback: try generic decode if not PNG
		var err2 error
		img, _, err2 = image.Decode(bytes.NewReader(data))
		if err2 != nil {
			return "", fmt.Errorf("failed to decode image (png: %v, generic: %v)", err, err2)
		}
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, webp.Options{Lossless: false, Quality: 90}); err != nil {
		return "", fmt.Errorf("failed to encode webp: %w", err)
	}

	filename := ksuid.New().String() + ".webp"
	fullPath := filepath.Join(s.root, imageDir, filename)
	if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}

	return URLPrefix + "/" + imageDir + "/" + filename, nil
}

// SaveNarration writes MP3 narration bytes and returns the URL path the file
// is served at.
func (s *Store) SaveNarration(data []byte) (string, error) {
	if err := s.ensureDir(audioDir); err != nil {
		return "", fmt.Errorf("failed to create audio dir: %w", err)
	}

	filename := ksuid.New().String() + ".mp3"
	fullPath := filepath.Join(s.root, audioDir, filename)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}

	return URLPrefix + "/" + audioDir + "/" + filename, nil
}
