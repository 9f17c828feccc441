// Package persistence keeps the saved-post identifiers across sessions.
package persistence

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Helbert77/Vigil/internal/repository"
	"golang.org/x/crypto/blake2b"
)

const (
	SavedPostsKey = "savedPostIds"
	schemaVersion = 1
)

var (
	ErrUnsupportedVersion = errors.New("unsupported saved posts version")
	ErrChecksumMismatch   = errors.New("saved posts checksum mismatch")
)

// envelope is the stored layout. Older builds wrote a bare JSON array,
// which Load still accepts.
type envelope struct {
	Version  int      `json:"version"`
	IDs      []string `json:"ids"`
	Checksum string   `json:"checksum"`
}

type SavedPosts struct {
	repo repository.KVRepository
}

func NewSavedPosts(repo repository.KVRepository) *SavedPosts {
	return &SavedPosts{repo: repo}
}

// Load returns the stored ids. Any read or decode failure is logged and
// yields an empty slice.
func (s *SavedPosts) Load(ctx context.Context) []string {
	raw, err := s.repo.Get(ctx, SavedPostsKey)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return []string{}
	} else if err != nil {
		log.Printf("failed to read saved posts: %v", err)
		return []string{}
	}

	ids, err := decode(raw)
	if err != nil {
		log.Printf("failed to parse saved posts: %v", err)
		return []string{}
	}
	return ids
}

func (s *SavedPosts) Save(ctx context.Context, ids []string) error {
	raw, err := encode(ids)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, SavedPostsKey, raw)
}

// Clear removes the stored ids entirely.
func (s *SavedPosts) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, SavedPostsKey)
}

func checksum(ids []string) (string, error) {
	b, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

func encode(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	sum, err := checksum(ids)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(envelope{Version: schemaVersion, IDs: ids, Checksum: sum})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decode(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return nil, err
		}
		return nonNil(ids), nil
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, err
	}
	if env.Version != schemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	sum, err := checksum(nonNil(env.IDs))
	if err != nil {
		return nil, err
	}
	if sum != env.Checksum {
		return nil, ErrChecksumMismatch
	}
	return nonNil(env.IDs), nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
