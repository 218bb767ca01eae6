package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/despensa-hq/despensa/internal/domain"
)

// Package storage provides the server-side cache of generated shopping lists.

// Store caches generated shopping-list text keyed by request payload.
type Store interface {
	Close() error
	GetList(key string) (string, bool, error)
	PutList(key, text string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	ListTTL         time.Duration
	CleanupInterval time.Duration
}

const (
	defaultListTTL         = 24 * time.Hour
	defaultCleanupInterval = 6 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// CacheKey derives a stable cache key from a request payload. Order of
// recipes and ingredients is significant, matching the prompt that would be
// generated from them.
func CacheKey(req domain.ShoppingListRequest) string {
	h := sha256.New()
	for _, r := range req.RecipeNames {
		h.Write([]byte(r))
		h.Write([]byte{0})
	}
	h.Write([]byte{1})
	for _, i := range req.AvailableIngredients {
		h.Write([]byte(i))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func normalizeOptions(opts Options) Options {
	if opts.ListTTL <= 0 {
		opts.ListTTL = defaultListTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                         { return nil }
func (noopStore) GetList(string) (string, bool, error) { return "", false, nil }
func (noopStore) PutList(string, string) error         { return nil }
