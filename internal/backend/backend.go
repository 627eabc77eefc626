// Package backend selects and opens the key-value store that backs the
// financial state, based on application configuration.
package backend

import (
	"fmt"

	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/config"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/kv"
	kvfile "github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/kv/file"
	kvmemory "github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/kv/memory"
	kvsqlite "github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/kv/sqlite"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/log"
)

// Type identifies a persistence backend.
type Type string

const (
	Memory Type = "memory"
	File   Type = "file"
	SQLite Type = "sqlite"
)

// IsValid reports whether t names a supported backend.
func (t Type) IsValid() bool {
	switch t {
	case Memory, File, SQLite:
		return true
	}
	return false
}

// Result holds an opened store and its cleanup function.
type Result struct {
	KV      kv.Store
	Cleanup func() error
}

// Open creates the key-value store named by cfg.DataBackend.
func Open(cfg *config.Config, logger *log.Logger) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentBackend)

	t := Type(cfg.DataBackend)
	switch t {
	case Memory:
		logger.Info("Opened in-memory backend", log.FieldBackend, string(t))
		store := kvmemory.New()
		return &Result{KV: store, Cleanup: store.Close}, nil

	case File:
		store, err := kvfile.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file backend: %w", err)
		}
		logger.Info("Opened file backend",
			log.FieldBackend, string(t),
			"data_dir", cfg.DataDir)
		return &Result{KV: store, Cleanup: store.Close}, nil

	case SQLite:
		store, err := kvsqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		logger.Info("Opened sqlite backend",
			log.FieldBackend, string(t),
			"db_path", cfg.SQLiteDBPath)
		return &Result{KV: store, Cleanup: store.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}
