// SPDX-License-Identifier: EPL-2.0

// Package store caches checksums on disk, keyed by path and invalidated by
// file size and modification time.
package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/ik5/audsum"
	"go.uber.org/zap"
)

const keyPrefix = "sum/"

var (
	ErrNoDir        = errors.New("cache directory is required")
	ErrCorruptEntry = errors.New("corrupt cache entry")
)

// Store is a checksum cache. It is safe for concurrent use.
type Store struct {
	db     *badger.DB
	logger *zap.Logger
}

// Open opens or creates the cache in dir. A nil logger discards output.
func Open(dir string, logger *zap.Logger) (*Store, error) {
	if dir == "" {
		return nil, ErrNoDir
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := badger.DefaultOptions(dir).
		WithLogger(badgerLogger{logger.Named("badger").Sugar()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger open %s: %w", dir, err)
	}

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached checksum of path. An entry recorded for a
// different size or modification time is a miss.
func (s *Store) Get(path string, size int64, modTime time.Time) (audsum.Checksum, bool, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(path))
		if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return audsum.Checksum{}, false, nil
	}
	if err != nil {
		return audsum.Checksum{}, false, fmt.Errorf("cache get %s: %w", path, err)
	}

	e, err := parseEntry(val)
	if err != nil {
		return audsum.Checksum{}, false, fmt.Errorf("cache get %s: %w", path, err)
	}
	if e.size != size || e.modTime != modTime.UnixNano() {
		s.logger.Debug("stale cache entry",
			zap.String("path", path),
			zap.Int64("size", e.size),
			zap.Int64("mtime", e.modTime))
		return audsum.Checksum{}, false, nil
	}

	return e.sum, true, nil
}

// Put records the checksum of path.
func (s *Store) Put(path string, size int64, modTime time.Time, sum audsum.Checksum) error {
	e := entry{size: size, modTime: modTime.UnixNano(), sum: sum}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(path), e.encode())
	})
	if err != nil {
		return fmt.Errorf("cache put %s: %w", path, err)
	}

	return nil
}

// Delete drops the entry of path, if any.
func (s *Store) Delete(path string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(path))
	})
}

func key(path string) []byte {
	return []byte(keyPrefix + path)
}

// entry value format: size|mtimeUnixNano|hex
type entry struct {
	size    int64
	modTime int64
	sum     audsum.Checksum
}

func (e entry) encode() []byte {
	return fmt.Appendf(nil, "%d|%d|%s", e.size, e.modTime, e.sum)
}

func parseEntry(b []byte) (entry, error) {
	parts := strings.Split(string(b), "|")
	if len(parts) != 3 {
		return entry{}, fmt.Errorf("%w: %d fields", ErrCorruptEntry, len(parts))
	}

	size, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return entry{}, fmt.Errorf("%w: size: %w", ErrCorruptEntry, err)
	}
	mtime, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return entry{}, fmt.Errorf("%w: mtime: %w", ErrCorruptEntry, err)
	}
	sum, err := audsum.ParseChecksum(parts[2])
	if err != nil {
		return entry{}, fmt.Errorf("%w: %w", ErrCorruptEntry, err)
	}

	return entry{size: size, modTime: mtime, sum: sum}, nil
}

// badgerLogger routes badger's messages to zap. Its info output is
// demoted to debug.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.Debugf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.Warnf(format, args...)
}
