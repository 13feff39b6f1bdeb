// Package localstore persists editor drafts on disk between sessions.
package localstore

import (
	"os"

	"github.com/peterbourgon/diskv/v3"

	"github.com/eslsoft/jyutcollab/internal/editor"
)

// Store is a diskv-backed key-value store satisfying editor.KV.
type Store struct {
	d *diskv.Diskv
}

var _ editor.KV = (*Store)(nil)

func New(dir string) *Store {
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			CacheSizeMax: 1 << 20,
		}),
	}
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	value, err := s.d.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (s *Store) Put(key string, value []byte) error {
	return s.d.Write(key, value)
}

func (s *Store) Delete(key string) error {
	err := s.d.Erase(key)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
