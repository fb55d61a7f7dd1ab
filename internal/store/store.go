// Package store persists committed features in an embedded bbolt database,
// one bucket per map.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/mapcraft/geoedit/internal/geo"
)

// ErrNotFound is returned when a map bucket or feature key is missing.
var ErrNotFound = errors.New("not found")

// Store is the feature storage backend.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open feature db: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put saves a feature for a map. An ID is assigned when the feature has
// none; the stored ID is returned.
func (s *Store) Put(mapName string, f geo.Feature) (string, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	data, err := geo.Marshal(f)
	if err != nil {
		return "", err
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(mapName))
		if err != nil {
			return err
		}

		return b.Put([]byte(f.ID), data)
	})
	if err != nil {
		return "", err
	}

	return f.ID, nil
}

// Get loads a single feature by ID.
func (s *Store) Get(mapName, id string) (geo.Feature, error) {
	var f geo.Feature

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(mapName))
		if b == nil {
			return ErrNotFound
		}

		data := b.Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}

		return geo.Unmarshal(data, &f)
	})

	return f, err
}

// List returns all features of a map as a feature collection, in key
// order. A map without a bucket yields an empty collection.
func (s *Store) List(mapName string) (geo.FeatureCollection, error) {
	fc := geo.NewFeatureCollection()

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(mapName))
		if b == nil {
			return nil
		}

		return b.ForEach(func(_, v []byte) error {
			var f geo.Feature
			if err := geo.Unmarshal(v, &f); err != nil {
				return err
			}
			fc.Features = append(fc.Features, f)

			return nil
		})
	})

	return fc, err
}

// Delete removes a feature. Deleting a missing feature returns ErrNotFound.
func (s *Store) Delete(mapName, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(mapName))
		if b == nil || b.Get([]byte(id)) == nil {
			return ErrNotFound
		}

		return b.Delete([]byte(id))
	})
}

// Maps lists the map names that have stored features.
func (s *Store) Maps() ([]string, error) {
	var names []string

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})

	return names, err
}
