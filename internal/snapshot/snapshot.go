// Package snapshot stores exported zone files in a local bolt database so a
// zone can be put back after an unwanted change.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"
)

var (
	bucketZones = []byte("zones")
	bucketMeta  = []byte("meta")
)

var errEmptyZoneID = errors.New("zone id must not be empty")

// Store persists zone file snapshots using bbolt. Each zone gets a nested
// bucket keyed by its ID; inside it, snapshots are keyed by RFC3339 UTC
// timestamps so a cursor walk returns them in capture order. Two snapshots
// within the same second overwrite each other.
type Store struct {
	db *bbolt.DB
}

// Entry is one stored snapshot.
type Entry struct {
	ZoneID   string
	TakenAt  time.Time
	Zonefile string
}

// Stats summarizes the store contents.
type Stats struct {
	Zones       int
	Snapshots   int
	UpdatedUnix int64
}

// Open opens (or creates) a bolt database at path and ensures buckets exist.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketZones); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketMeta); err != nil {
			return err
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Put stores the zone file of zoneID as taken at the given time.
func (s *Store) Put(zoneID string, takenAt time.Time, zonefile string) error {
	if zoneID == "" {
		return errEmptyZoneID
	}
	key := []byte(takenAt.UTC().Format(time.RFC3339))
	return s.db.Update(func(tx *bbolt.Tx) error {
		zones := tx.Bucket(bucketZones)
		zb, err := zones.CreateBucketIfNotExists([]byte(zoneID))
		if err != nil {
			return err
		}
		if err := zb.Put(key, []byte(zonefile)); err != nil {
			return err
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(takenAt.UTC().Unix()))
		return tx.Bucket(bucketMeta).Put([]byte("updated"), buf)
	})
}

// Latest returns the most recent snapshot of a zone, or ok=false when none
// is stored.
func (s *Store) Latest(zoneID string) (Entry, bool, error) {
	var entry Entry
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		zb := tx.Bucket(bucketZones).Bucket([]byte(zoneID))
		if zb == nil {
			return nil
		}
		k, v := zb.Cursor().Last()
		if k == nil {
			return nil
		}
		e, err := makeEntry(zoneID, k, v)
		if err != nil {
			return err
		}
		entry = e
		found = true
		return nil
	})
	return entry, found, err
}

// History returns every snapshot of a zone, oldest first.
func (s *Store) History(zoneID string) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		zb := tx.Bucket(bucketZones).Bucket([]byte(zoneID))
		if zb == nil {
			return nil
		}
		return zb.ForEach(func(k, v []byte) error {
			e, err := makeEntry(zoneID, k, v)
			if err != nil {
				return err
			}
			entries = append(entries, e)
			return nil
		})
	})
	return entries, err
}

// List returns the most recent snapshot of every zone, ordered by zone ID.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		zones := tx.Bucket(bucketZones)
		c := zones.Cursor()
		// Sub-buckets show up in the parent cursor with a nil value.
		for name, v := c.First(); name != nil; name, v = c.Next() {
			if v != nil {
				continue
			}
			k, val := zones.Bucket(name).Cursor().Last()
			if k == nil {
				continue
			}
			e, err := makeEntry(string(name), k, val)
			if err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return nil
	})
	return entries, err
}

// Stats reports how many zones and snapshots the store holds and when it was
// last written.
func (s *Store) Stats() Stats {
	st := Stats{}
	_ = s.db.View(func(tx *bbolt.Tx) error {
		zones := tx.Bucket(bucketZones)
		if zones != nil {
			c := zones.Cursor()
			for name, v := c.First(); name != nil; name, v = c.Next() {
				if v != nil {
					continue
				}
				st.Zones++
				st.Snapshots += zones.Bucket(name).Stats().KeyN
			}
		}
		if b := tx.Bucket(bucketMeta); b != nil {
			if v := b.Get([]byte("updated")); len(v) == 8 {
				st.UpdatedUnix = int64(binary.BigEndian.Uint64(v))
			}
		}
		return nil
	})
	return st
}

func makeEntry(zoneID string, key, value []byte) (Entry, error) {
	takenAt, err := time.Parse(time.RFC3339, string(key))
	if err != nil {
		return Entry{}, fmt.Errorf("corrupt snapshot key %q: %w", key, err)
	}
	return Entry{ZoneID: zoneID, TakenAt: takenAt, Zonefile: string(value)}, nil
}
