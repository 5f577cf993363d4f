package store

import (
	"database/sql"
	"time"

	"github.com/stefankummer/promptpocket/internal/errors"
)

// Get returns the value for key in the given partition. The second
// return is false when the key is absent.
func (s *Store) Get(p Partition, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM kv WHERE partition = ? AND key = ?", string(p), key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewInternal(err)
	}
	return value, true, nil
}

// Put writes key=value in the given partition, overwriting any previous
// value (last-write-wins), and notifies watchers.
func (s *Store) Put(p Partition, key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (partition, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (partition, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, string(p), key, value, time.Now().Unix())
	if err != nil {
		return errors.NewInternal(err)
	}
	s.notify(Event{Partition: p, Key: key})
	return nil
}

// Delete removes the given keys from a partition. Missing keys are not
// an error. Each key is an individually atomic delete, not a group.
func (s *Store) Delete(p Partition, keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.Exec(
			"DELETE FROM kv WHERE partition = ? AND key = ?", string(p), key,
		); err != nil {
			return errors.NewInternal(err)
		}
		s.notify(Event{Partition: p, Key: key})
	}
	return nil
}

// Clear wipes an entire partition and notifies watchers per removed key.
func (s *Store) Clear(p Partition) error {
	keys, err := s.keys(p)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM kv WHERE partition = ?", string(p)); err != nil {
		return errors.NewInternal(err)
	}
	for _, key := range keys {
		s.notify(Event{Partition: p, Key: key})
	}
	return nil
}

// keys lists all keys in a partition.
func (s *Store) keys(p Partition) ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM kv WHERE partition = ?", string(p))
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, errors.NewInternal(err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return keys, nil
}

// Watch registers fn to be called on every key change. The returned
// cancel func unregisters it. Callbacks run synchronously on the
// writer's goroutine; keep them short.
func (s *Store) Watch(fn func(Event)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
