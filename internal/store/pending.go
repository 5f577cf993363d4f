package store

import (
	"database/sql"
	"time"

	"github.com/stefankummer/promptpocket/internal/errors"
)

// PendingSelection is the transient handoff record written by the
// context-menu save path and consumed by the next popup session. At
// most one exists at a time; a second write overwrites the first.
type PendingSelection struct {
	Text        string
	SourceURL   string
	SourceTitle string
}

// PutPending stores a pending selection, replacing any previous one
// (last-write-wins, no queue).
func (s *Store) PutPending(ps PendingSelection) error {
	now := time.Now().Unix()
	upsert := `
		INSERT INTO kv (partition, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (partition, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	for key, value := range map[string]string{
		KeyPendingSelection: ps.Text,
		KeySourceURL:        ps.SourceURL,
		KeySourceTitle:      ps.SourceTitle,
	} {
		if _, err := s.db.Exec(upsert, string(PartitionLocal), key, value, now); err != nil {
			return errors.NewInternal(err)
		}
		s.notify(Event{Partition: PartitionLocal, Key: key})
	}
	return nil
}

// TakePending atomically reads and clears the pending selection.
// Returns nil when none is stored; a second Take after a Take returns
// nil. This is the one multi-key operation that runs as a transaction,
// so two concurrent consumers cannot both observe the record.
func (s *Store) TakePending() (*PendingSelection, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer tx.Rollback()

	get := func(key string) (string, bool, error) {
		var v string
		err := tx.QueryRow(
			"SELECT value FROM kv WHERE partition = ? AND key = ?",
			string(PartitionLocal), key,
		).Scan(&v)
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		return v, true, nil
	}

	text, ok, err := get(KeyPendingSelection)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	if !ok {
		return nil, nil
	}
	url, _, err := get(KeySourceURL)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	title, _, err := get(KeySourceTitle)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	if _, err := tx.Exec(
		"DELETE FROM kv WHERE partition = ? AND key IN (?, ?, ?)",
		string(PartitionLocal), KeyPendingSelection, KeySourceURL, KeySourceTitle,
	); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.NewInternal(err)
	}

	for _, key := range []string{KeyPendingSelection, KeySourceURL, KeySourceTitle} {
		s.notify(Event{Partition: PartitionLocal, Key: key})
	}

	return &PendingSelection{Text: text, SourceURL: url, SourceTitle: title}, nil
}
