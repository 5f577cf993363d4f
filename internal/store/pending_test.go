package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPending_TakeClears(t *testing.T) {
	s := openTestStore(t)

	err := s.PutPending(PendingSelection{
		Text:        "Explain quantum entanglement in simple terms",
		SourceURL:   "https://physics.example/entanglement",
		SourceTitle: "Entanglement 101",
	})
	require.NoError(t, err)

	ps, err := s.TakePending()
	require.NoError(t, err)
	require.NotNil(t, ps)
	require.Equal(t, "Explain quantum entanglement in simple terms", ps.Text)
	require.Equal(t, "https://physics.example/entanglement", ps.SourceURL)
	require.Equal(t, "Entanglement 101", ps.SourceTitle)

	// Read-once: the second take observes nothing.
	ps, err = s.TakePending()
	require.NoError(t, err)
	require.Nil(t, ps)
}

func TestPending_LastWriteWins(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.PutPending(PendingSelection{Text: "first", SourceURL: "https://a.test"}))
	require.NoError(t, s.PutPending(PendingSelection{Text: "second", SourceURL: "https://b.test"}))

	ps, err := s.TakePending()
	require.NoError(t, err)
	require.NotNil(t, ps)
	require.Equal(t, "second", ps.Text)
	require.Equal(t, "https://b.test", ps.SourceURL)
}

func TestPending_EmptyStore(t *testing.T) {
	s := openTestStore(t)

	ps, err := s.TakePending()
	require.NoError(t, err)
	require.Nil(t, ps)
}
