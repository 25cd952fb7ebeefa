package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzrikka/slackfaq/pkg/faq"
)

var testTime = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func newTestStore(b Backend) *Store {
	s := New(b, "test")
	s.now = func() time.Time { return testTime }
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
	return s
}

func save(t *testing.T, s *Store, tag, title string, version int) {
	t.Helper()
	require.NoError(t, s.Save(t.Context(), &faq.Entry{Tag: tag, Title: title, Content: title + " content", Version: version}))
}

type failingBackend struct {
	err error
}

func (f failingBackend) Scan(_ context.Context, _ string) ([][]byte, error) {
	return nil, f.err
}

func (f failingBackend) Create(_ context.Context, _ string, _ []byte) error {
	return f.err
}

func TestStoreSaveAndFindByTag(t *testing.T) {
	s := newTestStore(NewMemoryBackend())
	save(t, s, "vpn", "VPN access", 1)
	save(t, s, "vpn", "VPN access v2", 2)
	save(t, s, "vpn2", "Other", 1)

	got, err := s.FindByTag(t.Context(), "vpn")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Version)
	assert.Equal(t, "VPN access v2", got[0].Title)
	assert.Equal(t, 1, got[1].Version)
	assert.Equal(t, "id1", got[1].ID)
	assert.Equal(t, testTime, got[1].Updated)

	got, err = s.FindByTag(t.Context(), "nosuchtag")
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoreCurrent(t *testing.T) {
	s := newTestStore(NewMemoryBackend())
	for v := 1; v <= 11; v++ {
		save(t, s, "help", fmt.Sprintf("Help v%d", v), v)
	}

	e, ok, err := s.Current(t.Context(), "help")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 11, e.Version)
	assert.Equal(t, "Help v11", e.Title)

	_, ok, err = s.Current(t.Context(), "nosuchtag")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreTagsWithSpecialCharacters(t *testing.T) {
	s := newTestStore(NewMemoryBackend())
	save(t, s, "a/b", "slash", 1)
	save(t, s, "a", "plain", 1)

	got, err := s.FindByTag(t.Context(), "a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "plain", got[0].Title)

	got, err = s.FindByTag(t.Context(), "a/b")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "slash", got[0].Title)
}

func TestStoreListAll(t *testing.T) {
	s := newTestStore(NewMemoryBackend())
	save(t, s, "vpn", "VPN access", 1)
	save(t, s, "wifi", "Wi-Fi", 1)
	save(t, s, "vpn", "VPN access v2", 2)

	want := []faq.Summary{
		{Tag: "vpn", Title: "VPN access v2", Version: 2},
		{Tag: "vpn", Title: "VPN access", Version: 1},
		{Tag: "wifi", Title: "Wi-Fi", Version: 1},
	}
	got, err := s.ListAll(t.Context())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStoreSaveNeverOverwrites(t *testing.T) {
	s := newTestStore(NewMemoryBackend())
	save(t, s, "vpn", "VPN access", 1)

	err := s.Save(t.Context(), &faq.Entry{Tag: "vpn", Title: "Duplicate", Version: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, faq.ErrVersionTaken)

	var pe *faq.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "save", pe.Op)

	got, err := s.FindByTag(t.Context(), "vpn")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "VPN access", got[0].Title)
}

func TestStoreSaveConcurrentSameVersion(t *testing.T) {
	s := New(NewMemoryBackend(), "")
	errs := make(chan error, 10)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Save(t.Context(), &faq.Entry{Tag: "race", Title: fmt.Sprint(i), Version: 1})
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
	got, err := s.FindByTag(t.Context(), "race")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStoreSaveInvalidEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry faq.Entry
	}{
		{
			name:  "missing_tag",
			entry: faq.Entry{Title: "title", Version: 1},
		},
		{
			name:  "zero_version",
			entry: faq.Entry{Tag: "tag", Title: "title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewMemoryBackend()
			s := New(b, "")
			var pe *faq.PersistenceError
			assert.ErrorAs(t, s.Save(t.Context(), &tt.entry), &pe)

			docs, err := b.Scan(t.Context(), "")
			require.NoError(t, err)
			assert.Empty(t, docs)
		})
	}
}

func TestStoreBackendFailures(t *testing.T) {
	s := New(failingBackend{err: errors.New("connection refused")}, "")

	var pe *faq.PersistenceError

	ss, err := s.ListAll(t.Context())
	assert.NotNil(t, ss)
	assert.Empty(t, ss)
	assert.ErrorAs(t, err, &pe)

	es, err := s.FindByTag(t.Context(), "vpn")
	assert.NotNil(t, es)
	assert.Empty(t, es)
	assert.ErrorAs(t, err, &pe)

	_, ok, err := s.Current(t.Context(), "vpn")
	assert.False(t, ok)
	assert.ErrorAs(t, err, &pe)

	err = s.Save(t.Context(), &faq.Entry{Tag: "vpn", Version: 1})
	require.ErrorAs(t, err, &pe)
	assert.EqualError(t, pe.Err, "connection refused")
}

func TestStoreSkipsMalformedDocuments(t *testing.T) {
	b := NewMemoryBackend()
	s := newTestStore(b)
	save(t, s, "vpn", "VPN access", 1)
	require.NoError(t, b.Create(t.Context(), s.key("vpn", 2), []byte("not JSON")))

	got, err := s.FindByTag(t.Context(), "vpn")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Version)
}
