// Package store persists FAQ entries as JSON documents in a key-value
// backend (etcd, Redis, or memory), and answers the queries that the
// slash-command router and the dialog intake need.
//
// Each entry version is a separate document, under the key:
//
//	<prefix>/entries/<escaped tag>/<zero-padded version>
//
// so a prefix scan of a tag is an exact tag match, and the backend's
// create-if-absent write guarantees that a (tag, version) pair is unique.
package store

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/rs/zerolog"

	"github.com/tzrikka/slackfaq/pkg/faq"
)

const (
	DefaultPrefix = "slack-faq"

	versionDigits = 10
)

// ErrExists is returned by [Backend.Create] when the key is already in use.
var ErrExists = errors.New("key already exists")

// Backend is the minimal document storage that the [Store] requires.
type Backend interface {
	// Scan returns the values of all the keys that start with the given prefix.
	Scan(ctx context.Context, prefix string) ([][]byte, error)
	// Create stores a value only if its key doesn't exist yet,
	// otherwise it returns [ErrExists] and doesn't modify anything.
	Create(ctx context.Context, key string, value []byte) error
}

// Store is a typed wrapper of a [Backend], for FAQ entries.
type Store struct {
	backend Backend
	prefix  string

	now   func() time.Time
	newID func() string
}

// New returns a [Store] that keeps its documents under the given key prefix.
func New(b Backend, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{
		backend: b,
		prefix:  strings.TrimSuffix(prefix, "/"),
		now:     time.Now,
		newID:   shortuuid.New,
	}
}

func (s *Store) entriesPrefix() string {
	return s.prefix + "/entries/"
}

func (s *Store) tagPrefix(tag string) string {
	return s.entriesPrefix() + url.PathEscape(tag) + "/"
}

func (s *Store) key(tag string, version int) string {
	return fmt.Sprintf("%s%0*d", s.tagPrefix(tag), versionDigits, version)
}

// ListAll returns a summary of all the stored entries, sorted by version
// in descending order (and then by tag), without deduplication. Read
// errors are logged, and result in an empty list alongside the error.
func (s *Store) ListAll(ctx context.Context) ([]faq.Summary, error) {
	es, err := s.scan(ctx, s.entriesPrefix(), "")
	slices.SortStableFunc(es, func(a, b faq.Entry) int {
		return cmp.Or(cmp.Compare(b.Version, a.Version), strings.Compare(a.Tag, b.Tag))
	})

	ss := make([]faq.Summary, 0, len(es))
	for _, e := range es {
		ss = append(ss, e.Summary())
	}
	return ss, err
}

// FindByTag returns all the stored versions of the entry with the given
// tag, sorted by version in descending order. Read errors are logged,
// and result in an empty list alongside the error.
func (s *Store) FindByTag(ctx context.Context, tag string) ([]faq.Entry, error) {
	es, err := s.scan(ctx, s.tagPrefix(tag), tag)
	es = slices.DeleteFunc(es, func(e faq.Entry) bool {
		return e.Tag != tag
	})
	slices.SortStableFunc(es, func(a, b faq.Entry) int {
		return cmp.Compare(b.Version, a.Version)
	})
	return es, err
}

// Current returns the latest version of the entry with the given tag.
func (s *Store) Current(ctx context.Context, tag string) (faq.Entry, bool, error) {
	es, err := s.FindByTag(ctx, tag)
	if len(es) == 0 {
		return faq.Entry{}, false, err
	}
	return es[0], true, err
}

// scan returns a non-nil slice even when it also returns an error.
func (s *Store) scan(ctx context.Context, prefix, tag string) ([]faq.Entry, error) {
	l := zerolog.Ctx(ctx)

	docs, err := s.backend.Scan(ctx, prefix)
	if err != nil {
		pe := &faq.PersistenceError{Op: "query", Tag: tag, Err: err}
		l.Error().Err(pe).Str("prefix", prefix).Msg("failed to query FAQ entries")
		return []faq.Entry{}, pe
	}

	es := make([]faq.Entry, 0, len(docs))
	for _, doc := range docs {
		e := faq.Entry{}
		if err := json.Unmarshal(doc, &e); err != nil {
			l.Warn().Err(err).Str("prefix", prefix).Msg("skipping malformed FAQ entry")
			continue
		}
		es = append(es, e)
	}
	return es, nil
}

// Save persists a new entry, after assigning it a new ID and (if not set
// already) an update time. It never overwrites an existing entry: if the
// entry's tag and version are already taken, the returned error wraps
// [faq.ErrVersionTaken]. All errors are of type [*faq.PersistenceError].
func (s *Store) Save(ctx context.Context, e *faq.Entry) error {
	if e.Tag == "" {
		return &faq.PersistenceError{Op: "save", Err: errors.New("missing tag")}
	}
	if e.Version < 1 {
		return &faq.PersistenceError{Op: "save", Tag: e.Tag, Err: fmt.Errorf("invalid version %d", e.Version)}
	}

	e.ID = s.newID()
	if e.Updated.IsZero() {
		e.Updated = s.now().UTC()
	}

	doc, err := json.Marshal(e)
	if err != nil {
		return &faq.PersistenceError{Op: "save", Tag: e.Tag, Err: err}
	}

	key := s.key(e.Tag, e.Version)
	if err := s.backend.Create(ctx, key, doc); err != nil {
		if errors.Is(err, ErrExists) {
			err = fmt.Errorf("%w: %d", faq.ErrVersionTaken, e.Version)
		}
		return &faq.PersistenceError{Op: "save", Tag: e.Tag, Err: err}
	}

	zerolog.Ctx(ctx).Info().Str("id", e.ID).Str("tag", e.Tag).Int("version", e.Version).
		Str("key", key).Msg("saved FAQ entry")
	return nil
}
