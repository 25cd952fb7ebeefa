package faq

import (
	"time"
)

// Entry is a single immutable version of a FAQ. A "new version" of a
// FAQ is always a new entry with the same tag and a higher version.
type Entry struct {
	ID      string    `json:"id"`
	Tag     string    `json:"tag"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Version int       `json:"version"`
	Author  string    `json:"author,omitempty"`
	Channel string    `json:"channel,omitempty"`
	Updated time.Time `json:"updated"`
}

// Summary is the projection of an [Entry] that listings need.
type Summary struct {
	Tag     string
	Title   string
	Version int
}

// Summary returns the listing projection of the entry.
func (e Entry) Summary() Summary {
	return Summary{Tag: e.Tag, Title: e.Title, Version: e.Version}
}

// NextVersion returns the version that a new submission should get, given
// the existing entries of a tag sorted by version in descending order.
// A tag without entries starts at version 1.
func NextVersion(existing []Entry) int {
	if len(existing) == 0 {
		return 1
	}
	return existing[0].Version + 1
}
