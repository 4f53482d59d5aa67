// Package dream provides dream domain models and repositories.
package dream

import (
	"errors"
	"strings"
	"time"

	"github.com/at-ishikawa/dreamer/internal/meaning"
)

// ErrNotFound is returned when a dream does not exist.
var ErrNotFound = errors.New("dream not found")

const DefaultDreamType = "normal"

// Dream is a user-authored dream entry.
type Dream struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	DreamType   string    `db:"dream_type" json:"dream_type"`
	Tags        string    `db:"tags" json:"tags"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Text is what keywords are extracted from.
func (d Dream) Text() string {
	return strings.TrimSpace(d.Title + " " + d.Description)
}

// TagList splits the comma separated tags.
func (d Dream) TagList() []string {
	var tags []string
	for _, tag := range strings.Split(d.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags is the inverse of TagList.
func JoinTags(tags []string) string {
	var cleaned []string
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return strings.Join(cleaned, ",")
}

// MeaningRecord is a resolved keyword meaning saved for a dream.
type MeaningRecord struct {
	ID        int64     `db:"id"`
	DreamID   int64     `db:"dream_id"`
	Word      string    `db:"word"`
	Meaning   string    `db:"meaning"`
	Source    string    `db:"source"`
	Language  string    `db:"language"`
	CreatedAt time.Time `db:"created_at"`
}

// NewMeaningRecords converts resolved entries of a dream into records.
func NewMeaningRecords(dreamID int64, entries []meaning.Entry, createdAt time.Time) []MeaningRecord {
	records := make([]MeaningRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, MeaningRecord{
			DreamID:   dreamID,
			Word:      entry.Word,
			Meaning:   entry.Meaning,
			Source:    string(entry.Source),
			Language:  entry.Language,
			CreatedAt: createdAt,
		})
	}
	return records
}

// Entry converts the record back into a resolved entry.
func (r MeaningRecord) Entry() meaning.Entry {
	return meaning.Entry{
		Word:     r.Word,
		Meaning:  r.Meaning,
		Source:   meaning.Source(r.Source),
		Language: r.Language,
	}
}
