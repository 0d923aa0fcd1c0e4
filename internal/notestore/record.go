package notestore

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/livedreligion/wheresreligion/internal/note"
)

// record is the shape of a note in the remote store.
type record struct {
	ID        string       `json:"@id,omitempty"`
	Type      string       `json:"type"`
	Title     string       `json:"title"`
	BodyText  string       `json:"BodyText"`
	Creator   string       `json:"creator"`
	Media     []note.Media `json:"media"`
	Latitude  coordinate   `json:"latitude"`
	Longitude coordinate   `json:"longitude"`
	Audio     []note.Audio `json:"audio"`
	Published bool         `json:"published"`
	Tags      []string     `json:"tags"`
	Time      timestamp    `json:"time"`
}

// coordinate accepts both JSON strings and numbers, since older records were
// written with numeric coordinates.
type coordinate string

func (c *coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = coordinate(s)
		return nil
	}
	var f json.Number
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*c = coordinate(f.String())
	return nil
}

// timestamp tolerates missing or malformed times, which decode to the zero time.
type timestamp time.Time

func (t timestamp) MarshalJSON() ([]byte, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(tt.UTC().Format(time.RFC3339Nano))
}

// inInt64Range reports whether f converts to int64 without wrapping.
func inInt64Range(f float64) bool {
	return !math.IsNaN(f) && f >= math.MinInt64 && f < math.MaxInt64
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var millis float64
		if numErr := json.Unmarshal(data, &millis); numErr == nil && inInt64Range(millis) {
			*t = timestamp(time.UnixMilli(int64(millis)).UTC())
			return nil
		}
		*t = timestamp(time.Time{})
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if ms, numErr := strconv.ParseInt(s, 10, 64); numErr == nil {
			*t = timestamp(time.UnixMilli(ms).UTC())
			return nil
		}
		*t = timestamp(time.Time{})
		return nil
	}
	*t = timestamp(parsed)
	return nil
}

func newRecord(noteType string, n note.Note) record {
	return record{
		ID:        n.ID,
		Type:      noteType,
		Title:     n.Title,
		BodyText:  n.Text,
		Creator:   n.Creator,
		Media:     nonNil(n.Media),
		Latitude:  coordinate(n.Latitude),
		Longitude: coordinate(n.Longitude),
		Audio:     nonNil(n.Audio),
		Published: n.Published,
		Tags:      nonNil(n.Tags),
		Time:      timestamp(n.Time),
	}
}

func (r record) toNote() note.Note {
	return note.Note{
		ID:        r.ID,
		Title:     r.Title,
		Text:      r.BodyText,
		Time:      time.Time(r.Time),
		Latitude:  string(r.Latitude),
		Longitude: string(r.Longitude),
		Tags:      nonNil(r.Tags),
		Media:     nonNil(r.Media),
		Audio:     nonNil(r.Audio),
		Published: r.Published,
		Creator:   r.Creator,
	}
}

func toNotes(records []record) []note.Note {
	notes := make([]note.Note, 0, len(records))
	for _, r := range records {
		notes = append(notes, r.toNote())
	}
	return notes
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
