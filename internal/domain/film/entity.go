package film

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StringList is a jsonb-backed list of strings (genres, cast).
// Malformed stored data decodes to an empty list instead of failing the row.
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	*l = StringList{}
	if src == nil {
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil
	}

	var parsed []string
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil
	}
	*l = parsed
	return nil
}

// Film represents a persisted film (matches films table).
// Rows are created lazily from the public catalog the first time a film
// is reviewed or added to a group.
type Film struct {
	ID            uuid.UUID      `db:"id"`
	TMDBID        int64          `db:"tmdb_id"`
	Title         string         `db:"title"`
	OriginalTitle sql.NullString `db:"original_title"`
	Synopsis      sql.NullString `db:"synopsis"`
	ReleaseDate   sql.NullTime   `db:"release_date"`
	Runtime       sql.NullInt32  `db:"runtime"`
	PosterURL     sql.NullString `db:"poster_url"`
	AvgRating     float64        `db:"avg_rating"`
	VoteCount     int            `db:"vote_count"`
	Genres        StringList     `db:"genres"`
	Director      sql.NullString `db:"director"`
	Cast          StringList     `db:"cast_list"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}
