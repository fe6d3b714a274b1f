package model

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Genres is the ordered list of free-text genre tags attached to a venue or
// an artist.  It is persisted as a JSON array so the same column works on
// MySQL (JSON) and SQLite (TEXT).
type Genres []string

// Value implements driver.Valuer.  A nil slice is stored as "[]" so the
// column never holds NULL.
func (g Genres) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(g))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (g *Genres) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*g = Genres{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("genres: unsupported column type %T", src)
	}
	if len(raw) == 0 {
		*g = Genres{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("genres: %w", err)
	}
	*g = Genres(out)
	return nil
}

// Clean trims every tag and drops the empty ones, keeping the original order.
func (g Genres) Clean() Genres {
	out := make(Genres, 0, len(g))
	for _, s := range g {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// String joins the tags for display.
func (g Genres) String() string {
	return strings.Join(g, ", ")
}
