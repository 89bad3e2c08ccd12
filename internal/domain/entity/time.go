package entity

import (
	"encoding/json"
	"time"
)

// TimeLayout is the millisecond ISO-8601 form emitted by REST and GraphQL alike.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders t in UTC with TimeLayout. The zero time has no rendering.
func FormatTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(TimeLayout)
	return &s
}

// JSONTime marshals as TimeLayout, or null for the zero time.
type JSONTime time.Time

func (t JSONTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatTime(time.Time(t)))
}

func (t *JSONTime) UnmarshalJSON(b []byte) error {
	var v time.Time
	if err := v.UnmarshalJSON(b); err != nil {
		return err
	}
	*t = JSONTime(v)
	return nil
}

func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		CreationDate JSONTime `json:"fecha_creacion"`
		UpdateDate   JSONTime `json:"fecha_actualizacion"`
		CreatedAt    JSONTime `json:"createdAt"`
		UpdatedAt    JSONTime `json:"updatedAt"`
	}{
		plain:        plain(p),
		CreationDate: JSONTime(p.CreationDate),
		UpdateDate:   JSONTime(p.UpdateDate),
		CreatedAt:    JSONTime(p.CreatedAt),
		UpdatedAt:    JSONTime(p.UpdatedAt),
	})
}

func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return json.Marshal(struct {
		plain
		RegisteredAt JSONTime `json:"fecha_registro"`
		CreatedAt    JSONTime `json:"createdAt"`
	}{
		plain:        plain(u),
		RegisteredAt: JSONTime(u.RegisteredAt),
		CreatedAt:    JSONTime(u.CreatedAt),
	})
}
