package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

// Field is a pass-through JSON value that remembers whether it was supplied.
// An unset Field is omitted from encoded output; a Field set to null is kept.
type Field struct {
	raw json.RawMessage
	set bool
}

// NewField wraps an already encoded JSON value.
func NewField(raw json.RawMessage) Field {
	return Field{raw: append(json.RawMessage(nil), raw...), set: true}
}

// StringField is a shortcut for a field holding a JSON string.
func StringField(s string) Field {
	b, _ := json.Marshal(s)
	return Field{raw: b, set: true}
}

func (f Field) IsSet() bool {
	return f.set
}

// IsZero reports an unset field, so `omitzero` drops it when encoding.
func (f Field) IsZero() bool {
	return !f.set
}

func (f Field) Raw() json.RawMessage {
	return f.raw
}

// String returns the value when it is a JSON string.
func (f Field) String() (string, bool) {
	if !f.set {
		return "", false
	}
	var s string
	if err := json.Unmarshal(f.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func (f Field) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return f.raw, nil
}

// UnmarshalJSON is only invoked for keys present in the document, null included.
func (f *Field) UnmarshalJSON(data []byte) error {
	if f == nil {
		return errors.New("models.Field: UnmarshalJSON on nil pointer")
	}
	f.raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	f.set = true
	return nil
}

type Game struct {
	ID          int64 `json:"id"`
	Name        Field `json:"name,omitzero"`
	Price       Field `json:"price,omitzero"`
	Genre       Field `json:"genre,omitzero"`
	Platform    Field `json:"platform,omitzero"`
	Developer   Field `json:"developer,omitzero"`
	ReleaseDate Field `json:"releaseDate,omitzero"`
	AgeRating   Field `json:"ageRating,omitzero"`
}

// GameInput is the client supplied shape for create and update. Any id or
// unknown key in the payload is dropped during decoding.
type GameInput struct {
	Name        Field `json:"name"`
	Price       Field `json:"price"`
	Genre       Field `json:"genre"`
	Platform    Field `json:"platform"`
	Developer   Field `json:"developer"`
	ReleaseDate Field `json:"releaseDate"`
	AgeRating   Field `json:"ageRating"`
}

// UnmarshalJSON copies only the exact, case-sensitive keys of a JSON object.
// A repeated key keeps its last value.
func (in *GameInput) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	*in = GameInput{}
	fields := map[string]*Field{
		"name":        &in.Name,
		"price":       &in.Price,
		"genre":       &in.Genre,
		"platform":    &in.Platform,
		"developer":   &in.Developer,
		"releaseDate": &in.ReleaseDate,
		"ageRating":   &in.AgeRating,
	}
	for key, raw := range obj {
		if dst, ok := fields[key]; ok {
			*dst = NewField(normalizeNumber(raw))
		}
	}
	return nil
}

// normalizeNumber re-encodes a top-level JSON number in its shortest form,
// so 10.50 is stored as 10.5. Numbers that overflow become null.
func normalizeNumber(raw json.RawMessage) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return raw
	}

	v, err := strconv.ParseFloat(string(raw), 64)
	if math.IsInf(v, 0) {
		return json.RawMessage("null")
	}
	if err != nil {
		return raw
	}
	if v == 0 {
		v = 0 // drops the sign of -0
	}
	b, err := json.Marshal(v)
	if err != nil {
		return raw
	}
	return b
}

// NewGame copies every input field verbatim, set or not.
func NewGame(id int64, in GameInput) Game {
	return Game{
		ID:          id,
		Name:        in.Name,
		Price:       in.Price,
		Genre:       in.Genre,
		Platform:    in.Platform,
		Developer:   in.Developer,
		ReleaseDate: in.ReleaseDate,
		AgeRating:   in.AgeRating,
	}
}

// Apply overwrites only the fields present in the input.
func (g *Game) Apply(in GameInput) {
	patch := func(dst *Field, src Field) {
		if src.set {
			*dst = src
		}
	}
	patch(&g.Name, in.Name)
	patch(&g.Price, in.Price)
	patch(&g.Genre, in.Genre)
	patch(&g.Platform, in.Platform)
	patch(&g.Developer, in.Developer)
	patch(&g.ReleaseDate, in.ReleaseDate)
	patch(&g.AgeRating, in.AgeRating)
}

type Statistics struct {
	Count    int    `json:"count"`
	AvgPrice string `json:"avgPrice"`
	MinPrice string `json:"minPrice"`
	MaxPrice string `json:"maxPrice"`
}

// GameFilter holds the optional filter criteria; nil means not supplied.
type GameFilter struct {
	PriceMax *string
	Genre    *string
	Platform *string
}
