package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexInt decodes integers that the API sometimes sends as strings ("24").
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("parse integer %q: %w", s, err)
		}
		*n = FlexInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = FlexInt(v)
	return nil
}

// Meta is the pagination block of listing responses.
type Meta struct {
	CurrentPage FlexInt `json:"current_page"`
	LastPage    FlexInt `json:"last_page"`
	PerPage     FlexInt `json:"per_page"`
	Total       FlexInt `json:"total"`
	// Query echoes the search query; a string for text searches and an
	// object for exact tag searches.
	Query json.RawMessage `json:"query,omitempty"`
	Seed  *string         `json:"seed,omitempty"`
}

// QueryString returns the echoed query when it is plain text, or the tag name
// for exact tag searches.
func (m Meta) QueryString() string {
	if len(m.Query) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(m.Query, &s); err == nil {
		return s
	}
	var tag struct {
		ID  int    `json:"id"`
		Tag string `json:"tag"`
	}
	if err := json.Unmarshal(m.Query, &tag); err == nil {
		return tag.Tag
	}
	return ""
}

// WallpaperResponse is the envelope of /w/{id}.
type WallpaperResponse struct {
	Data Wallpaper `json:"data"`
}

// TagResponse is the envelope of /tag/{id}.
type TagResponse struct {
	Data Tag `json:"data"`
}

// SettingsResponse is the envelope of /settings.
type SettingsResponse struct {
	Data Settings `json:"data"`
}

// CollectionsResponse is the envelope of /collections and /collections/{username}.
type CollectionsResponse struct {
	Data []Collection `json:"data"`
}

// ListResponse is the envelope of paginated listings (search, collection contents).
type ListResponse[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}
