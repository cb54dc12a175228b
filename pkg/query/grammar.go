package query

import (
	"regexp"
	"strings"
)

// Filters are the tag and scalar filters encoded into the q parameter.
type Filters struct {
	// Included tags, lowercase, in insertion order.
	Included []string `json:"included,omitempty"`
	// Excluded tags, lowercase, in insertion order.
	Excluded []string `json:"excluded,omitempty"`
	// ID is an exact tag id. When set, tag sets are not serialized.
	ID string `json:"id,omitempty"`
	// Username restricts results to one uploader.
	Username string `json:"username,omitempty"`
	// Type restricts results to a file type (png or jpg).
	Type string `json:"type,omitempty"`
	// Like finds wallpapers similar to the given wallpaper id.
	Like string `json:"like,omitempty"`
	// Keyword is free text that is not a tag.
	Keyword string `json:"keyword,omitempty"`
}

func (f Filters) clone() Filters {
	out := f
	out.Included = append([]string(nil), f.Included...)
	out.Excluded = append([]string(nil), f.Excluded...)
	return out
}

var (
	tagPattern      = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N}_.'&-]*$`)
	wallpaperIDExpr = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	digitsExpr      = regexp.MustCompile(`^[0-9]+$`)
)

func isTag(s string) bool {
	return tagPattern.MatchString(s)
}

// containsTag reports whether tags already holds tag, ignoring case.
func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func addTag(tags []string, tag string) []string {
	if containsTag(tags, tag) {
		return tags
	}
	return append(tags, tag)
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) <= len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return s[len(prefix):], true
}

// parseQuery tokenizes a free-form search string into filters.
//
// Token rules, first match wins:
//
//	@name      uploader
//	id:123     exact tag id
//	type:png   file type
//	like:abc   similar to wallpaper
//	-tag       excluded tag
//	+tag, tag  included tag
//
// Anything else is kept as keyword text in its original order.
func parseQuery(q string) Filters {
	var f Filters
	var keyword []string

	for _, tok := range strings.Fields(q) {
		if name, ok := strings.CutPrefix(tok, "@"); ok && name != "" {
			f.Username = name
			continue
		}
		if id, ok := cutPrefixFold(tok, "id:"); ok && digitsExpr.MatchString(id) {
			f.ID = id
			continue
		}
		if typ, ok := cutPrefixFold(tok, "type:"); ok {
			if ft, err := parseFileType(typ); err == nil {
				f.Type = ft
				continue
			}
		}
		if like, ok := cutPrefixFold(tok, "like:"); ok {
			f.Like = like
			continue
		}

		lower := strings.ToLower(tok)
		switch {
		case lower[0] == '-' && isTag(lower[1:]):
			f.Excluded = addTag(f.Excluded, lower[1:])
		case lower[0] == '+' && isTag(lower[1:]):
			f.Included = addTag(f.Included, lower[1:])
		case isTag(lower):
			f.Included = addTag(f.Included, lower)
		default:
			keyword = append(keyword, tok)
		}
	}

	f.Keyword = strings.Join(keyword, " ")
	return f
}

// buildQuery serializes filters into the q parameter.
//
// Clause order is fixed because the API reads the string by prefix and position:
// id (exclusive of tags), excluded tags, included tags, keyword, @user, type:, like:.
func buildQuery(f Filters) string {
	var b strings.Builder

	if f.ID != "" {
		b.WriteString("id:")
		b.WriteString(f.ID)
	} else {
		for _, tag := range f.Excluded {
			b.WriteByte('-')
			b.WriteString(tag)
		}
		for _, tag := range f.Included {
			b.WriteByte('+')
			b.WriteString(tag)
		}
	}

	// keyword words each carry their own leading space
	if f.Keyword != "" {
		b.WriteByte(' ')
		b.WriteString(f.Keyword)
	}
	if f.Username != "" {
		b.WriteString(" @")
		b.WriteString(f.Username)
	}
	if f.Type != "" {
		b.WriteString(" type:")
		b.WriteString(f.Type)
	}
	if f.Like != "" {
		b.WriteString(" like:")
		b.WriteString(f.Like)
	}

	return strings.TrimSpace(b.String())
}

func parseFileType(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return "png", nil
	case "jpg", "jpeg":
		return "jpg", nil
	default:
		return "", invalid("type", s, "expected png or jpg")
	}
}
