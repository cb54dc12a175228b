package query

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseDimension parses "WIDTHxHEIGHT" such as "1920x1080".
func ParseDimension(s string) (width, height int, err error) {
	if !dimensionExpr.MatchString(s) {
		return 0, 0, invalid("dimension", s, "expected WIDTHxHEIGHT")
	}
	w, h, _ := strings.Cut(s, "x")
	width, err = strconv.Atoi(w)
	if err != nil {
		return 0, 0, invalid("dimension", s, "width out of range")
	}
	height, err = strconv.Atoi(h)
	if err != nil {
		return 0, 0, invalid("dimension", s, "height out of range")
	}
	return width, height, nil
}

// FromValues builds a Builder from search endpoint parameters, as found in a
// wallhaven search URL. Absent parameters keep their defaults and unknown
// ones are ignored.
func FromValues(values url.Values) (*Builder, error) {
	b := New()

	if q := values.Get(ParamQuery); q != "" {
		b.SetSearchQuery(q)
	}

	if s := values.Get(ParamCategories); s != "" {
		c, err := ParseCategories(s)
		if err != nil {
			return nil, err
		}
		b.categories = c
	}
	if s := values.Get(ParamPurity); s != "" {
		p, err := ParsePurity(s)
		if err != nil {
			return nil, err
		}
		b.purity = p
	}

	if s := values.Get(ParamSorting); s != "" {
		if err := b.SetSorting(s); err != nil {
			return nil, err
		}
	}
	if s := values.Get(ParamOrder); s != "" {
		if err := b.SetSortingOrder(s); err != nil {
			return nil, err
		}
	}
	if s := values.Get(ParamTopRange); s != "" {
		if err := b.SetRange(s); err != nil {
			return nil, err
		}
	}
	if s := values.Get(ParamPage); s != "" {
		page, err := ParsePage(s)
		if err != nil {
			return nil, err
		}
		b.page = page
	}

	if s := values.Get(ParamAtLeast); s != "" {
		w, h, err := ParseDimension(s)
		if err != nil {
			return nil, invalid(ParamAtLeast, s, "expected WIDTHxHEIGHT")
		}
		if err := b.SetAtLeast(w, h); err != nil {
			return nil, err
		}
	}
	if s := values.Get(ParamResolutions); s != "" {
		if err := b.SetResolutions(splitList(s)...); err != nil {
			return nil, err
		}
	}
	if s := values.Get(ParamRatios); s != "" {
		if err := b.SetRatios(splitList(s)...); err != nil {
			return nil, err
		}
	}
	if s := values.Get(ParamSeed); s != "" {
		if err := b.SetSeed(s); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
