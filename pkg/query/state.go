package query

// State is a serializable snapshot of a Builder.
type State struct {
	Categories  string   `json:"categories"`
	Purity      string   `json:"purity"`
	Sorting     Sorting  `json:"sorting"`
	Order       Order    `json:"order"`
	TopRange    TopRange `json:"top_range"`
	Page        int      `json:"page"`
	Filters     Filters  `json:"filters"`
	AtLeast     string   `json:"atleast,omitempty"`
	Resolutions []string `json:"resolutions,omitempty"`
	Ratios      []string `json:"ratios,omitempty"`
	Seed        string   `json:"seed,omitempty"`
}

// State captures the current parameters and filters.
func (b *Builder) State() State {
	return State{
		Categories:  b.categories.String(),
		Purity:      b.purity.String(),
		Sorting:     b.sorting,
		Order:       b.order,
		TopRange:    b.topRange,
		Page:        b.page,
		Filters:     b.filters.clone(),
		AtLeast:     b.atLeast,
		Resolutions: append([]string(nil), b.resolutions...),
		Ratios:      append([]string(nil), b.ratios...),
		Seed:        b.seed,
	}
}

// FromState rebuilds a Builder from a snapshot, validating every field the
// same way the setters do.
func FromState(s State) (*Builder, error) {
	b := New()

	categories, err := ParseCategories(s.Categories)
	if err != nil {
		return nil, err
	}
	purity, err := ParsePurity(s.Purity)
	if err != nil {
		return nil, err
	}
	b.categories = categories
	b.purity = purity

	if err := b.SetSorting(string(s.Sorting)); err != nil {
		return nil, err
	}
	if err := b.SetSortingOrder(string(s.Order)); err != nil {
		return nil, err
	}
	if err := b.SetRange(string(s.TopRange)); err != nil {
		return nil, err
	}
	if err := b.SetPage(s.Page); err != nil {
		return nil, err
	}
	if err := b.SetResolutions(s.Resolutions...); err != nil {
		return nil, err
	}
	if err := b.SetRatios(s.Ratios...); err != nil {
		return nil, err
	}
	if err := b.SetSeed(s.Seed); err != nil {
		return nil, err
	}
	if s.AtLeast != "" {
		if !dimensionExpr.MatchString(s.AtLeast) {
			return nil, invalid("atleast", s.AtLeast, "expected WIDTHxHEIGHT")
		}
		b.atLeast = s.AtLeast
	}

	for _, tag := range append(append([]string(nil), s.Filters.Included...), s.Filters.Excluded...) {
		if !isTag(tag) {
			return nil, invalid("filters", tag, "not a valid tag")
		}
	}
	if s.Filters.ID != "" && !digitsExpr.MatchString(s.Filters.ID) {
		return nil, invalid("filters", s.Filters.ID, "tag id must be numeric")
	}

	b.filters = s.Filters.clone()
	b.rebuild()
	return b, nil
}
