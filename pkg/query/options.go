package query

import (
	"sort"
	"strings"
)

// Categories selects which wallpaper categories a search covers.
// At least one category must be enabled.
type Categories struct {
	General bool `json:"general"`
	Anime   bool `json:"anime"`
	People  bool `json:"people"`
}

// String returns the 3-character selector in general, anime, people order.
func (c Categories) String() string {
	return selector(c.General, c.Anime, c.People)
}

func (c Categories) valid() bool {
	return c.General || c.Anime || c.People
}

// ParseCategories parses a selector such as "110".
func ParseCategories(s string) (Categories, error) {
	bits, err := parseSelector("categories", s)
	if err != nil {
		return Categories{}, err
	}
	c := Categories{General: bits[0], Anime: bits[1], People: bits[2]}
	if !c.valid() {
		return Categories{}, invalid("categories", s, "at least one category must be included")
	}
	return c, nil
}

// Purity selects which content ratings a search covers.
// At least one purity level must be enabled. NSFW results additionally require
// a valid API key on the request, which the remote API enforces.
type Purity struct {
	SFW     bool `json:"sfw"`
	Sketchy bool `json:"sketchy"`
	NSFW    bool `json:"nsfw"`
}

// String returns the 3-character selector in sfw, sketchy, nsfw order.
func (p Purity) String() string {
	return selector(p.SFW, p.Sketchy, p.NSFW)
}

func (p Purity) valid() bool {
	return p.SFW || p.Sketchy || p.NSFW
}

// ParsePurity parses a selector such as "100".
func ParsePurity(s string) (Purity, error) {
	bits, err := parseSelector("purity", s)
	if err != nil {
		return Purity{}, err
	}
	p := Purity{SFW: bits[0], Sketchy: bits[1], NSFW: bits[2]}
	if !p.valid() {
		return Purity{}, invalid("purity", s, "at least one purity must be included")
	}
	return p, nil
}

func selector(bits ...bool) string {
	var b strings.Builder
	for _, on := range bits {
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func parseSelector(option, s string) ([3]bool, error) {
	var bits [3]bool
	if len(s) != 3 {
		return bits, invalid(option, s, "expected 3 characters of 0 or 1")
	}
	for i := 0; i < 3; i++ {
		switch s[i] {
		case '1':
			bits[i] = true
		case '0':
		default:
			return bits, invalid(option, s, "expected 3 characters of 0 or 1")
		}
	}
	return bits, nil
}

// Sorting is the result ordering method.
type Sorting string

const (
	SortDateAdded   Sorting = "date_added"
	SortRelevance   Sorting = "relevance"
	SortRandom      Sorting = "random"
	SortViews       Sorting = "views"
	SortFavorites   Sorting = "favorites"
	SortToplist     Sorting = "toplist"
	SortToplistBeta Sorting = "toplist_beta"
)

// sortingAliases maps every accepted normalized spelling to its Sorting.
var sortingAliases = map[string]Sorting{
	"date_added":   SortDateAdded,
	"dateadded":    SortDateAdded,
	"relevance":    SortRelevance,
	"random":       SortRandom,
	"views":        SortViews,
	"favorites":    SortFavorites,
	"favourites":   SortFavorites,
	"toplist":      SortToplist,
	"toplist_beta": SortToplistBeta,
}

// ParseSorting matches s case- and space-insensitively ("Date Added" == "date_added").
func ParseSorting(s string) (Sorting, error) {
	if v, ok := sortingAliases[normalize(s)]; ok {
		return v, nil
	}
	return "", invalid("sorting", s, "expected one of "+strings.Join(aliasKeys(sortingAliases), ", "))
}

// Order is the sort direction.
type Order string

const (
	OrderDesc Order = "desc"
	OrderAsc  Order = "asc"
)

var orderAliases = map[string]Order{
	"descending": OrderDesc,
	"desc":       OrderDesc,
	"ascending":  OrderAsc,
	"asc":        OrderAsc,
}

// ParseOrder accepts the long ("Descending") or short ("desc") form.
func ParseOrder(s string) (Order, error) {
	if v, ok := orderAliases[normalize(s)]; ok {
		return v, nil
	}
	return "", invalid("order", s, "expected ascending or descending")
}

// TopRange is the time window for toplist sorting. It has no effect with any
// other sorting.
type TopRange string

const (
	RangeDay         TopRange = "1d"
	RangeThreeDays   TopRange = "3d"
	RangeWeek        TopRange = "1w"
	RangeMonth       TopRange = "1M"
	RangeThreeMonths TopRange = "3M"
	RangeSixMonths   TopRange = "6M"
	RangeYear        TopRange = "1y"
)

var topRanges = []TopRange{
	RangeDay, RangeThreeDays, RangeWeek, RangeMonth,
	RangeThreeMonths, RangeSixMonths, RangeYear,
}

// rangeAliases holds the long names. The abbreviated values are matched
// separately because "1M" and "1m" only differ by case.
var rangeAliases = map[string]TopRange{
	"last_day":          RangeDay,
	"last_three_days":   RangeThreeDays,
	"last_week":         RangeWeek,
	"last_month":        RangeMonth,
	"last_three_months": RangeThreeMonths,
	"last_six_months":   RangeSixMonths,
	"last_six_weeks":    RangeSixMonths,
	"last_year":         RangeYear,
}

// ParseRange accepts a long name ("Last Month") or an abbreviation ("1M").
func ParseRange(s string) (TopRange, error) {
	trimmed := strings.TrimSpace(s)
	for _, r := range topRanges {
		if trimmed == string(r) {
			return r, nil
		}
	}
	n := normalize(s)
	if v, ok := rangeAliases[n]; ok {
		return v, nil
	}
	for _, r := range topRanges {
		if n == strings.ToLower(string(r)) {
			return r, nil
		}
	}
	return "", invalid("range", s, "expected one of 1d, 3d, 1w, 1M, 3M, 6M, 1y or their long names")
}

// normalize lowercases s and joins whitespace-separated words with underscores.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

func aliasKeys[V ~string](m map[string]V) []string {
	seen := make(map[V]bool, len(m))
	keys := make([]string, 0, len(m))
	for _, v := range m {
		if !seen[v] {
			seen[v] = true
			keys = append(keys, string(v))
		}
	}
	sort.Strings(keys)
	return keys
}
