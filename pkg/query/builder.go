package query

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Default search parameters. A new Builder starts from these values.
const (
	DefaultCategories = "111"
	DefaultPurity     = "100"
	DefaultSorting    = SortDateAdded
	DefaultOrder      = OrderDesc
	DefaultRange      = RangeMonth
	DefaultPage       = 1
)

// Parameter names understood by the search endpoint.
const (
	ParamCategories  = "categories"
	ParamPurity      = "purity"
	ParamSorting     = "sorting"
	ParamOrder       = "order"
	ParamTopRange    = "topRange"
	ParamPage        = "page"
	ParamQuery       = "q"
	ParamAtLeast     = "atleast"
	ParamResolutions = "resolutions"
	ParamRatios      = "ratios"
	ParamSeed        = "seed"
)

var (
	dimensionExpr = regexp.MustCompile(`^[0-9]+x[0-9]+$`)
	seedExpr      = regexp.MustCompile(`^[a-zA-Z0-9]{6}$`)
)

// Builder holds the filter state of one search and serializes it into request
// parameters. Every setter validates its input first and leaves the Builder
// unchanged when it returns an error.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	categories Categories
	purity     Purity
	sorting    Sorting
	order      Order
	topRange   TopRange
	page       int
	q          string
	filters    Filters

	atLeast     string
	resolutions []string
	ratios      []string
	seed        string
}

// New returns a Builder holding the default parameters.
func New() *Builder {
	b := &Builder{}
	b.Reset()
	return b
}

// Reset restores the default parameters and clears all filters.
func (b *Builder) Reset() {
	*b = Builder{
		categories: Categories{General: true, Anime: true, People: true},
		purity:     Purity{SFW: true},
		sorting:    DefaultSorting,
		order:      DefaultOrder,
		topRange:   DefaultRange,
		page:       DefaultPage,
	}
}

// Clone returns an independent copy of b.
func (b *Builder) Clone() *Builder {
	c := *b
	c.filters = b.filters.clone()
	c.resolutions = append([]string(nil), b.resolutions...)
	c.ratios = append([]string(nil), b.ratios...)
	return &c
}

// SetCategories turns categories on or off. At least one must be on.
func (b *Builder) SetCategories(general, anime, people bool) error {
	c := Categories{General: general, Anime: anime, People: people}
	if !c.valid() {
		return invalid("categories", c.String(), "at least one category must be included")
	}
	b.categories = c
	return nil
}

// SetPurity turns purity levels on or off. At least one must be on.
func (b *Builder) SetPurity(sfw, sketchy, nsfw bool) error {
	p := Purity{SFW: sfw, Sketchy: sketchy, NSFW: nsfw}
	if !p.valid() {
		return invalid("purity", p.String(), "at least one purity must be included")
	}
	b.purity = p
	return nil
}

// SetSorting sets the sorting method, e.g. "Date Added" or "toplist".
func (b *Builder) SetSorting(sorting string) error {
	v, err := ParseSorting(sorting)
	if err != nil {
		return err
	}
	b.sorting = v
	return nil
}

// SetRange sets the toplist time range, e.g. "Last Month" or "1M".
func (b *Builder) SetRange(topRange string) error {
	v, err := ParseRange(topRange)
	if err != nil {
		return err
	}
	b.topRange = v
	return nil
}

// SetSortingOrder sets the sort direction, e.g. "Descending" or "asc".
func (b *Builder) SetSortingOrder(order string) error {
	v, err := ParseOrder(order)
	if err != nil {
		return err
	}
	b.order = v
	return nil
}

// SetPage sets the requested result page. Pages start at 1.
func (b *Builder) SetPage(page int) error {
	if page < 1 {
		return invalid("page", strconv.Itoa(page), "must be a positive number")
	}
	b.page = page
	return nil
}

// ParsePage converts a page given as text. Only decimal digits are accepted.
func ParsePage(s string) (int, error) {
	if !digitsExpr.MatchString(s) {
		return 0, invalid("page", s, "must be a number")
	}
	page, err := strconv.Atoi(s)
	if err != nil || page < 1 {
		return 0, invalid("page", s, "must be a positive number")
	}
	return page, nil
}

// SetSearchQuery replaces every tag and scalar filter with the ones parsed from query.
func (b *Builder) SetSearchQuery(query string) {
	b.filters = parseQuery(query)
	b.rebuild()
}

// IncludeTags adds tags that results must carry. Tags are lowercased and
// deduplicated against the ones already included.
func (b *Builder) IncludeTags(tags ...string) error {
	clean, err := cleanTags("include tags", "+", tags)
	if err != nil {
		return err
	}
	for _, tag := range clean {
		b.filters.Included = addTag(b.filters.Included, tag)
	}
	b.rebuild()
	return nil
}

// ExcludeTags adds tags that results must not carry.
func (b *Builder) ExcludeTags(tags ...string) error {
	clean, err := cleanTags("exclude tags", "-", tags)
	if err != nil {
		return err
	}
	for _, tag := range clean {
		b.filters.Excluded = addTag(b.filters.Excluded, tag)
	}
	b.rebuild()
	return nil
}

func cleanTags(option, sign string, tags []string) ([]string, error) {
	clean := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), sign))
		if tag == "" {
			continue
		}
		if strings.ContainsAny(tag, " \t\r\n") {
			return nil, invalid(option, tag, "tags cannot contain whitespace")
		}
		if !isTag(tag) {
			return nil, invalid(option, tag, "tags may only contain letters, digits and _ . ' & -")
		}
		clean = append(clean, tag)
	}
	if len(clean) == 0 {
		return nil, invalid(option, "", "at least one tag is required")
	}
	return clean, nil
}

// FilterByUser restricts results to wallpapers uploaded by username.
func (b *Builder) FilterByUser(username string) error {
	name := strings.TrimPrefix(strings.TrimSpace(username), "@")
	if name == "" {
		return invalid("username", username, "username cannot be empty")
	}
	if strings.ContainsAny(name, " \t\r\n") {
		return invalid("username", username, "username cannot contain whitespace")
	}
	b.filters.Username = name
	b.rebuild()
	return nil
}

// SetExactTag searches for a single tag by its numeric id. Tag filters are
// ignored while it is set.
func (b *Builder) SetExactTag(id string) error {
	id = strings.TrimSpace(id)
	if !digitsExpr.MatchString(id) {
		return invalid("id", id, "tag id must be numeric")
	}
	b.filters.ID = id
	b.rebuild()
	return nil
}

// SetFileType restricts results to png or jpg files.
func (b *Builder) SetFileType(fileType string) error {
	ft, err := parseFileType(fileType)
	if err != nil {
		return err
	}
	b.filters.Type = ft
	b.rebuild()
	return nil
}

// SetLike finds wallpapers similar to the wallpaper with the given id.
func (b *Builder) SetLike(wallpaperID string) error {
	id := strings.TrimSpace(wallpaperID)
	if !wallpaperIDExpr.MatchString(id) {
		return invalid("like", wallpaperID, "wallpaper id must be alphanumeric")
	}
	b.filters.Like = id
	b.rebuild()
	return nil
}

// SetKeyword replaces the free text part of the query.
func (b *Builder) SetKeyword(keyword string) {
	b.filters.Keyword = strings.Join(strings.Fields(keyword), " ")
	b.rebuild()
}

// ClearSearchQuery empties the query string and keyword. With clearFilters the
// tag and scalar filters are dropped as well.
func (b *Builder) ClearSearchQuery(clearFilters bool) {
	b.q = ""
	b.filters.Keyword = ""
	if clearFilters {
		b.filters = Filters{}
	}
}

// SetAtLeast sets the minimum resolution.
func (b *Builder) SetAtLeast(width, height int) error {
	if width <= 0 || height <= 0 {
		return invalid("atleast", fmt.Sprintf("%dx%d", width, height), "width and height must be positive")
	}
	b.atLeast = fmt.Sprintf("%dx%d", width, height)
	return nil
}

// SetResolutions limits results to exact resolutions such as "1920x1080".
// Calling it without arguments removes the filter.
func (b *Builder) SetResolutions(resolutions ...string) error {
	for _, r := range resolutions {
		if !dimensionExpr.MatchString(r) {
			return invalid("resolutions", r, "expected WIDTHxHEIGHT")
		}
	}
	b.resolutions = append([]string(nil), resolutions...)
	return nil
}

// SetRatios limits results to aspect ratios such as "16x9", or to "landscape"
// or "portrait". Calling it without arguments removes the filter.
func (b *Builder) SetRatios(ratios ...string) error {
	for _, r := range ratios {
		if r != "landscape" && r != "portrait" && !dimensionExpr.MatchString(r) {
			return invalid("ratios", r, "expected WxH, landscape or portrait")
		}
	}
	b.ratios = append([]string(nil), ratios...)
	return nil
}

// SetSeed fixes the seed for random sorting so that later pages stay consistent.
func (b *Builder) SetSeed(seed string) error {
	if seed != "" && !seedExpr.MatchString(seed) {
		return invalid("seed", seed, "expected 6 alphanumeric characters")
	}
	b.seed = seed
	return nil
}

func (b *Builder) rebuild() {
	b.q = buildQuery(b.filters)
}

// Query returns the serialized q parameter.
func (b *Builder) Query() string { return b.q }

// Filters returns a copy of the current filters.
func (b *Builder) Filters() Filters { return b.filters.clone() }

// Page returns the requested page.
func (b *Builder) Page() int { return b.page }

// Categories returns the category selector.
func (b *Builder) Categories() Categories { return b.categories }

// Purity returns the purity selector.
func (b *Builder) Purity() Purity { return b.purity }

// Sorting returns the sorting method.
func (b *Builder) Sorting() Sorting { return b.sorting }

// Order returns the sort direction.
func (b *Builder) Order() Order { return b.order }

// TopRange returns the toplist range.
func (b *Builder) TopRange() TopRange { return b.topRange }

// Params returns the flat parameter mapping sent to the search endpoint.
// Optional parameters are only present when set.
func (b *Builder) Params() map[string]string {
	params := map[string]string{
		ParamCategories: b.categories.String(),
		ParamPurity:     b.purity.String(),
		ParamSorting:    string(b.sorting),
		ParamOrder:      string(b.order),
		ParamTopRange:   string(b.topRange),
		ParamPage:       strconv.Itoa(b.page),
		ParamQuery:      b.q,
	}
	if b.atLeast != "" {
		params[ParamAtLeast] = b.atLeast
	}
	if len(b.resolutions) > 0 {
		params[ParamResolutions] = strings.Join(b.resolutions, ",")
	}
	if len(b.ratios) > 0 {
		params[ParamRatios] = strings.Join(b.ratios, ",")
	}
	if b.seed != "" {
		params[ParamSeed] = b.seed
	}
	return params
}

// Values returns Params as url.Values.
func (b *Builder) Values() url.Values {
	values := url.Values{}
	for k, v := range b.Params() {
		values.Set(k, v)
	}
	return values
}
