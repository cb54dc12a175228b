package models

// Settings are the browsing preferences of the API key's owner.
type Settings struct {
	ThumbSize     string   `json:"thumb_size"`
	PerPage       FlexInt  `json:"per_page"`
	Purity        []string `json:"purity"`
	Categories    []string `json:"categories"`
	Resolutions   []string `json:"resolutions"`
	AspectRatios  []string `json:"aspect_ratios"`
	ToplistRange  string   `json:"toplist_range"`
	TagBlacklist  []string `json:"tag_blacklist"`
	UserBlacklist []string `json:"user_blacklist"`
}
