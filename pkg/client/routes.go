package client

import (
	"net/url"
	"strings"
)

// DefaultBaseURL is the wallhaven API root.
const DefaultBaseURL = "https://wallhaven.cc/api/v1"

// route is a named endpoint path template. The name doubles as the metrics label.
type route struct {
	name     string
	template string
}

var (
	routeWallpaper            = route{name: "wallpaper", template: "/w/{id}"}
	routeTag                  = route{name: "tag", template: "/tag/{id}"}
	routeSettings             = route{name: "settings", template: "/settings"}
	routeCollectionsAPIKey    = route{name: "collections_apikey", template: "/collections"}
	routeCollectionsUsername  = route{name: "collections_username", template: "/collections/{username}"}
	routeCollectionWallpapers = route{name: "collection_wallpapers", template: "/collections/{username}/{id}"}
	routeSearch               = route{name: "search", template: "/search"}
)

// path expands the template. Values are path-escaped.
func (r route) path(vars map[string]string) string {
	p := r.template
	for key, value := range vars {
		p = strings.ReplaceAll(p, "{"+key+"}", url.PathEscape(value))
	}
	return p
}
