package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Sternrassler/wallhaven-client/internal/testutil"
	"github.com/Sternrassler/wallhaven-client/pkg/query"
)

const wallpaperBody = `{"data":{
	"id":"94x38z","url":"https://wallhaven.cc/w/94x38z","short_url":"https://whvn.cc/94x38z",
	"uploader":{"username":"test-user","group":"User","avatar":{"32px":"https://wallhaven.cc/a.png"}},
	"views":12,"favorites":0,"source":"","purity":"sfw","category":"anime",
	"dimension_x":6742,"dimension_y":3534,"resolution":"6742x3534","ratio":"1.91",
	"file_size":5070446,"file_type":"image/jpeg","created_at":"2018-10-31 01:23:10",
	"colors":["#000000","#abbcda"],"path":"https://w.wallhaven.cc/full/94/wallhaven-94x38z.jpg",
	"thumbs":{"large":"https://th.wallhaven.cc/lg/94/94x38z.jpg","original":"https://th.wallhaven.cc/orig/94/94x38z.jpg","small":"https://th.wallhaven.cc/small/94/94x38z.jpg"},
	"tags":[{"id":1,"name":"anime","alias":"Chinese cartoons","category_id":1,"category":"Anime & Manga","purity":"sfw","created_at":"2015-01-16 02:06:45"}]
}}`

func TestWallpaper(t *testing.T) {
	mock := testutil.NewMockWallhaven()
	defer mock.Close()
	mock.SetResponse("/w/94x38z", testutil.NewOKResponse(wallpaperBody))

	client := newTestClient(t, mock, "")
	wall, err := client.Wallpaper(context.Background(), "94x38z")
	if err != nil {
		t.Fatalf("Wallpaper() failed: %v", err)
	}

	if wall.ID != "94x38z" {
		t.Errorf("ID = %q, want 94x38z", wall.ID)
	}
	if wall.Uploader == nil || wall.Uploader.Username != "test-user" {
		t.Errorf("Uploader = %+v, want test-user", wall.Uploader)
	}
	if len(wall.Tags) != 1 || wall.Tags[0].Name != "anime" {
		t.Errorf("Tags = %+v, want [anime]", wall.Tags)
	}
	if wall.DimensionX != 6742 || wall.FileSize != 5070446 {
		t.Errorf("Dimensions/size not decoded: %+v", wall)
	}
}

func TestWallpaper_NotFound(t *testing.T) {
	mock := testutil.NewMockWallhaven()
	defer mock.Close()

	client := newTestClient(t, mock, "")
	_, err := client.Wallpaper(context.Background(), "zzzzzz")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestInvalidArguments(t *testing.T) {
	mock := testutil.NewMockWallhaven()
	defer mock.Close()
	client := newTestClient(t, mock, "")
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{name: "empty wallpaper id", call: func() error { _, err := client.Wallpaper(ctx, ""); return err }},
		{name: "wallpaper id with slash", call: func() error { _, err := client.Wallpaper(ctx, "../settings"); return err }},
		{name: "zero tag id", call: func() error { _, err := client.Tag(ctx, 0); return err }},
		{name: "empty username", call: func() error { _, err := client.Collections(ctx, ""); return err }},
		{name: "username with space", call: func() error { _, err := client.Collections(ctx, "a b"); return err }},
		{name: "zero collection id", call: func() error { _, err := client.CollectionWallpapers(ctx, "bob", 0, 0); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Expected ErrInvalidArgument, got %v", err)
			}
		})
	}

	if got := mock.GetRequestCount(); got != 0 {
		t.Errorf("Invalid arguments must not reach the API, got %d requests", got)
	}
}

func TestTag(t *testing.T) {
	mock := testutil.NewMockWallhaven()
	defer mock.Close()
	mock.SetResponse("/tag/1", testutil.NewOKResponse(
		`{"data":{"id":1,"name":"anime","alias":"Chinese cartoons","category_id":1,"category":"Anime & Manga","purity":"sfw","created_at":"2015-01-16 02:06:45"}}`))

	client := newTestClient(t, mock, "")
	tag, err := client.Tag(context.Background(), 1)
	if err != nil {
		t.Fatalf("Tag() failed: %v", err)
	}
	if tag.ID != 1 || tag.Name != "anime" || tag.Category != "Anime & Manga" {
		t.Errorf("Tag = %+v", tag)
	}
}

func TestSettings(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		mock := testutil.NewMockWallhaven()
		defer mock.Close()

		client := newTestClient(t, mock, "")
		_, err := client.Settings(context.Background())
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("Expected ErrMissingAPIKey, got %v", err)
		}
		if got := mock.GetRequestCount(); got != 0 {
			t.Errorf("Expected no request, got %d", got)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		mock := testutil.NewMockWallhaven()
		defer mock.Close()

		client := newTestClient(t, mock, testAPIKey)
		_, err := client.Settings(context.Background())
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		mock := testutil.NewMockWallhaven()
		defer mock.Close()
		mock.SetResponse("/settings", testutil.NewOKResponse(
			`{"data":{"thumb_size":"orig","per_page":"24","purity":["sfw"],"categories":["general","anime"],"resolutions":[],"aspect_ratios":[],"toplist_range":"6M","tag_blacklist":[],"user_blacklist":[]}}`))

		client := newTestClient(t, mock, testAPIKey)
		settings, err := client.Settings(context.Background())
		if err != nil {
			t.Fatalf("Settings() failed: %v", err)
		}
		if settings.PerPage != 24 {
			t.Errorf("PerPage = %d, want 24", settings.PerPage)
		}
		if settings.ToplistRange != "6M" {
			t.Errorf("ToplistRange = %q, want 6M", settings.ToplistRange)
		}
	})
}

func TestCollections(t *testing.T) {
	mock := testutil.NewMockWallhaven()
	defer mock.Close()
	mock.SetResponse("/collections/bob", testutil.NewOKResponse(
		`{"data":[{"id":15,"label":"Default","views":38,"public":1,"count":10}]}`))

	client := newTestClient(t, mock, "")
	collections, err := client.Collections(context.Background(), "bob")
	if err != nil {
		t.Fatalf("Collections() failed: %v", err)
	}
	if len(collections) != 1 {
		t.Fatalf("Expected 1 collection, got %d", len(collections))
	}
	if collections[0].Label != "Default" || !collections[0].IsPublic() {
		t.Errorf("Collection = %+v", collections[0])
	}
}

func TestMyCollections(t *testing.T) {
	mock := testutil.NewMockWallhaven()
	defer mock.Close()
	mock.SetResponse("/collections", testutil.NewOKResponse(
		`{"data":[{"id":15,"label":"Default","views":38,"public":1,"count":10},{"id":16,"label":"Private","views":0,"public":0,"count":2}]}`))

	anonymous := newTestClient(t, mock, "")
	if _, err := anonymous.MyCollections(context.Background()); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}

	client := newTestClient(t, mock, testAPIKey)
	collections, err := client.MyCollections(context.Background())
	if err != nil {
		t.Fatalf("MyCollections() failed: %v", err)
	}
	if len(collections) != 2 || collections[1].IsPublic() {
		t.Errorf("Collections = %+v", collections)
	}
}

func TestCollectionWallpapers(t *testing.T) {
	pages := [][]string{{"a1", "a2"}, {"b1", "b2"}, {"c1", "c2"}}

	tests := []struct {
		name          string
		limit         int
		expectedIDs   []string
		expectedPages []string
	}{
		{
			name:          "limit within first page",
			limit:         1,
			expectedIDs:   []string{"a1"},
			expectedPages: []string{""},
		},
		{
			name:          "limit across pages",
			limit:         3,
			expectedIDs:   []string{"a1", "a2", "b1"},
			expectedPages: []string{"", "2"},
		},
		{
			name:          "whole collection",
			limit:         0,
			expectedIDs:   []string{"a1", "a2", "b1", "b2", "c1", "c2"},
			expectedPages: []string{"", "2", "3"},
		},
		{
			name:          "limit above total",
			limit:         100,
			expectedIDs:   []string{"a1", "a2", "b1", "b2", "c1", "c2"},
			expectedPages: []string{"", "2", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockWallhaven()
			defer mock.Close()
			mock.SetPages("/collections/bob/15", pages...)

			client := newTestClient(t, mock, "")
			walls, err := client.CollectionWallpapers(context.Background(), "bob", 15, tt.limit)
			if err != nil {
				t.Fatalf("CollectionWallpapers() failed: %v", err)
			}

			if len(walls) != len(tt.expectedIDs) {
				t.Fatalf("Got %d wallpapers, want %d", len(walls), len(tt.expectedIDs))
			}
			for i, id := range tt.expectedIDs {
				if walls[i].ID != id {
					t.Errorf("walls[%d].ID = %q, want %q", i, walls[i].ID, id)
				}
			}

			requests := mock.GetRequests()
			if len(requests) != len(tt.expectedPages) {
				t.Fatalf("Got %d requests, want %d", len(requests), len(tt.expectedPages))
			}
			for i, page := range tt.expectedPages {
				if got := requests[i].Query().Get("page"); got != page {
					t.Errorf("request %d page = %q, want %q", i, got, page)
				}
			}
		})
	}
}

func TestCollectionWallpapers_Empty(t *testing.T) {
	mock := testutil.NewMockWallhaven()
	defer mock.Close()
	mock.SetResponse("/collections/bob/15", testutil.NewOKResponse(testutil.ListPage(nil, 1, 1, 0)))

	client := newTestClient(t, mock, "")
	walls, err := client.CollectionWallpapers(context.Background(), "bob", 15, 0)
	if err != nil {
		t.Fatalf("CollectionWallpapers() failed: %v", err)
	}
	if walls == nil || len(walls) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", walls)
	}
}

func TestCollectionWallpapers_Errors(t *testing.T) {
	t.Run("missing collection", func(t *testing.T) {
		mock := testutil.NewMockWallhaven()
		defer mock.Close()

		client := newTestClient(t, mock, "")
		_, err := client.CollectionWallpapers(context.Background(), "bob", 99, 0)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rate limited on second page", func(t *testing.T) {
		mock := testutil.NewMockWallhaven()
		defer mock.Close()
		mock.SetHandler("/collections/bob/15", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") == "2" {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			w.Write([]byte(testutil.ListPage([]string{"a1", "a2"}, 1, 3, 6)))
		})

		client := newTestClient(t, mock, "")
		walls, err := client.CollectionWallpapers(context.Background(), "bob", 15, 0)
		if !errors.Is(err, ErrRateLimitExceeded) {
			t.Errorf("Expected ErrRateLimitExceeded, got %v", err)
		}
		if walls != nil {
			t.Errorf("Expected no partial results, got %d wallpapers", len(walls))
		}
		if got := mock.GetRequestCount(); got != 2 {
			t.Errorf("Expected 2 requests, got %d", got)
		}
	})
}

func TestSearch(t *testing.T) {
	mock := testutil.NewMockWallhaven()
	defer mock.Close()
	mock.SetPages("/search", []string{"a1", "a2"})

	b := query.New()
	if err := b.ExcludeTags("cat"); err != nil {
		t.Fatal(err)
	}
	if err := b.IncludeTags("dog"); err != nil {
		t.Fatal(err)
	}
	if err := b.FilterByUser("bob"); err != nil {
		t.Fatal(err)
	}
	if err := b.SetSorting("toplist"); err != nil {
		t.Fatal(err)
	}

	client := newTestClient(t, mock, testAPIKey)
	resp, err := client.Search(context.Background(), b)
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("Got %d wallpapers, want 2", len(resp.Data))
	}
	if resp.Meta.Total != 2 {
		t.Errorf("Meta.Total = %d, want 2", resp.Meta.Total)
	}

	params := mock.GetRequests()[0].Query()
	expected := map[string]string{
		"q":          "-cat+dog @bob",
		"categories": "111",
		"purity":     "100",
		"sorting":    "toplist",
		"order":      "desc",
		"topRange":   "1M",
		"page":       "1",
		"apikey":     testAPIKey,
	}
	for key, want := range expected {
		if got := params.Get(key); got != want {
			t.Errorf("param %s = %q, want %q", key, got, want)
		}
	}
}

func TestSearch_NilBuilder(t *testing.T) {
	mock := testutil.NewMockWallhaven()
	defer mock.Close()
	mock.SetPages("/search", []string{"a1"})

	client := newTestClient(t, mock, "")
	if _, err := client.Search(context.Background(), nil); err != nil {
		t.Fatalf("Search(nil) failed: %v", err)
	}

	params := mock.GetRequests()[0].Query()
	if got := params.Get("categories"); got != query.DefaultCategories {
		t.Errorf("categories = %q, want %q", got, query.DefaultCategories)
	}
	if got := params.Get("q"); got != "" {
		t.Errorf("q = %q, want empty", got)
	}
}

func TestSearchAll(t *testing.T) {
	mock := testutil.NewMockWallhaven()
	defer mock.Close()
	mock.SetPages("/search", []string{"a1", "a2"}, []string{"b1", "b2"}, []string{"c1"})

	b := query.New()
	if err := b.SetPage(2); err != nil {
		t.Fatal(err)
	}

	client := newTestClient(t, mock, "")
	walls, err := client.SearchAll(context.Background(), b, 0)
	if err != nil {
		t.Fatalf("SearchAll() failed: %v", err)
	}

	want := []string{"b1", "b2", "c1"}
	if len(walls) != len(want) {
		t.Fatalf("Got %d wallpapers, want %d", len(walls), len(want))
	}
	for i, id := range want {
		if walls[i].ID != id {
			t.Errorf("walls[%d].ID = %q, want %q", i, walls[i].ID, id)
		}
	}

	if b.Page() != 2 {
		t.Errorf("Builder page changed to %d", b.Page())
	}

	requests := mock.GetRequests()
	if len(requests) != 2 {
		t.Fatalf("Got %d requests, want 2", len(requests))
	}
	if got := requests[0].Query().Get("page"); got != "2" {
		t.Errorf("first request page = %q, want 2", got)
	}
	if got := requests[1].Query().Get("page"); got != "3" {
		t.Errorf("second request page = %q, want 3", got)
	}
}
