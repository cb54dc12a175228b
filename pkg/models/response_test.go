package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wallpaperJSON = `{
  "data": {
    "id": "94x38z",
    "url": "https://wallhaven.cc/w/94x38z",
    "short_url": "https://whvn.cc/94x38z",
    "uploader": {
      "username": "test-user",
      "group": "User",
      "avatar": {"200px": "https://wallhaven.cc/images/user/avatar/200/11_3339efb2a813.png"}
    },
    "views": 12,
    "favorites": 0,
    "source": "",
    "purity": "sfw",
    "category": "anime",
    "dimension_x": 6742,
    "dimension_y": 3534,
    "resolution": "6742x3534",
    "ratio": "1.91",
    "file_size": 5070446,
    "file_type": "image/jpeg",
    "created_at": "2018-10-31 01:23:10",
    "colors": ["#000000", "#abbcda"],
    "path": "https://w.wallhaven.cc/full/94/wallhaven-94x38z.jpg",
    "thumbs": {
      "large": "https://th.wallhaven.cc/lg/94/94x38z.jpg",
      "original": "https://th.wallhaven.cc/orig/94/94x38z.jpg",
      "small": "https://th.wallhaven.cc/small/94/94x38z.jpg"
    },
    "tags": [
      {"id": 1, "name": "anime", "alias": "Chinese cartoons", "category_id": 1,
       "category": "Anime & Manga", "purity": "sfw", "created_at": "2015-01-16 02:06:45"}
    ]
  }
}`

func TestWallpaperResponse_Decode(t *testing.T) {
	var resp WallpaperResponse
	require.NoError(t, json.Unmarshal([]byte(wallpaperJSON), &resp))

	w := resp.Data
	assert.Equal(t, "94x38z", w.ID)
	require.NotNil(t, w.Uploader)
	assert.Equal(t, "test-user", w.Uploader.Username)
	assert.Equal(t, 6742, w.DimensionX)
	assert.Equal(t, int64(5070446), w.FileSize)
	assert.Equal(t, "1.91", w.Ratio)
	assert.Equal(t, []string{"#000000", "#abbcda"}, w.Colors)
	assert.Equal(t, "https://th.wallhaven.cc/small/94/94x38z.jpg", w.Thumbs.Small)
	require.Len(t, w.Tags, 1)
	assert.Equal(t, "Anime & Manga", w.Tags[0].Category)
}

func TestListResponse_Meta(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantLast  int
		wantPer   int
		wantQuery string
	}{
		{
			name:     "numeric per_page",
			body:     `{"data": [], "meta": {"current_page": 1, "last_page": 3, "per_page": 24, "total": 60}}`,
			wantLast: 3,
			wantPer:  24,
		},
		{
			name:      "string per_page and text query",
			body:      `{"data": [], "meta": {"current_page": 1, "last_page": 10, "per_page": "24", "total": 240, "query": "cats", "seed": null}}`,
			wantLast:  10,
			wantPer:   24,
			wantQuery: "cats",
		},
		{
			name:      "tag query object",
			body:      `{"data": [], "meta": {"current_page": 2, "last_page": 2, "per_page": "64", "total": 70, "query": {"id": 1, "tag": "anime"}}}`,
			wantLast:  2,
			wantPer:   64,
			wantQuery: "anime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp ListResponse[Wallpaper]
			require.NoError(t, json.Unmarshal([]byte(tt.body), &resp))
			assert.Equal(t, tt.wantLast, int(resp.Meta.LastPage))
			assert.Equal(t, tt.wantPer, int(resp.Meta.PerPage))
			assert.Equal(t, tt.wantQuery, resp.Meta.QueryString())
		})
	}
}

func TestFlexInt_Invalid(t *testing.T) {
	var n FlexInt
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &n))
	assert.Error(t, json.Unmarshal([]byte(`true`), &n))

	require.NoError(t, json.Unmarshal([]byte(`null`), &n))
	assert.Equal(t, FlexInt(0), n)
}

func TestCollection_IsPublic(t *testing.T) {
	var resp CollectionsResponse
	body := `{"data": [{"id": 15, "label": "Default", "views": 38, "public": 1, "count": 10},
	                    {"id": 16, "label": "Private", "views": 0, "public": 0, "count": 2}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Data, 2)
	assert.True(t, resp.Data[0].IsPublic())
	assert.False(t, resp.Data[1].IsPublic())
}
