package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/Sternrassler/wallhaven-client/pkg/models"
	"github.com/Sternrassler/wallhaven-client/pkg/pagination"
	"github.com/Sternrassler/wallhaven-client/pkg/query"
)

var (
	wallpaperIDExpr = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	usernameExpr    = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// Wallpaper returns the full information of a wallpaper, including its uploader and tags.
func (c *Client) Wallpaper(ctx context.Context, id string) (*models.Wallpaper, error) {
	if !wallpaperIDExpr.MatchString(id) {
		return nil, fmt.Errorf("%w: wallpaper id %q", ErrInvalidArgument, id)
	}

	var resp models.WallpaperResponse
	if err := c.get(ctx, routeWallpaper, map[string]string{"id": id}, nil, &resp); err != nil {
		return nil, fmt.Errorf("get wallpaper %s: %w", id, err)
	}
	return &resp.Data, nil
}

// Tag returns tag information.
func (c *Client) Tag(ctx context.Context, id int) (*models.Tag, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: tag id must be positive (got %d)", ErrInvalidArgument, id)
	}

	var resp models.TagResponse
	if err := c.get(ctx, routeTag, map[string]string{"id": strconv.Itoa(id)}, nil, &resp); err != nil {
		return nil, fmt.Errorf("get tag %d: %w", id, err)
	}
	return &resp.Data, nil
}

// Settings returns the settings of the API key's owner.
func (c *Client) Settings(ctx context.Context) (*models.Settings, error) {
	if !c.HasAPIKey() {
		return nil, fmt.Errorf("get settings: %w", ErrMissingAPIKey)
	}

	var resp models.SettingsResponse
	if err := c.get(ctx, routeSettings, nil, nil, &resp); err != nil {
		// the API answers 404 for keys it does not know
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("get settings: %w: API key is not valid", ErrUnauthorized)
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &resp.Data, nil
}

// Collections returns the public collections of username.
func (c *Client) Collections(ctx context.Context, username string) ([]models.Collection, error) {
	if !usernameExpr.MatchString(username) {
		return nil, fmt.Errorf("%w: username %q", ErrInvalidArgument, username)
	}

	var resp models.CollectionsResponse
	if err := c.get(ctx, routeCollectionsUsername, map[string]string{"username": username}, nil, &resp); err != nil {
		return nil, fmt.Errorf("get collections of %s: %w", username, err)
	}
	return resp.Data, nil
}

// MyCollections returns every collection of the API key's owner, private ones included.
func (c *Client) MyCollections(ctx context.Context) ([]models.Collection, error) {
	if !c.HasAPIKey() {
		return nil, fmt.Errorf("get own collections: %w", ErrMissingAPIKey)
	}

	var resp models.CollectionsResponse
	if err := c.get(ctx, routeCollectionsAPIKey, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get own collections: %w", err)
	}
	return resp.Data, nil
}

// CollectionPage returns one page of a collection's wallpapers.
func (c *Client) CollectionPage(ctx context.Context, username string, collectionID, page int) (*models.ListResponse[models.Wallpaper], error) {
	if !usernameExpr.MatchString(username) {
		return nil, fmt.Errorf("%w: username %q", ErrInvalidArgument, username)
	}
	if collectionID <= 0 {
		return nil, fmt.Errorf("%w: collection id must be positive (got %d)", ErrInvalidArgument, collectionID)
	}

	params := url.Values{}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}

	vars := map[string]string{"username": username, "id": strconv.Itoa(collectionID)}
	var resp models.ListResponse[models.Wallpaper]
	if err := c.get(ctx, routeCollectionWallpapers, vars, params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CollectionWallpapers returns up to limit wallpapers of a collection, following
// pages as needed. A limit of 0 returns the whole collection. An empty
// collection yields an empty slice; a missing one fails with ErrNotFound.
func (c *Client) CollectionWallpapers(ctx context.Context, username string, collectionID, limit int) ([]models.Wallpaper, error) {
	fetch := pagination.PageFetcherFunc[models.Wallpaper](func(ctx context.Context, page int) (pagination.Page[models.Wallpaper], error) {
		resp, err := c.CollectionPage(ctx, username, collectionID, page)
		if err != nil {
			return pagination.Page[models.Wallpaper]{}, err
		}
		return toPage(resp), nil
	})

	walls, err := pagination.NewFetcher[models.Wallpaper](fetch, c.pageConfig()).Fetch(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get wallpapers of collection %s/%d: %w", username, collectionID, err)
	}
	return walls, nil
}

// Search runs a search with the builder's parameters and returns one page.
// A nil builder searches with the default parameters.
func (c *Client) Search(ctx context.Context, b *query.Builder) (*models.ListResponse[models.Wallpaper], error) {
	if b == nil {
		b = query.New()
	}

	var resp models.ListResponse[models.Wallpaper]
	if err := c.get(ctx, routeSearch, nil, b.Values(), &resp); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return &resp, nil
}

// SearchAll runs a search and follows result pages from the builder's current
// page until limit wallpapers are collected or the results end. A limit of 0
// follows every page. The builder is not modified.
func (c *Client) SearchAll(ctx context.Context, b *query.Builder, limit int) ([]models.Wallpaper, error) {
	if b == nil {
		b = query.New()
	}
	search := b.Clone()
	offset := search.Page() - 1

	fetch := pagination.PageFetcherFunc[models.Wallpaper](func(ctx context.Context, page int) (pagination.Page[models.Wallpaper], error) {
		if err := search.SetPage(offset + page); err != nil {
			return pagination.Page[models.Wallpaper]{}, err
		}
		resp, err := c.Search(ctx, search)
		if err != nil {
			return pagination.Page[models.Wallpaper]{}, err
		}
		p := toPage(resp)
		p.Meta.LastPage -= offset
		return p, nil
	})

	return pagination.NewFetcher[models.Wallpaper](fetch, c.pageConfig()).Fetch(ctx, limit)
}

func (c *Client) pageConfig() pagination.Config {
	return pagination.Config{
		Delay:   c.config.PageDelay,
		Timeout: c.config.Timeout,
	}
}

func toPage(resp *models.ListResponse[models.Wallpaper]) pagination.Page[models.Wallpaper] {
	return pagination.Page[models.Wallpaper]{
		Items: resp.Data,
		Meta: pagination.Meta{
			CurrentPage: int(resp.Meta.CurrentPage),
			LastPage:    int(resp.Meta.LastPage),
			PerPage:     int(resp.Meta.PerPage),
			Total:       int(resp.Meta.Total),
		},
	}
}
