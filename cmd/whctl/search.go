package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/wallhaven-client/pkg/query"
)

type searchOptions struct {
	categories string
	purity     string
	sorting    string
	order      string
	topRange   string
	page       int
	include    []string
	exclude    []string
	user       string
	fileType   string
	like       string
	atLeast    string
	ratios     []string
	limit      int
	preset     string
	save       string
}

func newSearchCmd(a *app) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search wallpapers",
		Long: `Search wallpapers with the website's filters.

The query uses the wallhaven syntax: +tag or tag includes, -tag excludes,
@user, id:123, type:png and like:abc123. Other words are free text.

Examples:
  whctl search landscape -city
  whctl search --sorting toplist --range 1w --purity 110
  whctl search mountains --atleast 2560x1440 --ratios 16x9 --limit 100
  whctl search forest --save forest
  whctl search --preset forest --page 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, a, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.categories, "categories", query.DefaultCategories, "categories selector: general, anime, people (e.g. 110)")
	flags.StringVar(&opts.purity, "purity", query.DefaultPurity, "purity selector: sfw, sketchy, nsfw (e.g. 100)")
	flags.StringVar(&opts.sorting, "sorting", string(query.DefaultSorting), "date_added, relevance, random, views, favorites, toplist")
	flags.StringVar(&opts.order, "order", string(query.DefaultOrder), "desc or asc")
	flags.StringVar(&opts.topRange, "range", string(query.DefaultRange), "toplist range: 1d, 3d, 1w, 1M, 3M, 6M, 1y")
	flags.IntVar(&opts.page, "page", query.DefaultPage, "result page")
	flags.StringSliceVarP(&opts.include, "include", "i", nil, "tags to include")
	flags.StringSliceVarP(&opts.exclude, "exclude", "x", nil, "tags to exclude")
	flags.StringVarP(&opts.user, "user", "u", "", "only wallpapers uploaded by user")
	flags.StringVar(&opts.fileType, "type", "", "file type: png or jpg")
	flags.StringVar(&opts.like, "like", "", "wallpapers similar to the given wallpaper id")
	flags.StringVar(&opts.atLeast, "atleast", "", "minimum resolution (e.g. 1920x1080)")
	flags.StringSliceVar(&opts.ratios, "ratios", nil, "aspect ratios (e.g. 16x9,landscape)")
	flags.IntVarP(&opts.limit, "limit", "l", 0, "follow pages until this many wallpapers are collected")
	flags.StringVar(&opts.preset, "preset", "", "start from a saved preset")
	flags.StringVar(&opts.save, "save", "", "save the resulting search as a preset")

	return cmd
}

func runSearch(cmd *cobra.Command, a *app, opts *searchOptions, args []string) error {
	ctx := cmd.Context()

	b := query.New()

	if opts.preset != "" || opts.save != "" {
		store, closeStore, err := a.newPresetStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		if opts.preset != "" {
			preset, err := store.Get(ctx, opts.preset)
			if err != nil {
				return err
			}
			if b, err = preset.Builder(); err != nil {
				return err
			}
		}

		if err := opts.apply(cmd, b, args); err != nil {
			return err
		}

		if opts.save != "" {
			preset, err := store.Save(ctx, opts.save, b)
			if err != nil {
				return err
			}
			a.logger.Info().Str("preset", preset.Name).Str("q", b.Query()).Msg("Preset saved")
		}
	} else if err := opts.apply(cmd, b, args); err != nil {
		return err
	}

	c, err := a.newClient()
	if err != nil {
		return err
	}
	defer c.Close()

	if opts.limit != 0 {
		walls, err := c.SearchAll(ctx, b, opts.limit)
		if err != nil {
			return err
		}
		return writeJSON(cmd, walls)
	}

	resp, err := c.Search(ctx, b)
	if err != nil {
		return err
	}
	return writeJSON(cmd, resp)
}

// apply sets the explicitly given flags on b, so that a preset keeps the
// values the user did not override.
func (o *searchOptions) apply(cmd *cobra.Command, b *query.Builder, args []string) error {
	flags := cmd.Flags()

	if len(args) > 0 {
		b.SetSearchQuery(strings.Join(args, " "))
	}

	if flags.Changed("categories") {
		c, err := query.ParseCategories(o.categories)
		if err != nil {
			return err
		}
		if err := b.SetCategories(c.General, c.Anime, c.People); err != nil {
			return err
		}
	}
	if flags.Changed("purity") {
		p, err := query.ParsePurity(o.purity)
		if err != nil {
			return err
		}
		if err := b.SetPurity(p.SFW, p.Sketchy, p.NSFW); err != nil {
			return err
		}
	}
	if flags.Changed("sorting") {
		if err := b.SetSorting(o.sorting); err != nil {
			return err
		}
	}
	if flags.Changed("order") {
		if err := b.SetSortingOrder(o.order); err != nil {
			return err
		}
	}
	if flags.Changed("range") {
		if err := b.SetRange(o.topRange); err != nil {
			return err
		}
	}
	if flags.Changed("page") {
		if err := b.SetPage(o.page); err != nil {
			return err
		}
	}
	if len(o.include) > 0 {
		if err := b.IncludeTags(o.include...); err != nil {
			return err
		}
	}
	if len(o.exclude) > 0 {
		if err := b.ExcludeTags(o.exclude...); err != nil {
			return err
		}
	}
	if o.user != "" {
		if err := b.FilterByUser(o.user); err != nil {
			return err
		}
	}
	if o.fileType != "" {
		if err := b.SetFileType(o.fileType); err != nil {
			return err
		}
	}
	if o.like != "" {
		if err := b.SetLike(o.like); err != nil {
			return err
		}
	}
	if o.atLeast != "" {
		w, h, err := query.ParseDimension(o.atLeast)
		if err != nil {
			return err
		}
		if err := b.SetAtLeast(w, h); err != nil {
			return err
		}
	}
	if flags.Changed("ratios") {
		if err := b.SetRatios(o.ratios...); err != nil {
			return err
		}
	}

	return nil
}
