// Package presets stores named search presets in Redis.
//
// A preset is a snapshot of a query.Builder (its query.State) saved under a
// normalized name, so a search can be replayed later from the CLI or a
// long-running service.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	store := presets.NewStore(redisClient, "")
//
//	b := query.New()
//	_ = b.IncludeTags("landscape")
//	_ = b.SetSorting("toplist")
//
//	if _, err := store.Save(ctx, "Daily Landscapes", b); err != nil {
//		return err
//	}
//
//	preset, err := store.Get(ctx, "daily-landscapes")
//	if errors.Is(err, presets.ErrPresetNotFound) {
//		// nothing saved under that name
//	}
//
//	b, err = preset.Builder()
//
// # Keys
//
// Presets live under "<prefix>:preset:<name>" where prefix defaults to
// "wallhaven". Names are lowercased and inner whitespace becomes "-", so
// "Daily Landscapes" and "daily-landscapes" address the same preset.
package presets
