package main

import (
	"github.com/spf13/cobra"

	"github.com/Sternrassler/wallhaven-client/pkg/presets"
)

func newPresetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage saved searches",
		Long: `Manage searches saved with 'whctl search --save'.

Presets are stored in Redis (redis.addr in the config file or WALLHAVEN_REDIS_ADDR).`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List preset names",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withPresetStore(cmd, a, func(store *presets.Store) error {
					names, err := store.List(cmd.Context())
					if err != nil {
						return err
					}
					return writeJSON(cmd, names)
				})
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Show a preset and the parameters it searches with",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withPresetStore(cmd, a, func(store *presets.Store) error {
					preset, err := store.Get(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					b, err := preset.Builder()
					if err != nil {
						return err
					}
					return writeJSON(cmd, struct {
						*presets.Preset
						Params map[string]string `json:"params"`
					}{preset, b.Params()})
				})
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a preset",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withPresetStore(cmd, a, func(store *presets.Store) error {
					if err := store.Delete(cmd.Context(), args[0]); err != nil {
						return err
					}
					a.logger.Info().Str("preset", args[0]).Msg("Preset deleted")
					return nil
				})
			},
		},
	)

	return cmd
}

func withPresetStore(cmd *cobra.Command, a *app, fn func(*presets.Store) error) error {
	store, closeStore, err := a.newPresetStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(store)
}
