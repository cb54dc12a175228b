package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newWallpaperCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "wallpaper <id>",
		Short: "Show a wallpaper with its uploader and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			wall, err := c.Wallpaper(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, wall)
		},
	}
}

func newTagCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <id>",
		Short: "Show a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("tag id must be a number: %q", args[0])
			}

			c, err := a.newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			tag, err := c.Tag(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeJSON(cmd, tag)
		},
	}
}

func newSettingsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show the browsing settings of the API key's owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			settings, err := c.Settings(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd, settings)
		},
	}
}
