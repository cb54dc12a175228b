package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/wallhaven-client/pkg/models"
)

func newCollectionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "collections [username]",
		Short: "List collections",
		Long: `List the public collections of a user, or all collections of the
API key's owner when no username is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			var collections []models.Collection
			if len(args) == 1 {
				collections, err = c.Collections(cmd.Context(), args[0])
			} else {
				collections, err = c.MyCollections(cmd.Context())
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd, collections)
		},
	}
}

func newCollectionCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "collection <username> <id>",
		Short: "List the wallpapers of a collection",
		Long: `List the wallpapers of a collection, following pages until --limit
wallpapers are collected. A limit of 0 lists the whole collection.

Examples:
  whctl collection bob 15
  whctl collection bob 15 --limit 50`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("collection id must be a number: %q", args[1])
			}

			c, err := a.newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			walls, err := c.CollectionWallpapers(cmd.Context(), args[0], id, limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd, walls)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of wallpapers (0 = all)")

	return cmd
}
