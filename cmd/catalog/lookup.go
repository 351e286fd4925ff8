package main

import (
	"github.com/spf13/cobra"

	"github.com/Sternrassler/spotify-catalog-client/pkg/client"
)

func (a *app) newArtistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "artist <id>",
		Short: "Look up a single artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, client.ArtistRequest{ID: args[0]})
		},
	}
}

func (a *app) newArtistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "artists <id>...",
		Short: "Look up several artists in one request",
		Long: `Look up up to 50 artists in one request.

Unknown ids are printed as null in request order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, client.ArtistsRequest{IDs: args})
		},
	}
}

func (a *app) newAlbumsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "albums <id>",
		Short: "List an artist's albums",
		Long: `List an artist's albums.

Continuation pages are followed up to MAX_PAGES and printed as one merged page.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, _ := cmd.Flags().GetStringSlice("groups")
			market, _ := cmd.Flags().GetString("market")

			opts := client.AlbumsOptions{IncludeGroups: groups, Market: market}
			if cmd.Flags().Changed("limit") {
				limit, _ := cmd.Flags().GetInt("limit")
				opts.Limit = &limit
			}
			if cmd.Flags().Changed("offset") {
				offset, _ := cmd.Flags().GetInt("offset")
				opts.Offset = &offset
			}

			return a.run(cmd, client.AlbumsRequest{ID: args[0], Options: opts})
		},
	}

	cmd.Flags().StringSlice("groups", nil, "Release types to include (album, single, appears_on, compilation)")
	cmd.Flags().String("market", "", "ISO 3166-1 alpha-2 country code")
	cmd.Flags().Int("limit", 0, "Page size (1-50)")
	cmd.Flags().Int("offset", 0, "Index of the first album")

	return cmd
}

func (a *app) newTopTracksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top-tracks <id>",
		Short: "List an artist's top tracks in a market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			market, _ := cmd.Flags().GetString("market")
			return a.run(cmd, client.TopTracksRequest{ID: args[0], Market: market})
		},
	}

	cmd.Flags().String("market", "", "ISO 3166-1 alpha-2 country code (required)")

	return cmd
}

func (a *app) newRelatedArtistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "related-artists <id>",
		Short: "List artists related to an artist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, client.RelatedArtistsRequest{ID: args[0]})
		},
	}
}
