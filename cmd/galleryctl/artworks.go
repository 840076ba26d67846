package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"artvista/internal/catalog"
	"artvista/models"
)

func artworksCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "artworks",
		Short: "List artworks in the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(_ context.Context, store *catalog.Store) error {
				var list []models.Artwork
				switch status {
				case "", "all":
					list = store.Artworks()
				case string(models.StatusApproved):
					list = store.Approved()
				case string(models.StatusPending):
					list = store.Pending()
				default:
					return fmt.Errorf("unknown status %q (want all, approved or pending)", status)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTITLE\tARTIST\tPRICE\tSTATUS")
				for _, a := range list {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", a.ID, a.Title, a.Artist, strconv.FormatFloat(a.Price, 'f', -1, 64), a.Status)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "all", "Filter by status: all, approved or pending")

	return cmd
}

func approveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending artwork",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid artwork id %q", args[0])
			}

			return withCatalog(cmd, func(ctx context.Context, store *catalog.Store) error {
				artwork, err := store.ApproveArtwork(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Approved %q by %s\n", artwork.Title, artwork.Artist)
				return nil
			})
		},
	}
}

func exhibitionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exhibitions",
		Short: "List or add exhibitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(_ context.Context, store *catalog.Store) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTITLE\tCURATOR")
				for _, e := range store.Exhibitions() {
					fmt.Fprintf(w, "%d\t%s\t%s\n", e.ID, e.Title, e.Curator)
				}
				return w.Flush()
			})
		},
	}

	cmd.AddCommand(exhibitionsAddCmd())

	return cmd
}

func exhibitionsAddCmd() *cobra.Command {
	var exhibition models.Exhibition

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an exhibition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, func(ctx context.Context, store *catalog.Store) error {
				created, err := store.AddExhibition(ctx, exhibition)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added exhibition %d %q\n", created.ID, created.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&exhibition.Title, "title", "", "Exhibition title")
	cmd.Flags().StringVar(&exhibition.Description, "description", "", "Exhibition description")
	cmd.Flags().StringVar(&exhibition.Curator, "curator", "", "Curating staff member")

	return cmd
}
