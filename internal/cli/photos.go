package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"photogrip/internal/domain"
)

type listOptions struct {
	tab    string
	person string
}

func (o *listOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.tab, "tab", "all", "photo list: all or mine")
	cmd.Flags().StringVar(&o.person, "person", "", "list the photos of this person id instead")
}

// loadList refreshes one list through the photo source. A failed refresh
// falls back to the cached list.
func loadList(ctx context.Context, app *App, o listOptions) ([]domain.Photo, error) {
	if o.person != "" {
		if err := app.Source.SelectPerson(ctx, o.person); err != nil {
			return nil, err
		}
		return app.Source.Photos(domain.TabFind), nil
	}

	var tab domain.Tab
	switch o.tab {
	case "all", "":
		tab = domain.TabAll
	case "mine":
		tab = domain.TabMine
	default:
		return nil, fmt.Errorf("unknown tab %q: use all or mine", o.tab)
	}
	if err := app.Source.Refresh(ctx, tab); err != nil {
		return nil, err
	}
	return app.Source.Photos(tab), nil
}

func newPhotosCmd(root *rootOptions) *cobra.Command {
	var o listOptions
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "photos",
		Short: "List photos",
		Long: `List the photos of a tab, one per line as INDEX, ID and URL.

The index is what share accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(root)
			if err != nil {
				return err
			}
			defer app.Close()

			list, err := loadList(cmd.Context(), app, o)
			if err != nil {
				return err
			}
			return printPhotos(cmd.OutOrStdout(), list, asJSON)
		},
	}
	o.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printPhotos(w io.Writer, list []domain.Photo, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No photos found")
		return err
	}
	for i, p := range list {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, p.ID, p.URL); err != nil {
			return err
		}
	}
	return nil
}

func newPeopleCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "people",
		Short: "List the people found in the photos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(root)
			if err != nil {
				return err
			}
			defer app.Close()

			persons, err := app.Source.Persons(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(persons) == 0 {
				fmt.Fprintln(out, "No people found yet.")
				return nil
			}
			for _, p := range persons {
				fmt.Fprintf(out, "%s\t%s\t%s\n", p.ID, p.DisplayName(), p.PhotosLabel())
			}
			return nil
		},
	}
}

func newShareCmd(root *rootOptions) *cobra.Command {
	var o listOptions

	cmd := &cobra.Command{
		Use:   "share INDEX...",
		Short: "Share photos by their list index",
		Long: `Share photos by the index printed by the photos command.

With share_dir configured the images are exported into a new folder below
it; otherwise their links are copied to the clipboard.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(root)
			if err != nil {
				return err
			}
			defer app.Close()

			list, err := loadList(cmd.Context(), app, o)
			if err != nil {
				return err
			}

			ctrl := app.Controller(nil)
			ctrl.SetPhotos(list)
			ctrl.EnterSelectMode()
			for _, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil || n < 1 || n > len(list) {
					return fmt.Errorf("invalid index %q: expected 1..%d", arg, len(list))
				}
				if !ctrl.IsSelected(n - 1) {
					ctrl.TogglePick(n-1, nil)
				}
			}

			res, err := ctrl.ShareSelected(cmd.Context())
			if err != nil {
				return fmt.Errorf("share: %w", err)
			}
			if res.Copied {
				fmt.Fprintf(cmd.OutOrStdout(), "Copied %s to the clipboard\n", links(res.Count))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Shared %s to %s\n", plural(res.Count, "photo", "photos"), app.Config.ShareDir)
			return nil
		},
	}
	o.register(cmd)
	return cmd
}

func links(n int) string {
	return plural(n, "link", "links")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
