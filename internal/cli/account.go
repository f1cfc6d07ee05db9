package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"photogrip/internal/identity"
	"photogrip/internal/upload"
)

// errSignIn is returned by commands that need a session
var errSignIn = errors.New("not signed in: run photogrip login first")

func newLoginCmd(root *rootOptions) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a Google ID token",
		Long: `Sign in with a Google ID token.

The token comes from --token or from ` + identity.TokenEnv + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(root)
			if err != nil {
				return err
			}
			defer app.Close()

			if token != "" {
				app.Identity.Supply(token)
			}
			user, err := identity.SignIn(cmd.Context(), app.Identity, app.Store)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", user.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "Google ID token")
	return cmd
}

func newLogoutCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(root)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newUploadCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "upload PATH...",
		Short: "Upload images or folders of images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(root)
			if err != nil {
				return err
			}
			defer app.Close()

			if !app.Client.HasSession() {
				return errSignIn
			}
			files, err := upload.Collect(args)
			if err != nil {
				return err
			}
			res, err := app.Client.Upload(cmd.Context(), files)
			if err != nil {
				return fmt.Errorf("upload: %w", err)
			}
			msg := res.Message()
			if msg == "" {
				msg = "Nothing was uploaded."
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func newDeleteCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete photos by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(root)
			if err != nil {
				return err
			}
			defer app.Close()

			if !app.Client.HasSession() {
				return errSignIn
			}
			var errs []error
			for _, id := range args {
				if err := app.Client.DeletePhoto(cmd.Context(), id); err != nil {
					app.Log.Warn("Delete failed", "id", id, "error", err)
					errs = append(errs, fmt.Errorf("delete %s: %w", id, err))
				}
			}
			deleted := len(args) - len(errs)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", plural(deleted, "photo", "photos"))
			return errors.Join(errs...)
		},
	}
}
