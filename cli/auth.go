package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kochabx/vetclinic/auth"
)

func newRegisterCmd() *cobra.Command {
	var vet auth.Veterinaria

	cmd := &cobra.Command{
		Use:   "register <nombre> <email> <password>",
		Short: "Register a clinic account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				logUsage(cmd)
				return errUsage
			}
			vet.Nombre, vet.Email, vet.Password = args[0], args[1], args[2]

			created, err := app.Auth.Register(cmd.Context(), vet)
			if err != nil {
				logError(cmd, err)
				return err
			}
			logJSON(cmd, created)
			return nil
		},
	}

	cmd.Flags().StringVar(&vet.Telefono, "telefono", "", "phone number")
	cmd.Flags().StringVar(&vet.Direccion, "direccion", "", "address")
	return cmd
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				logUsage(cmd)
				return errUsage
			}

			if _, err := app.Auth.Login(cmd.Context(), args[0], args[1]); err != nil {
				logError(cmd, err)
				return err
			}
			// the display name is a convenience, a failure here does not undo the login
			if vet, err := app.Auth.Me(cmd.Context()); err == nil {
				logValue(cmd, "logged in as", vet.Nombre)
				return nil
			}
			logOK(cmd)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				logError(cmd, err)
				return err
			}
			logOK(cmd)
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.Auth.Token(cmd.Context())
			if err != nil {
				logError(cmd, err)
				return err
			}
			if token == "" {
				logError(cmd, errNotLoggedIn)
				return errNotLoggedIn
			}
			logValue(cmd, "token", token)
			return nil
		},
	}
}

type whoami struct {
	ID        int        `json:"id"`
	Nombre    string     `json:"nombre"`
	Email     string     `json:"email"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated clinic",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := app.Auth.Authenticated(cmd.Context())
			if err != nil {
				logError(cmd, err)
				return err
			}
			if !ok {
				logError(cmd, errNotLoggedIn)
				return errNotLoggedIn
			}

			vet, err := app.Auth.Me(cmd.Context())
			if err != nil {
				logError(cmd, err)
				return err
			}

			out := whoami{ID: vet.ID, Nombre: vet.Nombre, Email: vet.Email}
			// opaque tokens simply have no expiry to show
			if claims, err := app.Auth.Claims(cmd.Context()); err == nil && !claims.ExpiresAt.IsZero() {
				out.ExpiresAt = &claims.ExpiresAt
			}
			logJSON(cmd, out)
			return nil
		},
	}
}
