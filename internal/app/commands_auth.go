package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/tercera/internal/access"
	"github.com/aussiebroadwan/tercera/internal/session"
	"github.com/aussiebroadwan/tercera/pkg/firesdk"
)

func (app *Application) loginCommand() *cobra.Command {
	var rut, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión con RUT y contraseña",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if strings.TrimSpace(rut) == "" {
				return errors.New("el RUT es obligatorio (--rut)")
			}
			if password == "" {
				password = os.Getenv("TERCERA_PASSWORD")
			}
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("la contraseña es obligatoria (--password, TERCERA_PASSWORD o stdin)")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			tokens, err := app.client.Login(ctx, strings.TrimSpace(rut), password)
			if err != nil {
				if errors.Is(err, firesdk.ErrInvalidCredentials) {
					return errors.New("credenciales inválidas")
				}
				return err
			}

			if err := app.session.Login(ctx, *tokens); err != nil {
				return err
			}

			user, _ := app.session.CurrentUser()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Bienvenido, %s\n", orDash(user.DisplayName()))
			return err
		},
	}
	cmd.Flags().StringVar(&rut, "rut", "", "RUT del bombero")
	cmd.Flags().StringVar(&password, "password", "", "contraseña (por defecto se lee de TERCERA_PASSWORD o stdin)")
	return screen(cmd, access.PathLogin)
}

func (app *Application) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar la sesión local",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.Logout(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada")
			return err
		},
	}
}

func (app *Application) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Mostrar la sesión actual",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			state := app.session.State()
			fmt.Fprintf(out, "Estado:   %s\n", state)
			if state != session.LoggedIn {
				return nil
			}

			user, _ := app.session.CurrentUser()
			fmt.Fprintf(out, "Usuario:  %s (id %s)\n", orDash(user.DisplayName()), orDash(user.ID()))
			fmt.Fprintf(out, "Grupos:   %s\n", orDash(strings.Join(access.ExtractGroupNames(user).Names(), ", ")))

			claims, err := firesdk.ParseAccessClaims(app.session.AccessToken())
			if err != nil {
				fmt.Fprintln(out, "Token:    no se pudo leer")
				return nil
			}
			if claims.ExpiresAt != nil {
				expires := claims.ExpiresAt.Time
				note := ""
				if claims.ExpiresWithin(0, app.now()) {
					note = " (vencido)"
				}
				fmt.Fprintf(out, "Expira:   %s%s\n", expires.Local().Format(time.DateTime), note)
			}
			return nil
		},
	}
}

func (app *Application) passwordResetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password-reset",
		Short: "Recuperar la contraseña",
	}

	var rut string
	request := &cobra.Command{
		Use:   "request",
		Short: "Solicitar un enlace de recuperación",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.client.RequestPasswordReset(cmd.Context(), strings.TrimSpace(rut)); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Si el RUT existe, recibirás un correo con instrucciones.")
			return err
		},
	}
	request.Flags().StringVar(&rut, "rut", "", "RUT del bombero")

	var confirm firesdk.PasswordResetConfirm
	confirmCmd := &cobra.Command{
		Use:   "confirm",
		Short: "Definir una nueva contraseña",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if confirm.NewPassword != confirm.NewPasswordConfirm {
				return errors.New("las contraseñas no coinciden")
			}
			if err := app.client.ConfirmPasswordReset(cmd.Context(), confirm); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Contraseña actualizada.")
			return err
		},
	}
	confirmCmd.Flags().StringVar(&confirm.UID, "uid", "", "uid del enlace")
	confirmCmd.Flags().StringVar(&confirm.Token, "token", "", "token del enlace")
	confirmCmd.Flags().StringVar(&confirm.NewPassword, "password", "", "nueva contraseña")
	confirmCmd.Flags().StringVar(&confirm.NewPasswordConfirm, "password-confirm", "", "repetir nueva contraseña")
	_ = confirmCmd.MarkFlagRequired("uid")
	_ = confirmCmd.MarkFlagRequired("token")

	cmd.AddCommand(screen(request, "/password-reset"), screen(confirmCmd, "/password-reset/confirm"))
	return cmd
}

func (app *Application) versionCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Mostrar la versión",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !plain {
				banner := figure.NewFigure(AppName, "cybermedium", true)
				fmt.Fprintln(out, banner.String())
			}
			_, err := fmt.Fprintf(out, "%s %s\n", AppName, BuildVersion)
			return err
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "sin banner")
	return cmd
}

func (app *Application) menuCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Mostrar las pantallas disponibles para tu rol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, _ := app.session.CurrentUser()
			out := cmd.OutOrStdout()
			for _, section := range access.Menu(user) {
				if len(section.Items) == 0 {
					fmt.Fprintf(out, "%s  %s\n", section.Label, section.Path)
					continue
				}
				fmt.Fprintln(out, section.Label)
				for _, item := range section.Items {
					fmt.Fprintf(out, "  %-24s %s\n", item.Label, item.Path)
				}
			}
			return nil
		},
	}
	return screen(cmd, access.PathDashboard)
}
