package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/tercera/internal/access"
	"github.com/aussiebroadwan/tercera/internal/domain"
	"github.com/aussiebroadwan/tercera/pkg/firesdk"
)

func (app *Application) dashboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Resumen del bombero y próximas citaciones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dash, err := app.loadDashboard(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Hola, %s\n", orDash(dash.Profile.DisplayName()))
			if groups := access.ExtractGroupNames(dash.Profile).Names(); len(groups) > 0 {
				fmt.Fprintf(out, "Grupos: %s\n", strings.Join(groups, ", "))
			}
			fmt.Fprintln(out)

			if len(dash.Citaciones) == 0 {
				_, err := fmt.Fprintln(out, "No hay citaciones próximas.")
				return err
			}
			fmt.Fprintln(out, "Próximas citaciones")
			return printCitaciones(out, dash.Citaciones)
		},
	}
	return screen(cmd, access.PathDashboard)
}

func (app *Application) meCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Ver mi perfil",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := app.api.GetMe(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}

	var (
		fields map[string]string
		imagen string
	)
	update := &cobra.Command{
		Use:   "update",
		Short: "Actualizar mi perfil",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := firesdk.UpdateMeRequest{Fields: fields}
			if imagen != "" {
				file, closeFile, err := openUpload("imagen", imagen)
				if err != nil {
					return err
				}
				defer closeFile()
				req.Image = &file
			}

			raw, err := app.api.UpdateMe(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}
	update.Flags().StringToStringVar(&fields, "field", nil, "campo=valor a actualizar (repetible)")
	update.Flags().StringVar(&imagen, "imagen", "", "ruta de la nueva foto de perfil")

	cmd.AddCommand(screen(update, "/perfil"))
	return screen(cmd, "/perfil")
}

func (app *Application) perfilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perfiles",
		Short: "Listar los perfiles de bomberos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			perfiles, err := app.api.ListPerfiles(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(perfiles))
			for _, p := range perfiles {
				profile := domain.Profile(p)
				rows = append(rows, []string{
					orDash(profile.ID()),
					orDash(profile.DisplayName()),
					orDash(profileField(profile, "rut")),
					orDash(strings.Join(access.ExtractGroupNames(profile).Names(), ", ")),
				})
			}
			return printTable(cmd.OutOrStdout(), []string{"ID", "NOMBRE", "RUT", "GRUPOS"}, rows)
		},
	}
	return screen(cmd, "/perfiles")
}

// profileField renders a top-level scalar profile field.
func profileField(p domain.Profile, key string) string {
	v, ok := p.Lookup(key)
	if !ok {
		return ""
	}
	s, _ := domain.Scalar(v)
	return s
}
