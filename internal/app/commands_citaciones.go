package app

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/tercera/pkg/firesdk"
)

func (app *Application) citacionesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "citaciones",
		Aliases: []string{"citacion"},
		Short:   "Citaciones de la compañía",
	}

	var filter firesdk.CitacionFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar citaciones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validDate(filter.FechaDesde); err != nil {
				return err
			}
			if err := validDate(filter.FechaHasta); err != nil {
				return err
			}
			citaciones, err := app.api.ListCitaciones(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printCitaciones(cmd.OutOrStdout(), citaciones)
		},
	}
	list.Flags().StringVar(&filter.FechaDesde, "desde", "", "fecha inicial (AAAA-MM-DD)")
	list.Flags().StringVar(&filter.FechaHasta, "hasta", "", "fecha final (AAAA-MM-DD)")

	todas := &cobra.Command{
		Use:   "todas",
		Short: "Listar todas las citaciones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			citaciones, err := app.api.ListCitaciones(cmd.Context(), firesdk.CitacionFilter{})
			if err != nil {
				return err
			}
			return printCitaciones(cmd.OutOrStdout(), citaciones)
		},
	}

	disponibles := &cobra.Command{
		Use:   "disponibles",
		Short: "Citaciones abiertas para pedir licencia",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			citaciones, err := app.api.ListCitacionesDisponibles(cmd.Context())
			if err != nil {
				return err
			}
			return printCitaciones(cmd.OutOrStdout(), citaciones)
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Ver el detalle de una citación",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			citacion, err := app.api.GetCitacion(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Nombre:       %s\n", orDash(citacion.Nombre))
			fmt.Fprintf(out, "Fecha:        %s\n", orDash(citacion.Fecha))
			fmt.Fprintf(out, "Lugar:        %s\n", orDash(citacion.Lugar))
			fmt.Fprintf(out, "Tenida:       %s\n", orDash(citacion.Tenida))
			_, err = fmt.Fprintf(out, "Descripción:  %s\n", orDash(citacion.Descripcion))
			return err
		},
	}

	var create firesdk.CreateCitacionRequest
	crear := &cobra.Command{
		Use:   "crear",
		Short: "Crear una citación",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(create.Nombre) == "" || strings.TrimSpace(create.Fecha) == "" {
				return errors.New("nombre y fecha son obligatorios")
			}
			citacion, err := app.api.CreateCitacion(cmd.Context(), create)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Citación %d creada\n", citacion.ID)
			return err
		},
	}
	crear.Flags().StringVar(&create.Nombre, "nombre", "", "nombre de la citación")
	crear.Flags().StringVar(&create.Fecha, "fecha", "", "fecha y hora (AAAA-MM-DDTHH:MM)")
	crear.Flags().StringVar(&create.Lugar, "lugar", "", "lugar")
	crear.Flags().StringVar(&create.Tenida, "tenida", "", "tenida")
	crear.Flags().StringVar(&create.Descripcion, "descripcion", "", "descripción")

	cmd.AddCommand(
		screen(list, "/citaciones/list"),
		screen(todas, "/citaciones/todas"),
		screen(disponibles, "/citaciones/disponibles"),
		screen(show, "/citaciones/:id"),
		screen(crear, "/citaciones/crear"),
	)
	return cmd
}

func (app *Application) licenciasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "licencias",
		Aliases: []string{"licencia"},
		Short:   "Licencias para citaciones",
	}

	mine := &cobra.Command{
		Use:   "mine",
		Short: "Listar mis licencias",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.ownID()
			if err != nil {
				return err
			}
			licencias, err := app.api.ListLicencias(cmd.Context(), firesdk.LicenciaFilter{Autor: id})
			if err != nil {
				return err
			}
			return printLicencias(cmd.OutOrStdout(), licencias)
		},
	}

	list := &cobra.Command{
		Use:   "list <citacion>",
		Short: "Listar las licencias de una citación",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseID(args[0]); err != nil {
				return err
			}
			licencias, err := app.api.ListLicencias(cmd.Context(), firesdk.LicenciaFilter{Citacion: args[0]})
			if err != nil {
				return err
			}
			return printLicencias(cmd.OutOrStdout(), licencias)
		},
	}

	var motivo string
	create := &cobra.Command{
		Use:   "create <citacion>",
		Short: "Pedir licencia para una citación",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			citacionID := args[0]
			if _, err := parseID(citacionID); err != nil {
				return err
			}
			if strings.TrimSpace(motivo) == "" {
				return errors.New("el motivo es obligatorio (--motivo)")
			}

			autor, err := app.ownID()
			if err != nil {
				return err
			}

			existing, err := app.api.FindLicencia(ctx, autor, citacionID)
			if err != nil {
				return err
			}
			if existing != nil {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Ya registraste una licencia para esta citación (%s)\n", orDash(existing.Motivo))
				return err
			}

			licencia, err := app.api.CreateLicencia(ctx, firesdk.CreateLicenciaRequest{
				Motivo:   strings.TrimSpace(motivo),
				Autor:    autor,
				Citacion: citacionID,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Licencia %d registrada\n", licencia.ID)
			return err
		},
	}
	create.Flags().StringVar(&motivo, "motivo", "", "motivo de la licencia")

	cmd.AddCommand(
		screen(mine, "/licencia/list"),
		screen(list, "/licencia/gestionar/:id"),
		screen(create, "/licencia/citacion/:id"),
	)
	return cmd
}

func printCitaciones(out io.Writer, citaciones []firesdk.Citacion) error {
	rows := make([][]string, 0, len(citaciones))
	for _, c := range citaciones {
		rows = append(rows, []string{
			fmt.Sprint(c.ID),
			orDash(c.Fecha),
			orDash(c.Nombre),
			orDash(c.Lugar),
			orDash(c.Tenida),
		})
	}
	return printTable(out, []string{"ID", "FECHA", "NOMBRE", "LUGAR", "TENIDA"}, rows)
}

func printLicencias(out io.Writer, licencias []firesdk.Licencia) error {
	rows := make([][]string, 0, len(licencias))
	for _, l := range licencias {
		citacion := string(l.Citacion)
		if l.CitacionInfo != nil {
			citacion = strings.TrimSpace(l.CitacionInfo.Nombre + " " + l.CitacionInfo.Fecha)
		}
		rows = append(rows, []string{
			fmt.Sprint(l.ID),
			orDash(l.FechaLicencia),
			orDash(l.AutorNombre),
			orDash(citacion),
			orDash(l.Motivo),
		})
	}
	return printTable(out, []string{"ID", "FECHA", "AUTOR", "CITACION", "MOTIVO"}, rows)
}

func validDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return fmt.Errorf("fecha inválida %q: usa AAAA-MM-DD", s)
	}
	return nil
}
