package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/tercera/pkg/firesdk"
)

func (app *Application) listasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listas",
		Short: "Listas de asistencia",
	}

	var filter firesdk.ListaFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "Listar listas de asistencia",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listas, err := app.api.ListListas(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printListas(cmd.OutOrStdout(), listas)
		},
	}
	list.Flags().StringVar(&filter.ContentType, "tipo", "", "citacion o emergencia")
	list.Flags().StringVar(&filter.ObjectID, "objeto", "", "id de la citación o emergencia")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Ver una lista de asistencia",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			lista, err := app.api.GetLista(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), lista)
		},
	}

	var (
		req        NewLista
		citacion   string
		bomberos   []string
		unidades   []string
		emergencia bool
	)
	create := &cobra.Command{
		Use:   "crear",
		Short: "Registrar asistencia a una citación o emergencia",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(bomberos)
			if err != nil {
				return err
			}
			req.Bomberos = ids

			switch {
			case emergencia:
				if citacion != "" {
					return errors.New("--citacion y --emergencia son excluyentes")
				}
				req.ContentType = firesdk.ContentTypeEmergencia
				if req.Emergencia.Unidades, err = parseIDs(unidades); err != nil {
					return err
				}
			default:
				req.ContentType = firesdk.ContentTypeCitacion
				if req.CitacionID, err = parseID(citacion); err != nil {
					return err
				}
			}

			lista, err := app.createLista(cmd.Context(), req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Lista %d creada con %d bomberos\n", lista.ID, len(ids))
			return err
		},
	}
	create.Flags().StringVar(&citacion, "citacion", "", "id de la citación")
	create.Flags().BoolVar(&emergencia, "emergencia", false, "registrar una emergencia nueva")
	create.Flags().StringVar(&req.Emergencia.Clave, "clave", "", "clave radial de la emergencia")
	create.Flags().StringVar(&req.Emergencia.Fecha, "fecha", "", "fecha y hora de la emergencia")
	create.Flags().StringSliceVar(&unidades, "unidades", nil, "ids de las unidades despachadas")
	create.Flags().StringSliceVar(&bomberos, "bomberos", nil, "ids de los bomberos presentes")
	_ = create.MarkFlagRequired("bomberos")

	cmd.AddCommand(
		screen(list, "/lista/list"),
		screen(show, "/lista/:id"),
		screen(create, "/lista/crear"),
	)
	return cmd
}

func (app *Application) emergenciasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emergencias",
		Short: "Listas de asistencia a emergencias",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listas, err := app.api.ListEmergencias(cmd.Context())
			if err != nil {
				return err
			}
			return printListas(cmd.OutOrStdout(), listas)
		},
	}
	return screen(cmd, "/lista/emergencias")
}

func (app *Application) asistenciaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asistencia",
		Short: "Estadísticas de asistencia",
	}

	var anio int
	year := func() int {
		if anio > 0 {
			return anio
		}
		return app.now().Year()
	}

	mia := &cobra.Command{
		Use:   "mia",
		Short: "Mi asistencia del año",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.ownID()
			if err != nil {
				return err
			}
			raw, err := app.api.UserAttendance(cmd.Context(), id, year())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}

	anual := &cobra.Command{
		Use:   "anual",
		Short: "Asistencia anual de la compañía",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := app.api.AnnualAttendance(cmd.Context(), year())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}

	usuario := &cobra.Command{
		Use:   "usuario <id>",
		Short: "Asistencia anual de un bombero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseID(args[0]); err != nil {
				return err
			}
			raw, err := app.api.UserAttendance(cmd.Context(), args[0], year())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}

	resumen := &cobra.Command{
		Use:   "resumen <citacion>",
		Short: "Asistentes y licencias de una citación",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseID(args[0]); err != nil {
				return err
			}
			raw, err := app.api.CitacionAttendanceSummary(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}

	cmd.PersistentFlags().IntVar(&anio, "anio", 0, "año (por defecto el actual)")
	cmd.AddCommand(
		screen(mia, "/asistencia/mia"),
		screen(anual, "/asistencia/anual"),
		screen(usuario, "/asistencia/bomberos/:id"),
		screen(resumen, "/asistencia/resumen/:id"),
	)
	return cmd
}

func printListas(out io.Writer, listas []firesdk.Lista) error {
	rows := make([][]string, 0, len(listas))
	for _, l := range listas {
		evento := ""
		if l.Evento != nil {
			evento = l.Evento.Nombre
			if evento == "" {
				evento = l.Evento.Clave
			}
		}
		rows = append(rows, []string{
			fmt.Sprint(l.ID),
			orDash(l.Tipo),
			orDash(evento),
			orDash(l.FechaCreacion),
		})
	}
	return printTable(out, []string{"ID", "TIPO", "EVENTO", "CREADA"}, rows)
}
