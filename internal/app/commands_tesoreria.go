package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/tercera/internal/cuotas"
	"github.com/aussiebroadwan/tercera/pkg/firesdk"
)

func (app *Application) cuotasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cuotas",
		Short: "Cuotas mensuales",
	}

	var all bool
	meses := &cobra.Command{
		Use:   "meses",
		Short: "Mis cuotas pagadas y pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.ownID()
			if err != nil {
				return err
			}
			grouped, err := app.loadCuotas(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printCuotas(cmd.OutOrStdout(), grouped, all)
		},
	}
	meses.Flags().BoolVar(&all, "todos", false, "mostrar todos los años, no sólo el último")

	resumen := &cobra.Command{
		Use:   "resumen",
		Short: "Resumen de cuotas por bombero",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.api.ResumenCuotas(cmd.Context())
			if err != nil {
				return err
			}

			summary := cuotas.NormalizeSummary(records)
			rows := make([][]string, 0, len(summary))
			for _, r := range summary {
				moroso := "no"
				if r.Moroso {
					moroso = "sí"
				}
				rows = append(rows, []string{
					orDash(r.ID),
					r.Nombre,
					r.Rut,
					cuotas.FormatCount(r.TotalPagadas),
					cuotas.FormatCount(r.TotalPendientes),
					moroso,
				})
			}
			return printTable(cmd.OutOrStdout(), []string{"ID", "NOMBRE", "RUT", "PAGADAS", "PENDIENTES", "MOROSO"}, rows)
		},
	}

	var allBombero bool
	bombero := &cobra.Command{
		Use:   "bombero <id>",
		Short: "Cuotas de un bombero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseID(args[0]); err != nil {
				return err
			}
			grouped, err := app.loadCuotas(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printCuotas(cmd.OutOrStdout(), grouped, allBombero)
		},
	}
	bombero.Flags().BoolVar(&allBombero, "todos", false, "mostrar todos los años, no sólo el último")

	cmd.AddCommand(
		screen(meses, "/tesoreria/mis-cuotas"),
		screen(resumen, "/tesorero/revisar"),
		screen(bombero, "/tesorero/revisar/:id"),
	)
	return cmd
}

func (app *Application) comprobantesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comprobantes",
		Short: "Comprobantes de pago",
	}

	var subirMeses []string
	subir := &cobra.Command{
		Use:   "subir <ruta>",
		Short: "Subir el comprobante de una transferencia",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(subirMeses)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				return errors.New("selecciona al menos un mes (--meses)")
			}
			file, closeFile, err := openUpload("archivo", args[0])
			if err != nil {
				return err
			}
			defer closeFile()

			if _, err := app.api.UploadComprobanteTransferencia(cmd.Context(), firesdk.UploadTransferenciaRequest{
				MesesPagados: ids,
				File:         file,
			}); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Comprobante enviado, queda pendiente de revisión.")
			return err
		},
	}
	subir.Flags().StringSliceVar(&subirMeses, "meses", nil, "ids de los meses pagados")

	pendientes := &cobra.Command{
		Use:   "pendientes",
		Short: "Comprobantes por revisar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pendientes, err := app.api.ListComprobantesPendientes(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(pendientes))
			for _, p := range pendientes {
				bombero := ""
				if p.Bombero != nil {
					bombero = p.Bombero.Nombre
				}
				rows = append(rows, []string{
					fmt.Sprint(p.ID),
					orDash(bombero),
					orDash(p.FechaEnvio),
					orDash(mesesLabel(p.MesesPagadosDetalle)),
					orDash(p.Archivo),
				})
			}
			return printTable(cmd.OutOrStdout(), []string{"ID", "BOMBERO", "ENVIADO", "MESES", "ARCHIVO"}, rows)
		},
	}

	var aprobacion firesdk.AprobarComprobanteRequest
	aprobar := &cobra.Command{
		Use:   "aprobar <id>",
		Short: "Aprobar un comprobante",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(aprobacion.NumeroComprobante) == "" || strings.TrimSpace(aprobacion.MontoTotal) == "" {
				return errors.New("número de comprobante y monto son obligatorios")
			}
			if err := app.api.AprobarComprobante(cmd.Context(), id, aprobacion); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Comprobante %d aprobado\n", id)
			return err
		},
	}
	aprobar.Flags().StringVar(&aprobacion.NumeroComprobante, "numero", "", "número de comprobante")
	aprobar.Flags().StringVar(&aprobacion.MontoTotal, "monto", "", "monto total")

	var observacion string
	rechazar := &cobra.Command{
		Use:   "rechazar <id>",
		Short: "Rechazar un comprobante",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.api.RechazarComprobante(cmd.Context(), id, strings.TrimSpace(observacion)); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Comprobante %d rechazado\n", id)
			return err
		},
	}
	rechazar.Flags().StringVar(&observacion, "observacion", "", "motivo del rechazo")

	var (
		registro      firesdk.ComprobanteTesoreroRequest
		registroMeses []string
	)
	registrar := &cobra.Command{
		Use:   "registrar",
		Short: "Registrar un pago recibido por tesorería",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(registroMeses)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				return errors.New("selecciona al menos un mes (--meses)")
			}
			if registro.Bombero <= 0 {
				return errors.New("el bombero es obligatorio (--bombero)")
			}
			if registro.MontoTotal <= 0 {
				return errors.New("el monto debe ser mayor que cero (--monto)")
			}

			req := registro
			req.MesesPagados = ids
			if _, err := app.api.RegistrarComprobanteTesorero(cmd.Context(), req); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Pago registrado: %d meses\n", len(ids))
			return err
		},
	}
	registrar.Flags().StringVar(&registro.NumeroComprobante, "numero", "", "número de comprobante")
	registrar.Flags().Int64Var(&registro.Bombero, "bombero", 0, "id del bombero")
	registrar.Flags().Float64Var(&registro.MontoTotal, "monto", 0, "monto total")
	registrar.Flags().StringSliceVar(&registroMeses, "meses", nil, "ids de los meses pagados")

	cmd.AddCommand(
		screen(subir, "/tesoreria/subir-comprobante"),
		screen(pendientes, "/tesorero/bandeja"),
		screen(aprobar, "/tesorero/bandeja"),
		screen(rechazar, "/tesorero/bandeja"),
		screen(registrar, "/tesorero/registrar"),
	)
	return cmd
}

// printCuotas renders the latest year of a dues calendar, or every year
// when all is set.
func printCuotas(out io.Writer, g cuotas.Grouped, all bool) error {
	if len(g.Years) == 0 {
		_, err := fmt.Fprintln(out, "No hay meses registrados.")
		return err
	}

	years := g.Years
	if !all {
		years = []string{g.Latest()}
	}

	for i, year := range years {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "Año %s\n", year)

		paid := 0
		rows := make([][]string, 0, len(g.ByYear[year]))
		for _, m := range g.ByYear[year] {
			if m.Paid {
				paid++
			}
			rows = append(rows, []string{fmt.Sprint(m.ID), m.Name, m.Label})
		}
		if err := printTable(out, []string{"ID", "MES", "ESTADO"}, rows); err != nil {
			return err
		}
		fmt.Fprintf(out, "Pagadas: %s  Pendientes: %s\n",
			cuotas.FormatCount(float64(paid)), cuotas.FormatCount(float64(len(rows)-paid)))
	}
	return nil
}

func mesesLabel(meses []firesdk.Mes) string {
	labels := make([]string, 0, len(meses))
	for _, m := range meses {
		labels = append(labels, cuotas.MonthName(m.Mes.Int(), string(m.Mes))+" "+string(m.Anio))
	}
	return strings.Join(labels, ", ")
}
