package app

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/tercera/pkg/firesdk"
)

func (app *Application) archivosCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archivos",
		Short: "Documentos de la compañía",
	}

	tipos := &cobra.Command{
		Use:   "tipos",
		Short: "Listar los tipos de documento",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tipos, err := app.api.ListTiposPermitidos(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(tipos))
			for _, t := range tipos {
				rows = append(rows, []string{t.Value, orDash(t.Label)})
			}
			return printTable(cmd.OutOrStdout(), []string{"TIPO", "DESCRIPCION"}, rows)
		},
	}

	list := &cobra.Command{
		Use:   "list [tipo]",
		Short: "Listar documentos, opcionalmente de un tipo",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tipo := ""
			if len(args) == 1 {
				tipo = args[0]
			}
			archivos, err := app.api.ListArchivos(cmd.Context(), tipo)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(archivos))
			for _, a := range archivos {
				rows = append(rows, []string{
					fmt.Sprint(a.ID),
					orDash(a.Tipo),
					orDash(a.Nombre),
					orDash(a.FechaSubida),
					orDash(a.Archivo),
				})
			}
			return printTable(cmd.OutOrStdout(), []string{"ID", "TIPO", "NOMBRE", "SUBIDO", "URL"}, rows)
		},
	}

	var upload firesdk.UploadArchivoRequest
	subir := &cobra.Command{
		Use:   "subir <ruta>",
		Short: "Subir un documento",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(upload.Tipo) == "" {
				return errors.New("el tipo es obligatorio (--tipo)")
			}
			file, closeFile, err := openUpload("archivo", args[0])
			if err != nil {
				return err
			}
			defer closeFile()

			req := upload
			req.File = file
			if strings.TrimSpace(req.Nombre) == "" {
				req.Nombre = strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))
			}

			archivo, err := app.api.UploadArchivo(cmd.Context(), req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Archivo %d subido\n", archivo.ID)
			return err
		},
	}
	subir.Flags().StringVar(&upload.Tipo, "tipo", "", "tipo de documento (ver `archivos tipos`)")
	subir.Flags().StringVar(&upload.Nombre, "nombre", "", "nombre visible (por defecto el del archivo)")
	subir.Flags().StringVar(&upload.Descripcion, "descripcion", "", "descripción")

	cmd.AddCommand(
		screen(tipos, "/archivos"),
		screen(list, "/archivos"),
		screen(subir, "/archivos/subir"),
	)
	return cmd
}

// openUpload opens the file at path as a multipart part named field. The
// returned func closes it.
func openUpload(field, path string) (firesdk.FormFile, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return firesdk.FormFile{}, nil, fmt.Errorf("no se pudo abrir %s: %w", path, err)
	}
	name := filepath.Base(path)
	return firesdk.FormFile{
		Field:       field,
		Filename:    name,
		ContentType: mime.TypeByExtension(filepath.Ext(name)),
		Content:     f,
	}, func() { _ = f.Close() }, nil
}
