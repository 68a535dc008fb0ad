package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/tercera/internal/access"
	"github.com/aussiebroadwan/tercera/internal/session"
	"github.com/aussiebroadwan/tercera/pkg/firesdk"
	"github.com/aussiebroadwan/tercera/pkg/slogx"
)

// annotationRoute holds the screen route a command renders.
const annotationRoute = "route"

func (app *Application) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               AppName,
		Short:             "Cliente administrativo de la Tercera Compañía",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.guardScreen,
	}

	root.AddCommand(
		app.loginCommand(),
		app.logoutCommand(),
		app.statusCommand(),
		app.passwordResetCommand(),
		app.versionCommand(),
		app.menuCommand(),
		app.dashboardCommand(),
		app.meCommand(),
		app.perfilesCommand(),
		app.citacionesCommand(),
		app.licenciasCommand(),
		app.listasCommand(),
		app.emergenciasCommand(),
		app.asistenciaCommand(),
		app.archivosCommand(),
		app.cuotasCommand(),
		app.comprobantesCommand(),
	)
	return root
}

// screen marks cmd as rendering the screen at route.
func screen(cmd *cobra.Command, route string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationRoute] = route
	return cmd
}

// guardScreen applies the route guard of the command's screen before it runs.
func (app *Application) guardScreen(cmd *cobra.Command, args []string) error {
	pattern, ok := cmd.Annotations[annotationRoute]
	if !ok {
		return nil
	}

	ctx := slogx.WithCommand(cmd.Context(), pattern)
	cmd.SetContext(ctx)

	user, _ := app.session.CurrentUser()
	decision := access.Resolve(user, app.session.State() == session.LoggedIn, fillRoute(pattern, args))
	if decision.Allowed {
		return nil
	}

	slogx.FromContext(ctx).Info("screen denied", "redirect", decision.RedirectTo)
	app.nav.Navigate(ctx, decision.RedirectTo)
	return &RedirectError{To: decision.RedirectTo}
}

// fillRoute substitutes ":param" segments with positional args in order.
func fillRoute(pattern string, args []string) string {
	segments := strings.Split(pattern, "/")
	next := 0
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		if next < len(args) && args[next] != "" {
			segments[i] = url.PathEscape(args[next])
		} else {
			segments[i] = "_"
		}
		next++
	}
	return strings.Join(segments, "/")
}

// execute runs the command line and folds a mid-screen session expiry into
// a redirect: the gateway has already logged out and navigated.
func (app *Application) execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if errors.Is(err, firesdk.ErrUnauthorized) {
		return &RedirectError{To: access.PathLogin}
	}
	return err
}

// parseID parses a positive numeric API identifier.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("identificador inválido %q", s)
	}
	return id, nil
}

// parseIDs parses a list of identifiers given as repeated or comma-separated
// values.
func parseIDs(values []string) ([]int64, error) {
	var ids []int64
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := parseID(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
