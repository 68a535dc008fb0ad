package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/aussiebroadwan/tercera/internal/cuotas"
	"github.com/aussiebroadwan/tercera/internal/domain"
	"github.com/aussiebroadwan/tercera/pkg/firesdk"
)

var errNoUserID = errors.New("el perfil no tiene identificador")

// Dashboard is the landing screen: who is logged in and what is coming up.
type Dashboard struct {
	Profile    domain.Profile
	Citaciones []firesdk.Citacion
}

// loadDashboard fetches the fresh profile and the upcoming call-outs
// concurrently.
func (app *Application) loadDashboard(ctx context.Context) (*Dashboard, error) {
	var (
		raw        json.RawMessage
		citaciones []firesdk.Citacion
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = app.api.GetMe(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		citaciones, err = app.api.ListCitacionesFuturas(gctx, app.now())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profile, err := domain.ParseProfile(raw)
	if err != nil {
		return nil, fmt.Errorf("perfil inválido: %w", err)
	}
	return &Dashboard{Profile: profile, Citaciones: citaciones}, nil
}

// loadCuotas fetches the month calendar and a member's paid months
// concurrently and groups them by year.
func (app *Application) loadCuotas(ctx context.Context, bomberoID string) (cuotas.Grouped, error) {
	if bomberoID == "" {
		return cuotas.Grouped{}, errNoUserID
	}

	var meses, pagados []firesdk.Mes

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meses, err = app.api.ListMeses(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pagados, err = app.api.ListMesesPagados(gctx, bomberoID)
		return err
	})
	if err := g.Wait(); err != nil {
		return cuotas.Grouped{}, err
	}

	return cuotas.GroupMonths(meses, pagados), nil
}

// NewLista describes an attendance list to create. For an emergency the
// emergency record is created first and the list points at it.
type NewLista struct {
	ContentType string
	CitacionID  int64
	Emergencia  firesdk.CreateEmergenciaRequest
	Bomberos    []int64
}

func (app *Application) createLista(ctx context.Context, req NewLista) (*firesdk.Lista, error) {
	if len(req.Bomberos) == 0 {
		return nil, errors.New("selecciona al menos un bombero")
	}

	var objectID int64
	switch req.ContentType {
	case firesdk.ContentTypeCitacion:
		if req.CitacionID == 0 {
			return nil, errors.New("falta la citación")
		}
		objectID = req.CitacionID
	case firesdk.ContentTypeEmergencia:
		emergencia, err := app.api.CreateEmergencia(ctx, req.Emergencia)
		if err != nil {
			return nil, fmt.Errorf("no se pudo crear la emergencia: %w", err)
		}
		objectID = emergencia.ID
	default:
		return nil, fmt.Errorf("tipo de lista desconocido %q", req.ContentType)
	}

	return app.api.CreateLista(ctx, firesdk.CreateListaRequest{
		Bomberos:    req.Bomberos,
		ContentType: req.ContentType,
		ObjectID:    objectID,
	})
}

// ownID is the logged-in member's identifier.
func (app *Application) ownID() (string, error) {
	user, ok := app.session.CurrentUser()
	if !ok {
		return "", errNoUserID
	}
	id := user.ID()
	if id == "" {
		return "", errNoUserID
	}
	return id, nil
}
