package access

import "github.com/aussiebroadwan/tercera/internal/domain"

// MenuItem is a navigable entry.
type MenuItem struct {
	Label string
	Path  string
}

// MenuSection groups items under a heading. Sections without a path are
// headings only.
type MenuSection struct {
	Label string
	Path  string
	Items []MenuItem
}

var menuLayout = []MenuSection{
	{Label: "Dashboard", Path: "/dashboard"},
	{Label: "Personal", Path: "/perfil", Items: []MenuItem{
		{Label: "Mi perfil", Path: "/perfil"},
		{Label: "Bomberos", Path: "/perfiles"},
	}},
	{Label: "Listas", Items: []MenuItem{
		{Label: "Crear lista", Path: "/lista/crear"},
		{Label: "Ver listas", Path: "/lista/list"},
		{Label: "Emergencias", Path: "/lista/emergencias"},
	}},
	{Label: "Citaciones", Items: []MenuItem{
		{Label: "Crear citación", Path: "/citaciones/crear"},
		{Label: "Ver citaciones", Path: "/citaciones/list"},
		{Label: "Todas las citaciones", Path: "/citaciones/todas"},
	}},
	{Label: "Licencias", Items: []MenuItem{
		{Label: "Mis licencias", Path: "/licencia/list"},
		{Label: "Gestionar Licencias", Path: "/licencia/gestionar"},
	}},
	{Label: "Asistencia", Items: []MenuItem{
		{Label: "Mi asistencia", Path: "/asistencia/mia"},
		{Label: "Asistencia anual", Path: "/asistencia/anual"},
	}},
	{Label: "Archivos", Items: []MenuItem{
		{Label: "Ver archivos", Path: "/archivos"},
		{Label: "Subir archivo", Path: "/archivos/subir"},
	}},
	{Label: "Tesorería", Items: []MenuItem{
		{Label: "Mis cuotas", Path: "/tesoreria/mis-cuotas"},
		{Label: "Subir comprobante", Path: "/tesoreria/subir-comprobante"},
		{Label: "Bandeja", Path: "/tesorero/bandeja"},
		{Label: "Registrar comprobante", Path: "/tesorero/registrar"},
		{Label: "Revisar cuotas", Path: "/tesorero/revisar"},
	}},
}

// Menu returns the navigation the member is allowed to see. Items whose
// route would redirect are hidden, as are sections left without items.
func Menu(profile domain.Profile) []MenuSection {
	var out []MenuSection
	for _, section := range menuLayout {
		if len(section.Items) == 0 {
			if visible(profile, section.Path) {
				out = append(out, section)
			}
			continue
		}

		var items []MenuItem
		for _, item := range section.Items {
			if visible(profile, item.Path) {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		s := section
		s.Items = items
		out = append(out, s)
	}
	return out
}

func visible(profile domain.Profile, path string) bool {
	return Resolve(profile, true, path).Allowed
}
