// Package access derives capabilities from a member profile and turns them
// into route decisions. Every function here is total: malformed profiles
// yield "no capability", never a panic.
package access

import (
	"strings"

	"github.com/aussiebroadwan/tercera/internal/domain"
)

// Group names as the API spells them (compared case-insensitively).
const (
	GroupAyudante        = "ayudante"
	GroupCapitan         = "capitan"
	GroupDirector        = "director"
	GroupIntendente      = "intendente"
	GroupSecretario      = "secretario"
	GroupTenientePrimero = "teniente primero"
	GroupTenienteSegundo = "teniente segundo"
	GroupTenienteTercero = "teniente tercero"
	GroupTesorero        = "tesorero"
)

// Permission strings checked directly.
const (
	PermAddComprobanteTesorero = "bomberos.add_comprobantetesorero"
	PermAddCitacion            = "bomberos.add_citacion"
)

var (
	officerGroups      = []string{GroupAyudante, GroupCapitan, GroupDirector, GroupIntendente, GroupSecretario, GroupTenientePrimero, GroupTenienteSegundo, GroupTenienteTercero, GroupTesorero}
	leaveManagerGroups = []string{GroupAyudante, GroupCapitan, GroupSecretario, GroupDirector}
)

// groupProbes are the profile paths that may carry group membership. All of
// them are read and unioned; add new shapes here.
var groupProbes = [][]string{
	{"groups"},
	{"grupos"},
	{"group"},
	{"perfil", "grupos"},
	{"perfil", "groups"},
	{"perfil", "group"},
}

// groupNameKeys are the keys a group object may name itself under.
var groupNameKeys = []string{"name", "nombre"}

// GroupSet is a case-insensitive set of group names that remembers the
// spelling it first saw.
type GroupSet struct {
	names []string
	index map[string]struct{}
}

func (g *GroupSet) add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	key := strings.ToLower(name)
	if g.index == nil {
		g.index = make(map[string]struct{})
	}
	if _, ok := g.index[key]; ok {
		return
	}
	g.index[key] = struct{}{}
	g.names = append(g.names, name)
}

// Has reports whether name is in the set, ignoring case.
func (g GroupSet) Has(name string) bool {
	_, ok := g.index[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// HasAny reports whether any of names is in the set.
func (g GroupSet) HasAny(names ...string) bool {
	for _, n := range names {
		if g.Has(n) {
			return true
		}
	}
	return false
}

// Names returns the names in discovery order.
func (g GroupSet) Names() []string {
	return append([]string(nil), g.names...)
}

func (g GroupSet) Len() int { return len(g.names) }

// ExtractGroupNames collects group names from every probe path. Entries may
// be strings, numbers, or objects carrying "name" or "nombre"; a probe may
// also hold a single such value instead of a list. Anything else is dropped.
func ExtractGroupNames(p domain.Profile) GroupSet {
	var set GroupSet
	for _, path := range groupProbes {
		v, ok := p.Lookup(path...)
		if !ok {
			continue
		}
		if items, ok := v.([]any); ok {
			for _, item := range items {
				if name, ok := groupName(item); ok {
					set.add(name)
				}
			}
			continue
		}
		if name, ok := groupName(v); ok {
			set.add(name)
		}
	}
	return set
}

func groupName(v any) (string, bool) {
	if obj, ok := v.(map[string]any); ok {
		for _, key := range groupNameKeys {
			if s, ok := obj[key].(string); ok {
				return s, true
			}
		}
		return "", false
	}
	return domain.Scalar(v)
}

// IsTreasurer holds for the tesorero group OR the add-treasurer-voucher
// permission. Either is sufficient.
func IsTreasurer(p domain.Profile) bool {
	return ExtractGroupNames(p).Has(GroupTesorero) || p.HasPermission(PermAddComprobanteTesorero)
}

// IsAssistantOrSecretary holds for the ayudante or secretario groups.
func IsAssistantOrSecretary(p domain.Profile) bool {
	return ExtractGroupNames(p).HasAny(GroupAyudante, GroupSecretario)
}

// IsOfficer holds for any of the nine officer groups.
func IsOfficer(p domain.Profile) bool {
	return ExtractGroupNames(p).HasAny(officerGroups...)
}

// CanSeeLeaveRequests holds for the officers who manage licencias.
func CanSeeLeaveRequests(p domain.Profile) bool {
	return ExtractGroupNames(p).HasAny(leaveManagerGroups...)
}

// HasPermission reports whether the profile lists perm.
func HasPermission(p domain.Profile, perm string) bool {
	return p.HasPermission(perm)
}

// OfficerGroups lists the officer group names.
func OfficerGroups() []string { return append([]string(nil), officerGroups...) }
