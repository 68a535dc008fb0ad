package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Profile is the authenticated member's record as returned by GET /api/me/.
// The API owns its shape; the client only reads a handful of fields and must
// tolerate the rest being absent or differently typed.
type Profile map[string]any

// ParseProfile decodes a JSON object into a Profile. Anything that is not a
// JSON object is rejected.
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrEmptyProfile
	}
	return p, nil
}

// Clone returns a deep copy so callers cannot mutate a shared snapshot.
func (p Profile) Clone() Profile {
	if p == nil {
		return nil
	}
	return Profile(cloneValue(map[string]any(p)).(map[string]any))
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Lookup walks nested objects following path. It reports false when any step
// is missing or not an object.
func (p Profile) Lookup(path ...string) (any, bool) {
	var cur any = map[string]any(p)
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

// ID returns the member identifier as a string ("" when absent).
func (p Profile) ID() string {
	for _, key := range []string{"id", "pk", "user_id"} {
		if v, ok := p.Lookup(key); ok {
			if s, ok := Scalar(v); ok {
				return s
			}
		}
	}
	return ""
}

// DisplayName joins the first/last name fields, falling back to the RUT or
// username.
func (p Profile) DisplayName() string {
	first := p.firstString([]string{"first_name"}, []string{"nombres"}, []string{"user", "first_name"})
	last := p.firstString([]string{"last_name"}, []string{"apellido_paterno"}, []string{"user", "last_name"})
	name := strings.TrimSpace(first + " " + last)
	if name != "" {
		return name
	}
	return p.firstString([]string{"username"}, []string{"rut"}, []string{"email"})
}

// Permissions returns the flat capability list (e.g. "bomberos.add_citacion").
func (p Profile) Permissions() []string {
	v, ok := p.Lookup("permissions")
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// HasPermission reports whether the permission list contains perm exactly.
func (p Profile) HasPermission(perm string) bool {
	for _, have := range p.Permissions() {
		if have == perm {
			return true
		}
	}
	return false
}

func (p Profile) firstString(paths ...[]string) string {
	for _, path := range paths {
		if v, ok := p.Lookup(path...); ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// Scalar renders strings and numbers as strings. Integral numbers are printed
// without a fractional part so 7 and 7.0 both become "7".
func Scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", false
		}
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return Scalar(float64(t))
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	default:
		return "", false
	}
}
