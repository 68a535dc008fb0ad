package firesdk

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"net/http"
	"slices"
)

const (
	pathMe       = "/me/"
	pathPerfiles = "/perfiles/"
)

// ============================================================================
// Profile
// ============================================================================

// GetMe returns the raw profile of the authenticated member. The profile
// shape varies between deployments, so it is left undecoded.
func (s *Session) GetMe(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := s.Do(ctx, Request{Method: http.MethodGet, Path: pathMe}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// UpdateMe patches the member's own profile. Fields are sent in key order;
// Image, when set, is sent as the "imagen" part.
func (s *Session) UpdateMe(ctx context.Context, req UpdateMeRequest) (json.RawMessage, error) {
	if len(req.Fields) == 0 && req.Image == nil {
		return nil, errors.New("firesdk: nothing to update")
	}

	form := NewForm()
	for _, key := range slices.Sorted(maps.Keys(req.Fields)) {
		form.Add(key, req.Fields[key])
	}
	if req.Image != nil {
		image := *req.Image
		image.Field = "imagen"
		form.AddFile(image)
	}

	var raw json.RawMessage
	if err := s.Do(ctx, Request{Method: http.MethodPatch, Path: pathMe, Form: form}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ListPerfiles returns every member profile.
func (s *Session) ListPerfiles(ctx context.Context) ([]Record, error) {
	var perfiles []Record
	if err := s.Do(ctx, Request{Method: http.MethodGet, Path: pathPerfiles}, &perfiles); err != nil {
		return nil, err
	}
	return perfiles, nil
}
