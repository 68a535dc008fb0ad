package domain

import "errors"

// Keys under which the session is persisted in local state. They match the
// keys the web client kept in localStorage.
const (
	KeyAccessToken  = "access"
	KeyRefreshToken = "refresh"
	KeyUser         = "user"
)

// SessionKeys lists every key that belongs to a session. They are always
// written and cleared together.
var SessionKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUser}

var ErrEmptyProfile = errors.New("domain: empty profile")
