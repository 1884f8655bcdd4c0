package state

import (
	"errors"
	"net/url"
	"strings"

	"github.com/dorkyrobot/yuri/internal/uris"
)

// ErrNoBase is returned when a relative target has nothing to resolve
// against.
var ErrNoBase = errors.New("no working base; use yuri cd <uri> first")

// Resolve resolves an FTP-style target against the current base URI.
// A target with a scheme replaces the base outright. A target starting with
// "/" is appended to the root of the base, dropping its query and fragment.
// Anything else is appended to the base as is, so ".." walks up and "?"
// or "#" open the query or fragment.
// The result is always normalized.
func Resolve(current, target string) (string, error) {
	if t, err := uris.ParseOrNil(target); err == nil && t != nil && t.IsAbs() {
		return uris.AppendString(target)
	}
	if current == "" {
		return "", ErrNoBase
	}
	if strings.HasPrefix(target, "/") {
		root, err := rootOf(current)
		if err != nil {
			return "", err
		}
		return uris.AppendString(root, target)
	}
	if target == "" {
		return uris.AppendString(current)
	}
	return uris.AppendString(current, target)
}

func rootOf(current string) (string, error) {
	u, err := uris.ParseOrNil(current)
	if err != nil {
		return "", err
	}
	root := url.URL{Scheme: u.Scheme, User: u.User, Host: u.Host}
	return root.String(), nil
}
