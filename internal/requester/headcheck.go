package requester

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"

	"github.com/dorkyrobot/yuri/internal/uris"
)

// CheckResult is the outcome of a HeadCheck.
type CheckResult struct {
	URL    string
	Status int
	Up     bool
	Err    error
}

// HeadCheck probes target with a quiet HEAD request. Credentials in the
// URL's userinfo are sent as HTTP basic auth instead. The target is up when
// it answers with a status below 400.
func (r *Requester) HeadCheck(ctx context.Context, target string) CheckResult {
	res := CheckResult{URL: target}

	u, err := uris.ParseOrNil(target)
	if err != nil {
		res.Err = err
		return res
	}
	if u == nil {
		res.Err = uris.ErrInvalidArgument
		return res
	}

	u = cloneURL(u)
	headers := http.Header{}
	if auth := basicAuth(u); auth != "" {
		headers.Set("Authorization", auth)
	}
	res.URL = u.String()

	status, err := r.Head(WithQuiet(ctx), u.String(), nil, headers)
	if err != nil {
		res.Err = err
		return res
	}
	res.Status = status
	res.Up = status < http.StatusBadRequest
	return res
}

func cloneURL(u *url.URL) *url.URL {
	c := *u
	return &c
}

// basicAuth strips userinfo from u and returns the matching Authorization
// header value, or "" if there was none.
func basicAuth(u *url.URL) string {
	if u.User == nil {
		return ""
	}
	pass, _ := u.User.Password()
	creds := u.User.Username() + ":" + pass
	u.User = nil
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
}
