package uris

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// forbidden holds the printable ASCII characters RFC 3986 never allows
// unescaped. url.Parse accepts most of them, so they are rejected here.
const forbidden = " \"<>\\^`{|}"

// ParseOrNil returns input as a URI, or nil if input is nil.
//
// A *url.URL is returned as is, a url.URL is copied, and strings and
// fmt.Stringers are parsed. Anything else, or a string that is not a
// syntactically valid URI, yields an error matching ErrInvalidURI.
func ParseOrNil(input any) (*url.URL, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case *url.URL:
		return v, nil
	case url.URL:
		return &v, nil
	case string:
		return parse(v)
	case fmt.Stringer:
		return parse(v.String())
	default:
		return nil, newError(KindInvalidURI, fmt.Sprint(input), "unsupported type %T", input)
	}
}

// SafeParse is ParseOrNil for callers that would rather not handle the
// error: a failure is logged as a warning and nil is returned.
func SafeParse(input any) *url.URL {
	u, err := ParseOrNil(input)
	if err != nil {
		log.Warn().Err(err).Msgf("Error parsing URL %q", fmt.Sprint(input))
		return nil
	}
	return u
}

// URLStringOrEmpty returns the string form of input, or "" if input is nil.
func URLStringOrEmpty(input any) (string, error) {
	u, err := ParseOrNil(input)
	if err != nil || u == nil {
		return "", err
	}
	return u.String(), nil
}

func parse(raw string) (*url.URL, error) {
	if i := strings.IndexAny(raw, forbidden); i >= 0 {
		return nil, newError(KindInvalidURI, raw, "bad character %q at offset %d", raw[i], i)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &Error{Kind: KindInvalidURI, Input: raw, Cause: err}
	}
	return u, nil
}
