// Package uris composes URIs: it appends path, query and fragment text onto
// an existing URI, escapes path segments, and normalizes URI input.
package uris

import "net/url"

// Append appends elements to base and returns the result as a new URI.
// base itself is never modified.
//
// Path elements are joined onto the base path and cleaned, so extraneous
// slashes, "." and ".." disappear and the path is always rooted. An element
// may open the query with '?' and the fragment with '#'; everything after
// that flows into the query or fragment until the next delimiter. While no
// query is open, an element containing '&' is added to the base URI's query
// if it has one, and is an ordinary path element otherwise.
//
// Opening a second query, or a second fragment, yields an error matching
// ErrInvalidComponent. A nil base yields ErrInvalidArgument.
func Append(base *url.URL, elements ...string) (*url.URL, error) {
	if base == nil {
		return nil, newError(KindInvalidArgument, "", "base URI cannot be nil")
	}
	if base.Opaque != "" {
		return nil, newError(KindInvalidArgument, base.String(), "cannot append to an opaque URI")
	}

	s, err := classify(newAppendState(base), elements)
	if err != nil {
		return nil, err
	}
	return s.build(base)
}

// AppendAny is Append for a base given as anything ParseOrNil accepts.
func AppendAny(base any, elements ...string) (*url.URL, error) {
	u, err := ParseOrNil(base)
	if err != nil {
		return nil, err
	}
	return Append(u, elements...)
}

// AppendString is Append for string URIs.
func AppendString(base string, elements ...string) (string, error) {
	u, err := AppendAny(base, elements...)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
