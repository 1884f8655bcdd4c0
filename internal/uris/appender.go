package uris

import (
	"net/url"
	"strings"

	"github.com/dorkyrobot/yuri/internal/paths"
)

// component is the part of the URI that appended text currently flows into.
type component int

const (
	componentPath component = iota
	componentQuery
	componentFragment
)

func (c component) String() string {
	switch c {
	case componentQuery:
		return "query"
	case componentFragment:
		return "fragment"
	default:
		return "path"
	}
}

// appendState is the classifier threaded through the elements of one
// Append call. The query and fragment buffers start out holding the base
// URI's own query and fragment, if it has them.
type appendState struct {
	mode     component
	path     []string
	query    []string
	fragment []string
}

func newAppendState(base *url.URL) appendState {
	var s appendState
	if base.RawQuery != "" || base.ForceQuery {
		s.query = []string{base.RawQuery}
	}
	if f := base.EscapedFragment(); f != "" {
		s.fragment = []string{f}
	}
	return s
}

// classify folds elements into s from left to right.
func classify(s appendState, elements []string) (appendState, error) {
	for _, e := range elements {
		var err error
		if s, err = s.step(e); err != nil {
			return s, err
		}
	}
	return s, nil
}

// step routes a single element. Only the first '#' and the first '?' of
// the element matter; a fragment may contain '?', a query may not contain
// '#'.
func (s appendState) step(e string) (appendState, error) {
	if s.mode == componentFragment {
		if strings.IndexByte(e, '#') >= 0 {
			return s, s.errFragment(e)
		}
		s.fragment = append(s.fragment, e)
		return s, nil
	}

	h := strings.IndexByte(e, '#')
	q := strings.IndexByte(e, '?')
	switch {
	case h >= 0 && (q < 0 || h < q):
		return s.startFragment(e, e[:h], e[h+1:])
	case q >= 0:
		return s.startQuery(e, e[:q], e[q+1:])
	}

	switch {
	case s.mode == componentQuery:
		s.query = append(s.query, e)
	case len(s.query) > 0 && strings.IndexByte(e, '&') >= 0:
		// more parameters for the base URI's query
		s.query = append(s.query, e)
	default:
		s.path = append(s.path, e)
	}
	return s, nil
}

// startQuery opens the query. Text before the '?' is still path; text
// after it may itself open the fragment.
func (s appendState) startQuery(e, before, after string) (appendState, error) {
	if s.mode == componentQuery || len(s.query) > 0 {
		return s, newError(KindInvalidComponent, e, "URI already has a query: %q", strings.Join(s.query, ""))
	}

	s.path = append(s.path, before)
	s.mode = componentQuery

	if h := strings.IndexByte(after, '#'); h >= 0 {
		return s.startFragment(e, after[:h], after[h+1:])
	}
	s.query = append(s.query, after)
	return s, nil
}

// startFragment opens the fragment. Text before the '#' belongs to the
// component that was open until now.
func (s appendState) startFragment(e, before, after string) (appendState, error) {
	if len(s.fragment) > 0 || strings.IndexByte(after, '#') >= 0 {
		return s, s.errFragment(e)
	}

	if s.mode == componentQuery {
		s.query = append(s.query, before)
	} else {
		s.path = append(s.path, before)
	}
	s.fragment = append(s.fragment, after)
	s.mode = componentFragment
	return s, nil
}

func (s appendState) errFragment(e string) error {
	if len(s.fragment) == 0 {
		return newError(KindInvalidComponent, e, "more than one fragment delimiter")
	}
	return newError(KindInvalidComponent, e, "URI already has a fragment: %q", strings.Join(s.fragment, ""))
}

// build returns a copy of base carrying the accumulated components.
func (s appendState) build(base *url.URL) (*url.URL, error) {
	u := *base

	elements := append([]string{base.EscapedPath()}, s.path...)
	if err := setPath(&u, paths.EnsureAbs(paths.Join(elements...))); err != nil {
		return nil, err
	}

	u.RawQuery, u.ForceQuery = "", false
	if len(s.query) > 0 {
		u.RawQuery = escapeQuery(strings.Join(s.query, ""))
		u.ForceQuery = u.RawQuery == ""
	}

	u.Fragment, u.RawFragment = "", ""
	if len(s.fragment) > 0 {
		if err := setFragment(&u, strings.Join(s.fragment, "")); err != nil {
			return nil, err
		}
	}
	return &u, nil
}

func setPath(u *url.URL, escaped string) error {
	p, err := url.PathUnescape(escaped)
	if err != nil {
		return &Error{Kind: KindInvalidComponent, Input: escaped, Message: "bad path escape", Cause: err}
	}
	u.Path, u.RawPath = p, ""
	if (&url.URL{Path: p}).EscapedPath() != escaped {
		u.RawPath = escaped
	}
	return nil
}

func setFragment(u *url.URL, escaped string) error {
	f, err := url.PathUnescape(escaped)
	if err != nil {
		return &Error{Kind: KindInvalidComponent, Input: escaped, Message: "bad fragment escape", Cause: err}
	}
	u.Fragment, u.RawFragment = f, ""
	if (&url.URL{Fragment: f}).EscapedFragment() != escaped {
		u.RawFragment = escaped
	}
	return nil
}

// escapeQuery percent-encodes the bytes RFC 3986 does not allow in a
// query. Existing %XX escapes are kept as they are.
func escapeQuery(q string) string {
	var b strings.Builder
	for i := 0; i < len(q); i++ {
		c := q[i]
		switch {
		case c == '%' && i+2 < len(q) && ishex(q[i+1]) && ishex(q[i+2]):
			b.WriteByte(c)
		case unreserved(c) || strings.IndexByte("!$&'()*+,;=:@/?", c) >= 0:
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		return true
	}
	return false
}
