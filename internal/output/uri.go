package output

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/dorkyrobot/yuri/internal/requester"
)

// FormatURI writes the components of u to w, one per line. Empty
// components are left out; query parameters follow as "query.<name>".
func FormatURI(w io.Writer, u *url.URL, tty bool) {
	f := newFields(w, tty)
	f.add("uri", u.String())
	if u.Scheme != "" {
		f.add("scheme", u.Scheme)
	}
	if u.Opaque != "" {
		f.add("opaque", u.Opaque)
	}
	if u.User != nil {
		f.add("user", u.User.Username())
	}
	if h := u.Hostname(); h != "" {
		f.add("host", h)
	}
	if p := u.Port(); p != "" {
		f.add("port", p)
	}
	if u.Path != "" {
		f.add("path", u.EscapedPath())
	}
	if u.RawQuery != "" || u.ForceQuery {
		f.add("query", u.RawQuery)
		q := u.Query()
		names := make([]string, 0, len(q))
		for name := range q {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for _, v := range q[name] {
				f.add("query."+name, v)
			}
		}
	}
	if u.Fragment != "" {
		f.add("fragment", u.EscapedFragment())
	}
	f.flush()
}

// FormatHead writes a HEAD result: the status line, then headers sorted by
// name.
func FormatHead(w io.Writer, status int, header http.Header, tty bool) {
	line := fmt.Sprintf("%d %s", status, http.StatusText(status))
	if tty {
		style := upStyle
		if status >= http.StatusBadRequest {
			style = downStyle
		}
		line = style.Render(line)
	}
	fmt.Fprintln(w, line)

	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s: %s\n", name, strings.Join(header[name], ", "))
	}
}

// FormatCheck writes one line per result: UP or DOWN, the status, the URL
// and any error.
func FormatCheck(w io.Writer, results []requester.CheckResult, tty bool) {
	for _, r := range results {
		state, style := "UP", upStyle
		if !r.Up {
			state, style = "DOWN", downStyle
		}
		if tty {
			state = style.Render(fmt.Sprintf("%-4s", state))
		}

		status := "-"
		if r.Status != 0 {
			status = fmt.Sprint(r.Status)
		}

		if r.Err != nil {
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", state, status, r.URL, r.Err)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\n", state, status, r.URL)
		}
	}
}
