package output

import (
	"fmt"
	"io"
	"strings"
)

// fields writes key/value records: "key=value" lines when piped, and
// right-aligned capitalized labels on a terminal.
type fields struct {
	w     io.Writer
	tty   bool
	keys  []string
	vals  []string
	width int
}

func newFields(w io.Writer, tty bool) *fields {
	return &fields{w: w, tty: tty}
}

func (f *fields) add(key, val string) {
	f.keys = append(f.keys, key)
	f.vals = append(f.vals, val)
	f.width = max(f.width, len(key))
}

func (f *fields) flush() {
	for i, k := range f.keys {
		if !f.tty {
			fmt.Fprintf(f.w, "%s=%s\n", k, f.vals[i])
			continue
		}
		label := strings.Repeat(" ", f.width-len(k)) + strings.ToUpper(k[:1]) + k[1:] + ":"
		fmt.Fprintf(f.w, "%s %s\n", labelStyle.Render(label), f.vals[i])
	}
}
