package cmd

import (
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path"
	"strings"
)

// headerFlag collects repeated -H "Name: value" flags.
type headerFlag struct {
	h http.Header
}

func (f *headerFlag) String() string {
	if f.h == nil {
		return ""
	}
	var parts []string
	for k, vs := range f.h {
		for _, v := range vs {
			parts = append(parts, k+": "+v)
		}
	}
	return strings.Join(parts, ", ")
}

func (f *headerFlag) Set(s string) error {
	name, value, ok := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("header %q must look like Name: value", s)
	}
	if f.h == nil {
		f.h = http.Header{}
	}
	f.h.Add(textproto.CanonicalMIMEHeaderKey(name), strings.TrimSpace(value))
	return nil
}

// paramFlag collects repeated -p name=value flags.
type paramFlag struct {
	v url.Values
}

func (f *paramFlag) String() string {
	if f.v == nil {
		return ""
	}
	return f.v.Encode()
}

func (f *paramFlag) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("parameter %q must look like name=value", s)
	}
	if f.v == nil {
		f.v = url.Values{}
	}
	f.v.Add(name, value)
	return nil
}

// localName picks the file name a download of u is saved under.
func localName(u *url.URL) string {
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	name := path.Base(p)
	switch name {
	case "", ".", "/":
		return "index.html"
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return name
}

// createLocal opens the download destination; "-" means stdout. The
// returned cleanup closes the file and removes it if the download failed.
func createLocal(env *Env, dest string) (io.Writer, func(failed bool), error) {
	if dest == "-" {
		return env.Out, func(bool) {}, nil
	}

	f, err := os.Create(dest)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", dest, err)
	}
	return f, func(failed bool) {
		f.Close()
		if failed {
			os.Remove(dest)
		}
	}, nil
}

// progressWriter reports bytes written so far to update.
type progressWriter struct {
	w      io.Writer
	n      int64
	total  int64
	update func(n, total int64)
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.w.Write(p)
	pw.n += int64(n)
	pw.update(pw.n, pw.total)
	return n, err
}
