package cmd

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dorkyrobot/yuri/internal/config"
	"github.com/dorkyrobot/yuri/internal/requester"
	"github.com/dorkyrobot/yuri/internal/state"
)

type testEnv struct {
	*Env
	out, errOut *bytes.Buffer
	dir         string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.HTTP.MaxRetries = 0
	st, err := state.Load(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatal(err)
	}

	prev := log.Logger
	log.Logger = zerolog.Nop()
	t.Cleanup(func() { log.Logger = prev })

	te := &testEnv{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}, dir: dir}
	te.Env = &Env{Cfg: cfg, State: st, Out: te.out, Err: te.errOut}
	return te
}

func (te *testEnv) run(t *testing.T, name string, args ...string) error {
	t.Helper()
	te.out.Reset()
	te.errOut.Reset()
	sub, ok := commands[name]
	if !ok {
		t.Fatalf("command %q not registered", name)
	}
	return sub.run(te.Env, args)
}

func TestCleanAndJoin(t *testing.T) {
	te := newTestEnv(t)

	if err := te.run(t, "clean", "a/../b", "//x/", ""); err != nil {
		t.Fatal(err)
	}
	if got, want := te.out.String(), "b\n/x\n.\n"; got != want {
		t.Errorf("clean printed %q, want %q", got, want)
	}

	if err := te.run(t, "join", "/foo", "bar/", "../baz"); err != nil {
		t.Fatal(err)
	}
	if got, want := te.out.String(), "/foo/baz\n"; got != want {
		t.Errorf("join printed %q, want %q", got, want)
	}

	if err := te.run(t, "join"); err != nil {
		t.Fatal(err)
	}
	if got := te.out.String(); got != "\n" {
		t.Errorf("empty join printed %q", got)
	}

	if err := te.run(t, "clean"); err == nil {
		t.Error("clean with no arguments succeeded")
	}
}

func TestAppendCommand(t *testing.T) {
	te := newTestEnv(t)

	if err := te.run(t, "append", "https://example.org/foo", "bar", "?q=1", "#top"); err != nil {
		t.Fatal(err)
	}
	if got, want := te.out.String(), "https://example.org/foo/bar?q=1#top\n"; got != want {
		t.Errorf("append printed %q, want %q", got, want)
	}

	te.State.SetBase("https://example.org/docs?lang=en")
	if err := te.run(t, "append", ".", "guide", "&page=2"); err != nil {
		t.Fatal(err)
	}
	if got, want := te.out.String(), "https://example.org/docs/guide?lang=en&page=2\n"; got != want {
		t.Errorf("append . printed %q, want %q", got, want)
	}

	err := te.run(t, "append", "https://example.org/foo?a=b", "?c=d")
	if err == nil || !strings.Contains(err.Error(), "query") {
		t.Errorf("second query: err = %v", err)
	}
}

func TestEscapeCommand(t *testing.T) {
	te := newTestEnv(t)

	if err := te.run(t, "escape", "a b/c", "x@y"); err != nil {
		t.Fatal(err)
	}
	if got, want := te.out.String(), "a%20b%2Fc\nx@y\n"; got != want {
		t.Errorf("escape printed %q, want %q", got, want)
	}

	if err := te.run(t, "escape", "\xff"); err == nil {
		t.Error("escaping invalid UTF-8 succeeded")
	}
}

func TestParseCommand(t *testing.T) {
	te := newTestEnv(t)

	if err := te.run(t, "parse", "https://user@example.org:8443/a%20b?x=1#frag"); err != nil {
		t.Fatal(err)
	}
	out := te.out.String()
	for _, want := range []string{"scheme=https", "user=user", "host=example.org", "port=8443", "path=/a%20b", "query.x=1", "fragment=frag"} {
		if !strings.Contains(out, want+"\n") {
			t.Errorf("parse output missing %q:\n%s", want, out)
		}
	}

	if err := te.run(t, "parse", "relative"); err == nil {
		t.Error("parsing a relative target with no base succeeded")
	}
}

func TestCDAndPWD(t *testing.T) {
	te := newTestEnv(t)

	if err := te.run(t, "pwd"); err != nil {
		t.Fatal(err)
	}
	if got := te.out.String(); got != "(no base set)\n" {
		t.Errorf("pwd with no base printed %q", got)
	}

	if err := te.run(t, "cd", "docs"); err == nil {
		t.Error("relative cd with no base succeeded")
	}

	steps := []struct {
		target string
		want   string
	}{
		{"https://example.org/docs/", "https://example.org/docs"},
		{"guide/intro", "https://example.org/docs/guide/intro"},
		{"../../api?v=2", "https://example.org/docs/api?v=2"},
		{"/", "https://example.org/"},
		{"s3://archive/logs", "s3://archive/logs"},
	}
	for _, s := range steps {
		if err := te.run(t, "cd", s.target); err != nil {
			t.Fatalf("cd %q: %v", s.target, err)
		}
		if got := strings.TrimSpace(te.errOut.String()); got != s.want {
			t.Errorf("cd %q moved to %q, want %q", s.target, got, s.want)
		}
		if err := te.run(t, "pwd"); err != nil {
			t.Fatal(err)
		}
		if got := strings.TrimSpace(te.out.String()); got != s.want {
			t.Errorf("pwd after cd %q = %q, want %q", s.target, got, s.want)
		}
	}

	saved, err := state.Load(filepath.Join(te.dir, "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	if saved.Base != "s3://archive/logs" {
		t.Errorf("saved base = %q", saved.Base)
	}
}

func TestCDToConfiguredBase(t *testing.T) {
	te := newTestEnv(t)
	te.Cfg.AddBase(config.BaseConfig{Name: "site", URL: "https://example.org/site"})

	if err := te.run(t, "cd", "site"); err != nil {
		t.Fatal(err)
	}
	if te.State.Base != "https://example.org/site" {
		t.Errorf("base = %q", te.State.Base)
	}
}

func TestBasesCommand(t *testing.T) {
	te := newTestEnv(t)

	if err := te.run(t, "bases", "add", "docs", "https://example.org/docs/", "--region", "us-east-1"); err != nil {
		t.Fatal(err)
	}
	if err := te.run(t, "bases", "add", "logs", "s3://archive/logs", "--endpoint", "http://localhost:9000"); err != nil {
		t.Fatal(err)
	}
	if err := te.run(t, "bases", "add", "bad", "https://example.org", "--color", "red"); err == nil {
		t.Error("unknown option accepted")
	}

	if err := te.run(t, "bases", "default", "docs"); err != nil {
		t.Fatal(err)
	}
	if err := te.run(t, "bases"); err != nil {
		t.Fatal(err)
	}
	want := "* docs https://example.org/docs (region=us-east-1)\n  logs s3://archive/logs (endpoint=http://localhost:9000)\n"
	if got := te.out.String(); got != want {
		t.Errorf("bases list printed %q, want %q", got, want)
	}

	if err := te.run(t, "pwd"); err != nil {
		t.Fatal(err)
	}
	if got := te.out.String(); got != "https://example.org/docs\n" {
		t.Errorf("pwd with a default base printed %q", got)
	}

	te.State.SetBase("https://example.org/docs")
	if err := te.run(t, "bases", "remove", "docs"); err != nil {
		t.Fatal(err)
	}
	if te.State.Base != "" {
		t.Errorf("removing the working base left state %q", te.State.Base)
	}
	if err := te.run(t, "bases", "remove", "docs"); err == nil {
		t.Error("removing a missing base succeeded")
	}

	reloaded, err := config.Load(filepath.Join(te.dir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Bases) != 1 || reloaded.Bases[0].Name != "logs" || reloaded.DefaultBase != "" {
		t.Errorf("saved config = %+v", reloaded)
	}

	if err := te.run(t, "bases", "frobnicate"); err == nil {
		t.Error("unknown subcommand accepted")
	}
}

func TestGetHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/files/report.txt":
			if r.URL.Query().Get("v") != "2" || r.Header.Get("X-Token") != "secret" {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
			w.Write([]byte("quarterly numbers"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	te := newTestEnv(t)
	te.State.SetBase(srv.URL + "/files")
	dest := filepath.Join(te.dir, "out.txt")

	if err := te.run(t, "get", "-p", "v=2", "-H", "X-Token: secret", "report.txt", dest); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "quarterly numbers" {
		t.Errorf("downloaded %q", data)
	}

	if err := te.run(t, "get", "-p", "v=2", "-H", "X-Token: secret", "report.txt", "-"); err != nil {
		t.Fatal(err)
	}
	if got := te.out.String(); got != "quarterly numbers" {
		t.Errorf("get to stdout printed %q", got)
	}

	missing := filepath.Join(te.dir, "missing.txt")
	err = te.run(t, "get", "nope.txt", missing)
	var se *requester.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Errorf("get of a missing file: err = %v", err)
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Error("failed download left a file behind")
	}
}

func TestHeadCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s", r.Method)
		}
		w.Header().Set("X-Served-By", "test")
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	te := newTestEnv(t)
	if err := te.run(t, "head", srv.URL+"/pot"); err != nil {
		t.Fatal(err)
	}
	out := te.out.String()
	if !strings.HasPrefix(out, "418 I'm a teapot\n") || !strings.Contains(out, "X-Served-By: test\n") {
		t.Errorf("head printed:\n%s", out)
	}
}

func TestCheckCommand(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer up.Close()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer down.Close()

	te := newTestEnv(t)
	err := te.run(t, "check", up.URL+"/", down.URL+"/")
	if err == nil || err.Error() != "1 of 2 targets down" {
		t.Errorf("err = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(te.out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("check printed %q", te.out.String())
	}
	if !strings.HasPrefix(lines[0], "UP\t200\t"+up.URL) {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "DOWN\t500\t"+down.URL) {
		t.Errorf("second line = %q", lines[1])
	}

	if err := te.run(t, "check", up.URL+"/"); err != nil {
		t.Errorf("all up: err = %v", err)
	}
}

func TestStatRejectsHTTP(t *testing.T) {
	te := newTestEnv(t)
	if err := te.run(t, "stat", "https://example.org/a.txt"); err == nil {
		t.Error("stat on an https URI succeeded")
	}
	if err := te.run(t, "ls", "https://example.org/"); err == nil {
		t.Error("ls on an https URI succeeded")
	}
}

func TestUsageListsCommands(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf)
	for name := range commands {
		if !strings.Contains(buf.String(), "  "+name) {
			t.Errorf("usage does not mention %q", name)
		}
	}
}
