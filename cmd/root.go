package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/dorkyrobot/yuri/internal/aws"
	"github.com/dorkyrobot/yuri/internal/config"
	"github.com/dorkyrobot/yuri/internal/logging"
	"github.com/dorkyrobot/yuri/internal/output"
	"github.com/dorkyrobot/yuri/internal/requester"
	"github.com/dorkyrobot/yuri/internal/state"
)

type GlobalOpts struct {
	Base     string
	Region   string
	Profile  string
	Config   string
	LogLevel string
}

// Env holds resolved runtime dependencies for subcommands.
type Env struct {
	Cfg   *config.Config
	State *state.State
	Opts  GlobalOpts

	Out io.Writer
	Err io.Writer
}

// ResolveBase returns the working base from flags, state, or config.
func (e *Env) ResolveBase() (string, error) {
	if e.Opts.Base != "" {
		return e.Cfg.ResolveBase(e.Opts.Base)
	}
	if e.State.Base != "" {
		return e.State.Base, nil
	}
	return e.Cfg.ResolveBase("")
}

// Resolve resolves target against the working base. Absolute targets work
// without one.
func (e *Env) Resolve(target string) (string, error) {
	base, err := e.ResolveBase()
	if err != nil {
		base = ""
	}
	resolved, rerr := state.Resolve(base, target)
	if errors.Is(rerr, state.ErrNoBase) && err != nil {
		return "", err
	}
	return resolved, rerr
}

// NewS3Client creates an S3 client for uri, taking region, profile and
// endpoint from the flags or the configured base that covers uri.
func (e *Env) NewS3Client(ctx context.Context, uri string) (aws.S3Client, error) {
	var name, endpoint string
	if b := e.Cfg.Match(uri); b != nil {
		name, endpoint = b.Name, b.Endpoint
	}
	return aws.NewClient(ctx, aws.Options{
		Region:   e.Cfg.ResolveRegion(e.Opts.Region, name),
		Profile:  e.Cfg.ResolveProfile(e.Opts.Profile, name),
		Endpoint: endpoint,
	})
}

// Requester returns an HTTP requester built from the http config section.
func (e *Env) Requester() *requester.Requester {
	return requester.New(requester.Options{
		MaxRetries:    e.Cfg.HTTP.MaxRetries,
		MaxRetryDelay: e.Cfg.HTTP.MaxRetryDelay,
		Timeout:       e.Cfg.HTTP.Timeout,
		UserAgent:     e.Cfg.HTTP.UserAgent,
	})
}

func (e *Env) tty() bool {
	f, ok := e.Out.(*os.File)
	return ok && output.IsTTY(f)
}

type subcommand struct {
	run   func(env *Env, args []string) error
	usage string
}

var commands = map[string]subcommand{}

func register(name string, run func(env *Env, args []string) error, usage string) {
	commands[name] = subcommand{run: run, usage: usage}
}

func Execute() error {
	var opts GlobalOpts
	flag.StringVar(&opts.Base, "base", "", "base URI or configured base name")
	flag.StringVar(&opts.Region, "region", "", "AWS region")
	flag.StringVar(&opts.Profile, "profile", "", "AWS profile")
	flag.StringVar(&opts.Config, "config", "", "config file path")
	flag.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")

	flag.Usage = func() { printUsage(os.Stderr) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage(os.Stderr)
		return nil
	}

	name := args[0]
	rest := args[1:]

	if name == "help" {
		printUsage(os.Stdout)
		return nil
	}

	sub, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "yuri: unknown command %q\n\n", name)
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command %q", name)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	closer, err := logging.Configure(cfg.Log, opts.LogLevel)
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	defer closer.Close()

	st, err := state.Load("")
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	env := &Env{
		Cfg:   cfg,
		State: st,
		Opts:  opts,
		Out:   os.Stdout,
		Err:   os.Stderr,
	}

	return sub.run(env, rest)
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprint(w, "yuri: compose, inspect and fetch URIs\n\nUsage: yuri [flags] <command> [args]\n\nCommands:\n")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(tw, "  %s\n", commands[name].usage)
	}
	tw.Flush()
	fmt.Fprint(w, `
Global flags:
  --base       Base URI or configured base name
  --region     AWS region
  --profile    AWS profile
  --config     Config file path
  --log-level  Log level

`)
}

// parseTarget resolves target and parses the result.
func (e *Env) parseTarget(target string) (*url.URL, error) {
	resolved, err := e.Resolve(target)
	if err != nil {
		return nil, err
	}
	return url.Parse(resolved)
}
