package cmd

import (
	"context"
	"flag"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dorkyrobot/yuri/internal/output"
	"github.com/dorkyrobot/yuri/internal/requester"
)

func init() {
	register("check", runCheck, "check [-j N] <uri|path>...\tprobe URIs with HEAD and report which are up")
}

func runCheck(env *Env, args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(env.Err)
	jobs := fs.Int("j", 8, "concurrent requests")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: yuri check [-j N] <uri|path>...")
	}

	targets := make([]string, fs.NArg())
	for i, arg := range fs.Args() {
		t, err := env.Resolve(arg)
		if err != nil {
			return err
		}
		targets[i] = t
	}

	r := env.Requester()
	results := make([]requester.CheckResult, len(targets))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(*jobs, 1))
	for i, t := range targets {
		g.Go(func() error {
			results[i] = r.HeadCheck(ctx, t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	output.FormatCheck(env.Out, results, env.tty())

	down := 0
	for _, res := range results {
		if !res.Up {
			down++
		}
	}
	if down > 0 {
		return fmt.Errorf("%d of %d targets down", down, len(results))
	}
	return nil
}
