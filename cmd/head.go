package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/dorkyrobot/yuri/internal/output"
)

func init() {
	register("head", runHead, "head [-H header] [-p name=value] <uri|path>\tshow the status and headers of a URI")
}

func runHead(env *Env, args []string) error {
	fs := flag.NewFlagSet("head", flag.ContinueOnError)
	fs.SetOutput(env.Err)
	var headers headerFlag
	var params paramFlag
	fs.Var(&headers, "H", "request header, Name: value (repeatable)")
	fs.Var(&params, "p", "query parameter, name=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: yuri head [-H header] [-p name=value] <uri|path>")
	}

	u, err := env.parseTarget(fs.Arg(0))
	if err != nil {
		return err
	}

	resp, err := env.Requester().HeadResponse(context.Background(), u.String(), params.v, headers.h)
	if err != nil {
		return err
	}
	resp.Body.Close()

	output.FormatHead(env.Out, resp.StatusCode, resp.Header, env.tty())
	return nil
}
