package cmd

import (
	"github.com/dorkyrobot/yuri/internal/output"
)

func init() {
	register("parse", runParse, "parse [uri]\tshow the components of a URI")
}

func runParse(env *Env, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}

	u, err := env.parseTarget(target)
	if err != nil {
		return err
	}
	output.FormatURI(env.Out, u, env.tty())
	return nil
}
