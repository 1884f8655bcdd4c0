package cmd

import (
	"fmt"

	"github.com/dorkyrobot/yuri/internal/state"
)

func init() {
	register("cd", runCD, "cd <uri|path>\tset the working base")
}

func runCD(env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: yuri cd <uri|path>")
	}

	target := args[0]

	// "cd <name>" jumps to a configured base.
	if b := env.Cfg.GetBase(target); b != nil {
		target = b.URL
	}

	current, _ := env.ResolveBase()
	base, err := state.Resolve(current, target)
	if err != nil {
		return err
	}

	env.State.SetBase(base)
	if err := env.State.Save(); err != nil {
		return err
	}

	fmt.Fprintln(env.Err, base)
	return nil
}
