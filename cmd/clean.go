package cmd

import (
	"fmt"

	"github.com/dorkyrobot/yuri/internal/paths"
)

func init() {
	register("clean", runClean, "clean <path>...\tclean slash-separated paths")
	register("join", runJoin, "join <element>...\tjoin and clean path elements")
}

func runClean(env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: yuri clean <path>...")
	}
	for _, p := range args {
		fmt.Fprintln(env.Out, paths.Clean(p))
	}
	return nil
}

func runJoin(env *Env, args []string) error {
	fmt.Fprintln(env.Out, paths.Join(args...))
	return nil
}
