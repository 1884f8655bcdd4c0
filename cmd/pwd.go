package cmd

import "fmt"

func init() {
	register("pwd", runPWD, "pwd\tshow the working base")
}

func runPWD(env *Env, args []string) error {
	base, _ := env.ResolveBase()
	if base == "" {
		fmt.Fprintln(env.Out, "(no base set)")
		return nil
	}

	fmt.Fprintln(env.Out, base)
	return nil
}
