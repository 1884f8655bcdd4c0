package cmd

import (
	"fmt"

	"github.com/dorkyrobot/yuri/internal/uris"
)

func init() {
	register("escape", runEscape, "escape <segment>...\tpercent-encode path segments")
}

func runEscape(env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: yuri escape <segment>...")
	}
	for _, s := range args {
		escaped, err := uris.PathEscape(s)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Out, escaped)
	}
	return nil
}
