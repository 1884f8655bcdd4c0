package cmd

import (
	"fmt"

	"github.com/dorkyrobot/yuri/internal/uris"
)

func init() {
	register("append", runAppend, "append <uri> [element]...\tappend path, query and fragment text to a URI")
}

// runAppend appends onto an explicit URI, or onto the working base when
// the first argument is ".".
func runAppend(env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: yuri append <uri> [element]...")
	}

	base := args[0]
	if base == "." {
		b, err := env.ResolveBase()
		if err != nil {
			return err
		}
		base = b
	}

	got, err := uris.AppendString(base, args[1:]...)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Out, got)
	return nil
}
