package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/dorkyrobot/yuri/internal/config"
	"github.com/dorkyrobot/yuri/internal/uris"
)

func init() {
	register("bases", runBases, "bases [list|add|remove|default]\tmanage configured bases")
}

func runBases(env *Env, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		return basesListCmd(env, args)
	case "add":
		return basesAddCmd(env, args)
	case "remove":
		return basesRemoveCmd(env, args)
	case "default":
		return basesDefaultCmd(env, args)
	default:
		return fmt.Errorf("unknown bases subcommand %q; use list, add, remove, or default", sub)
	}
}

// basesListCmd prints configured bases. With --remote it lists the S3
// buckets visible to the resolved credentials instead.
func basesListCmd(env *Env, args []string) error {
	if len(args) > 0 && args[0] == "--remote" {
		ctx := context.Background()
		client, err := env.NewS3Client(ctx, "s3://")
		if err != nil {
			return err
		}

		buckets, err := client.ListBuckets(ctx)
		if err != nil {
			return err
		}

		for _, b := range buckets {
			fmt.Fprintf(env.Out, "s3://%s\n", b)
		}
		return nil
	}

	if len(env.Cfg.Bases) == 0 {
		fmt.Fprintln(env.Err, "no bases configured; add one with: yuri bases add <name> <uri>")
		return nil
	}

	for _, b := range env.Cfg.Bases {
		marker := "  "
		if b.Name == env.Cfg.DefaultBase {
			marker = "* "
		}
		line := marker + b.Name + " " + b.URL
		if b.Region != "" {
			line += fmt.Sprintf(" (region=%s)", b.Region)
		}
		if b.Profile != "" {
			line += fmt.Sprintf(" (profile=%s)", b.Profile)
		}
		if b.Endpoint != "" {
			line += fmt.Sprintf(" (endpoint=%s)", b.Endpoint)
		}
		fmt.Fprintln(env.Out, line)
	}
	return nil
}

func basesAddCmd(env *Env, args []string) error {
	const usage = "usage: yuri bases add <name> <uri> [--region REGION] [--profile PROFILE] [--endpoint URL]"
	if len(args) < 2 {
		return errors.New(usage)
	}

	b := config.BaseConfig{Name: args[0]}
	uri, err := uris.AppendString(args[1])
	if err != nil {
		return err
	}
	b.URL = uri

	for i := 2; i < len(args); i++ {
		var dst *string
		switch args[i] {
		case "--region":
			dst = &b.Region
		case "--profile":
			dst = &b.Profile
		case "--endpoint":
			dst = &b.Endpoint
		default:
			return fmt.Errorf("unknown option %q; %s", args[i], usage)
		}
		if i+1 >= len(args) {
			return fmt.Errorf("%s needs a value", args[i])
		}
		i++
		*dst = args[i]
	}

	env.Cfg.AddBase(b)
	if err := env.Cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(env.Err, "added base %s (%s)\n", b.Name, b.URL)
	return nil
}

func basesRemoveCmd(env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: yuri bases remove <name>")
	}

	name := args[0]
	b := env.Cfg.GetBase(name)
	if b == nil || b.Name != name {
		return fmt.Errorf("base %q not found in config", name)
	}
	baseURL := b.URL

	env.Cfg.RemoveBase(name)
	if err := env.Cfg.Save(); err != nil {
		return err
	}

	if env.State.Base == baseURL {
		env.State.Clear()
		if err := env.State.Save(); err != nil {
			return err
		}
	}

	fmt.Fprintf(env.Err, "removed base %s\n", name)
	return nil
}

func basesDefaultCmd(env *Env, args []string) error {
	if len(args) == 0 {
		if env.Cfg.DefaultBase == "" {
			fmt.Fprintln(env.Out, "(no default base set)")
		} else {
			fmt.Fprintln(env.Out, env.Cfg.DefaultBase)
		}
		return nil
	}

	name := args[0]
	if err := env.Cfg.SetDefault(name); err != nil {
		return err
	}

	if err := env.Cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(env.Err, "default base set to %s\n", name)
	return nil
}
