package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/dorkyrobot/yuri/internal/aws"
	"github.com/dorkyrobot/yuri/internal/output"
)

func init() {
	register("ls", runLS, "ls [-l] [-R] [s3-uri|path]\tlist S3 objects and prefixes")
}

func runLS(env *Env, args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(env.Err)
	long := fs.Bool("l", false, "long format")
	recursive := fs.Bool("R", false, "recursive listing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	u, err := env.parseTarget(fs.Arg(0))
	if err != nil {
		return err
	}
	if !aws.IsS3(u) {
		return fmt.Errorf("ls works on s3:// URIs, not %s", u.Scheme)
	}

	loc, err := aws.ParseLocation(u)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := env.NewS3Client(ctx, u.String())
	if err != nil {
		return err
	}

	if loc.Bucket == "" {
		buckets, err := client.ListBuckets(ctx)
		if err != nil {
			return err
		}
		for _, b := range buckets {
			fmt.Fprintf(env.Out, "s3://%s/\n", b)
		}
		return nil
	}

	objects, err := client.ListObjects(ctx, loc, *recursive)
	if err != nil {
		return err
	}

	if len(objects) == 0 {
		fmt.Fprintln(env.Err, "no objects found")
		return nil
	}

	output.ListObjects(env.Out, objects, *long, env.tty())
	return nil
}
