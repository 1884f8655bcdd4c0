package cmd

import (
	"context"
	"fmt"

	"github.com/dorkyrobot/yuri/internal/aws"
	"github.com/dorkyrobot/yuri/internal/output"
)

func init() {
	register("stat", runStat, "stat <s3-uri|path>\tshow S3 object metadata")
}

func runStat(env *Env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: yuri stat <s3-uri|path>")
	}

	u, err := env.parseTarget(args[0])
	if err != nil {
		return err
	}
	if !aws.IsS3(u) {
		return fmt.Errorf("stat works on s3:// URIs; use yuri head for %s", u.Scheme)
	}

	loc, err := aws.ParseLocation(u)
	if err != nil {
		return err
	}
	if loc.Key == "" {
		return fmt.Errorf("stat requires an object key, not a bucket or prefix")
	}

	ctx := context.Background()
	client, err := env.NewS3Client(ctx, u.String())
	if err != nil {
		return err
	}

	obj, err := client.HeadObject(ctx, loc)
	if err != nil {
		return err
	}

	output.FormatStat(env.Out, obj, env.tty())
	return nil
}
