package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dorkyrobot/yuri/internal/aws"
	"github.com/dorkyrobot/yuri/internal/requester"
	"github.com/dorkyrobot/yuri/internal/tui"
)

func init() {
	register("get", runGet, "get [-H header] [-p name=value] <uri|path> [local|-]\tdownload over HTTP or from S3")
}

func runGet(env *Env, args []string) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(env.Err)
	var headers headerFlag
	var params paramFlag
	fs.Var(&headers, "H", "request header, Name: value (repeatable)")
	fs.Var(&params, "p", "query parameter, name=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: yuri get [-H header] [-p name=value] <uri|path> [local|-]")
	}

	u, err := env.parseTarget(fs.Arg(0))
	if err != nil {
		return err
	}

	dest := localName(u)
	if fs.NArg() >= 2 {
		dest = fs.Arg(1)
	}

	ctx := context.Background()
	if aws.IsS3(u) {
		return getS3(ctx, env, u, dest)
	}
	return getHTTP(ctx, env, u, dest, params.v, headers.h)
}

func getHTTP(ctx context.Context, env *Env, u *url.URL, dest string, params url.Values, headers http.Header) error {
	resp, err := env.Requester().GetResponse(ctx, u.String(), params, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &requester.StatusError{Method: http.MethodGet, URL: resp.Request.URL.String(), StatusCode: resp.StatusCode}
	}

	w, cleanup, err := createLocal(env, dest)
	if err != nil {
		return err
	}

	progress := tui.Start(u.String(), env.Err)
	_, err = io.Copy(&progressWriter{w: w, total: resp.ContentLength, update: progress.Update}, resp.Body)
	progress.Finish()
	cleanup(err != nil)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", u, err)
	}

	if dest != "-" {
		fmt.Fprintf(env.Err, "%s -> %s\n", u, dest)
	}
	return nil
}

func getS3(ctx context.Context, env *Env, u *url.URL, dest string) error {
	loc, err := aws.ParseLocation(u)
	if err != nil {
		return err
	}
	if loc.Key == "" {
		return fmt.Errorf("get requires an object key, not a bucket or prefix")
	}

	client, err := env.NewS3Client(ctx, u.String())
	if err != nil {
		return err
	}

	// Archived objects have to be restored before they can be read.
	info, err := client.HeadObject(ctx, loc)
	if err != nil {
		return err
	}
	if !aws.Downloadable(info) {
		if info.RestoreStatus == aws.RestoreInProgress {
			return fmt.Errorf("object %s is being restored from %s; try again later", loc, info.StorageClass)
		}
		return fmt.Errorf("object %s is in %s storage and must be restored first", loc, info.StorageClass)
	}

	w, cleanup, err := createLocal(env, dest)
	if err != nil {
		return err
	}

	progress := tui.Start(loc.Key, env.Err)
	err = client.Download(ctx, loc, w, progress.Update)
	progress.Finish()
	cleanup(err != nil)
	if err != nil {
		return err
	}

	if dest != "-" {
		fmt.Fprintf(env.Err, "%s -> %s\n", loc, dest)
	}
	return nil
}
