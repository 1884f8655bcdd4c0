package aws

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func (c *Client) Download(ctx context.Context, loc Location, w io.Writer, progress ProgressFunc) error {
	if loc.Key == "" {
		return fmt.Errorf("%s is not an object", loc)
	}
	out, err := c.svc.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return fmt.Errorf("downloading %s: %w", loc, err)
	}
	defer out.Body.Close()

	cw := &countingWriter{w: w, total: aws.ToInt64(out.ContentLength), progress: progress}
	if _, err := io.Copy(cw, out.Body); err != nil {
		return fmt.Errorf("downloading %s: %w", loc, err)
	}
	return nil
}

// countingWriter reports every write to progress.
type countingWriter struct {
	w        io.Writer
	n        int64
	total    int64
	progress ProgressFunc
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	if cw.progress != nil && n > 0 {
		cw.progress(cw.n, cw.total)
	}
	return n, err
}
