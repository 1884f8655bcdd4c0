package aws

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type ObjectInfo struct {
	Key           string
	Size          int64
	LastModified  time.Time
	StorageClass  string
	RestoreStatus RestoreStatus
	RestoreExpiry time.Time
	ContentType   string
	ETag          string
	IsPrefix      bool
}

type ProgressFunc func(bytesTransferred int64, totalBytes int64)

// S3Client is the read-only slice of S3 that s3:// URIs are served from.
type S3Client interface {
	ListBuckets(ctx context.Context) ([]string, error)
	ListObjects(ctx context.Context, loc Location, recursive bool) ([]ObjectInfo, error)
	HeadObject(ctx context.Context, loc Location) (*ObjectInfo, error)
	Download(ctx context.Context, loc Location, w io.Writer, progress ProgressFunc) error
}

// Options selects the AWS credentials and endpoint. Empty fields fall back
// to the SDK's own resolution chain. A non-empty Endpoint switches to
// path-style addressing for S3-compatible stores.
type Options struct {
	Region   string
	Profile  string
	Endpoint string
}

type Client struct {
	svc *s3.Client
}

var _ S3Client = (*Client)(nil)

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error

	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	svc := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &Client{svc: svc}, nil
}

func (c *Client) ListBuckets(ctx context.Context) ([]string, error) {
	out, err := c.svc.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("listing buckets: %w", err)
	}

	names := make([]string, len(out.Buckets))
	for i, b := range out.Buckets {
		names[i] = aws.ToString(b.Name)
	}
	return names, nil
}

// ListObjects lists the objects under loc's key, treated as a prefix.
// Unless recursive, keys are grouped at the next "/" into prefix entries.
func (c *Client) ListObjects(ctx context.Context, loc Location, recursive bool) ([]ObjectInfo, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(loc.Bucket),
	}
	if p := loc.Prefix(); p != "" {
		input.Prefix = aws.String(p)
	}
	if !recursive {
		input.Delimiter = aws.String("/")
	}

	var objects []ObjectInfo
	paginator := s3.NewListObjectsV2Paginator(c.svc, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", loc, err)
		}

		for _, p := range page.CommonPrefixes {
			objects = append(objects, ObjectInfo{
				Key:      aws.ToString(p.Prefix),
				IsPrefix: true,
			})
		}
		for _, obj := range page.Contents {
			objects = append(objects, ObjectInfo{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
				StorageClass: storageClass(string(obj.StorageClass)),
				ETag:         aws.ToString(obj.ETag),
			})
		}
	}
	return objects, nil
}

func (c *Client) HeadObject(ctx context.Context, loc Location) (*ObjectInfo, error) {
	if loc.Key == "" {
		return nil, fmt.Errorf("%s is not an object", loc)
	}
	out, err := c.svc.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("head %s: %w", loc, err)
	}

	info := &ObjectInfo{
		Key:          loc.Key,
		Size:         aws.ToInt64(out.ContentLength),
		LastModified: aws.ToTime(out.LastModified),
		StorageClass: storageClass(string(out.StorageClass)),
		ContentType:  aws.ToString(out.ContentType),
		ETag:         aws.ToString(out.ETag),
	}
	info.RestoreStatus, info.RestoreExpiry = ParseRestoreHeader(aws.ToString(out.Restore))
	return info, nil
}

// S3 leaves the storage class out for STANDARD objects.
func storageClass(s string) string {
	if s == "" {
		return "STANDARD"
	}
	return s
}
