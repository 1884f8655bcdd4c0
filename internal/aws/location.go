package aws

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dorkyrobot/yuri/internal/paths"
)

// Location is a bucket and key addressed by an s3:// URI.
type Location struct {
	Bucket string
	Key    string
}

// ParseLocation maps s3://bucket/key onto a Location. The key is cleaned
// and never starts with "/"; the bucket root has an empty key. s3:// with
// no bucket is the zero Location, meaning "all buckets".
func ParseLocation(u *url.URL) (Location, error) {
	if u == nil || u.Scheme != "s3" {
		return Location{}, fmt.Errorf("not an s3:// URI: %v", u)
	}

	key := strings.TrimPrefix(paths.Clean(u.Path), "/")
	if key == "." {
		key = ""
	}
	if u.Host == "" && key != "" {
		return Location{}, fmt.Errorf("s3 URI %q has a key but no bucket", u)
	}
	return Location{Bucket: u.Host, Key: key}, nil
}

// Prefix returns the key as a listing prefix: empty at the bucket root and
// ending in "/" otherwise.
func (l Location) Prefix() string {
	if l.Key == "" || strings.HasSuffix(l.Key, "/") {
		return l.Key
	}
	return l.Key + "/"
}

func (l Location) String() string {
	return "s3://" + l.Bucket + "/" + l.Key
}

// IsS3 reports whether u addresses S3.
func IsS3(u *url.URL) bool {
	return u != nil && u.Scheme == "s3"
}
