package aws

import (
	"net/url"
	"testing"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name       string
		uri        string
		wantBucket string
		wantKey    string
		wantPrefix string
	}{
		{"bucket root", "s3://bucket", "bucket", "", ""},
		{"bucket root slash", "s3://bucket/", "bucket", "", ""},
		{"key", "s3://bucket/logs/a.txt", "bucket", "logs/a.txt", "logs/a.txt/"},
		{"cleaned key", "s3://bucket//logs/./2024/../a.txt", "bucket", "logs/a.txt", "logs/a.txt/"},
		{"dot-dot clamped", "s3://bucket/../../x", "bucket", "x", "x/"},
		{"trailing slash", "s3://bucket/logs/", "bucket", "logs", "logs/"},
		{"all buckets", "s3://", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.uri)
			if err != nil {
				t.Fatal(err)
			}
			got, err := ParseLocation(u)
			if err != nil {
				t.Fatalf("ParseLocation(%q) error: %v", tt.uri, err)
			}
			if got.Bucket != tt.wantBucket || got.Key != tt.wantKey {
				t.Errorf("ParseLocation(%q) = %+v, want bucket %q key %q", tt.uri, got, tt.wantBucket, tt.wantKey)
			}
			if p := got.Prefix(); p != tt.wantPrefix {
				t.Errorf("Prefix() = %q, want %q", p, tt.wantPrefix)
			}
		})
	}
}

func TestParseLocationRejects(t *testing.T) {
	for _, raw := range []string{"https://example.org/x", "s3:///key-without-bucket"} {
		u, err := url.Parse(raw)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := ParseLocation(u); err == nil {
			t.Errorf("ParseLocation(%q) succeeded, want error", raw)
		}
	}
	if _, err := ParseLocation(nil); err == nil {
		t.Error("ParseLocation(nil) succeeded")
	}
}

func TestLocationString(t *testing.T) {
	l := Location{Bucket: "b", Key: "k/v"}
	if got := l.String(); got != "s3://b/k/v" {
		t.Errorf("String() = %q", got)
	}
}
