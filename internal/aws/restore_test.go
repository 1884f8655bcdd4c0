package aws

import (
	"testing"
	"time"
)

func TestParseRestoreHeader(t *testing.T) {
	expiry := time.Date(2022, 12, 23, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		header     string
		want       RestoreStatus
		wantExpiry time.Time
	}{
		{"empty", "", RestoreNone, time.Time{}},
		{"in progress", `ongoing-request="true"`, RestoreInProgress, time.Time{}},
		{"available", `ongoing-request="false", expiry-date="Fri, 23 Dec 2022 00:00:00 GMT"`, RestoreAvailable, expiry},
		{"available no expiry", `ongoing-request="false"`, RestoreAvailable, time.Time{}},
		{"unrecognized", "something-else", RestoreNone, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotExpiry := ParseRestoreHeader(tt.header)
			if got != tt.want {
				t.Errorf("ParseRestoreHeader(%q) status = %q, want %q", tt.header, got, tt.want)
			}
			if !gotExpiry.Equal(tt.wantExpiry) {
				t.Errorf("ParseRestoreHeader(%q) expiry = %v, want %v", tt.header, gotExpiry, tt.wantExpiry)
			}
		})
	}
}

func TestDownloadable(t *testing.T) {
	tests := []struct {
		class   string
		restore RestoreStatus
		want    bool
	}{
		{"STANDARD", RestoreNone, true},
		{"GLACIER_IR", RestoreNone, true},
		{"GLACIER", RestoreNone, false},
		{"GLACIER", RestoreInProgress, false},
		{"GLACIER", RestoreAvailable, true},
		{"DEEP_ARCHIVE", RestoreNone, false},
	}

	for _, tt := range tests {
		obj := &ObjectInfo{StorageClass: tt.class, RestoreStatus: tt.restore}
		if got := Downloadable(obj); got != tt.want {
			t.Errorf("Downloadable(%s, %q) = %v, want %v", tt.class, tt.restore, got, tt.want)
		}
	}
}
