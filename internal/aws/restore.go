package aws

import (
	"net/http"
	"regexp"
	"time"
)

// RestoreStatus is the state of an archive restore, from x-amz-restore.
type RestoreStatus string

const (
	RestoreNone       RestoreStatus = ""
	RestoreInProgress RestoreStatus = "in-progress"
	RestoreAvailable  RestoreStatus = "available"
)

var (
	ongoingRE = regexp.MustCompile(`ongoing-request="(true|false)"`)
	expiryRE  = regexp.MustCompile(`expiry-date="([^"]+)"`)
)

// ParseRestoreHeader parses an x-amz-restore header value:
//
//	ongoing-request="true"                                              -> in-progress
//	ongoing-request="false", expiry-date="Fri, 23 Dec 2012 00:00:00 GMT" -> available until then
//	""                                                                  -> none
func ParseRestoreHeader(header string) (RestoreStatus, time.Time) {
	m := ongoingRE.FindStringSubmatch(header)
	if m == nil {
		return RestoreNone, time.Time{}
	}
	if m[1] == "true" {
		return RestoreInProgress, time.Time{}
	}

	var expiry time.Time
	if e := expiryRE.FindStringSubmatch(header); e != nil {
		expiry, _ = http.ParseTime(e[1])
	}
	return RestoreAvailable, expiry
}

// IsArchived reports whether objects of this storage class must be
// restored before they can be downloaded.
func IsArchived(class string) bool {
	switch class {
	case "GLACIER", "DEEP_ARCHIVE":
		return true
	}
	return false
}

// Downloadable reports whether obj can be fetched right now.
func Downloadable(obj *ObjectInfo) bool {
	return !IsArchived(obj.StorageClass) || obj.RestoreStatus == RestoreAvailable
}
