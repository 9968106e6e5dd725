package store

import (
	"strings"

	"github.com/usnistgov/rmm-go/internal/rmmgw/apierr"
)

// malformedSignatures are substrings of a driver error that indicate
// the query itself was malformed by user input rather than a
// transport/driver failure (spec.md §4.8, §7).
var malformedSignatures = []string{
	"null byte",
	"invalid regex",
	"regexp compile",
	"unknown operator",
	"bad operator",
}

// ClassifyError wraps a raw driver error as MalformedStoreQuery when
// its message matches a known input-triggered signature, or
// StoreFailure otherwise.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if existing, ok := apierr.As(err); ok {
		return existing
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range malformedSignatures {
		if strings.Contains(msg, sig) {
			return apierr.Wrap(apierr.MalformedStoreQuery, err, "store rejected the query")
		}
	}
	return apierr.Wrap(apierr.StoreFailure, err, "store operation failed")
}
