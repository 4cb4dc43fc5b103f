package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a channel fetch failed
type FailureKind string

const (
	KindNotFound       FailureKind = "not_found"
	KindAuthError      FailureKind = "auth_error"
	KindRateLimited    FailureKind = "rate_limited"
	KindNetworkTimeout FailureKind = "network_timeout"
	KindMalformed      FailureKind = "malformed_response"
)

// FetchError is a typed per-channel failure. It is recorded against the
// offending identifier so the batch can continue with the remaining channels.
type FetchError struct {
	Kind      FailureKind
	ChannelID string
	Err       error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: channel %s", e.Kind, e.ChannelID)
	}
	return fmt.Sprintf("%s: channel %s: %v", e.Kind, e.ChannelID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps cause with a failure kind for one channel
func NewFetchError(kind FailureKind, channelID string, cause error) *FetchError {
	return &FetchError{Kind: kind, ChannelID: channelID, Err: cause}
}

// AsFetchError extracts a FetchError from err, if there is one
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
