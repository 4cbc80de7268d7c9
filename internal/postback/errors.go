package postback

import (
	"errors"
	"net/http"
)

// Kind classifies a terminal postback failure.
type Kind string

const (
	KindCampaignNotFound   Kind = "campaign_not_found"
	KindCampaignInactive   Kind = "campaign_inactive"
	KindUnauthorized       Kind = "unauthorized"
	KindMalformed          Kind = "malformed_postback"
	KindUserNotFound       Kind = "user_not_found"
	KindLedgerWriteFailure Kind = "ledger_write_failure"
	KindInternal           Kind = "internal"
)

// Error is returned by Service.Process for every rejected postback.
// Nothing has been written when an Error is returned.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the failure class to a response code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindCampaignNotFound, KindUserNotFound:
		return http.StatusNotFound
	case KindUnauthorized, KindCampaignInactive:
		return http.StatusForbidden
	case KindMalformed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindInternal
}
