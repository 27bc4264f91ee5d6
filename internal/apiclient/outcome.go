package apiclient

import apperrors "cleaning-console/pkg/errors"

// Outcome is the terminal state of one request. Every request starts Pending.
// FailedAuth also ends the session, not just the request.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeSucceeded
	OutcomeFailedBusiness
	OutcomeFailedAuth
	OutcomeFailedTransport
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailedBusiness:
		return "failed_business"
	case OutcomeFailedAuth:
		return "failed_auth"
	case OutcomeFailedTransport:
		return "failed_transport"
	default:
		return "pending"
	}
}

// OutcomeOf classifies the error returned by Call.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeSucceeded
	}
	apiErr, ok := apperrors.AsApiError(err)
	if !ok {
		return OutcomeFailedTransport
	}
	switch apiErr.Kind {
	case apperrors.KindAuth:
		return OutcomeFailedAuth
	case apperrors.KindTransport:
		return OutcomeFailedTransport
	default:
		return OutcomeFailedBusiness
	}
}
