package github

import (
	"fmt"
	"time"
)

// ErrorKind identifies the failure class of an API call.
type ErrorKind string

const (
	KindUnauthorized    ErrorKind = "unauthorized"
	KindForbidden       ErrorKind = "forbidden"
	KindRateLimited     ErrorKind = "rate_limited"
	KindNetwork         ErrorKind = "network"
	KindGraphQL         ErrorKind = "graphql"
	KindInvalidResponse ErrorKind = "invalid_response"
	KindInvalidPRURL    ErrorKind = "invalid_pr_url"
	KindNoData          ErrorKind = "no_data"
)

// Error is the typed error returned by the client. Kind drives the
// retryability decision; Reset is set only for rate-limit errors.
type Error struct {
	Kind  ErrorKind
	Reset time.Time
	Cause error
	// GraphQLErrors holds the response errors when Kind is KindGraphQL.
	GraphQLErrors []GraphQLError
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnauthorized:
		return "invalid or expired token (401)"
	case KindForbidden:
		return "access denied - check token scopes (403)"
	case KindRateLimited:
		return fmt.Sprintf("rate limited - retry in %s", time.Until(e.Reset).Round(time.Second))
	case KindNetwork:
		return fmt.Sprintf("network error: %v", e.Cause)
	case KindGraphQL:
		if len(e.GraphQLErrors) > 0 {
			return e.GraphQLErrors[0].Message
		}
		return "graphql error"
	case KindInvalidPRURL:
		return "invalid PR URL format, expected https://github.com/owner/repo/pull/123"
	case KindNoData:
		return "no data returned from GitHub"
	default:
		return "invalid server response"
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// Retryable reports whether the same call may succeed later without user
// intervention. Auth failures and malformed URLs are permanent.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindUnauthorized, KindForbidden, KindInvalidPRURL:
		return false
	default:
		return true
	}
}
