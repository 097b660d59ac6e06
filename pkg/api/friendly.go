package api

import (
	pkgerrors "github.com/pmiguel/workers-sdk/pkg/errors"
)

// FriendlyErrorFunc inspects one error entry and may return a more specific,
// user-actionable error for a recognized code. Returning nil passes the
// entry on to the next handler or to the generic aggregation.
type FriendlyErrorFunc func(entry ResponseError) error

// Numeric codes the API is known to return for conditions that deserve a
// better message than the raw envelope text.
const (
	errCodeAuthentication    = 10000
	errCodeScriptNotFound    = 10007
	errCodeEmailNotVerified  = 10034
	errCodeRateLimitExceeded = 971
)

// DefaultFriendlyError maps well-known error codes onto domain errors.
func DefaultFriendlyError(entry ResponseError) error {
	switch entry.Code {
	case errCodeAuthentication:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "the configured API token is invalid or has expired")
	case errCodeScriptNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, "the requested script does not exist")
	case errCodeEmailNotVerified:
		return pkgerrors.New(pkgerrors.CodeForbidden, "the account email address must be verified before deploying")
	case errCodeRateLimitExceeded:
		return pkgerrors.New(pkgerrors.CodeRateLimit, "the API rate limit was exceeded, try again shortly")
	}
	return nil
}
