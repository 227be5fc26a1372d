package auth

// Denial causes are part of the observable API contract: clients match
// on these exact strings.
const (
	CauseUnauthorized       = "Unauthorized"
	CauseMissingInformation = "Token is missing information"
	CauseMismatchedUsers    = "Mismatched users"
	CauseUsernameMismatch   = "Tokens have a different username from the requested one"
	CauseNotAdmin           = "You are not an Admin"
	CauseEmailNotInGroup    = "Your email is not in the group"
	CausePerformLoginAgain  = "Perform login again"
)

// Verdict is the Session Policy's output for one authorization check.
// NewAccessToken is set whenever the access token was reissued from a
// valid refresh token; the gate persists it as a cookie regardless of
// Allowed.
type Verdict struct {
	Allowed        bool
	Cause          string
	NewAccessToken string
}

func allowed(newAccessToken string) Verdict {
	return Verdict{Allowed: true, NewAccessToken: newAccessToken}
}

func denied(cause string) Verdict {
	return Verdict{Cause: cause}
}
