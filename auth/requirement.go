package auth

import (
	"github.com/finwallet/wallet-server/token"
)

// RequirementType enumerates the authorization modes a protected route
// can demand.
type RequirementType string

const (
	// RequirementSimple demands nothing beyond a well-formed token pair.
	RequirementSimple RequirementType = "Simple"
	// RequirementUser demands the caller's claims name an exact username.
	RequirementUser RequirementType = "User"
	// RequirementAdmin demands the Admin role.
	RequirementAdmin RequirementType = "Admin"
	// RequirementUserOrAdmin passes for the named user or for any Admin.
	RequirementUserOrAdmin RequirementType = "UserOrAdmin"
	// RequirementGroup demands the caller's email be in a member list.
	RequirementGroup RequirementType = "Group"
)

// Requirement describes what a caller must prove. Construct values with
// the helpers below so an unrecognized mode can never slip through.
type Requirement struct {
	authType RequirementType
	username string
	emails   []string
}

func Simple() Requirement {
	return Requirement{authType: RequirementSimple}
}

func User(username string) Requirement {
	return Requirement{authType: RequirementUser, username: username}
}

func Admin() Requirement {
	return Requirement{authType: RequirementAdmin}
}

func UserOrAdmin(username string) Requirement {
	return Requirement{authType: RequirementUserOrAdmin, username: username}
}

func Group(emails []string) Requirement {
	return Requirement{authType: RequirementGroup, emails: emails}
}

// check applies the requirement's predicate against the authoritative
// claims set. It returns the denial cause on failure.
func (r Requirement) check(claims *token.Claims) (string, bool) {
	switch r.authType {
	case RequirementSimple:
		return "", true
	case RequirementUser:
		if claims.Username != r.username {
			return CauseUsernameMismatch, false
		}
		return "", true
	case RequirementAdmin:
		if claims.Role != token.RoleAdmin {
			return CauseNotAdmin, false
		}
		return "", true
	case RequirementUserOrAdmin:
		if claims.Username != r.username && claims.Role != token.RoleAdmin {
			return CauseUsernameMismatch, false
		}
		return "", true
	case RequirementGroup:
		for _, email := range r.emails {
			if email == claims.Email {
				return "", true
			}
		}
		return CauseEmailNotInGroup, false
	}
	// Zero-value Requirement. Deny rather than silently pass.
	return CauseUnauthorized, false
}
