package groups

// Member ties a group entry back to an account.
type Member struct {
	Email  string `json:"email"`
	UserID string `json:"user_id,omitempty"`
}

// Group is a named set of accounts sharing transaction reporting.
type Group struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// MemberEmails returns the email list the Group authorization
// requirement is checked against.
func (g *Group) MemberEmails() []string {
	emails := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		emails = append(emails, m.Email)
	}
	return emails
}

func (g *Group) HasMember(email string) bool {
	for _, m := range g.Members {
		if m.Email == email {
			return true
		}
	}
	return false
}

// Repo persists groups. GetByMemberEmail supports the one-group-per-user
// rule enforced at membership changes.
type Repo interface {
	Upsert(group *Group) error
	Get(name string) (*Group, error)
	GetByMemberEmail(email string) (*Group, error)
	List() ([]*Group, error)
	Delete(name string) error
}
