package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/finwallet/wallet-server/auth"
	"github.com/finwallet/wallet-server/groups"
	"github.com/finwallet/wallet-server/internal/errors"
)

type createGroupRequest struct {
	Name         string   `json:"name"`
	MemberEmails []string `json:"memberEmails"`
}

type memberChangeRequest struct {
	Emails []string `json:"emails"`
}

// memberChangeResponse reports the outcome of a membership operation:
// emails with no matching account and emails already claimed by a group
// are echoed back rather than silently dropped.
type memberChangeResponse struct {
	Group           *groups.Group `json:"group"`
	MembersNotFound []string      `json:"membersNotFound"`
	AlreadyInGroup  []string      `json:"alreadyInGroup"`
}

// CreateGroupHandler creates a group from an email list. The caller is
// added implicitly when not listed.
func (s *Server) CreateGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ok, cause := s.authorize(w, r, auth.Simple()); !ok {
			deny(w, cause)
			return
		}

		var req createGroupRequest
		if err := decodeBody(r, &req); err != nil || req.Name == "" {
			writeError(w, http.StatusBadRequest, "group name is required")
			return
		}

		if _, err := s.repos.Groups.Get(req.Name); err == nil {
			writeError(w, http.StatusBadRequest, "a group with the same name already exists")
			return
		}

		caller, err := s.callerClaims(r)
		if err != nil {
			deny(w, auth.CauseUnauthorized)
			return
		}

		// The caller joins their own group even when not listed.
		memberEmails := req.MemberEmails
		callerListed := false
		for _, email := range memberEmails {
			if email == caller.Email {
				callerListed = true
				break
			}
		}
		if !callerListed {
			memberEmails = append([]string{caller.Email}, memberEmails...)
		}

		group := &groups.Group{Name: req.Name}
		notFound, alreadyGrouped := s.appendMembers(group, memberEmails)

		if len(group.Members) == 0 {
			writeError(w, http.StatusBadRequest, "all the provided emails represent users that are already in a group or do not exist")
			return
		}

		if err := s.repos.Groups.Upsert(group); err != nil {
			log.Error().Err(err).Str("group", req.Name).Msg("creating group failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, memberChangeResponse{
			Group:           group,
			MembersNotFound: notFound,
			AlreadyInGroup:  alreadyGrouped,
		})
	}
}

// ListGroupsHandler returns every group. Admin only.
func (s *Server) ListGroupsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ok, cause := s.authorize(w, r, auth.Admin()); !ok {
			deny(w, cause)
			return
		}

		list, err := s.repos.Groups.List()
		if err != nil {
			log.Error().Err(err).Msg("listing groups failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GetGroupHandler returns one group, for its members or an Admin.
func (s *Server) GetGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		group, ok := s.fetchGroup(w, r)
		if !ok {
			return
		}

		if ok, cause := s.authorizeAny(w, r, auth.Group(group.MemberEmails()), auth.Admin()); !ok {
			deny(w, cause)
			return
		}
		writeJSON(w, http.StatusOK, group)
	}
}

// InsertGroupMembersHandler adds accounts to a group by email.
func (s *Server) InsertGroupMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		group, ok := s.fetchGroup(w, r)
		if !ok {
			return
		}

		if ok, cause := s.authorizeAny(w, r, auth.Group(group.MemberEmails()), auth.Admin()); !ok {
			deny(w, cause)
			return
		}

		var req memberChangeRequest
		if err := decodeBody(r, &req); err != nil || len(req.Emails) == 0 {
			writeError(w, http.StatusBadRequest, "emails are required")
			return
		}

		notFound, alreadyGrouped := s.appendMembers(group, req.Emails)
		if len(notFound)+len(alreadyGrouped) == len(req.Emails) {
			writeError(w, http.StatusBadRequest, "all the provided emails represent users that are already in a group or do not exist")
			return
		}

		if err := s.repos.Groups.Upsert(group); err != nil {
			log.Error().Err(err).Str("group", group.Name).Msg("updating group failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, memberChangeResponse{
			Group:           group,
			MembersNotFound: notFound,
			AlreadyInGroup:  alreadyGrouped,
		})
	}
}

// RemoveGroupMembersHandler removes accounts from a group by email. The
// last member cannot be removed; delete the group instead.
func (s *Server) RemoveGroupMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		group, ok := s.fetchGroup(w, r)
		if !ok {
			return
		}

		if ok, cause := s.authorizeAny(w, r, auth.Group(group.MemberEmails()), auth.Admin()); !ok {
			deny(w, cause)
			return
		}

		var req memberChangeRequest
		if err := decodeBody(r, &req); err != nil || len(req.Emails) == 0 {
			writeError(w, http.StatusBadRequest, "emails are required")
			return
		}

		removed := 0
		notFound := make([]string, 0)
		for _, email := range req.Emails {
			if !group.HasMember(email) {
				notFound = append(notFound, email)
				continue
			}
			if len(group.Members) == 1 {
				writeError(w, http.StatusBadRequest, "cannot remove the last member of a group")
				return
			}
			members := group.Members[:0]
			for _, m := range group.Members {
				if m.Email != email {
					members = append(members, m)
				}
			}
			group.Members = members
			removed++
		}

		if removed == 0 {
			writeError(w, http.StatusBadRequest, "none of the provided emails are in the group")
			return
		}

		if err := s.repos.Groups.Upsert(group); err != nil {
			log.Error().Err(err).Str("group", group.Name).Msg("updating group failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, memberChangeResponse{
			Group:           group,
			MembersNotFound: notFound,
			AlreadyInGroup:  []string{},
		})
	}
}

// DeleteGroupHandler deletes a group. Admin only.
func (s *Server) DeleteGroupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ok, cause := s.authorize(w, r, auth.Admin()); !ok {
			deny(w, cause)
			return
		}

		name := r.PathValue("name")
		if err := s.repos.Groups.Delete(name); err != nil {
			if errors.Is(err, errors.ErrGroupNotFound) {
				writeError(w, http.StatusNotFound, "group not found")
				return
			}
			log.Error().Err(err).Str("group", name).Msg("deleting group failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "group deleted"})
	}
}

// fetchGroup resolves the route's group or writes the 404.
func (s *Server) fetchGroup(w http.ResponseWriter, r *http.Request) (*groups.Group, bool) {
	name := r.PathValue("name")
	if name == "" {
		writeError(w, http.StatusNotFound, "group name missing")
		return nil, false
	}
	group, err := s.repos.Groups.Get(name)
	if err != nil {
		if errors.Is(err, errors.ErrGroupNotFound) {
			writeError(w, http.StatusNotFound, "group not found")
			return nil, false
		}
		log.Error().Err(err).Str("group", name).Msg("fetching group failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	return group, true
}

// appendMembers adds each email's account to the group, reporting the
// emails that match no account and the ones already claimed by a group.
func (s *Server) appendMembers(group *groups.Group, emails []string) (notFound, alreadyGrouped []string) {
	notFound = make([]string, 0)
	alreadyGrouped = make([]string, 0)

	for _, email := range emails {
		user, err := s.repos.Users.GetByEmail(email)
		if err != nil {
			notFound = append(notFound, email)
			continue
		}
		if group.HasMember(email) {
			alreadyGrouped = append(alreadyGrouped, email)
			continue
		}
		if _, err := s.repos.Groups.GetByMemberEmail(email); err == nil {
			alreadyGrouped = append(alreadyGrouped, email)
			continue
		}
		group.Members = append(group.Members, groups.Member{Email: email, UserID: user.ID})
	}
	return notFound, alreadyGrouped
}
