package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/finwallet/wallet-server/auth"
	"github.com/finwallet/wallet-server/internal/errors"
	"github.com/finwallet/wallet-server/transactions"
)

// nowTime returns the current time. It can be overridden in tests.
var nowTime = time.Now

type createTransactionRequest struct {
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
}

// CreateTransactionHandler records a transaction for the named user.
func (s *Server) CreateTransactionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.PathValue("username")
		if username == "" {
			writeError(w, http.StatusNotFound, "username missing")
			return
		}

		if ok, cause := s.authorize(w, r, auth.User(username)); !ok {
			deny(w, cause)
			return
		}

		var req createTransactionRequest
		if err := decodeBody(r, &req); err != nil || req.Type == "" {
			writeError(w, http.StatusBadRequest, "amount and type are required")
			return
		}

		if _, err := s.repos.Categories.Get(req.Type); err != nil {
			writeError(w, http.StatusBadRequest, "category does not exist")
			return
		}

		transaction := &transactions.Transaction{
			Username: username,
			Amount:   req.Amount,
			Type:     req.Type,
			Date:     nowTime(),
		}
		if err := s.repos.Transactions.Upsert(transaction); err != nil {
			log.Error().Err(err).Str("username", username).Msg("recording transaction failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, transaction)
	}
}

// ListUserTransactionsHandler returns the named user's transactions
// joined with category colors, for the user itself or an Admin.
func (s *Server) ListUserTransactionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.PathValue("username")
		if username == "" {
			writeError(w, http.StatusNotFound, "username missing")
			return
		}

		if ok, cause := s.authorize(w, r, auth.UserOrAdmin(username)); !ok {
			deny(w, cause)
			return
		}

		if _, err := s.repos.Users.GetByUsername(username); err != nil {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}

		list, err := s.repos.Transactions.ListByUsername(username)
		if err != nil {
			log.Error().Err(err).Str("username", username).Msg("listing transactions failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, s.labelTransactions(list))
	}
}

// ListGroupTransactionsHandler returns the transactions of every group
// member joined with category colors, for members or an Admin.
func (s *Server) ListGroupTransactionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		group, ok := s.fetchGroup(w, r)
		if !ok {
			return
		}

		if ok, cause := s.authorizeAny(w, r, auth.Group(group.MemberEmails()), auth.Admin()); !ok {
			deny(w, cause)
			return
		}

		usernames := make([]string, 0, len(group.Members))
		for _, member := range group.Members {
			user, err := s.repos.Users.GetByEmail(member.Email)
			if err != nil {
				continue // member account deleted since joining
			}
			usernames = append(usernames, user.Username)
		}

		list, err := s.repos.Transactions.ListByUsernames(usernames)
		if err != nil {
			log.Error().Err(err).Str("group", group.Name).Msg("listing group transactions failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, s.labelTransactions(list))
	}
}

// ListAllTransactionsHandler returns every transaction. Admin only.
func (s *Server) ListAllTransactionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ok, cause := s.authorize(w, r, auth.Admin()); !ok {
			deny(w, cause)
			return
		}

		list, err := s.repos.Transactions.List()
		if err != nil {
			log.Error().Err(err).Msg("listing all transactions failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, s.labelTransactions(list))
	}
}

// DeleteTransactionHandler removes one of the named user's
// transactions.
func (s *Server) DeleteTransactionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.PathValue("username")
		id := r.PathValue("id")
		if username == "" || id == "" {
			writeError(w, http.StatusNotFound, "username or transaction id missing")
			return
		}

		if ok, cause := s.authorize(w, r, auth.User(username)); !ok {
			deny(w, cause)
			return
		}

		transaction, err := s.repos.Transactions.Get(id)
		if err != nil || transaction.Username != username {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}

		if err := s.repos.Transactions.Delete(id); err != nil {
			if errors.Is(err, errors.ErrTransactionNotFound) {
				writeError(w, http.StatusNotFound, "transaction not found")
				return
			}
			log.Error().Err(err).Str("id", id).Msg("deleting transaction failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
	}
}

// labelTransactions joins transactions with their category's color. A
// transaction whose category was deleted keeps its type string and gets
// an empty color.
func (s *Server) labelTransactions(list []*transactions.Transaction) []transactions.Labelled {
	colors := make(map[string]string)
	if categoryList, err := s.repos.Categories.List(); err == nil {
		for _, category := range categoryList {
			colors[category.Type] = category.Color
		}
	}

	labelled := make([]transactions.Labelled, 0, len(list))
	for _, transaction := range list {
		labelled = append(labelled, transactions.Labelled{
			Transaction: *transaction,
			Color:       colors[transaction.Type],
		})
	}
	return labelled
}
