package repoinmemory

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/finwallet/wallet-server/internal/errors"
	"github.com/finwallet/wallet-server/transactions"
)

var _ transactions.Repo = (*TransactionRepo)(nil)

type TransactionRepo struct {
	transactions map[string]*transactions.Transaction // keyed by ID
	lock         sync.RWMutex
}

func NewTransactionRepo() *TransactionRepo {
	return &TransactionRepo{transactions: make(map[string]*transactions.Transaction)}
}

func (tr *TransactionRepo) Upsert(transaction *transactions.Transaction) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	copied := *transaction
	tr.transactions[transaction.ID] = &copied
	return nil
}

func (tr *TransactionRepo) Get(id string) (*transactions.Transaction, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	transaction, ok := tr.transactions[id]
	if !ok {
		return nil, errors.ErrTransactionNotFound
	}
	copied := *transaction
	return &copied, nil
}

func (tr *TransactionRepo) ListByUsername(username string) ([]*transactions.Transaction, error) {
	return tr.ListByUsernames([]string{username})
}

func (tr *TransactionRepo) ListByUsernames(usernames []string) ([]*transactions.Transaction, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	wanted := make(map[string]struct{}, len(usernames))
	for _, username := range usernames {
		wanted[username] = struct{}{}
	}

	list := make([]*transactions.Transaction, 0)
	for _, transaction := range tr.transactions {
		if _, ok := wanted[transaction.Username]; ok {
			copied := *transaction
			list = append(list, &copied)
		}
	}
	sortByDate(list)
	return list, nil
}

func (tr *TransactionRepo) List() ([]*transactions.Transaction, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	list := make([]*transactions.Transaction, 0, len(tr.transactions))
	for _, transaction := range tr.transactions {
		copied := *transaction
		list = append(list, &copied)
	}
	sortByDate(list)
	return list, nil
}

func (tr *TransactionRepo) Delete(id string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if _, ok := tr.transactions[id]; !ok {
		return errors.ErrTransactionNotFound
	}
	delete(tr.transactions, id)
	return nil
}

func sortByDate(list []*transactions.Transaction) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date.Equal(list[j].Date) {
			return list[i].ID < list[j].ID
		}
		return list[i].Date.Before(list[j].Date)
	})
}
