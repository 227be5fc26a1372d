package transactions

import "time"

// Transaction records one expense or income entry for a user. Type is
// the category's type string; deleting a category leaves the string on
// existing transactions.
type Transaction struct {
	ID       string    `json:"id,omitempty"`
	Username string    `json:"username"`
	Amount   float64   `json:"amount"`
	Type     string    `json:"type"`
	Date     time.Time `json:"date"`
}

// Labelled is a transaction joined with its category's color, the shape
// reporting endpoints return.
type Labelled struct {
	Transaction
	Color string `json:"color"`
}

type Repo interface {
	Upsert(transaction *Transaction) error
	Get(id string) (*Transaction, error)
	ListByUsername(username string) ([]*Transaction, error)
	ListByUsernames(usernames []string) ([]*Transaction, error)
	List() ([]*Transaction, error)
	Delete(id string) error
}
