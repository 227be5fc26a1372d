package categories

// Category tags transactions. Type doubles as the category's key.
type Category struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

type Repo interface {
	Upsert(category *Category) error
	Get(categoryType string) (*Category, error)
	List() ([]*Category, error)
	Delete(categoryType string) error
}
