package repoinmemory

import (
	"sort"
	"sync"

	"github.com/finwallet/wallet-server/categories"
	"github.com/finwallet/wallet-server/internal/errors"
)

var _ categories.Repo = (*CategoryRepo)(nil)

type CategoryRepo struct {
	categories map[string]*categories.Category // keyed by type
	lock       sync.RWMutex
}

func NewCategoryRepo() *CategoryRepo {
	return &CategoryRepo{categories: make(map[string]*categories.Category)}
}

func (cr *CategoryRepo) Upsert(category *categories.Category) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	copied := *category
	cr.categories[category.Type] = &copied
	return nil
}

func (cr *CategoryRepo) Get(categoryType string) (*categories.Category, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	category, ok := cr.categories[categoryType]
	if !ok {
		return nil, errors.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (cr *CategoryRepo) List() ([]*categories.Category, error) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()

	list := make([]*categories.Category, 0, len(cr.categories))
	for _, category := range cr.categories {
		copied := *category
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Type < list[j].Type })
	return list, nil
}

func (cr *CategoryRepo) Delete(categoryType string) error {
	cr.lock.Lock()
	defer cr.lock.Unlock()

	if _, ok := cr.categories[categoryType]; !ok {
		return errors.ErrCategoryNotFound
	}
	delete(cr.categories, categoryType)
	return nil
}
