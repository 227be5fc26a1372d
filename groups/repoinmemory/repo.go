package repoinmemory

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/finwallet/wallet-server/groups"
	"github.com/finwallet/wallet-server/internal/errors"
)

var _ groups.Repo = (*GroupRepo)(nil)

type GroupRepo struct {
	groups map[string]*groups.Group // keyed by name
	lock   sync.RWMutex
}

func NewGroupRepo() *GroupRepo {
	return &GroupRepo{groups: make(map[string]*groups.Group)}
}

func (gr *GroupRepo) Upsert(group *groups.Group) error {
	gr.lock.Lock()
	defer gr.lock.Unlock()

	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	copied := *group
	copied.Members = append([]groups.Member(nil), group.Members...)
	gr.groups[group.Name] = &copied
	return nil
}

func (gr *GroupRepo) Get(name string) (*groups.Group, error) {
	gr.lock.RLock()
	defer gr.lock.RUnlock()

	group, ok := gr.groups[name]
	if !ok {
		return nil, errors.ErrGroupNotFound
	}
	return copyGroup(group), nil
}

func (gr *GroupRepo) GetByMemberEmail(email string) (*groups.Group, error) {
	gr.lock.RLock()
	defer gr.lock.RUnlock()

	for _, group := range gr.groups {
		if group.HasMember(email) {
			return copyGroup(group), nil
		}
	}
	return nil, errors.ErrGroupNotFound
}

func (gr *GroupRepo) List() ([]*groups.Group, error) {
	gr.lock.RLock()
	defer gr.lock.RUnlock()

	list := make([]*groups.Group, 0, len(gr.groups))
	for _, group := range gr.groups {
		list = append(list, copyGroup(group))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (gr *GroupRepo) Delete(name string) error {
	gr.lock.Lock()
	defer gr.lock.Unlock()

	if _, ok := gr.groups[name]; !ok {
		return errors.ErrGroupNotFound
	}
	delete(gr.groups, name)
	return nil
}

func copyGroup(group *groups.Group) *groups.Group {
	copied := *group
	copied.Members = append([]groups.Member(nil), group.Members...)
	return &copied
}
