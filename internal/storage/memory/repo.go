// Package memory is a map-backed VillaRepository used as a fixture in tests and for
// running the API without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"magic_villa/internal/domain"
)

type Repo struct {
	mu     sync.RWMutex
	villas map[int64]domain.Villa
	nextID int64
	now    func() time.Time
}

var _ domain.VillaRepository = (*Repo)(nil)

// New returns a store holding copies of seed. Generated ids continue after the
// highest seeded id.
func New(seed ...domain.Villa) *Repo {
	r := &Repo{villas: make(map[int64]domain.Villa, len(seed)), now: time.Now}
	now := r.now().UTC()
	for _, v := range seed {
		if v.CreatedDate.IsZero() {
			v.CreatedDate = now
		}
		if v.UpdatedDate.IsZero() {
			v.UpdatedDate = now
		}
		r.villas[v.ID] = v
		if v.ID > r.nextID {
			r.nextID = v.ID
		}
	}
	return r
}

func match(v domain.Villa, f *domain.Filter) bool {
	if f.Empty() {
		return true
	}
	if f.ID != nil && v.ID != *f.ID {
		return false
	}
	if f.Name != nil && !strings.EqualFold(v.Name, *f.Name) {
		return false
	}
	return true
}

func (r *Repo) GetAll(ctx context.Context, f *domain.Filter) ([]domain.Villa, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Villa{}
	for _, v := range r.villas {
		if match(v, f) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns a copy; tracked has no effect because callers never share instances
// with the store.
func (r *Repo) Get(ctx context.Context, f *domain.Filter, tracked bool) (domain.Villa, error) {
	all, _ := r.GetAll(ctx, f)
	if len(all) == 0 {
		return domain.Villa{}, domain.ErrNotFound
	}
	return all[0], nil
}

func (r *Repo) Create(ctx context.Context, v *domain.Villa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := r.now().UTC()
	v.ID = r.nextID
	v.CreatedDate = now
	v.UpdatedDate = now
	r.villas[v.ID] = *v
	return nil
}

func (r *Repo) Update(ctx context.Context, v *domain.Villa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.villas[v.ID]
	if !ok {
		return domain.ErrNotFound
	}
	v.CreatedDate = cur.CreatedDate
	v.UpdatedDate = r.now().UTC()
	r.villas[v.ID] = *v
	return nil
}

func (r *Repo) Remove(ctx context.Context, v domain.Villa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.villas[v.ID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.villas, v.ID)
	return nil
}

func (r *Repo) Save(ctx context.Context) error { return nil }

func (r *Repo) Ping(ctx context.Context) error { return nil }
