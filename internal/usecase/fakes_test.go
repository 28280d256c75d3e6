package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/pkg/e"
)

// In-memory doubles for the ports the use cases depend on.

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

type fakeProductRepo struct {
	products map[string]*domain.Product
	seq      []string // insertion order, the stable tiebreak
	listErr  error
	getErr   error
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		repo.put(p)
	}
	return repo
}

func (f *fakeProductRepo) put(p *domain.Product) {
	if _, ok := f.products[p.ID]; !ok {
		f.seq = append(f.seq, p.ID)
	}
	f.products[p.ID] = p
}

func (f *fakeProductRepo) List(_ context.Context, q ProductQuery) ([]domain.Product, int64, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}

	var matched []domain.Product
	for _, id := range f.seq {
		p := f.products[id]
		if !p.Active {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.Search != "" {
			needle := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		if q.MinPriceCents != nil && p.BasePriceCents < *q.MinPriceCents {
			continue
		}
		if q.MaxPriceCents != nil && p.BasePriceCents > *q.MaxPriceCents {
			continue
		}
		if q.Customizable != nil && p.Customizable != *q.Customizable {
			continue
		}
		matched = append(matched, *p)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less bool
		switch q.Sort {
		case SortName:
			if a.Name == b.Name {
				return false
			}
			less = a.Name < b.Name
		case SortBasePrice:
			if a.BasePriceCents == b.BasePriceCents {
				return false
			}
			less = a.BasePriceCents < b.BasePriceCents
		case SortCategory:
			if a.Category == b.Category {
				return false
			}
			less = a.Category < b.Category
		default:
			if a.CreatedAt.Equal(b.CreatedAt) {
				return false
			}
			less = a.CreatedAt.Before(b.CreatedAt)
		}
		if q.Order == "desc" {
			return !less
		}
		return less
	})

	total := int64(len(matched))
	start := q.Offset()
	if start >= len(matched) {
		return []domain.Product{}, total, nil
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.products[id]
	if !ok || !p.Active {
		return nil, e.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetAny(_ context.Context, id string) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	cp := *p
	cp.CreatedAt = time.Now()
	f.put(&cp)
	return &cp, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id string, req UpdateProductReq) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.BasePriceCents != nil {
		p.BasePriceCents = *req.BasePriceCents
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Archive(_ context.Context, id string) error {
	p, ok := f.products[id]
	if !ok {
		return e.ErrProductNotFound
	}
	p.Active = false
	return nil
}

func (f *fakeProductRepo) DistinctCategories(_ context.Context) ([]string, error) {
	return f.distinct(func(p *domain.Product) []string { return []string{p.Category} })
}

func (f *fakeProductRepo) DistinctSizes(_ context.Context) ([]string, error) {
	return f.distinct(func(p *domain.Product) []string { return p.Sizes })
}

func (f *fakeProductRepo) DistinctFlavors(_ context.Context) ([]string, error) {
	return f.distinct(func(p *domain.Product) []string { return p.Flavors })
}

func (f *fakeProductRepo) distinct(extract func(*domain.Product) []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, id := range f.seq {
		p := f.products[id]
		if !p.Active {
			continue
		}
		for _, v := range extract(p) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeCartStore struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{data: make(map[string][]byte)}
}

func (f *fakeCartStore) Get(_ context.Context, sessionID string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.data[sessionID], nil
}

func (f *fakeCartStore) Set(_ context.Context, sessionID string, snapshot []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[sessionID] = snapshot
	return nil
}

func (f *fakeCartStore) Delete(_ context.Context, sessionID string) error {
	delete(f.data, sessionID)
	return nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
	seq   []string
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
		repo.seq = append(repo.seq, u.ID)
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, e.ErrEmailTaken
		}
	}
	cp := *user
	cp.CreatedAt = time.Now()
	f.users[cp.ID] = &cp
	f.seq = append(f.seq, cp.ID)
	return &cp, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, e.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, e.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context, q UserQuery) ([]domain.User, int64, error) {
	var matched []domain.User
	for _, id := range f.seq {
		u := f.users[id]
		if q.Search != "" {
			needle := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(u.Name), needle) &&
				!strings.Contains(strings.ToLower(u.Email), needle) {
				continue
			}
		}
		matched = append(matched, *u)
	}

	total := int64(len(matched))
	start := q.Offset()
	if start >= len(matched) {
		return []domain.User{}, total, nil
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return nil, e.ErrUserNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return e.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeTokens struct {
	generateErr error
}

func (f *fakeTokens) Generate(user *domain.User) (string, time.Time, error) {
	if f.generateErr != nil {
		return "", time.Time{}, f.generateErr
	}
	return "token-" + user.ID, time.Now().Add(time.Hour), nil
}

func (f *fakeTokens) Validate(token string) (*Principal, error) {
	if !strings.HasPrefix(token, "token-") {
		return nil, e.ErrInvalidToken
	}
	return &Principal{UserID: strings.TrimPrefix(token, "token-")}, nil
}

// fakeCacheRepo is mutex-guarded because GetProduct populates the cache from
// a background goroutine.
type fakeCacheRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	getErr   error
	deleted  []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{products: make(map[string]*domain.Product)}
}

func (f *fakeCacheRepo) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.products[id], nil
}

func (f *fakeCacheRepo) SetProduct(_ context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ID] = product
	return nil
}

func (f *fakeCacheRepo) DeleteProducts(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.products, id)
		f.deleted = append(f.deleted, id)
	}
	return nil
}
