// Package memrepo keeps every repository port in process memory. It backs
// the server when STORE=memory and is the store used by the HTTP tests.
package memrepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rakesh3649/Fitness/models"
	"github.com/rakesh3649/Fitness/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// New returns a Store whose ports share nothing but their own maps.
func New() *repository.Store {
	return &repository.Store{
		Accounts:  &Accounts{byID: map[primitive.ObjectID]models.Account{}},
		Contacts:  &Contacts{table: newTable[models.Contact]()},
		Callbacks: &Callbacks{table: newTable[models.Callback]()},
		Orders:    &Orders{table: newTable[models.Order]()},
		Products:  &Products{table: newTable[models.Product]()},
		Pinger:    pinger{},
	}
}

type pinger struct{}

func (pinger) Ping(context.Context) error { return nil }

// table is an insertion-ordered map guarded by a RWMutex.
type table[T any] struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	rows  map[primitive.ObjectID]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[primitive.ObjectID]T{}}
}

func (t *table[T]) insert(id primitive.ObjectID, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) get(id primitive.ObjectID) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	return v, ok
}

// update runs fn on the stored row under the write lock.
func (t *table[T]) update(id primitive.ObjectID, fn func(*T)) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[id]
	if !ok {
		return v, false
	}
	fn(&v)
	t.rows[id] = v
	return v, true
}

func (t *table[T]) remove(id primitive.ObjectID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, x := range t.order {
		if x == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// newest returns the rows matching keep, newest createdAt first. Rows with
// equal timestamps come out in reverse insertion order.
func (t *table[T]) newest(createdAt func(T) time.Time, keep func(T) bool) []T {
	t.mu.RLock()
	out := make([]T, 0, len(t.rows))
	for i := len(t.order) - 1; i >= 0; i-- {
		v := t.rows[t.order[i]]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	t.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return createdAt(out[i]).After(createdAt(out[j]))
	})
	return out
}

type Accounts struct {
	mu   sync.RWMutex
	byID map[primitive.ObjectID]models.Account
}

func (r *Accounts) Create(_ context.Context, a *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := models.NormalizeEmail(a.Email)
	for _, existing := range r.byID {
		if existing.Email == email {
			return repository.ErrDuplicate
		}
	}
	a.Email = email
	if a.Id.IsZero() {
		a.Id = primitive.NewObjectID()
	}
	r.byID[a.Id] = *a
	return nil
}

func (r *Accounts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *Accounts) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email = models.NormalizeEmail(email)
	for _, a := range r.byID {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Accounts) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[primitive.ObjectID]*models.Account, len(ids))
	for _, id := range ids {
		if a, ok := r.byID[id]; ok {
			out[id] = &a
		}
	}
	return out, nil
}

func (r *Accounts) UpdateProfile(_ context.Context, id primitive.ObjectID, upd repository.ProfileUpdate) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.Name != nil {
		a.Name = *upd.Name
	}
	if upd.Phone != nil {
		a.Phone = *upd.Phone
	}
	r.byID[id] = a
	return &a, nil
}

func (r *Accounts) SetRole(_ context.Context, email string, role models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email = models.NormalizeEmail(email)
	for id, a := range r.byID {
		if a.Email == email {
			a.Role = role
			r.byID[id] = a
			return nil
		}
	}
	return repository.ErrNotFound
}

type Contacts struct {
	table *table[models.Contact]
}

func (r *Contacts) Create(_ context.Context, c *models.Contact) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	r.table.insert(c.ID, *c)
	return nil
}

func (r *Contacts) List(context.Context) ([]models.Contact, error) {
	return r.table.newest(func(c models.Contact) time.Time { return c.CreatedAt }, nil), nil
}

func (r *Contacts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Contact, error) {
	c, ok := r.table.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *Contacts) SetStatus(_ context.Context, id primitive.ObjectID, status models.ContactStatus) (*models.Contact, error) {
	c, ok := r.table.update(id, func(c *models.Contact) { c.Status = status })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

type Callbacks struct {
	table *table[models.Callback]
}

func (r *Callbacks) Create(_ context.Context, cb *models.Callback) error {
	if cb.ID.IsZero() {
		cb.ID = primitive.NewObjectID()
	}
	r.table.insert(cb.ID, *cb)
	return nil
}

func (r *Callbacks) List(context.Context) ([]models.Callback, error) {
	return r.table.newest(func(cb models.Callback) time.Time { return cb.CreatedAt }, nil), nil
}

func (r *Callbacks) Update(_ context.Context, id primitive.ObjectID, upd repository.CallbackUpdate) (*models.Callback, error) {
	cb, ok := r.table.update(id, func(cb *models.Callback) {
		if upd.Status != nil {
			cb.Status = *upd.Status
		}
		if upd.Notes != nil {
			cb.Notes = *upd.Notes
		}
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &cb, nil
}

type Orders struct {
	table *table[models.Order]
}

// cloneOrder copies the slice and map so callers never share storage.
func cloneOrder(o models.Order) models.Order {
	o.User = nil
	o.Items = append([]models.OrderItem(nil), o.Items...)
	if o.PaymentDetails != nil {
		details := make(map[string]string, len(o.PaymentDetails))
		for k, v := range o.PaymentDetails {
			details[k] = v
		}
		o.PaymentDetails = details
	}
	return o
}

func orderCreated(o models.Order) time.Time { return o.CreatedAt }

func (r *Orders) Create(_ context.Context, o *models.Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	r.table.insert(o.ID, cloneOrder(*o))
	return nil
}

func (r *Orders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := r.table.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r *Orders) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	orders := r.table.newest(orderCreated, func(o models.Order) bool { return o.UserID == userID })
	for i := range orders {
		orders[i] = cloneOrder(orders[i])
	}
	return orders, nil
}

func (r *Orders) List(context.Context) ([]models.Order, error) {
	orders := r.table.newest(orderCreated, nil)
	for i := range orders {
		orders[i] = cloneOrder(orders[i])
	}
	return orders, nil
}

func (r *Orders) SetOrderStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	o, ok := r.table.update(id, func(o *models.Order) {
		o.OrderStatus = status
		o.UpdatedAt = models.Now()
	})
	if !ok {
		return nil, repository.ErrNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r *Orders) Save(_ context.Context, o *models.Order) error {
	_, ok := r.table.update(o.ID, func(stored *models.Order) { *stored = cloneOrder(*o) })
	if !ok {
		return repository.ErrNotFound
	}
	return nil
}

type Products struct {
	table *table[models.Product]
}

func (r *Products) List(_ context.Context, q repository.ProductQuery) ([]models.Product, int64, error) {
	search := strings.ToLower(q.Search)
	matches := r.table.newest(func(p models.Product) time.Time { return p.CreatedAt }, func(p models.Product) bool {
		return search == "" || strings.Contains(strings.ToLower(p.Name), search)
	})

	total := int64(len(matches))
	start := q.Skip
	if start > total {
		start = total
	}
	end := total
	if q.Limit > 0 && start+q.Limit < total {
		end = start + q.Limit
	}
	return matches[start:end], total, nil
}

func (r *Products) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := r.table.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *Products) Create(_ context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.table.insert(p.ID, *p)
	return nil
}

func (r *Products) Save(_ context.Context, p *models.Product) error {
	if _, ok := r.table.update(p.ID, func(stored *models.Product) { *stored = *p }); !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (r *Products) Delete(_ context.Context, id primitive.ObjectID) error {
	if !r.table.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}
