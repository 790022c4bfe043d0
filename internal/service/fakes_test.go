package service

import (
	"context"
	"fmt"

	"app/internal/model"
	"app/internal/plan"
	"app/internal/pubsub"
	"app/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u *model.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByStripeCustomerID(ctx context.Context, customerID string) (*model.User, error) {
	for _, u := range f.users {
		if u.StripeCustomerID != nil && *u.StripeCustomerID == customerID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateCurrentPlan(ctx context.Context, userID, planID string) error {
	if u, ok := f.users[userID]; ok {
		u.CurrentPlan = planID
	}
	return nil
}

func (f *fakeUserRepo) UpdateStripeCustomerID(ctx context.Context, userID, customerID string) error {
	if u, ok := f.users[userID]; ok {
		u.StripeCustomerID = &customerID
	}
	return nil
}

// fakeSubscriptionRepo records the append-only plan history in memory.
type fakeSubscriptionRepo struct {
	subs []model.UserSubscription
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, sub *model.UserSubscription) error {
	f.subs = append(f.subs, *sub)
	return nil
}

func (f *fakeSubscriptionRepo) GetCurrent(ctx context.Context, userID string) (*model.UserSubscription, error) {
	for i := len(f.subs) - 1; i >= 0; i-- {
		if f.subs[i].UserID == userID && f.subs[i].Status == model.SubscriptionActive {
			sub := f.subs[i]
			return &sub, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriptionRepo) ListByUser(ctx context.Context, userID string) ([]model.UserSubscription, error) {
	var out []model.UserSubscription
	for i := len(f.subs) - 1; i >= 0; i-- {
		if f.subs[i].UserID == userID {
			out = append(out, f.subs[i])
		}
	}
	return out, nil
}

func (f *fakeSubscriptionRepo) UpdateStatusByStripeID(ctx context.Context, stripeSubscriptionID, status string) error {
	for i := range f.subs {
		if f.subs[i].StripeSubscriptionID != nil && *f.subs[i].StripeSubscriptionID == stripeSubscriptionID {
			f.subs[i].Status = status
		}
	}
	return nil
}

// fakeUsageRepo returns fixed counts per resource kind.
type fakeUsageRepo struct {
	counts map[plan.ResourceKind]int
}

func (f *fakeUsageRepo) Count(ctx context.Context, userID string, kind plan.ResourceKind) (int, error) {
	if f.counts == nil {
		return 0, nil
	}
	return f.counts[kind], nil
}

// fakeContactRepo stores contacts in memory.
type fakeContactRepo struct {
	contacts []model.Contact
}

func (f *fakeContactRepo) Create(ctx context.Context, c *model.Contact) error {
	f.contacts = append(f.contacts, *c)
	return nil
}

func (f *fakeContactRepo) GetByID(ctx context.Context, userID, id string) (*model.Contact, error) {
	for i := range f.contacts {
		if f.contacts[i].ID == id && f.contacts[i].UserID == userID {
			c := f.contacts[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeContactRepo) ListByUser(ctx context.Context, userID string) ([]model.Contact, error) {
	var out []model.Contact
	for _, c := range f.contacts {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContactRepo) Update(ctx context.Context, c *model.Contact) error {
	for i := range f.contacts {
		if f.contacts[i].ID == c.ID && f.contacts[i].UserID == c.UserID {
			f.contacts[i] = *c
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeContactRepo) Delete(ctx context.Context, userID, id string) error {
	for i := range f.contacts {
		if f.contacts[i].ID == id && f.contacts[i].UserID == userID {
			f.contacts = append(f.contacts[:i], f.contacts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeAccountRepo stores accounts in memory.
type fakeAccountRepo struct {
	accounts []model.Account
}

func (f *fakeAccountRepo) Create(ctx context.Context, a *model.Account) error {
	f.accounts = append(f.accounts, *a)
	return nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, userID, id string) (*model.Account, error) {
	for i := range f.accounts {
		if f.accounts[i].ID == id && f.accounts[i].UserID == userID {
			a := f.accounts[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) ListByUser(ctx context.Context, userID string) ([]model.Account, error) {
	var out []model.Account
	for _, a := range f.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, a *model.Account) error {
	for i := range f.accounts {
		if f.accounts[i].ID == a.ID && f.accounts[i].UserID == a.UserID {
			f.accounts[i] = *a
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeAccountRepo) Delete(ctx context.Context, userID, id string) error {
	for i := range f.accounts {
		if f.accounts[i].ID == id && f.accounts[i].UserID == userID {
			f.accounts = append(f.accounts[:i], f.accounts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeProductRepo stores products in memory.
type fakeProductRepo struct {
	products []model.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p *model.Product) error {
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, userID, id string) (*model.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id && f.products[i].UserID == userID {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) ListByUser(ctx context.Context, userID string) ([]model.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *model.Product) error { return nil }

func (f *fakeProductRepo) Delete(ctx context.Context, userID, id string) error { return nil }

// fakeInvoiceRepo stores invoices in memory.
type fakeInvoiceRepo struct {
	invoices []model.Invoice
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	f.invoices = append(f.invoices, *inv)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, userID, id string) (*model.Invoice, error) {
	for i := range f.invoices {
		if f.invoices[i].ID == id && f.invoices[i].UserID == userID {
			inv := f.invoices[i]
			return &inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) ListByUser(ctx context.Context, userID string) ([]model.Invoice, error) {
	return f.invoices, nil
}

func (f *fakeInvoiceRepo) UpdateStatus(ctx context.Context, userID, id, status string) error {
	for i := range f.invoices {
		if f.invoices[i].ID == id {
			f.invoices[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeInvoiceRepo) SetDocumentURL(ctx context.Context, id, url string) error {
	for i := range f.invoices {
		if f.invoices[i].ID == id {
			f.invoices[i].DocumentURL = url
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeInvoiceRepo) SetPeppolStatus(ctx context.Context, id, status, messageID string) error {
	for i := range f.invoices {
		if f.invoices[i].ID == id {
			f.invoices[i].PeppolStatus = status
			f.invoices[i].PeppolMessageID = messageID
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeInvoiceRepo) Delete(ctx context.Context, userID, id string) error {
	for i := range f.invoices {
		if f.invoices[i].ID == id {
			f.invoices = append(f.invoices[:i], f.invoices[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakeDocStore records uploads and returns deterministic URLs.
type fakeDocStore struct {
	keys []string
}

func (f *fakeDocStore) Put(ctx context.Context, key string, contentType string, body []byte) (string, error) {
	f.keys = append(f.keys, key)
	return fmt.Sprintf("https://storage.example/%s", key), nil
}

// fakePublisher records published invoice events.
type fakePublisher struct {
	events []pubsub.InvoiceEvent
}

func (f *fakePublisher) PublishInvoiceEvent(ctx context.Context, event pubsub.InvoiceEvent) (string, error) {
	f.events = append(f.events, event)
	return "msg-1", nil
}

// fakeQueue records enqueued delivery jobs.
type fakeQueue struct {
	queues   []string
	payloads [][]byte
}

func (f *fakeQueue) Send(ctx context.Context, queue string, payload []byte) error {
	f.queues = append(f.queues, queue)
	f.payloads = append(f.payloads, payload)
	return nil
}
