package postback

import (
	"context"
	"errors"
	"sync"

	"earn_webapp/internal/domain"
)

type memAccounts struct {
	mu       sync.Mutex
	rows     map[int64]*domain.Account
	earnings []domain.Earning
	failErr  error
}

func newMemAccounts(accts ...domain.Account) *memAccounts {
	m := &memAccounts{rows: make(map[int64]*domain.Account)}
	for i := range accts {
		a := accts[i]
		m.rows[a.ID] = &a
	}
	return m
}

func (m *memAccounts) find(match func(*domain.Account) bool) *domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.rows {
		if match(a) {
			cp := *a
			return &cp
		}
	}
	return nil
}

func (m *memAccounts) FindByMobile(_ context.Context, mobile string) (*domain.Account, error) {
	return m.find(func(a *domain.Account) bool { return a.MobileNumber != nil && *a.MobileNumber == mobile }), nil
}

func (m *memAccounts) FindByUPI(_ context.Context, upi string) (*domain.Account, error) {
	return m.find(func(a *domain.Account) bool { return a.UPIID == upi }), nil
}

// RecordEarning mimics the SQL ledger: insert plus increment under one lock.
func (m *memAccounts) RecordEarning(_ context.Context, e *domain.Earning) (*domain.BalanceUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	a, ok := m.rows[e.AccountID]
	if !ok {
		return nil, errors.New("account not found")
	}
	e.ID = int64(len(m.earnings) + 1)
	e.CreatedAt = e.ConversionTime
	m.earnings = append(m.earnings, *e)
	a.TotalEarnings = a.TotalEarnings.Add(e.Payment)
	a.AvailableBalance = a.AvailableBalance.Add(e.Payment)
	return &domain.BalanceUpdate{TotalEarnings: a.TotalEarnings, AvailableBalance: a.AvailableBalance}, nil
}

func (m *memAccounts) ledger() []domain.Earning {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Earning(nil), m.earnings...)
}

func (m *memAccounts) get(id int64) domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.rows[id]
}

type recNotifier struct {
	mu    sync.Mutex
	sent  []EarningNotification
	err   error
	panic bool
}

func (r *recNotifier) NotifyEarning(_ context.Context, n EarningNotification) error {
	if r.panic {
		panic("telegram exploded")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

func (r *recNotifier) all() []EarningNotification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]EarningNotification(nil), r.sent...)
}

func strPtr(s string) *string { return &s }
