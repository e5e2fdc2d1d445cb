package auth

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"shopapi/internal/domain/model"
	"shopapi/internal/repository"
)

// テスト用のインメモリ実装（顧客・台帳・監査・Tx）
type memStore struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	nextID    int64
	customers map[int64]*model.Customer
	tokens    map[string]*model.RefreshToken
	audits    []model.AuditLog
}

func newMemStore() *memStore {
	return &memStore{
		customers: map[int64]*model.Customer{},
		tokens:    map[string]*model.RefreshToken{},
	}
}

func (s *memStore) Customers() repository.CustomerRepository         { return memCustomers{s} }
func (s *memStore) RefreshTokens() repository.RefreshTokenRepository { return memTokens{s} }
func (s *memStore) AuditLogs() repository.AuditLogRepository         { return memAudits{s} }

// Txは直列化するだけ（rollbackはしない）
func (s *memStore) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

func (s *memStore) tokenCount(customerID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tokens {
		if t.CustomerID == customerID {
			n++
		}
	}
	return n
}

func (s *memStore) customerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.customers)
}

func (s *memStore) auditActions() []model.AuditAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AuditAction, 0, len(s.audits))
	for _, a := range s.audits {
		out = append(out, a.Action)
	}
	return out
}

func (s *memStore) lastAudit() model.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audits[len(s.audits)-1]
}

type memCustomers struct{ s *memStore }

func (m memCustomers) Create(_ context.Context, c *model.Customer) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.customers {
		if existing.Email == c.Email {
			return repository.ErrDuplicate
		}
	}
	m.s.nextID++
	c.ID = m.s.nextID
	cp := *c
	m.s.customers[c.ID] = &cp
	return nil
}

func (m memCustomers) FindByID(_ context.Context, id int64) (*model.Customer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	c, ok := m.s.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m memCustomers) FindByEmail(_ context.Context, email string) (*model.Customer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, c := range m.s.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m memCustomers) UpdateProfile(_ context.Context, id int64, upd repository.ProfileUpdate) (*model.Customer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	c, ok := m.s.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.FirstName != nil {
		c.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		c.LastName = *upd.LastName
	}
	if upd.PhoneNumber != nil || upd.ClearPhoneNumber {
		c.PhoneNumber = upd.PhoneNumber
	}
	if upd.Address != nil || upd.ClearAddress {
		c.Address = upd.Address
	}
	cp := *c
	return &cp, nil
}

type memTokens struct{ s *memStore }

func (m memTokens) Create(_ context.Context, t *model.RefreshToken) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.tokens[t.TokenHash]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := m.s.customers[t.CustomerID]; !ok {
		return repository.ErrForeignKey
	}
	m.s.nextID++
	t.ID = m.s.nextID
	cp := *t
	m.s.tokens[t.TokenHash] = &cp
	return nil
}

func (m memTokens) FindByTokenHash(_ context.Context, h string) (*model.RefreshToken, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	t, ok := m.s.tokens[h]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m memTokens) DeleteByTokenHash(_ context.Context, h string) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.tokens[h]; !ok {
		return 0, nil
	}
	delete(m.s.tokens, h)
	return 1, nil
}

func (m memTokens) DeleteAllByCustomerID(_ context.Context, customerID int64) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for h, t := range m.s.tokens {
		if t.CustomerID == customerID {
			delete(m.s.tokens, h)
			n++
		}
	}
	return n, nil
}

func (m memTokens) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var n int64
	for h, t := range m.s.tokens {
		if t.IsExpired(now) {
			delete(m.s.tokens, h)
			n++
		}
	}
	return n, nil
}

type memAudits struct{ s *memStore }

func (m memAudits) Create(_ context.Context, log model.AuditLog) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.nextID++
	log.ID = m.s.nextID
	m.s.audits = append(m.s.audits, log)
	return nil
}

func (m memAudits) List(_ context.Context, f repository.AuditLogFilter) ([]model.AuditLog, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := []model.AuditLog{}
	for _, a := range m.s.audits {
		if f.CustomerID != nil && (a.CustomerID == nil || *a.CustomerID != *f.CustomerID) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// 時刻を進められる時計
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// 連番ID
type seqIDGen struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGen) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("jti-%d", g.n)
}
