package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsdevblog/groph-settle/internal/domain"
	"github.com/fsdevblog/groph-settle/internal/repository/repoargs"
	"github.com/fsdevblog/groph-settle/pkg/uow"
	"github.com/shopspring/decimal"
)

// memLedger состояние хранилища в памяти. Используется как транзакционная подмена postgres:
// memUOW.Do работает с копией и подменяет состояние только при успехе.
type memLedger struct {
	accounts      map[int64]domain.Account
	requests      map[int64]domain.TransactionRequest
	commissions   []domain.CommissionRecord
	activities    []domain.ReferralActivity
	failed        []domain.FailedReferral
	notifications []domain.CommissionNotification
	lastID        int64
}

func newMemLedger() *memLedger {
	return &memLedger{
		accounts: make(map[int64]domain.Account),
		requests: make(map[int64]domain.TransactionRequest),
	}
}

func (m *memLedger) clone() *memLedger {
	c := &memLedger{
		accounts:      make(map[int64]domain.Account, len(m.accounts)),
		requests:      make(map[int64]domain.TransactionRequest, len(m.requests)),
		commissions:   slices.Clone(m.commissions),
		activities:    slices.Clone(m.activities),
		failed:        slices.Clone(m.failed),
		notifications: slices.Clone(m.notifications),
		lastID:        m.lastID,
	}
	for id, a := range m.accounts {
		c.accounts[id] = a
	}
	for id, r := range m.requests {
		c.requests[id] = r
	}
	return c
}

func (m *memLedger) nextID() int64 {
	m.lastID++
	return m.lastID
}

func (m *memLedger) addAccount(id int64, email, referrerEmail string, balance int64) {
	m.accounts[id] = domain.Account{
		ID:            id,
		Email:         email,
		ReferrerEmail: referrerEmail,
		Balance:       decimal.NewFromInt(balance),
	}
}

func (m *memLedger) addRequest(id, accountID int64, amount decimal.Decimal, status domain.TransactionStatus) {
	m.requests[id] = domain.TransactionRequest{
		ID:        id,
		Kind:      domain.TransactionKindDeposit,
		AccountID: accountID,
		Amount:    amount,
		Status:    status,
	}
}

var errInjected = fmt.Errorf("%w: injected failure", domain.ErrUnknown)

// memUOW сериализует транзакции мьютексом, что соответствует блокировке строки заявки в postgres.
type memUOW struct {
	mu     sync.Mutex
	state  *memLedger
	failOn map[string]bool
}

func newMemUOW(state *memLedger) *memUOW {
	return &memUOW{state: state, failOn: make(map[string]bool)}
}

func (u *memUOW) Register(uow.RepositoryName, uow.RepositoryFactory) error {
	return nil
}

func (u *memUOW) Do(ctx context.Context, fn func(ctx context.Context, tx uow.TX) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	working := u.state.clone()
	if err := fn(ctx, &memTx{repo: &memRepo{l: working, failOn: u.failOn}}); err != nil {
		return err
	}
	*u.state = *working
	return nil
}

func (u *memUOW) GetRepository(uow.RepositoryName) (uow.Repository, error) {
	return &memRepo{l: u.state, failOn: u.failOn}, nil
}

type memTx struct {
	repo *memRepo
}

func (t *memTx) Get(uow.RepositoryName) (uow.Repository, error) {
	return t.repo, nil
}

// memRepo реализует все репозитории сервисного слоя поверх memLedger.
type memRepo struct {
	l      *memLedger
	failOn map[string]bool
}

func (r *memRepo) fail(method string) error {
	if r.failOn[method] {
		return fmt.Errorf("%s: %w", method, errInjected)
	}
	return nil
}

func (r *memRepo) GetOwnerInfo(_ context.Context, accountID int64) (*domain.Account, error) {
	if err := r.fail("GetOwnerInfo"); err != nil {
		return nil, err
	}
	a, ok := r.l.accounts[accountID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &a, nil
}

func (r *memRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	if err := r.fail("FindByEmail"); err != nil {
		return nil, err
	}
	for _, a := range r.l.accounts {
		if strings.EqualFold(a.Email, email) {
			return &a, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *memRepo) CreditBalance(_ context.Context, accountID int64, delta decimal.Decimal) (decimal.Decimal, error) {
	if err := r.fail("CreditBalance"); err != nil {
		return decimal.Zero, err
	}
	a, ok := r.l.accounts[accountID]
	if !ok {
		return decimal.Zero, domain.ErrRecordNotFound
	}
	a.Balance = a.Balance.Add(delta)
	r.l.accounts[accountID] = a
	return a.Balance, nil
}

func (r *memRepo) GetForUpdate(ctx context.Context, id int64) (*domain.TransactionRequest, error) {
	if err := r.fail("GetForUpdate"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*domain.TransactionRequest, error) {
	req, ok := r.l.requests[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &req, nil
}

func (r *memRepo) UpdateStatus(_ context.Context, id int64, status domain.TransactionStatus) error {
	if err := r.fail("UpdateStatus"); err != nil {
		return err
	}
	req, ok := r.l.requests[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	req.Status = status
	r.l.requests[id] = req
	return nil
}

func (r *memRepo) RecordCommission(
	_ context.Context,
	args repoargs.CommissionCreate,
) (*domain.CommissionRecord, error) {
	if err := r.fail("RecordCommission"); err != nil {
		return nil, err
	}
	for _, c := range r.l.commissions {
		if c.TransactionID == args.TransactionID {
			return nil, domain.ErrDuplicateKey
		}
	}
	record := domain.CommissionRecord{
		ID:            r.l.nextID(),
		CreatedAt:     time.Now(),
		ReferrerID:    args.ReferrerID,
		ReferredID:    args.ReferredID,
		TransactionID: args.TransactionID,
		Amount:        args.Amount,
		Status:        args.Status,
		Description:   args.Description,
	}
	r.l.commissions = append(r.l.commissions, record)
	return &record, nil
}

func (r *memRepo) LogActivity(_ context.Context, args repoargs.ReferralActivityCreate) error {
	if err := r.fail("LogActivity"); err != nil {
		return err
	}
	r.l.activities = append(r.l.activities, domain.ReferralActivity{
		ID:            r.l.nextID(),
		ReferrerID:    args.ReferrerID,
		ReferredID:    args.ReferredID,
		TransactionID: args.TransactionID,
		Amount:        args.Amount,
		ActivityType:  args.ActivityType,
		Description:   args.Description,
	})
	return nil
}

func (r *memRepo) RecordFailedReferral(_ context.Context, args repoargs.FailedReferralCreate) error {
	if err := r.fail("RecordFailedReferral"); err != nil {
		return err
	}
	r.l.failed = append(r.l.failed, domain.FailedReferral{
		ID:            r.l.nextID(),
		ReferredID:    args.ReferredID,
		ReferredEmail: args.ReferredEmail,
		ReferrerEmail: args.ReferrerEmail,
		Amount:        args.Amount,
		TransactionID: args.TransactionID,
		Error:         args.Error,
	})
	return nil
}

func (r *memRepo) GetCommissionsByReferrer(_ context.Context, referrerID int64) ([]domain.CommissionRecord, error) {
	var res []domain.CommissionRecord
	for i := len(r.l.commissions) - 1; i >= 0; i-- {
		if r.l.commissions[i].ReferrerID == referrerID {
			res = append(res, r.l.commissions[i])
		}
	}
	return res, nil
}

func (r *memRepo) Enqueue(_ context.Context, args repoargs.NotificationCreate) error {
	if err := r.fail("Enqueue"); err != nil {
		return err
	}
	r.l.notifications = append(r.l.notifications, domain.CommissionNotification{
		ID:            r.l.nextID(),
		EventID:       args.EventID,
		CommissionID:  args.CommissionID,
		ReferrerEmail: args.ReferrerEmail,
		ReferredEmail: args.ReferredEmail,
		Amount:        args.Amount,
	})
	return nil
}

func (r *memRepo) GetPending(_ context.Context, limit, maxAttempts uint) ([]domain.CommissionNotification, error) {
	var res []domain.CommissionNotification
	for _, n := range r.l.notifications {
		if uint(len(res)) >= limit {
			break
		}
		if n.SentAt == nil && n.Attempts < maxAttempts {
			res = append(res, n)
		}
	}
	return res, nil
}

func (r *memRepo) MarkSent(_ context.Context, ids []int64) error {
	now := time.Now()
	for i := range r.l.notifications {
		if slices.Contains(ids, r.l.notifications[i].ID) {
			r.l.notifications[i].SentAt = &now
			r.l.notifications[i].Attempts++
		}
	}
	return nil
}

func (r *memRepo) IncrementAttempts(_ context.Context, ids []int64) error {
	for i := range r.l.notifications {
		if slices.Contains(ids, r.l.notifications[i].ID) {
			r.l.notifications[i].Attempts++
		}
	}
	return nil
}
