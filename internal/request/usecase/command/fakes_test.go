package command_test

import (
	"context"

	inventorydomain "github.com/printops/inkwell/internal/inventory/domain"
	"github.com/printops/inkwell/internal/request/domain"
	"github.com/printops/inkwell/kafka"
)

// memStore is a transactional in-memory backing store shared by the fake
// repositories. The fake TxManager snapshots it before running a unit of
// work and restores the snapshot on error, mirroring a rollback.
type memStore struct {
	requests  map[uint]*domain.InkRequest
	issuances []domain.InkIssuance
	lots      map[uint]*inventorydomain.InventoryLot
	ledger    map[uint]*inventorydomain.InkInUseRecord
	nextID    uint
}

func newMemStore() *memStore {
	return &memStore{
		requests: make(map[uint]*domain.InkRequest),
		lots:     make(map[uint]*inventorydomain.InventoryLot),
		ledger:   make(map[uint]*inventorydomain.InkInUseRecord),
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.nextID = s.nextID
	for id, r := range s.requests {
		cp := *r
		c.requests[id] = &cp
	}
	for id, l := range s.lots {
		cp := *l
		c.lots[id] = &cp
	}
	for id, rec := range s.ledger {
		cp := *rec
		c.ledger[id] = &cp
	}
	c.issuances = append([]domain.InkIssuance(nil), s.issuances...)
	return c
}

type fakeRequestRepo struct{ store *memStore }

func (r *fakeRequestRepo) Create(_ context.Context, request *domain.InkRequest) error {
	request.ID = r.store.id()
	cp := *request
	r.store.requests[request.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id uint) (*domain.InkRequest, error) {
	request, ok := r.store.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	cp := *request
	return &cp, nil
}

func (r *fakeRequestRepo) FindByIDForUpdate(ctx context.Context, id uint) (*domain.InkRequest, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeRequestRepo) FindSupervisorQueue(_ context.Context, limit, offset int) ([]domain.InkRequest, error) {
	var out []domain.InkRequest
	for _, request := range r.store.requests {
		if request.SupervisorPending() {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) FindAdminQueue(_ context.Context, limit, offset int) ([]domain.InkRequest, error) {
	var out []domain.InkRequest
	for _, request := range r.store.requests {
		if request.AdminEligible() {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) FindByRequester(_ context.Context, requesterID uint, limit, offset int) ([]domain.InkRequest, error) {
	var out []domain.InkRequest
	for _, request := range r.store.requests {
		if request.RequesterID == requesterID {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) Update(_ context.Context, request *domain.InkRequest) error {
	if _, ok := r.store.requests[request.ID]; !ok {
		return domain.ErrRequestNotFound
	}
	cp := *request
	r.store.requests[request.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	var count int64
	for _, request := range r.store.requests {
		if request.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeIssuanceRepo struct{ store *memStore }

func (r *fakeIssuanceRepo) Create(_ context.Context, issuance *domain.InkIssuance) error {
	issuance.ID = r.store.id()
	r.store.issuances = append(r.store.issuances, *issuance)
	return nil
}

func (r *fakeIssuanceRepo) FindByRequestID(_ context.Context, requestID uint) (*domain.InkIssuance, error) {
	for i := range r.store.issuances {
		if r.store.issuances[i].RequestID == requestID {
			cp := r.store.issuances[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrIssuanceNotFound
}

func (r *fakeIssuanceRepo) FindAll(_ context.Context, limit, offset int) ([]domain.InkIssuance, error) {
	return append([]domain.InkIssuance(nil), r.store.issuances...), nil
}

type fakeLotRepo struct{ store *memStore }

func (r *fakeLotRepo) Create(_ context.Context, lot *inventorydomain.InventoryLot) error {
	lot.ID = r.store.id()
	cp := *lot
	r.store.lots[lot.ID] = &cp
	return nil
}

func (r *fakeLotRepo) FindByID(_ context.Context, id uint) (*inventorydomain.InventoryLot, error) {
	lot, ok := r.store.lots[id]
	if !ok {
		return nil, inventorydomain.ErrLotNotFound
	}
	cp := *lot
	return &cp, nil
}

func (r *fakeLotRepo) FindByIDForUpdate(ctx context.Context, id uint) (*inventorydomain.InventoryLot, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeLotRepo) FindAll(_ context.Context, limit, offset int) ([]inventorydomain.InventoryLot, error) {
	var out []inventorydomain.InventoryLot
	for _, lot := range r.store.lots {
		out = append(out, *lot)
	}
	return out, nil
}

func (r *fakeLotRepo) Update(_ context.Context, lot *inventorydomain.InventoryLot) error {
	if _, ok := r.store.lots[lot.ID]; !ok {
		return inventorydomain.ErrLotNotFound
	}
	if lot.Quantity < 0 || lot.Quantity > lot.InitialQuantity {
		return inventorydomain.ErrQuantityBounds
	}
	cp := *lot
	r.store.lots[lot.ID] = &cp
	return nil
}

func (r *fakeLotRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.store.lots[id]; !ok {
		return inventorydomain.ErrLotNotFound
	}
	delete(r.store.lots, id)
	return nil
}

type fakeLedgerRepo struct{ store *memStore }

func (r *fakeLedgerRepo) Create(_ context.Context, record *inventorydomain.InkInUseRecord) error {
	record.ID = r.store.id()
	cp := *record
	r.store.ledger[record.ID] = &cp
	return nil
}

func (r *fakeLedgerRepo) FindInUseByLot(_ context.Context, lotID uint) (*inventorydomain.InkInUseRecord, error) {
	for _, record := range r.store.ledger {
		if record.LotID == lotID && record.Status == inventorydomain.LedgerInUse {
			cp := *record
			return &cp, nil
		}
	}
	return nil, inventorydomain.ErrNoOpenUnit
}

func (r *fakeLedgerRepo) FindInUseByLotForUpdate(ctx context.Context, lotID uint) (*inventorydomain.InkInUseRecord, error) {
	return r.FindInUseByLot(ctx, lotID)
}

func (r *fakeLedgerRepo) FindAll(_ context.Context, inkModelID uint, limit, offset int) ([]inventorydomain.InkInUseRecord, error) {
	var out []inventorydomain.InkInUseRecord
	for _, record := range r.store.ledger {
		out = append(out, *record)
	}
	return out, nil
}

func (r *fakeLedgerRepo) Update(_ context.Context, record *inventorydomain.InkInUseRecord) error {
	if _, ok := r.store.ledger[record.ID]; !ok {
		return inventorydomain.ErrNoOpenUnit
	}
	cp := *record
	r.store.ledger[record.ID] = &cp
	return nil
}

// fakeTxManager restores a pre-transaction snapshot when the unit of work
// fails, so rollback behavior can be asserted.
type fakeTxManager struct{ store *memStore }

func (m *fakeTxManager) Do(_ context.Context, fn func(r domain.TxRepos) error) error {
	snapshot := m.store.clone()
	err := fn(domain.TxRepos{
		Requests:  &fakeRequestRepo{store: m.store},
		Issuances: &fakeIssuanceRepo{store: m.store},
		Lots:      &fakeLotRepo{store: m.store},
		Ledger:    &fakeLedgerRepo{store: m.store},
	})
	if err != nil {
		*m.store = *snapshot
		return err
	}
	return nil
}

type fakePublisher struct {
	events []kafka.InkIssuedEvent
	err    error
}

func (p *fakePublisher) PublishInkIssued(_ context.Context, event kafka.InkIssuedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}
