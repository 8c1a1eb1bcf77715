package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	inventoryrepo "github.com/printops/inkwell/internal/inventory/repository"
	"github.com/printops/inkwell/internal/request/domain"
)

// GormRequestRepository implements RequestRepository using GORM
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GORM request repository
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormRequestRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.InkRequest{})
}

// Create inserts a new ink request
func (r *GormRequestRepository) Create(ctx context.Context, request *domain.InkRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return fmt.Errorf("failed to create ink request: %w", err)
	}
	return nil
}

// FindByID retrieves a request by ID
func (r *GormRequestRepository) FindByID(ctx context.Context, id uint) (*domain.InkRequest, error) {
	var request domain.InkRequest
	if err := r.db.WithContext(ctx).First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to find ink request: %w", err)
	}
	return &request, nil
}

// FindByIDForUpdate retrieves a request with a row lock held until the
// enclosing transaction ends.
func (r *GormRequestRepository) FindByIDForUpdate(ctx context.Context, id uint) (*domain.InkRequest, error) {
	var request domain.InkRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to lock ink request: %w", err)
	}
	return &request, nil
}

// FindSupervisorQueue lists requests awaiting a supervisor decision
func (r *GormRequestRepository) FindSupervisorQueue(ctx context.Context, limit, offset int) ([]domain.InkRequest, error) {
	return r.findWhere(ctx, r.db.
		Where("supervisor_approval = ? AND status = ?", domain.StatusPending, domain.StatusPending),
		limit, offset)
}

// FindAdminQueue lists supervisor-approved requests awaiting an admin decision
func (r *GormRequestRepository) FindAdminQueue(ctx context.Context, limit, offset int) ([]domain.InkRequest, error) {
	return r.findWhere(ctx, r.db.
		Where("supervisor_approval = ? AND admin_approval = ?", domain.StatusApproved, domain.StatusPending),
		limit, offset)
}

// FindByRequester lists a requester's history, newest first
func (r *GormRequestRepository) FindByRequester(ctx context.Context, requesterID uint, limit, offset int) ([]domain.InkRequest, error) {
	return r.findWhere(ctx, r.db.Where("requester_id = ?", requesterID), limit, offset)
}

func (r *GormRequestRepository) findWhere(ctx context.Context, query *gorm.DB, limit, offset int) ([]domain.InkRequest, error) {
	var requests []domain.InkRequest
	query = query.WithContext(ctx).Order("request_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list ink requests: %w", err)
	}
	return requests, nil
}

// Update saves changes to a request
func (r *GormRequestRepository) Update(ctx context.Context, request *domain.InkRequest) error {
	if err := r.db.WithContext(ctx).Save(request).Error; err != nil {
		return fmt.Errorf("failed to update ink request: %w", err)
	}
	return nil
}

// CountByStatus counts requests in a given overall status
func (r *GormRequestRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.InkRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count ink requests: %w", err)
	}
	return count, nil
}

// GormIssuanceRepository implements IssuanceRepository using GORM
type GormIssuanceRepository struct {
	db *gorm.DB
}

// NewGormIssuanceRepository creates a new GORM issuance repository
func NewGormIssuanceRepository(db *gorm.DB) *GormIssuanceRepository {
	return &GormIssuanceRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormIssuanceRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.InkIssuance{})
}

// Create inserts a new issuance record. The unique index on request_id makes
// double-issuance for one request impossible at the storage layer.
func (r *GormIssuanceRepository) Create(ctx context.Context, issuance *domain.InkIssuance) error {
	if err := r.db.WithContext(ctx).Create(issuance).Error; err != nil {
		return fmt.Errorf("failed to create issuance: %w", err)
	}
	return nil
}

// FindByRequestID retrieves the issuance for a request
func (r *GormIssuanceRepository) FindByRequestID(ctx context.Context, requestID uint) (*domain.InkIssuance, error) {
	var issuance domain.InkIssuance
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&issuance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIssuanceNotFound
		}
		return nil, fmt.Errorf("failed to find issuance: %w", err)
	}
	return &issuance, nil
}

// FindAll lists issuances, newest first
func (r *GormIssuanceRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.InkIssuance, error) {
	var issuances []domain.InkIssuance
	query := r.db.WithContext(ctx).Order("issue_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&issuances).Error; err != nil {
		return nil, fmt.Errorf("failed to list issuances: %w", err)
	}
	return issuances, nil
}

// GormTxManager runs multi-repository mutations in a single database
// transaction so that approval transitions and stock deductions serialize
// against concurrent decisions on the same rows.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new transaction manager
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// Do runs fn inside a transaction, with every repository bound to it
func (m *GormTxManager) Do(ctx context.Context, fn func(r domain.TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(domain.TxRepos{
			Requests:  NewGormRequestRepository(tx),
			Issuances: NewGormIssuanceRepository(tx),
			Lots:      inventoryrepo.NewGormLotRepository(tx),
			Ledger:    inventoryrepo.NewGormLedgerRepository(tx),
		})
	})
}
