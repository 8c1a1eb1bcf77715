package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/printops/inkwell/internal/inventory/domain"
)

// GormLotRepository implements LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GORM lot repository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormLotRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.InventoryLot{})
}

// Create inserts a new inventory lot
func (r *GormLotRepository) Create(ctx context.Context, lot *domain.InventoryLot) error {
	if err := r.db.WithContext(ctx).Create(lot).Error; err != nil {
		return fmt.Errorf("failed to create inventory lot: %w", err)
	}
	return nil
}

// FindByID retrieves an inventory lot by ID
func (r *GormLotRepository) FindByID(ctx context.Context, id uint) (*domain.InventoryLot, error) {
	var lot domain.InventoryLot
	if err := r.db.WithContext(ctx).First(&lot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLotNotFound
		}
		return nil, fmt.Errorf("failed to find inventory lot: %w", err)
	}
	return &lot, nil
}

// FindByIDForUpdate retrieves a lot with a row lock held until the enclosing
// transaction ends. Callers must run inside a transaction.
func (r *GormLotRepository) FindByIDForUpdate(ctx context.Context, id uint) (*domain.InventoryLot, error) {
	var lot domain.InventoryLot
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&lot, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLotNotFound
		}
		return nil, fmt.Errorf("failed to lock inventory lot: %w", err)
	}
	return &lot, nil
}

// FindAll retrieves inventory lots with pagination
func (r *GormLotRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.InventoryLot, error) {
	var lots []domain.InventoryLot
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&lots).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory lots: %w", err)
	}
	return lots, nil
}

// Update saves changes to an inventory lot, enforcing the quantity bounds
func (r *GormLotRepository) Update(ctx context.Context, lot *domain.InventoryLot) error {
	if lot.Quantity < 0 || lot.Quantity > lot.InitialQuantity {
		return domain.ErrQuantityBounds
	}
	if err := r.db.WithContext(ctx).Save(lot).Error; err != nil {
		return fmt.Errorf("failed to update inventory lot: %w", err)
	}
	return nil
}

// Delete removes an inventory lot
func (r *GormLotRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.InventoryLot{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete inventory lot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrLotNotFound
	}
	return nil
}

// GormLedgerRepository implements LedgerRepository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormLedgerRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.InkInUseRecord{})
}

// Create inserts a new ledger record
func (r *GormLedgerRepository) Create(ctx context.Context, record *domain.InkInUseRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create ledger record: %w", err)
	}
	return nil
}

// FindInUseByLot returns the single open record for a lot
func (r *GormLedgerRepository) FindInUseByLot(ctx context.Context, lotID uint) (*domain.InkInUseRecord, error) {
	var record domain.InkInUseRecord
	err := r.db.WithContext(ctx).
		Where("lot_id = ? AND status = ?", lotID, domain.LedgerInUse).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoOpenUnit
		}
		return nil, fmt.Errorf("failed to find ledger record: %w", err)
	}
	return &record, nil
}

// FindInUseByLotForUpdate returns the open record for a lot with a row lock
// held until the enclosing transaction ends.
func (r *GormLedgerRepository) FindInUseByLotForUpdate(ctx context.Context, lotID uint) (*domain.InkInUseRecord, error) {
	var record domain.InkInUseRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("lot_id = ? AND status = ?", lotID, domain.LedgerInUse).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoOpenUnit
		}
		return nil, fmt.Errorf("failed to lock ledger record: %w", err)
	}
	return &record, nil
}

// FindAll lists ledger records, optionally filtered by ink model
func (r *GormLedgerRepository) FindAll(ctx context.Context, inkModelID uint, limit, offset int) ([]domain.InkInUseRecord, error) {
	var records []domain.InkInUseRecord
	query := r.db.WithContext(ctx).Order("assigned_date DESC")

	if inkModelID != 0 {
		query = query.
			Joins("JOIN inventory_lots ON inventory_lots.id = ink_in_use_records.lot_id").
			Where("inventory_lots.ink_model_id = ?", inkModelID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list ledger records: %w", err)
	}
	return records, nil
}

// Update saves changes to a ledger record
func (r *GormLedgerRepository) Update(ctx context.Context, record *domain.InkInUseRecord) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to update ledger record: %w", err)
	}
	return nil
}
