package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrLotNotFound is returned when no inventory lot matches the lookup
	ErrLotNotFound = errors.New("inventory lot not found")
	// ErrNoOpenUnit is returned when a lot has no in-use ledger record
	ErrNoOpenUnit = errors.New("no open unit for lot")
	// ErrQuantityBounds is returned when a lot update would violate
	// 0 <= quantity <= initial_quantity.
	ErrQuantityBounds = errors.New("lot quantity out of bounds")
)

// Ledger record statuses
const (
	LedgerInUse       = "in_use"
	LedgerTransferred = "transferred"
)

// InventoryLot is a batch of sealed ink units of one color of one ink model.
// InitialQuantity is fixed at creation; Quantity only ever decreases through
// issuance or increases through manual restock up to the initial baseline.
type InventoryLot struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	InkModelID      uint           `json:"ink_model_id" gorm:"not null;index"`
	Color           string         `json:"color" gorm:"not null"`
	VolumePerUnit   float64        `json:"volume_per_unit"`
	Quantity        int            `json:"quantity" gorm:"not null;check:quantity >= 0"`
	InitialQuantity int            `json:"initial_quantity" gorm:"not null"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (InventoryLot) TableName() string {
	return "inventory_lots"
}

// InkInUseRecord tracks the remaining usable amount of an opened unit from a
// lot. At most one record per lot may be in_use at a time (enforced by a
// partial unique index).
type InkInUseRecord struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	LotID        uint           `json:"lot_id" gorm:"not null;uniqueIndex:ux_inkinuse_open_lot,where:status = 'in_use'"`
	UserID       uint           `json:"user_id" gorm:"not null;index"`
	Department   string         `json:"department"`
	QuantityUsed int            `json:"quantity_used" gorm:"not null;check:quantity_used >= 0"`
	Status       string         `json:"status" gorm:"not null;default:'in_use'"`
	AssignedDate time.Time      `json:"assigned_date"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (InkInUseRecord) TableName() string {
	return "ink_in_use_records"
}

// LotRepository defines the contract for inventory lot data access
type LotRepository interface {
	Create(ctx context.Context, lot *InventoryLot) error
	FindByID(ctx context.Context, id uint) (*InventoryLot, error)
	// FindByIDForUpdate locks the lot row for the duration of the enclosing
	// transaction.
	FindByIDForUpdate(ctx context.Context, id uint) (*InventoryLot, error)
	FindAll(ctx context.Context, limit, offset int) ([]InventoryLot, error)
	Update(ctx context.Context, lot *InventoryLot) error
	Delete(ctx context.Context, id uint) error
}

// LedgerRepository defines the contract for in-use ledger data access
type LedgerRepository interface {
	Create(ctx context.Context, record *InkInUseRecord) error
	// FindInUseByLot returns the single open record for a lot, or
	// ErrNoOpenUnit when the lot has none.
	FindInUseByLot(ctx context.Context, lotID uint) (*InkInUseRecord, error)
	// FindInUseByLotForUpdate locks the open record row for the duration of
	// the enclosing transaction.
	FindInUseByLotForUpdate(ctx context.Context, lotID uint) (*InkInUseRecord, error)
	// FindAll lists ledger records, optionally filtered by ink model id
	// (inkModelID = 0 means no filter).
	FindAll(ctx context.Context, inkModelID uint, limit, offset int) ([]InkInUseRecord, error)
	Update(ctx context.Context, record *InkInUseRecord) error
}
