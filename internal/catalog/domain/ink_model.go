package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	// ErrInkModelNotFound is returned when no ink model matches the lookup
	ErrInkModelNotFound = errors.New("ink model not found")
	// ErrInkModelInUse is returned when deletion is blocked by inventory lots
	ErrInkModelInUse = errors.New("ink model is referenced by inventory lots")
)

// InkModel describes a cartridge/bottle product line and the colors it is
// manufactured in.
type InkModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"uniqueIndex;not null"`
	Colors    pq.StringArray `json:"colors" gorm:"type:text[];not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (InkModel) TableName() string {
	return "ink_models"
}

// HasColor reports whether the model is declared in the given color.
// Comparison is case-insensitive.
func (m *InkModel) HasColor(color string) bool {
	for _, c := range m.Colors {
		if strings.EqualFold(c, color) {
			return true
		}
	}
	return false
}

// InkModelRepository defines the contract for ink model data access
type InkModelRepository interface {
	Create(model *InkModel) error
	FindByID(id uint) (*InkModel, error)
	FindByName(name string) (*InkModel, error)
	FindAll(limit, offset int) ([]InkModel, error)
	Update(model *InkModel) error
	Delete(id uint) error
	// CountByIDs returns how many of the given ids exist, used to validate
	// printer compatibility lists in a single query.
	CountByIDs(ids []uint) (int64, error)
	// CountLotsReferencing returns the number of inventory lots that still
	// reference the model. Deletion is blocked while this is non-zero.
	CountLotsReferencing(inkModelID uint) (int64, error)
}
