package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrPrinterModelNotFound is returned when no printer model matches the lookup
var ErrPrinterModelNotFound = errors.New("printer model not found")

// ErrUnknownInkModel is returned when a compatibility list names an ink model
// that does not exist.
var ErrUnknownInkModel = errors.New("compatible ink model does not exist")

// PrinterModel describes a printer product line and the ink models it accepts
type PrinterModel struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"uniqueIndex;not null"`
	CompatibleInks []InkModel     `json:"compatible_inks" gorm:"many2many:printer_model_inks"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (PrinterModel) TableName() string {
	return "printer_models"
}

// PrinterModelRepository defines the contract for printer model data access
type PrinterModelRepository interface {
	Create(model *PrinterModel) error
	FindByID(id uint) (*PrinterModel, error)
	FindByName(name string) (*PrinterModel, error)
	FindAll(limit, offset int) ([]PrinterModel, error)
	Update(model *PrinterModel) error
	Delete(id uint) error
}
