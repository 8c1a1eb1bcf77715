package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/printops/inkwell/internal/catalog/domain"
)

// GormInkModelRepository implements InkModelRepository using GORM
type GormInkModelRepository struct {
	db *gorm.DB
}

// NewGormInkModelRepository creates a new GORM ink model repository
func NewGormInkModelRepository(db *gorm.DB) *GormInkModelRepository {
	return &GormInkModelRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormInkModelRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.InkModel{})
}

// Create inserts a new ink model
func (r *GormInkModelRepository) Create(model *domain.InkModel) error {
	if err := r.db.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ink model: %w", err)
	}
	return nil
}

// FindByID retrieves an ink model by ID
func (r *GormInkModelRepository) FindByID(id uint) (*domain.InkModel, error) {
	var model domain.InkModel
	if err := r.db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInkModelNotFound
		}
		return nil, fmt.Errorf("failed to find ink model: %w", err)
	}
	return &model, nil
}

// FindByName retrieves an ink model by its unique name
func (r *GormInkModelRepository) FindByName(name string) (*domain.InkModel, error) {
	var model domain.InkModel
	if err := r.db.Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInkModelNotFound
		}
		return nil, fmt.Errorf("failed to find ink model: %w", err)
	}
	return &model, nil
}

// FindAll retrieves ink models with pagination
func (r *GormInkModelRepository) FindAll(limit, offset int) ([]domain.InkModel, error) {
	var models []domain.InkModel
	query := r.db.Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list ink models: %w", err)
	}
	return models, nil
}

// Update saves changes to an ink model
func (r *GormInkModelRepository) Update(model *domain.InkModel) error {
	if err := r.db.Save(model).Error; err != nil {
		return fmt.Errorf("failed to update ink model: %w", err)
	}
	return nil
}

// Delete removes an ink model
func (r *GormInkModelRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.InkModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete ink model: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrInkModelNotFound
	}
	return nil
}

// CountByIDs returns how many of the given ink model ids exist
func (r *GormInkModelRepository) CountByIDs(ids []uint) (int64, error) {
	var count int64
	if err := r.db.Model(&domain.InkModel{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count ink models: %w", err)
	}
	return count, nil
}

// CountLotsReferencing counts inventory lots still referencing the model.
// Uses a raw table reference to avoid a dependency on the inventory package.
func (r *GormInkModelRepository) CountLotsReferencing(inkModelID uint) (int64, error) {
	var count int64
	err := r.db.Table("inventory_lots").
		Where("ink_model_id = ? AND deleted_at IS NULL", inkModelID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count referencing lots: %w", err)
	}
	return count, nil
}

// GormPrinterModelRepository implements PrinterModelRepository using GORM
type GormPrinterModelRepository struct {
	db *gorm.DB
}

// NewGormPrinterModelRepository creates a new GORM printer model repository
func NewGormPrinterModelRepository(db *gorm.DB) *GormPrinterModelRepository {
	return &GormPrinterModelRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormPrinterModelRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.PrinterModel{})
}

// Create inserts a new printer model with its compatibility list
func (r *GormPrinterModelRepository) Create(model *domain.PrinterModel) error {
	if err := r.db.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create printer model: %w", err)
	}
	return nil
}

// FindByID retrieves a printer model with its compatible inks
func (r *GormPrinterModelRepository) FindByID(id uint) (*domain.PrinterModel, error) {
	var model domain.PrinterModel
	if err := r.db.Preload("CompatibleInks").First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPrinterModelNotFound
		}
		return nil, fmt.Errorf("failed to find printer model: %w", err)
	}
	return &model, nil
}

// FindByName retrieves a printer model by its unique name
func (r *GormPrinterModelRepository) FindByName(name string) (*domain.PrinterModel, error) {
	var model domain.PrinterModel
	if err := r.db.Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPrinterModelNotFound
		}
		return nil, fmt.Errorf("failed to find printer model: %w", err)
	}
	return &model, nil
}

// FindAll retrieves printer models with pagination
func (r *GormPrinterModelRepository) FindAll(limit, offset int) ([]domain.PrinterModel, error) {
	var models []domain.PrinterModel
	query := r.db.Preload("CompatibleInks").Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list printer models: %w", err)
	}
	return models, nil
}

// Update saves a printer model and replaces its compatibility list
func (r *GormPrinterModelRepository) Update(model *domain.PrinterModel) error {
	if err := r.db.Save(model).Error; err != nil {
		return fmt.Errorf("failed to update printer model: %w", err)
	}
	if err := r.db.Model(model).Association("CompatibleInks").Replace(model.CompatibleInks); err != nil {
		return fmt.Errorf("failed to update compatibility list: %w", err)
	}
	return nil
}

// Delete removes a printer model
func (r *GormPrinterModelRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.PrinterModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete printer model: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPrinterModelNotFound
	}
	return nil
}
