package command

import (
	"fmt"

	"github.com/printops/inkwell/internal/catalog/domain"
)

// CreatePrinterModelCommand represents the command to create a printer model
type CreatePrinterModelCommand struct {
	Name           string
	CompatibleInks []uint
}

// CreatePrinterModelHandler handles create printer model command
type CreatePrinterModelHandler struct {
	printers domain.PrinterModelRepository
	inks     domain.InkModelRepository
}

// NewCreatePrinterModelHandler creates a new create printer model handler
func NewCreatePrinterModelHandler(printers domain.PrinterModelRepository, inks domain.InkModelRepository) *CreatePrinterModelHandler {
	return &CreatePrinterModelHandler{printers: printers, inks: inks}
}

// Handle executes the create printer model command
func (h *CreatePrinterModelHandler) Handle(cmd CreatePrinterModelCommand) (*domain.PrinterModel, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if _, err := h.printers.FindByName(cmd.Name); err == nil {
		return nil, fmt.Errorf("printer model name already exists")
	}

	compatible, err := resolveInkModels(h.inks, cmd.CompatibleInks)
	if err != nil {
		return nil, err
	}

	model := &domain.PrinterModel{
		Name:           cmd.Name,
		CompatibleInks: compatible,
	}

	if err := h.printers.Create(model); err != nil {
		return nil, fmt.Errorf("failed to create printer model: %w", err)
	}
	return model, nil
}

// resolveInkModels validates that every referenced ink model exists by
// comparing the existence count against the id list.
func resolveInkModels(inks domain.InkModelRepository, ids []uint) ([]domain.InkModel, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	count, err := inks.CountByIDs(unique)
	if err != nil {
		return nil, fmt.Errorf("failed to validate compatible inks: %w", err)
	}
	if count != int64(len(unique)) {
		return nil, domain.ErrUnknownInkModel
	}

	compatible := make([]domain.InkModel, len(unique))
	for i, id := range unique {
		compatible[i] = domain.InkModel{ID: id}
	}
	return compatible, nil
}
