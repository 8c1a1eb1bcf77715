package domain

import (
	"context"
	"time"

	"gorm.io/gorm"

	inventorydomain "github.com/printops/inkwell/internal/inventory/domain"
)

// Approval stage and overall request statuses
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusFulfilled = "fulfilled"
)

// Decision actions
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Consumption statuses recorded at fulfillment
const (
	ConsumptionFullyUsed     = "fully_used"
	ConsumptionPartiallyUsed = "partially_used"
)

// Issuance source labels
const (
	SourceInkInUse  = "ink_in_use"
	SourceInventory = "inventory"
	SourceCombined  = "ink_in_use+inventory"
)

// InkRequest is an employee's request for ink from a specific inventory lot.
// It moves through two independent approval stages: supervisor first, then
// admin. Rejection at either stage is terminal; admin approval triggers the
// deduction engine and fulfillment.
type InkRequest struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	LotID             uint   `json:"lot_id" gorm:"not null;index"`
	RequesterID       uint   `json:"requester_id" gorm:"not null;index"`
	Department        string `json:"department"`
	QuantityRequested int    `json:"quantity_requested" gorm:"not null"`

	SupervisorApproval   string     `json:"supervisor_approval" gorm:"not null;default:'pending'"`
	SupervisorApproverID *uint      `json:"supervisor_approver_id"`
	SupervisorDecidedAt  *time.Time `json:"supervisor_decided_at"`

	AdminApproval   string     `json:"admin_approval" gorm:"not null;default:'pending'"`
	AdminApproverID *uint      `json:"admin_approver_id"`
	AdminDecidedAt  *time.Time `json:"admin_decided_at"`

	Status            string    `json:"status" gorm:"not null;default:'pending';index"`
	RequestDate       time.Time `json:"request_date"`
	ConsumptionStatus string    `json:"consumption_status"`
	RemainingQuantity int       `json:"remaining_quantity"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (InkRequest) TableName() string {
	return "ink_requests"
}

// SupervisorPending reports whether the supervisor stage is still open
func (r *InkRequest) SupervisorPending() bool {
	return r.SupervisorApproval == StatusPending && r.Status == StatusPending
}

// AdminEligible reports whether the admin stage may act: the supervisor must
// have approved and the admin stage must still be open.
func (r *InkRequest) AdminEligible() bool {
	return r.SupervisorApproval == StatusApproved && r.AdminApproval == StatusPending
}

// InkIssuance is the append-only audit record of ink handed out to fulfill a
// request. Exactly one exists per fulfilled request.
type InkIssuance struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	RequestID      uint      `json:"request_id" gorm:"not null;uniqueIndex"`
	LotID          uint      `json:"lot_id" gorm:"not null;index"`
	IssuedQuantity int       `json:"issued_quantity" gorm:"not null"`
	IssuedToID     uint      `json:"issued_to_id" gorm:"not null"`
	IssuedByID     uint      `json:"issued_by_id" gorm:"not null"`
	IssueDate      time.Time `json:"issue_date"`
	Source         string    `json:"source" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (InkIssuance) TableName() string {
	return "ink_issuances"
}

// RequestRepository defines the contract for ink request data access
type RequestRepository interface {
	Create(ctx context.Context, request *InkRequest) error
	FindByID(ctx context.Context, id uint) (*InkRequest, error)
	// FindByIDForUpdate locks the request row for the duration of the
	// enclosing transaction, serializing concurrent decisions.
	FindByIDForUpdate(ctx context.Context, id uint) (*InkRequest, error)
	// FindSupervisorQueue lists requests awaiting a supervisor decision.
	FindSupervisorQueue(ctx context.Context, limit, offset int) ([]InkRequest, error)
	// FindAdminQueue lists supervisor-approved requests awaiting an admin
	// decision.
	FindAdminQueue(ctx context.Context, limit, offset int) ([]InkRequest, error)
	FindByRequester(ctx context.Context, requesterID uint, limit, offset int) ([]InkRequest, error)
	Update(ctx context.Context, request *InkRequest) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// IssuanceRepository defines the contract for issuance data access
type IssuanceRepository interface {
	Create(ctx context.Context, issuance *InkIssuance) error
	FindByRequestID(ctx context.Context, requestID uint) (*InkIssuance, error)
	FindAll(ctx context.Context, limit, offset int) ([]InkIssuance, error)
}

// TxRepos bundles the repositories visible inside a single transaction.
// The deduction engine mutates requests, the ledger, lots and issuances as
// one atomic unit through this view.
type TxRepos struct {
	Requests  RequestRepository
	Issuances IssuanceRepository
	Lots      inventorydomain.LotRepository
	Ledger    inventorydomain.LedgerRepository
}

// TxManager runs a function within a storage transaction. An error return
// rolls back every write made through the TxRepos view.
type TxManager interface {
	Do(ctx context.Context, fn func(r TxRepos) error) error
}
