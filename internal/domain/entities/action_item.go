package entities

import (
	"fmt"

	"github.com/google/uuid"
)

// ActionItemStatus represents the state of an action item.
type ActionItemStatus string

const (
	ActionItemStatusOpen ActionItemStatus = "OPEN"
	ActionItemStatusDone ActionItemStatus = "DONE"
)

// ActionItem is a follow-up task extracted from or added to the minutes.
type ActionItem struct {
	ID          string           `gorm:"type:varchar(64);primary_key" json:"id"`
	MeetingID   string           `gorm:"type:varchar(64);not null;index" json:"meeting_id"`
	Description string           `gorm:"type:text;not null" json:"description"`
	OwnerName   *string          `gorm:"type:varchar(255)" json:"owner_name,omitempty"`
	DueDate     *string          `gorm:"type:varchar(10)" json:"due_date,omitempty"`
	Status      ActionItemStatus `gorm:"type:varchar(10);not null;default:'OPEN'" json:"status"`
}

// TableName specifies the table name for ActionItem.
func (ActionItem) TableName() string {
	return "action_items"
}

// NewActionItemID generates an action item identifier.
func NewActionItemID() string {
	return fmt.Sprintf("action_%s", uuid.New().String())
}

// IsComplete reports whether the item has both an owner and a due date,
// which the approval gate requires unless overridden.
func (a *ActionItem) IsComplete() bool {
	return a.OwnerName != nil && *a.OwnerName != "" &&
		a.DueDate != nil && *a.DueDate != ""
}
