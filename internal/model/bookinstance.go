package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InstanceStatus is the loan status of a single physical copy.
type InstanceStatus string

const (
	StatusAvailable   InstanceStatus = "Available"
	StatusMaintenance InstanceStatus = "Maintenance"
	StatusLoaned      InstanceStatus = "Loaned"
	StatusReserved    InstanceStatus = "Reserved"
)

// InstanceStatuses lists every valid status, in form display order.
func InstanceStatuses() []InstanceStatus {
	return []InstanceStatus{
		StatusAvailable,
		StatusMaintenance,
		StatusLoaned,
		StatusReserved,
	}
}

func (s InstanceStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved:
		return true
	}
	return false
}

// BookInstance is one physical copy of a Book. DueBack is only
// meaningful while the copy is Loaned.
type BookInstance struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Book      Book
	Imprint   string         `gorm:"not null"`
	Status    InstanceStatus `gorm:"type:text;not null"`
	DueBack   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (bi *BookInstance) BeforeCreate(tx *gorm.DB) (err error) {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return
}

func (bi BookInstance) DueBackDisplay() string {
	if bi.DueBack == nil {
		return ""
	}
	return bi.DueBack.Format("Jan 2, 2006")
}

func (bi BookInstance) DueBackForm() string { return FormatISO(bi.DueBack) }

func (bi BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID.String()
}
