package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Author struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName   string    `gorm:"not null"`
	FamilyName  string    `gorm:"not null;index"`
	DateOfBirth *time.Time
	DateOfDeath *time.Time
	Books       []Book `gorm:"foreignKey:AuthorID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (a *Author) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// Name is the display name used by lists and detail views, family
// name first.
func (a Author) Name() string {
	return a.FamilyName + " " + a.FirstName
}

// Lifespan renders "birth - death" with "*" standing in for an
// unknown date.
func (a Author) Lifespan() string {
	return FormatLifeDate(a.DateOfBirth) + " - " + FormatLifeDate(a.DateOfDeath)
}

// DateOfBirthForm and DateOfDeathForm pre-fill the update form inputs.
func (a Author) DateOfBirthForm() string { return FormatISO(a.DateOfBirth) }

func (a Author) DateOfDeathForm() string { return FormatISO(a.DateOfDeath) }

func (a Author) URL() string {
	return "/catalog/author/" + a.ID.String()
}
