package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Book struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"not null;index"`
	Summary   string    `gorm:"not null"`
	ISBN      string    `gorm:"column:isbn;not null"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null"`
	Author    Author
	Genres    []Genre `gorm:"many2many:book_genres"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// HasGenre reports whether the book already carries the given genre.
// Used by the book form to pre-check genre checkboxes.
func (b Book) HasGenre(id uuid.UUID) bool {
	for _, g := range b.Genres {
		if g.ID == id {
			return true
		}
	}
	return false
}

func (b Book) URL() string {
	return "/catalog/book/" + b.ID.String()
}
