package forms

import (
	"github.com/google/uuid"

	"locallibrary/internal/model"
)

type InstanceForm struct {
	Book    string `form:"book"`
	Imprint string `form:"imprint"`
	Status  string `form:"status"`
	DueBack string `form:"due_back"`

	bookID uuid.UUID
}

func (f *InstanceForm) Validate() Errors {
	f.Book = trim(f.Book)
	f.Imprint = trim(f.Imprint)
	f.Status = trim(f.Status)
	f.DueBack = trim(f.DueBack)

	errs := run([]check{
		{"book", f.Book, "required", "Book must be specified"},
		{"book", f.Book, "uuid", "Book must be specified"},
		{"imprint", f.Imprint, "required", "Imprint must be specified"},
	})

	if !errs.Has("book") {
		f.bookID = uuid.MustParse(f.Book)
	}

	if !model.InstanceStatus(f.Status).Valid() {
		errs = errs.Add("status", "Invalid status")
	}

	if f.DueBack != "" {
		if _, err := model.ParseDate(f.DueBack); err != nil {
			errs = errs.Add("due_back", "Invalid date")
		}
	}
	return errs
}

// BookID is only meaningful after a successful Validate.
func (f *InstanceForm) BookID() uuid.UUID { return f.bookID }

func (f *InstanceForm) Record() model.BookInstance {
	instance := model.BookInstance{
		BookID:  f.bookID,
		Imprint: f.Imprint,
		Status:  model.InstanceStatus(f.Status),
	}
	if f.DueBack != "" {
		if t, err := model.ParseDate(f.DueBack); err == nil {
			instance.DueBack = &t
		}
	}
	return instance
}

func InstanceFormFrom(bi model.BookInstance) InstanceForm {
	return InstanceForm{
		Book:    bi.BookID.String(),
		Imprint: bi.Imprint,
		Status:  string(bi.Status),
		DueBack: bi.DueBackForm(),
	}
}
