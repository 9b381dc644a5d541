package forms

import (
	"github.com/google/uuid"

	"locallibrary/internal/model"
)

type BookForm struct {
	Title   string   `form:"title"`
	Author  string   `form:"author"`
	Summary string   `form:"summary"`
	ISBN    string   `form:"isbn"`
	Genre   []string `form:"genre"`

	authorID uuid.UUID
	genreIDs []uuid.UUID
}

func (f *BookForm) Validate() Errors {
	f.Title = trim(f.Title)
	f.Author = trim(f.Author)
	f.Summary = trim(f.Summary)
	f.ISBN = trim(f.ISBN)

	errs := run([]check{
		{"title", f.Title, "required", "Title must not be empty."},
		{"author", f.Author, "required", "Author must not be empty."},
		{"author", f.Author, "uuid", "Author must not be empty."},
		{"summary", f.Summary, "required", "Summary must not be empty."},
		{"isbn", f.ISBN, "required", "ISBN must not be empty"},
	})

	if !errs.Has("author") {
		f.authorID = uuid.MustParse(f.Author)
	}

	f.genreIDs = f.genreIDs[:0]
	for _, g := range f.Genre {
		id, err := uuid.Parse(trim(g))
		if err != nil {
			errs = errs.Add("genre", "Genre selection is invalid.")
			continue
		}
		f.genreIDs = append(f.genreIDs, id)
	}
	return errs
}

// AuthorID is only meaningful after a successful Validate.
func (f *BookForm) AuthorID() uuid.UUID { return f.authorID }

func (f *BookForm) GenreIDs() []uuid.UUID { return f.genreIDs }

// Checked reports whether the form submission carried the genre,
// used to re-check checkboxes on re-render. Value receiver so
// templates can call it on the form value.
func (f BookForm) Checked(id uuid.UUID) bool {
	s := id.String()
	for _, g := range f.Genre {
		if g == s {
			return true
		}
	}
	return false
}

func (f *BookForm) Record() model.Book {
	return model.Book{
		Title:    f.Title,
		Summary:  f.Summary,
		ISBN:     f.ISBN,
		AuthorID: f.authorID,
	}
}

func BookFormFrom(b model.Book) BookForm {
	genre := make([]string, 0, len(b.Genres))
	for _, g := range b.Genres {
		genre = append(genre, g.ID.String())
	}
	return BookForm{
		Title:   b.Title,
		Author:  b.AuthorID.String(),
		Summary: b.Summary,
		ISBN:    b.ISBN,
		Genre:   genre,
	}
}
