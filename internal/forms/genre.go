package forms

import (
	"locallibrary/internal/model"
)

type GenreForm struct {
	Name string `form:"name"`
}

func (f *GenreForm) Validate() Errors {
	f.Name = trim(f.Name)

	return run([]check{
		{"name", f.Name, "required", "Genre name required"},
	})
}

func (f *GenreForm) Record() model.Genre {
	return model.Genre{Name: f.Name}
}

func GenreFormFrom(g model.Genre) GenreForm {
	return GenreForm{Name: g.Name}
}
