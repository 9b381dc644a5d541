package forms

import (
	"locallibrary/internal/model"
)

type AuthorForm struct {
	FirstName   string `form:"first_name"`
	FamilyName  string `form:"family_name"`
	DateOfBirth string `form:"date_of_birth"`
	DateOfDeath string `form:"date_of_death"`
}

func (f *AuthorForm) Validate() Errors {
	f.FirstName = trim(f.FirstName)
	f.FamilyName = trim(f.FamilyName)
	f.DateOfBirth = trim(f.DateOfBirth)
	f.DateOfDeath = trim(f.DateOfDeath)

	errs := run([]check{
		{"first_name", f.FirstName, "required,max=100", "First name must be specified."},
		{"first_name", f.FirstName, "alphanumunicode", "First name has non-alphanumeric characters."},
		{"family_name", f.FamilyName, "required,max=100", "Family name must be specified."},
		{"family_name", f.FamilyName, "alphanumunicode", "Family name has non-alphanumeric characters."},
	})

	if f.DateOfBirth != "" {
		if _, err := model.ParseDate(f.DateOfBirth); err != nil {
			errs = errs.Add("date_of_birth", "Invalid date of birth")
		}
	}
	if f.DateOfDeath != "" {
		if _, err := model.ParseDate(f.DateOfDeath); err != nil {
			errs = errs.Add("date_of_death", "Invalid date of death")
		}
	}
	return errs
}

// Record builds the author record from validated input.
func (f *AuthorForm) Record() model.Author {
	author := model.Author{
		FirstName:  f.FirstName,
		FamilyName: f.FamilyName,
	}
	if f.DateOfBirth != "" {
		if t, err := model.ParseDate(f.DateOfBirth); err == nil {
			author.DateOfBirth = &t
		}
	}
	if f.DateOfDeath != "" {
		if t, err := model.ParseDate(f.DateOfDeath); err == nil {
			author.DateOfDeath = &t
		}
	}
	return author
}

// AuthorFormFrom pre-fills the form from an existing record for the
// update view.
func AuthorFormFrom(a model.Author) AuthorForm {
	return AuthorForm{
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		DateOfBirth: a.DateOfBirthForm(),
		DateOfDeath: a.DateOfDeathForm(),
	}
}
