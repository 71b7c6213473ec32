package models

// Формы публичной части. Теги validate проверяет forms.Validate.

type CommentForm struct {
	Name  string `form:"name"  validate:"required,max=80"`
	Email string `form:"email" validate:"required,email,max=254"`
	Body  string `form:"body"  validate:"required"`
}

type EmailPostForm struct {
	Name     string `form:"name"     validate:"required,max=25"`
	Email    string `form:"email"    validate:"required,email"`
	To       string `form:"to"       validate:"required,email"`
	Comments string `form:"comments" validate:"omitempty"`
}

type SearchForm struct {
	Query string `form:"query" validate:"required"`
}
