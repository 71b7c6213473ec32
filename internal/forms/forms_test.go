package forms

import (
	"strings"
	"testing"

	"blog/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidate_CommentForm(t *testing.T) {
	tests := []struct {
		name    string
		form    models.CommentForm
		invalid []string
	}{
		{"валидная", models.CommentForm{Name: "Ann", Email: "ann@example.com", Body: "hi"}, nil},
		{"пустая", models.CommentForm{}, []string{"name", "email", "body"}},
		{"плохой email", models.CommentForm{Name: "Ann", Email: "nope", Body: "hi"}, []string{"email"}},
		{"длинное имя", models.CommentForm{Name: strings.Repeat("a", 81), Email: "a@b.co", Body: "hi"}, []string{"name"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := Validate(tc.form)
			if tc.invalid == nil {
				assert.Nil(t, errs)
				return
			}
			assert.False(t, errs.Valid())
			for _, f := range tc.invalid {
				assert.True(t, errs.Has(f), "ожидалась ошибка поля %s", f)
			}
		})
	}
}

func TestValidate_EmailPostForm_CommentsOptional(t *testing.T) {
	errs := Validate(models.EmailPostForm{Name: "Bob", Email: "bob@example.com", To: "amy@example.com"})
	assert.Nil(t, errs)

	errs = Validate(models.EmailPostForm{Name: strings.Repeat("b", 26), Email: "bob@example.com", To: "x"})
	assert.Equal(t, []string{"Ensure this value has at most 25 characters."}, errs.Get("name"))
	assert.Equal(t, []string{"Enter a valid email address."}, errs.Get("to"))
}

func TestValidate_JSONTagNames(t *testing.T) {
	errs := Validate(models.PostRequest{Status: "XX"})
	assert.True(t, errs.Has("title"))
	assert.True(t, errs.Has("body"))
	assert.True(t, errs.Has("status"))
}
