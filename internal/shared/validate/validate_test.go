package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	Title   string `validate:"required,min=5,max=200"`
	Content string `validate:"required,min=20"`
	Rating  int    `validate:"omitempty,min=1,max=5"`
	Image   string `validate:"omitempty,url"`
}

func TestStruct(t *testing.T) {
	ok := payload{Title: "A valid title", Content: "content long enough to pass validation"}
	assert.NoError(t, Struct(ok))

	short := ok
	short.Title = "abc"
	err := Struct(short)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "min")

	missing := payload{}
	err = Struct(missing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "required")

	badURL := ok
	badURL.Image = "not a url"
	assert.Error(t, Struct(badURL))

	badRating := ok
	badRating.Rating = 6
	assert.Error(t, Struct(badRating))
}
