package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Page      int    `query:"page" validate:"min=1"`
	Limit     int    `query:"limit" validate:"min=1,max=100"`
	SortOrder string `query:"sortOrder" validate:"oneof=asc desc"`
	Cursor    string `query:"cursor" validate:"omitempty,uuid"`
}

func TestValidate(t *testing.T) {
	v := New()

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(sample{Page: 1, Limit: 20, SortOrder: "asc"}))
	})

	t.Run("Uses query names", func(t *testing.T) {
		err := v.Validate(sample{Page: 0, Limit: 101, SortOrder: "up", Cursor: "nope"})
		assert.ErrorContains(t, err, "page must be at least 1")
		assert.ErrorContains(t, err, "limit must be at most 100")
		assert.ErrorContains(t, err, "sortOrder must be one of [asc desc]")
		assert.ErrorContains(t, err, "cursor must be a valid UUID")
	})
}
