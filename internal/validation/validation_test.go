package validation_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kritika/internal/validation"
)

type usernameField struct {
	Username string `validate:"required,max=150,username"`
}

type yearField struct {
	Year int `validate:"required,titleyear"`
}

type slugField struct {
	Slug string `validate:"required,max=50,slug"`
}

func TestUsernameRule(t *testing.T) {
	v := validation.New()

	valid := []string{"bob", "bob.smith", "bob@site", "bob+1", "bob-2", "Bob_3"}
	for _, name := range valid {
		assert.NoError(t, v.Struct(usernameField{Username: name}), name)
	}

	invalid := []string{"bob smith", "bob!", "böb£", ""}
	for _, name := range invalid {
		assert.Error(t, v.Struct(usernameField{Username: name}), name)
	}
}

func TestTitleYearRule(t *testing.T) {
	v := validation.New()
	currentYear := time.Now().Year()

	assert.NoError(t, v.Struct(yearField{Year: 1900}))
	assert.NoError(t, v.Struct(yearField{Year: currentYear}))
	assert.Error(t, v.Struct(yearField{Year: 1899}), "below lower bound")
	assert.Error(t, v.Struct(yearField{Year: currentYear + 1}), "future year")

	// The upper bound tracks the calendar, not a snapshot taken at startup.
	assert.Error(t, v.Struct(yearField{Year: currentYear + 100}),
		fmt.Sprintf("year %d should always be rejected", currentYear+100))
}

func TestSlugRule(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Struct(slugField{Slug: "sci-fi"}))
	assert.NoError(t, v.Struct(slugField{Slug: "films_2020"}))
	assert.Error(t, v.Struct(slugField{Slug: "sci fi"}))
	assert.Error(t, v.Struct(slugField{Slug: "sci/fi"}))
}
