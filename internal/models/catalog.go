package models

import "gorm.io/gorm"

// MinTitleYear is the lower bound for Title.Year. The upper bound is the
// current calendar year, recomputed on every validation.
const MinTitleYear = 1900

// Category groups titles by kind of work (film, book, music, ...).
type Category struct {
	ID         string `json:"-" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" gorm:"type:varchar(256)" validate:"required,max=256"`
	Slug       string `json:"slug" gorm:"uniqueIndex;type:varchar(50)" validate:"required,max=50,slug"`
	gorm.Model `json:"-"`
}

// Genre tags titles with any number of genres.
type Genre struct {
	ID         string `json:"-" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" gorm:"type:varchar(256)" validate:"required,max=256"`
	Slug       string `json:"slug" gorm:"uniqueIndex;type:varchar(50)" validate:"required,max=50,slug"`
	gorm.Model `json:"-"`
}

// Title is a cataloged work that users review. Rating is the average review
// score, computed by the repository on read; it is nil when the title has no
// reviews and is never stored.
type Title struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(256)" validate:"required,max=256"`
	Description string    `json:"description"`
	Year        int       `json:"year" validate:"required,titleyear"`
	CategoryID  *string   `json:"-" gorm:"type:varchar(36)"`
	Category    *Category `json:"category" gorm:"constraint:OnDelete:SET NULL"`
	Genres      []Genre   `json:"genre" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE"`
	Rating      *float64  `json:"rating" gorm:"-"`
	gorm.Model  `json:"-"`
}
