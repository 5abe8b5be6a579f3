package models

import "time"

// Review is a user's opinion of a title with a 1..10 score. The composite
// unique index on (title_id, author_id) guarantees at most one review per
// author per title even under concurrent creation.
type Review struct {
	ID       string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	TitleID  string    `json:"-" gorm:"uniqueIndex:idx_title_author;type:varchar(36)"`
	Title    Title     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID string    `json:"-" gorm:"uniqueIndex:idx_title_author;type:varchar(36)"`
	Author   User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" validate:"required"`
	Score    int       `json:"score" validate:"required,gte=1,lte=10"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime;index"`
}

// Comment is a reply to a review. Comments cascade away with their review
// and with their author.
type Comment struct {
	ID       string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ReviewID string    `json:"-" gorm:"index;type:varchar(36)"`
	Review   Review    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID string    `json:"-" gorm:"type:varchar(36)"`
	Author   User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" validate:"required"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime"`
}
