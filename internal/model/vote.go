package model

import "time"

// Vote is a presence row: one row means the user has voted on the post.
// The composite primary key is what makes a duplicate cast fail at the
// storage layer even when two requests race past the existence check.
type Vote struct {
	PostID uint      `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	UserID uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Post   *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	User   *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Date   time.Time `gorm:"autoCreateTime" json:"date"`
}

func (Vote) TableName() string { return "votes" }
