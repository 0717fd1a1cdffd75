package model

import "time"

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	Owner     *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Published bool      `gorm:"not null" json:"published"`
	Date      time.Time `gorm:"autoCreateTime" json:"date"`
}

func (Post) TableName() string { return "posts" }
