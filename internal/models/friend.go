package models

import "time"

// UserFriend is one directed edge of a user's friend list.
type UserFriend struct {
	UserID    string    `gorm:"type:varchar(36);primaryKey" json:"user_id"`
	FriendID  string    `gorm:"type:varchar(36);primaryKey;index" json:"friend_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
