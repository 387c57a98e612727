// models/post.go
package models

import "time"

type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Image     *string   `gorm:"size:500" json:"image"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	User     User      `json:"-" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	CommentVotes []CommentVote `json:"-" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
}

// Vote carries no actor; it exists on its own and is attached to a comment
// through CommentVote.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VoteType  VoteType  `gorm:"size:10;not null" json:"vote_type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	CommentVotes []CommentVote `json:"-" gorm:"foreignKey:VoteID;constraint:OnDelete:CASCADE"`
}

type CommentVote struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CommentID uint `gorm:"not null;index" json:"comment_id"`
	VoteID    uint `gorm:"not null;index" json:"vote_id"`

	Vote Vote `json:"-" gorm:"foreignKey:VoteID"`
}
