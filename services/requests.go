package services

import "time"

// Users

type RegisterUserRequest struct {
	Username string  `json:"username" validate:"required,min=1,max=100"`
	Email    string  `json:"email" validate:"required,email,max=150"`
	Password string  `json:"password" validate:"required,min=8,max=100"`
	Role     *string `json:"role" validate:"omitempty,oneof=TALENT"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=1,max=100"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=150"`
}

// Companies

type RegisterCompanyRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=150"`
	Email       string  `json:"email" validate:"required,email,max=150"`
	Password    string  `json:"password" validate:"required,min=6,max=100"`
	Description *string `json:"description"`
}

type UpdateCompanyRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Email       *string `json:"email" validate:"omitempty,email,max=150"`
	Description *string `json:"description"`
}

// Posts, comments, votes

type CreatePostRequest struct {
	UserID  uint    `json:"user_id" validate:"required,gt=0"`
	Content string  `json:"content" validate:"required,min=1,max=10000"`
	Image   *string `json:"image" validate:"omitempty,max=500"`
}

type UpdatePostRequest struct {
	Content *string `json:"content" validate:"omitempty,min=1,max=10000"`
	Image   *string `json:"image" validate:"omitempty,max=500"`
}

type CreateCommentRequest struct {
	PostID  uint   `json:"post_id" validate:"required,gt=0"`
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

type UpdateCommentRequest struct {
	Content *string `json:"content" validate:"omitempty,min=1,max=5000"`
}

type CreateVoteRequest struct {
	CommentID uint   `json:"comment_id" validate:"required,gt=0"`
	VoteType  string `json:"vote_type" validate:"required,oneof=upvote downvote"`
}

// Events

type CreateEventRequest struct {
	Title           string    `json:"title" validate:"required,min=1,max=200"`
	Description     string    `json:"description" validate:"required,min=1"`
	EventDate       time.Time `json:"event_date" validate:"required"`
	RegisteredQuota int       `json:"registered_quota" validate:"required,gt=0"`
}

type UpdateEventRequest struct {
	Title           *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description     *string    `json:"description" validate:"omitempty,min=1"`
	EventDate       *time.Time `json:"event_date"`
	RegisteredQuota *int       `json:"registered_quota" validate:"omitempty,gt=0"`
}

type RegisterEventRequest struct {
	EventID uint  `json:"event_id" validate:"required,gt=0"`
	UserID  *uint `json:"user_id" validate:"omitempty,gt=0"`
}

// Bounties

type CreateBountyRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=10000"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	RewardXP    int64     `json:"rewardXp" validate:"gte=0"`
	RewardMoney int64     `json:"rewardMoney" validate:"gte=0"`
}

type UpdateBountyRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=10000"`
	Deadline    *time.Time `json:"deadline"`
	RewardXP    *int64     `json:"rewardXp" validate:"omitempty,gte=0"`
	RewardMoney *int64     `json:"rewardMoney" validate:"omitempty,gte=0"`
	Status      *string    `json:"status" validate:"omitempty,oneof=OPEN CLOSED"`
}

type SubmitBountyRequest struct {
	SubmissionURL   string  `json:"submissionUrl" validate:"required,url,max=500"`
	SubmissionNotes *string `json:"submissionNotes" validate:"omitempty,max=5000"`
}

// Board

type CreateBoardBountyRequest struct {
	Title        string    `json:"title" validate:"required,min=1,max=200"`
	Company      string    `json:"company" validate:"required,min=1,max=150"`
	Deadline     time.Time `json:"deadline" validate:"required"`
	RewardXP     int64     `json:"rewardXp" validate:"gte=0"`
	RewardMoney  int64     `json:"rewardMoney" validate:"gte=0"`
	Status       *string   `json:"status" validate:"omitempty,min=1,max=20"`
	Description  *string   `json:"description"`
	Requirements []string  `json:"requirements" validate:"omitempty,dive,min=1,max=500"`
}

type UpdateBoardBountyRequest struct {
	Title        *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Company      *string    `json:"company" validate:"omitempty,min=1,max=150"`
	Deadline     *time.Time `json:"deadline"`
	RewardXP     *int64     `json:"rewardXp" validate:"omitempty,gte=0"`
	RewardMoney  *int64     `json:"rewardMoney" validate:"omitempty,gte=0"`
	Status       *string    `json:"status" validate:"omitempty,min=1,max=20"`
	Description  *string    `json:"description"`
	Requirements []string   `json:"requirements" validate:"omitempty,dive,min=1,max=500"`
}

type CreateApplicationRequest struct {
	BountyID       string   `json:"bountyId" validate:"required,uuid"`
	PortfolioLinks []string `json:"portfolioLinks" validate:"required,min=1,dive,url"`
	CVImageURL     string   `json:"cvImageUrl" validate:"required,url,max=500"`
	WhyHireYou     string   `json:"whyHireYou" validate:"required,min=1,max=5000"`
}

type UpdateApplicationRequest struct {
	PortfolioLinks []string `json:"portfolioLinks" validate:"omitempty,min=1,dive,url"`
	CVImageURL     *string  `json:"cvImageUrl" validate:"omitempty,url,max=500"`
	WhyHireYou     *string  `json:"whyHireYou" validate:"omitempty,min=1,max=5000"`
	Status         *string  `json:"status" validate:"omitempty,oneof=pending accepted rejected"`
}
