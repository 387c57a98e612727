package services

import (
	"time"

	"talent-hub/models"
)

type AuthResponse struct {
	Token   string                 `json:"token"`
	User    *models.UserSummary    `json:"user,omitempty"`
	Company *models.CompanySummary `json:"company,omitempty"`
}

type VoteView struct {
	ID        uint            `json:"id"`
	VoteType  models.VoteType `json:"vote_type"`
	CommentID uint            `json:"comment_id"`
}

type CommentView struct {
	ID           uint       `json:"id"`
	PostID       uint       `json:"post_id"`
	Content      string     `json:"content"`
	CreatedAt    time.Time  `json:"created_at"`
	CommentVotes []VoteView `json:"commentVotes,omitempty"`
}

type PostView struct {
	ID        uint          `json:"id"`
	UserID    uint          `json:"user_id"`
	Content   string        `json:"content"`
	Image     *string       `json:"image"`
	CreatedAt time.Time     `json:"created_at"`
	Username  string        `json:"username,omitempty"`
	Comments  []CommentView `json:"comments,omitempty"`
}

type EventView struct {
	ID                   uint                 `json:"id"`
	Title                string               `json:"title"`
	Description          string               `json:"description"`
	EventDate            time.Time            `json:"event_date"`
	CompanyID            uint                 `json:"company_id"`
	CompanyName          string               `json:"company_name"`
	RegisteredQuota      int                  `json:"registered_quota"`
	CurrentRegistrations int64                `json:"current_registrations"`
	CreatedAt            time.Time            `json:"created_at"`
	RegisteredUsers      []models.UserSummary `json:"registered_users,omitempty"`
	IsOwner              bool                 `json:"isOwner"`
}

type Registrant struct {
	User         models.UserSummary `json:"user"`
	RegisteredAt time.Time          `json:"registered_at"`
}

// ProfileBounty is a bounty seen through the caller's assignment.
type ProfileBounty struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Company     string              `json:"company"`
	Deadline    time.Time           `json:"deadline"`
	RewardXP    int64               `json:"rewardXp"`
	RewardMoney int64               `json:"rewardMoney"`
	Status      models.BountyStatus `json:"status"`
	AssignedAt  time.Time           `json:"assignedAt"`
	IsCompleted bool                `json:"isCompleted"`
	CompletedAt *time.Time          `json:"completedAt"`
	IsWinner    bool                `json:"isWinner"`
}

type Profile struct {
	ID       uint            `json:"id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     string          `json:"role"`
	XP       int64           `json:"xp"`
	Balance  int64           `json:"balance"`
	Posts    []PostView      `json:"posts"`
	Events   []EventView     `json:"events"`
	Bounties []ProfileBounty `json:"bounties"`
}

type ProfileStats struct {
	TotalPosts        int64 `json:"totalPosts"`
	TotalEvents       int64 `json:"totalEvents"`
	TotalBounties     int64 `json:"totalBounties"`
	CompletedBounties int64 `json:"completedBounties"`
	ActiveBounties    int64 `json:"activeBounties"`
	TotalXP           int64 `json:"totalXP"`
	TotalEarnings     int64 `json:"totalEarnings"`
}

type Applicant struct {
	AssignmentID    uint               `json:"assignment_id"`
	User            models.UserSummary `json:"user"`
	AssignedAt      time.Time          `json:"assigned_at"`
	SubmissionURL   *string            `json:"submissionUrl"`
	SubmissionNotes *string            `json:"submissionNotes"`
	IsCompleted     bool               `json:"is_completed"`
	IsWinner        bool               `json:"is_winner"`
}

// WinnerResult is what SelectWinner reports after commit.
type WinnerResult struct {
	Bounty     models.Bounty           `json:"bounty"`
	Assignment models.BountyAssignment `json:"assignment"`
	Winner     WinnerBalance           `json:"winner"`
}

type WinnerBalance struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	XP       int64  `json:"xp"`
	Balance  int64  `json:"balance"`
}

func toPostView(p models.Post) PostView {
	v := PostView{
		ID:        p.ID,
		UserID:    p.UserID,
		Content:   p.Content,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		Username:  p.User.Username,
	}
	for _, c := range p.Comments {
		v.Comments = append(v.Comments, toCommentView(c))
	}
	return v
}

func toCommentView(c models.Comment) CommentView {
	v := CommentView{ID: c.ID, PostID: c.PostID, Content: c.Content, CreatedAt: c.CreatedAt}
	for _, cv := range c.CommentVotes {
		v.CommentVotes = append(v.CommentVotes, VoteView{ID: cv.Vote.ID, VoteType: cv.Vote.VoteType, CommentID: c.ID})
	}
	return v
}

func toEventView(e models.Event, registrations int64) EventView {
	return EventView{
		ID:                   e.ID,
		Title:                e.Title,
		Description:          e.Description,
		EventDate:            e.EventDate,
		CompanyID:            e.CompanyID,
		CompanyName:          e.Company.Name,
		RegisteredQuota:      e.RegisteredQuota,
		CurrentRegistrations: registrations,
		CreatedAt:            e.CreatedAt,
	}
}

func toProfileBounty(a models.BountyAssignment) ProfileBounty {
	pb := ProfileBounty{
		AssignedAt:  a.AssignedAt,
		IsCompleted: a.IsCompleted,
		CompletedAt: a.CompletedAt,
		IsWinner:    a.IsWinner,
	}
	if b := a.Bounty; b != nil {
		pb.ID = b.ID
		pb.Title = b.Title
		pb.Company = b.Company.Name
		pb.Deadline = b.Deadline
		pb.RewardXP = b.RewardXP
		pb.RewardMoney = b.RewardMoney
		pb.Status = b.Status
	}
	return pb
}
