package services

import (
	"context"

	"talent-hub/models"

	"gorm.io/gorm"
)

// VoteService records votes on comments. Votes carry no actor, so the same
// caller may vote any number of times.
type VoteService struct {
	DB *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{DB: db}
}

func (s *VoteService) Add(ctx context.Context, req CreateVoteRequest) (*VoteView, error) {
	var view VoteView
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Comment{}).Where("id = ?", req.CommentID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return NotFound("Comment not found")
		}

		vote := models.Vote{VoteType: models.VoteType(req.VoteType)}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.CommentVote{CommentID: req.CommentID, VoteID: vote.ID}).Error; err != nil {
			return err
		}
		view = VoteView{ID: vote.ID, VoteType: vote.VoteType, CommentID: req.CommentID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Remove deletes the vote and its comment links.
func (s *VoteService) Remove(ctx context.Context, voteID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vote models.Vote
		if err := tx.First(&vote, voteID).Error; err != nil {
			return notFoundOr(err, "Vote not found")
		}
		if err := tx.Where("vote_id = ?", vote.ID).Delete(&models.CommentVote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&vote).Error
	})
}
