package services

import (
	"context"

	"talent-hub/models"

	"gorm.io/gorm"
)

type CommentService struct {
	DB *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{DB: db}
}

func (s *CommentService) Create(ctx context.Context, req CreateCommentRequest) (*CommentView, error) {
	db := s.DB.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Post{}).Where("id = ?", req.PostID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, NotFound("Post not found")
	}

	comment := models.Comment{PostID: req.PostID, Content: req.Content}
	if err := db.Create(&comment).Error; err != nil {
		return nil, err
	}
	v := toCommentView(comment)
	return &v, nil
}

func (s *CommentService) Get(ctx context.Context, id uint) (*CommentView, error) {
	var comment models.Comment
	if err := s.DB.WithContext(ctx).Preload("CommentVotes.Vote").First(&comment, id).Error; err != nil {
		return nil, notFoundOr(err, "Comment not found")
	}
	v := toCommentView(comment)
	return &v, nil
}

func (s *CommentService) Update(ctx context.Context, id uint, req UpdateCommentRequest) (*CommentView, error) {
	db := s.DB.WithContext(ctx)
	var comment models.Comment
	if err := db.First(&comment, id).Error; err != nil {
		return nil, notFoundOr(err, "Comment not found")
	}
	if req.Content != nil {
		comment.Content = *req.Content
		if err := db.Model(&comment).Update("content", comment.Content).Error; err != nil {
			return nil, err
		}
	}
	v := toCommentView(comment)
	return &v, nil
}

func (s *CommentService) Delete(ctx context.Context, id uint) error {
	db := s.DB.WithContext(ctx)
	var comment models.Comment
	if err := db.First(&comment, id).Error; err != nil {
		return notFoundOr(err, "Comment not found")
	}
	return db.Delete(&comment).Error
}

// ListByPost returns a post's comments, newest first.
func (s *CommentService) ListByPost(ctx context.Context, postID uint) ([]CommentView, error) {
	db := s.DB.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, NotFound("Post not found")
	}

	var comments []models.Comment
	err := db.Preload("CommentVotes.Vote").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentView(c))
	}
	return out, nil
}
