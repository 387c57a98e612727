package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"talent-hub/auth"
	"talent-hub/models"
	"talent-hub/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostService struct {
	DB    *gorm.DB
	Store utils.Uploader
}

func NewPostService(db *gorm.DB, store utils.Uploader) *PostService {
	return &PostService{DB: db, Store: store}
}

func (s *PostService) withThread(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("Comments.CommentVotes.Vote")
}

func (s *PostService) Create(ctx context.Context, req CreatePostRequest) (*PostView, error) {
	db := s.DB.WithContext(ctx)

	var user models.User
	if err := db.Select("id", "username").First(&user, req.UserID).Error; err != nil {
		return nil, notFoundOr(err, "User not found")
	}

	post := models.Post{UserID: req.UserID, Content: req.Content, Image: req.Image}
	if err := db.Create(&post).Error; err != nil {
		return nil, err
	}
	post.User = user
	v := toPostView(post)
	return &v, nil
}

// List returns posts newest first, each with its comments and raw votes.
func (s *PostService) List(ctx context.Context) ([]PostView, error) {
	var posts []models.Post
	if err := s.withThread(s.DB.WithContext(ctx)).Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostView(p))
	}
	return out, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*PostView, error) {
	var post models.Post
	if err := s.withThread(s.DB.WithContext(ctx)).First(&post, id).Error; err != nil {
		return nil, notFoundOr(err, "Post not found")
	}
	v := toPostView(post)
	return &v, nil
}

func (s *PostService) Update(ctx context.Context, id uint, req UpdatePostRequest) (*PostView, error) {
	db := s.DB.WithContext(ctx)

	var post models.Post
	if err := db.Preload("User").First(&post, id).Error; err != nil {
		return nil, notFoundOr(err, "Post not found")
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Image != nil {
		post.Image = req.Image
	}
	err := db.Model(&models.Post{ID: post.ID}).Updates(map[string]interface{}{
		"content": post.Content,
		"image":   post.Image,
	}).Error
	if err != nil {
		return nil, err
	}
	v := toPostView(post)
	return &v, nil
}

func (s *PostService) Delete(ctx context.Context, id uint) error {
	db := s.DB.WithContext(ctx)
	var post models.Post
	if err := db.First(&post, id).Error; err != nil {
		return notFoundOr(err, "Post not found")
	}
	return db.Delete(&post).Error
}

// AttachImage uploads an image for a post the caller owns and stores its URL.
func (s *PostService) AttachImage(ctx context.Context, p *auth.Principal, id uint, filename, contentType string, body io.Reader) (*PostView, error) {
	if s.Store == nil {
		return nil, Unavailable("File storage is not configured")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, Conflict("Only image uploads are allowed")
	}

	db := s.DB.WithContext(ctx)
	var post models.Post
	if err := db.Preload("User").First(&post, id).Error; err != nil {
		return nil, notFoundOr(err, "Post not found")
	}
	if !p.IsUser() || p.ID != post.UserID {
		return nil, Forbidden("You can only change images on your own posts")
	}

	key := fmt.Sprintf("posts/%d/%s%s", post.ID, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
	url, err := s.Store.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("upload post image: %w", err)
	}

	if err := db.Model(&post).Update("image", url).Error; err != nil {
		return nil, err
	}
	post.Image = &url
	v := toPostView(post)
	return &v, nil
}
