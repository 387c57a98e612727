// services/users.go
package services

import (
	"context"
	"errors"
	"strings"

	"talent-hub/auth"
	"talent-hub/models"

	"github.com/sourcegraph/conc/pool"
	"gorm.io/gorm"
)

type UserService struct {
	DB     *gorm.DB
	Tokens *auth.Issuer
}

func NewUserService(db *gorm.DB, tokens *auth.Issuer) *UserService {
	return &UserService{DB: db, Tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*AuthResponse, error) {
	db := s.DB.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, Conflict("Email has already existed!")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{Username: req.Username, Email: req.Email, Password: hash, Role: models.RoleTalent}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("Email has already existed!")
		}
		return nil, err
	}
	return s.authResponse(user)
}

func (s *UserService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Unauthorized("Invalid email or password!")
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, Unauthorized("Invalid email or password!")
	}
	return s.authResponse(user)
}

func (s *UserService) authResponse(user models.User) (*AuthResponse, error) {
	token, err := s.Tokens.Issue(auth.UserPrincipal(user.ID, user.Username, user.Email, user.Role))
	if err != nil {
		return nil, err
	}
	summary := user.Summary()
	return &AuthResponse{Token: token, User: &summary}, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	return &user, nil
}

// GetProfile returns the user with their posts, registered events and claimed bounties.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*Profile, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	posts, err := s.GetUserPosts(ctx, id)
	if err != nil {
		return nil, err
	}
	events, err := s.GetUserEvents(ctx, id)
	if err != nil {
		return nil, err
	}

	var assignments []models.BountyAssignment
	err = s.DB.WithContext(ctx).
		Preload("Bounty.Company").
		Where("user_id = ?", id).
		Order("assigned_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		XP:       user.XP,
		Balance:  user.Balance,
		Posts:    posts,
		Events:   events,
		Bounties: make([]ProfileBounty, 0, len(assignments)),
	}
	for _, a := range assignments {
		profile.Bounties = append(profile.Bounties, toProfileBounty(a))
	}
	return profile, nil
}

// GetProfileStats runs the counters concurrently.
func (s *UserService) GetProfileStats(ctx context.Context, id uint) (*ProfileStats, error) {
	var (
		stats ProfileStats
		user  models.User
		p     = pool.New().WithContext(ctx)
		db    = s.DB.WithContext(ctx)
	)

	p.Go(func(ctx context.Context) error {
		return db.Model(&models.Post{}).Where("user_id = ?", id).Count(&stats.TotalPosts).Error
	})
	p.Go(func(ctx context.Context) error {
		return db.Model(&models.EventRegistration{}).Where("user_id = ?", id).Count(&stats.TotalEvents).Error
	})
	p.Go(func(ctx context.Context) error {
		return db.Model(&models.BountyAssignment{}).Where("user_id = ?", id).Count(&stats.TotalBounties).Error
	})
	p.Go(func(ctx context.Context) error {
		return db.Model(&models.BountyAssignment{}).
			Where("user_id = ? AND is_completed = ?", id, true).
			Count(&stats.CompletedBounties).Error
	})
	p.Go(func(ctx context.Context) error {
		return db.Select("id", "xp", "balance").First(&user, id).Error
	})

	if err := p.Wait(); err != nil {
		return nil, notFoundOr(err, "User not found")
	}

	stats.ActiveBounties = stats.TotalBounties - stats.CompletedBounties
	stats.TotalXP = user.XP
	stats.TotalEarnings = user.Balance
	return &stats, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, req UpdateProfileRequest) (*models.UserSummary, error) {
	db := s.DB.WithContext(ctx)
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", *req.Email, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, Conflict("Email is already taken")
		}
		updates["email"] = *req.Email
	}

	if len(updates) > 0 {
		if err := db.Model(user).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, Conflict("Email is already taken")
			}
			return nil, err
		}
		if req.Username != nil {
			user.Username = *req.Username
		}
		if v, ok := updates["email"].(string); ok {
			user.Email = v
		}
	}
	summary := user.Summary()
	return &summary, nil
}

func (s *UserService) GetUserPosts(ctx context.Context, id uint) ([]PostView, error) {
	var posts []models.Post
	err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Where("user_id = ?", id).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostView(p))
	}
	return out, nil
}

func (s *UserService) GetUserEvents(ctx context.Context, id uint) ([]EventView, error) {
	var regs []models.EventRegistration
	err := s.DB.WithContext(ctx).
		Preload("Event.Company").
		Where("user_id = ?", id).
		Order("registered_at DESC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}

	eventIDs := make([]uint, 0, len(regs))
	for _, r := range regs {
		eventIDs = append(eventIDs, r.EventID)
	}
	counts, err := registrationCounts(s.DB.WithContext(ctx), eventIDs)
	if err != nil {
		return nil, err
	}

	out := make([]EventView, 0, len(regs))
	for _, r := range regs {
		out = append(out, toEventView(r.Event, counts[r.EventID]))
	}
	return out, nil
}

// SearchUsers matches username or email case-insensitively.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit int) ([]models.UserSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var users []models.User
	db := s.DB.WithContext(ctx).Model(&models.User{}).Order("username ASC").Limit(limit)
	if q := strings.TrimSpace(query); q != "" {
		term := "%" + strings.ToLower(q) + "%"
		db = db.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}

	res := make([]models.UserSummary, len(users))
	for i, u := range users {
		res[i] = u.Summary()
	}
	return res, nil
}

// DeleteUser removes the user; posts, registrations and assignments go with it.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return notFoundOr(err, "User not found")
		}
		return tx.Delete(&user).Error
	})
}
