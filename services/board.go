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
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BoardService is the job-board variant: companies post free-text bounties
// and talents apply with a portfolio instead of claiming.
type BoardService struct {
	DB    *gorm.DB
	Store utils.Uploader
}

func NewBoardService(db *gorm.DB, store utils.Uploader) *BoardService {
	return &BoardService{DB: db, Store: store}
}

func (s *BoardService) withCounts(db *gorm.DB, bounties []models.BoardBounty) error {
	if len(bounties) == 0 {
		return nil
	}
	ids := make([]string, 0, len(bounties))
	for _, b := range bounties {
		ids = append(ids, b.ID)
	}
	var rows []struct {
		BoardBountyID string
		Total         int64
	}
	err := db.Model(&models.Application{}).
		Select("board_bounty_id, COUNT(*) AS total").
		Where("board_bounty_id IN ?", ids).
		Group("board_bounty_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.BoardBountyID] = r.Total
	}
	for i := range bounties {
		bounties[i].ApplicationCount = counts[bounties[i].ID]
	}
	return nil
}

func (s *BoardService) CreateBounty(ctx context.Context, p *auth.Principal, req CreateBoardBountyRequest) (*models.BoardBounty, error) {
	if !p.IsCompany() {
		return nil, Forbidden("Only companies can post bounties")
	}
	bounty := models.BoardBounty{
		ID:           uuid.NewString(),
		CompanyID:    p.ID,
		Title:        req.Title,
		Company:      req.Company,
		Deadline:     req.Deadline,
		RewardXP:     req.RewardXP,
		RewardMoney:  req.RewardMoney,
		Status:       models.BoardBountyActive,
		Description:  req.Description,
		Requirements: datatypes.JSONSlice[string](req.Requirements),
	}
	if req.Status != nil {
		bounty.Status = *req.Status
	}
	if bounty.Requirements == nil {
		bounty.Requirements = datatypes.JSONSlice[string]{}
	}
	bounty.Slug = slug.Make(bounty.Title) + "-" + bounty.ID[:8]

	if err := s.DB.WithContext(ctx).Create(&bounty).Error; err != nil {
		return nil, err
	}
	return &bounty, nil
}

func (s *BoardService) ListBounties(ctx context.Context, status string) ([]models.BoardBounty, error) {
	db := s.DB.WithContext(ctx)
	q := db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var bounties []models.BoardBounty
	if err := q.Find(&bounties).Error; err != nil {
		return nil, err
	}
	return bounties, s.withCounts(db, bounties)
}

func (s *BoardService) GetBounty(ctx context.Context, id string) (*models.BoardBounty, error) {
	db := s.DB.WithContext(ctx)
	var bounty models.BoardBounty
	if err := db.Where("id = ?", id).First(&bounty).Error; err != nil {
		return nil, notFoundOr(err, "Bounty not found")
	}
	list := []models.BoardBounty{bounty}
	if err := s.withCounts(db, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// SearchBounties matches title, company or description case-insensitively.
func (s *BoardService) SearchBounties(ctx context.Context, query string) ([]models.BoardBounty, error) {
	db := s.DB.WithContext(ctx)
	term := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var bounties []models.BoardBounty
	err := db.Where("LOWER(title) LIKE ? OR LOWER(company) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", term, term, term).
		Order("created_at DESC").
		Find(&bounties).Error
	if err != nil {
		return nil, err
	}
	return bounties, s.withCounts(db, bounties)
}

// ownedBounty loads a board bounty the principal's company posted.
func (s *BoardService) ownedBounty(db *gorm.DB, p *auth.Principal, id, action string) (*models.BoardBounty, error) {
	if !p.IsCompany() {
		return nil, Forbidden("Only companies can " + action + " bounties")
	}
	var bounty models.BoardBounty
	if err := db.Where("id = ?", id).First(&bounty).Error; err != nil {
		return nil, notFoundOr(err, "Bounty not found")
	}
	if !p.Owns(bounty.CompanyID) {
		return nil, Forbidden("You can only " + action + " your own bounties")
	}
	return &bounty, nil
}

func (s *BoardService) UpdateBounty(ctx context.Context, p *auth.Principal, id string, req UpdateBoardBountyRequest) (*models.BoardBounty, error) {
	db := s.DB.WithContext(ctx)
	bounty, err := s.ownedBounty(db, p, id, "edit")
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		bounty.Title = *req.Title
		updates["title"] = bounty.Title
	}
	if req.Company != nil {
		bounty.Company = *req.Company
		updates["company"] = bounty.Company
	}
	if req.Deadline != nil {
		bounty.Deadline = *req.Deadline
		updates["deadline"] = bounty.Deadline
	}
	if req.RewardXP != nil {
		bounty.RewardXP = *req.RewardXP
		updates["reward_xp"] = bounty.RewardXP
	}
	if req.RewardMoney != nil {
		bounty.RewardMoney = *req.RewardMoney
		updates["reward_money"] = bounty.RewardMoney
	}
	if req.Status != nil {
		bounty.Status = *req.Status
		updates["status"] = bounty.Status
	}
	if req.Description != nil {
		bounty.Description = req.Description
		updates["description"] = *req.Description
	}
	if req.Requirements != nil {
		bounty.Requirements = datatypes.JSONSlice[string](req.Requirements)
		updates["requirements"] = bounty.Requirements
	}
	if len(updates) > 0 {
		if err := db.Model(&models.BoardBounty{ID: bounty.ID}).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return bounty, nil
}

func (s *BoardService) DeleteBounty(ctx context.Context, p *auth.Principal, id string) error {
	db := s.DB.WithContext(ctx)
	bounty, err := s.ownedBounty(db, p, id, "delete")
	if err != nil {
		return err
	}
	return db.Delete(&models.BoardBounty{ID: bounty.ID}).Error
}

// Apply creates the caller's application while the bounty is still active.
func (s *BoardService) Apply(ctx context.Context, p *auth.Principal, req CreateApplicationRequest) (*models.Application, error) {
	if !p.IsUser() {
		return nil, Forbidden("Only users can apply to bounties")
	}
	db := s.DB.WithContext(ctx)
	var bounty models.BoardBounty
	if err := db.Where("id = ?", req.BountyID).First(&bounty).Error; err != nil {
		return nil, notFoundOr(err, "Bounty not found")
	}
	if bounty.Status != models.BoardBountyActive {
		return nil, Conflict("This bounty is no longer accepting applications")
	}

	userID := p.ID
	app := models.Application{
		ID:             uuid.NewString(),
		BoardBountyID:  bounty.ID,
		UserID:         &userID,
		PortfolioLinks: datatypes.JSONSlice[string](req.PortfolioLinks),
		CVImageURL:     req.CVImageURL,
		WhyHireYou:     req.WhyHireYou,
		Status:         models.ApplicationPending,
	}
	if err := db.Omit("Bounty").Create(&app).Error; err != nil {
		return nil, err
	}
	app.Bounty = &bounty
	return &app, nil
}

// ListApplications returns every application for companies, or the caller's own for users.
func (s *BoardService) ListApplications(ctx context.Context, p *auth.Principal) ([]models.Application, error) {
	q := s.DB.WithContext(ctx).Preload("Bounty").Order("submitted_at DESC")
	if p.IsUser() {
		q = q.Where("user_id = ?", p.ID)
	}
	var apps []models.Application
	if err := q.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *BoardService) findApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := s.DB.WithContext(ctx).Preload("Bounty").Where("id = ?", id).First(&app).Error; err != nil {
		return nil, notFoundOr(err, "Application not found")
	}
	return &app, nil
}

// appliedBy reports whether p is the user who submitted app. Applications
// without an applicant belong to no user.
func appliedBy(p *auth.Principal, app *models.Application) bool {
	return p.IsUser() && app.UserID != nil && *app.UserID == p.ID
}

// GetApplication is visible to companies and to the applicant, matching ListApplications.
func (s *BoardService) GetApplication(ctx context.Context, p *auth.Principal, id string) (*models.Application, error) {
	if !p.IsUser() && !p.IsCompany() {
		return nil, Unauthorized("Authentication required")
	}
	app, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsCompany() && !appliedBy(p, app) {
		return nil, Forbidden("You can only view your own application")
	}
	return app, nil
}

// UpdateApplication lets the applicant edit content; only companies change status.
func (s *BoardService) UpdateApplication(ctx context.Context, p *auth.Principal, id string, req UpdateApplicationRequest) (*models.Application, error) {
	app, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != nil && !p.IsCompany() {
		return nil, Forbidden("Only companies can change application status")
	}
	editsContent := req.PortfolioLinks != nil || req.CVImageURL != nil || req.WhyHireYou != nil
	if editsContent && !appliedBy(p, app) {
		return nil, Forbidden("You can only edit your own application")
	}
	if !p.IsCompany() && !appliedBy(p, app) {
		return nil, Forbidden("You can only edit your own application")
	}

	updates := map[string]interface{}{}
	if req.PortfolioLinks != nil {
		app.PortfolioLinks = datatypes.JSONSlice[string](req.PortfolioLinks)
		updates["portfolio_links"] = app.PortfolioLinks
	}
	if req.CVImageURL != nil {
		app.CVImageURL = *req.CVImageURL
		updates["cv_image_url"] = app.CVImageURL
	}
	if req.WhyHireYou != nil {
		app.WhyHireYou = *req.WhyHireYou
		updates["why_hire_you"] = app.WhyHireYou
	}
	if req.Status != nil {
		app.Status = *req.Status
		updates["status"] = app.Status
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&models.Application{ID: app.ID}).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return app, nil
}

func (s *BoardService) DeleteApplication(ctx context.Context, p *auth.Principal, id string) error {
	app, err := s.findApplication(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsCompany() && !appliedBy(p, app) {
		return Forbidden("You can only withdraw your own application")
	}
	return s.DB.WithContext(ctx).Delete(&models.Application{ID: app.ID}).Error
}

// UploadCV stores a CV image and returns its URL for use in an application.
func (s *BoardService) UploadCV(ctx context.Context, p *auth.Principal, filename, contentType string, body io.Reader) (string, error) {
	if s.Store == nil {
		return "", Unavailable("File storage is not configured")
	}
	if !p.IsUser() {
		return "", Forbidden("Only users can upload a CV")
	}
	if !strings.HasPrefix(contentType, "image/") && contentType != "application/pdf" {
		return "", Conflict("CV must be an image or a PDF")
	}
	key := fmt.Sprintf("cv/%d/%s%s", p.ID, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
	url, err := s.Store.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("upload cv: %w", err)
	}
	return url, nil
}
