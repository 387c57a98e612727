// services/bounties.go
package services

import (
	"context"
	"fmt"
	"time"

	"talent-hub/auth"
	"talent-hub/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// BountyService runs the claim -> submit -> select-winner workflow.
type BountyService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewBountyService(db *gorm.DB) *BountyService {
	return &BountyService{DB: db, Now: time.Now}
}

func (s *BountyService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func bountySlug(title string, id uint) string {
	return fmt.Sprintf("%s-%d", slug.Make(title), id)
}

// decorate fills the per-request fields: ownership and claim counts.
func (s *BountyService) decorate(db *gorm.DB, bounties []models.Bounty, p *auth.Principal) error {
	if len(bounties) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(bounties))
	for _, b := range bounties {
		ids = append(ids, b.ID)
	}
	var rows []struct {
		BountyID uint
		Total    int64
	}
	err := db.Model(&models.BountyAssignment{}).
		Select("bounty_id, COUNT(*) AS total").
		Where("bounty_id IN ?", ids).
		Group("bounty_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.BountyID] = r.Total
	}
	for i := range bounties {
		bounties[i].IsOwner = p.Owns(bounties[i].CompanyID)
		bounties[i].ClaimCount = counts[bounties[i].ID]
	}
	return nil
}

func (s *BountyService) Create(ctx context.Context, p *auth.Principal, req CreateBountyRequest) (*models.Bounty, error) {
	if !p.IsCompany() {
		return nil, Forbidden("Only companies can create bounties")
	}

	var bounty models.Bounty
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var company models.Company
		if err := tx.First(&company, p.ID).Error; err != nil {
			return notFoundOr(err, "Company not found")
		}

		bounty = models.Bounty{
			Title:       req.Title,
			Description: req.Description,
			CompanyID:   company.ID,
			Deadline:    req.Deadline,
			RewardXP:    req.RewardXP,
			RewardMoney: req.RewardMoney,
			Status:      models.BountyOpen,
		}
		if err := tx.Create(&bounty).Error; err != nil {
			return err
		}
		bounty.Slug = bountySlug(bounty.Title, bounty.ID)
		if err := tx.Model(&bounty).Update("slug", bounty.Slug).Error; err != nil {
			return err
		}
		bounty.Company = company
		return nil
	})
	if err != nil {
		return nil, err
	}
	bounty.IsOwner = true
	return &bounty, nil
}

// List returns bounties by soonest deadline, optionally filtered by status.
func (s *BountyService) List(ctx context.Context, p *auth.Principal, status string) ([]models.Bounty, error) {
	db := s.DB.WithContext(ctx)
	q := db.Preload("Company").Order("deadline ASC, id ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var bounties []models.Bounty
	if err := q.Find(&bounties).Error; err != nil {
		return nil, err
	}
	if err := s.decorate(db, bounties, p); err != nil {
		return nil, err
	}
	return bounties, nil
}

func (s *BountyService) Get(ctx context.Context, p *auth.Principal, id uint) (*models.Bounty, error) {
	return s.getWhere(ctx, p, "Bounty not found", "id = ?", id)
}

func (s *BountyService) GetBySlug(ctx context.Context, p *auth.Principal, slugValue string) (*models.Bounty, error) {
	return s.getWhere(ctx, p, "Bounty not found", "slug = ?", slugValue)
}

func (s *BountyService) getWhere(ctx context.Context, p *auth.Principal, missing string, query string, args ...interface{}) (*models.Bounty, error) {
	db := s.DB.WithContext(ctx)
	var bounty models.Bounty
	if err := db.Preload("Company").Where(query, args...).First(&bounty).Error; err != nil {
		return nil, notFoundOr(err, missing)
	}
	list := []models.Bounty{bounty}
	if err := s.decorate(db, list, p); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (s *BountyService) owned(db *gorm.DB, p *auth.Principal, id uint, action string) (*models.Bounty, error) {
	var bounty models.Bounty
	if err := db.Preload("Company").First(&bounty, id).Error; err != nil {
		return nil, notFoundOr(err, "Bounty not found")
	}
	if !p.Owns(bounty.CompanyID) {
		return nil, Forbidden("You can only " + action + " your own bounties")
	}
	return &bounty, nil
}

// Update edits a bounty. Status may move between OPEN and CLOSED; COMPLETED
// is only reached through SelectWinner and is final.
func (s *BountyService) Update(ctx context.Context, p *auth.Principal, id uint, req UpdateBountyRequest) (*models.Bounty, error) {
	db := s.DB.WithContext(ctx)
	bounty, err := s.owned(db, p, id, "update")
	if err != nil {
		return nil, err
	}
	if bounty.Status == models.BountyCompleted {
		return nil, Conflict("Bounty has already been completed")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		bounty.Title = *req.Title
		bounty.Slug = bountySlug(bounty.Title, bounty.ID)
		updates["title"] = bounty.Title
		updates["slug"] = bounty.Slug
	}
	if req.Description != nil {
		bounty.Description = req.Description
		updates["description"] = *req.Description
	}
	if req.Deadline != nil {
		bounty.Deadline = *req.Deadline
		updates["deadline"] = *req.Deadline
	}
	if req.RewardXP != nil {
		bounty.RewardXP = *req.RewardXP
		updates["reward_xp"] = *req.RewardXP
	}
	if req.RewardMoney != nil {
		bounty.RewardMoney = *req.RewardMoney
		updates["reward_money"] = *req.RewardMoney
	}
	if req.Status != nil {
		bounty.Status = models.BountyStatus(*req.Status)
		updates["status"] = bounty.Status
	}

	if len(updates) > 0 {
		res := db.Model(&models.Bounty{}).
			Where("id = ? AND status <> ?", bounty.ID, models.BountyCompleted).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, Conflict("Bounty has already been completed")
		}
	}
	list := []models.Bounty{*bounty}
	if err := s.decorate(db, list, p); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (s *BountyService) Delete(ctx context.Context, p *auth.Principal, id uint) error {
	db := s.DB.WithContext(ctx)
	bounty, err := s.owned(db, p, id, "delete")
	if err != nil {
		return err
	}
	return db.Delete(&models.Bounty{ID: bounty.ID}).Error
}

// Claim records the user's commitment to work on a bounty.
func (s *BountyService) Claim(ctx context.Context, p *auth.Principal, bountyID uint) (*models.BountyAssignment, error) {
	if !p.IsUser() {
		return nil, Forbidden("Only users can claim bounties")
	}
	db := s.DB.WithContext(ctx)

	var bounty models.Bounty
	if err := db.First(&bounty, bountyID).Error; err != nil {
		return nil, notFoundOr(err, "Bounty not found")
	}

	var existing int64
	if err := db.Model(&models.BountyAssignment{}).
		Where("user_id = ? AND bounty_id = ?", p.ID, bountyID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, Conflict("You have already claimed this bounty")
	}
	if bounty.Status != models.BountyOpen {
		return nil, Conflict("Bounty is not open for claims")
	}

	assignment := models.BountyAssignment{UserID: p.ID, BountyID: bountyID, AssignedAt: s.now()}
	if err := db.Create(&assignment).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("You have already claimed this bounty")
		}
		return nil, err
	}
	assignment.Bounty = &bounty
	return &assignment, nil
}

// Unclaim drops the caller's claim. Completed bounties keep their claims.
func (s *BountyService) Unclaim(ctx context.Context, p *auth.Principal, bountyID uint) error {
	if !p.IsUser() {
		return Forbidden("Only users can unclaim bounties")
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assignment models.BountyAssignment
		err := tx.Preload("Bounty").
			Where("user_id = ? AND bounty_id = ?", p.ID, bountyID).
			First(&assignment).Error
		if err != nil {
			return notFoundOr(err, "You have not claimed this bounty")
		}
		if assignment.Bounty != nil && assignment.Bounty.Status == models.BountyCompleted {
			return Conflict("Bounty has already been completed")
		}
		return tx.Delete(&assignment).Error
	})
}

// Submit stores the submission on the caller's claim. Re-submitting overwrites it.
func (s *BountyService) Submit(ctx context.Context, p *auth.Principal, bountyID uint, req SubmitBountyRequest) (*models.BountyAssignment, error) {
	if !p.IsUser() {
		return nil, Forbidden("Only users can submit to bounties")
	}
	db := s.DB.WithContext(ctx)

	var assignment models.BountyAssignment
	err := db.Where("user_id = ? AND bounty_id = ?", p.ID, bountyID).First(&assignment).Error
	if err != nil {
		return nil, notFoundOr(err, "You have not claimed this bounty")
	}
	if assignment.IsWinner {
		return nil, Conflict("This bounty has already been completed with a winner")
	}

	url := req.SubmissionURL
	assignment.SubmissionURL = &url
	assignment.SubmissionNotes = req.SubmissionNotes
	err = db.Model(&models.BountyAssignment{ID: assignment.ID}).Updates(map[string]interface{}{
		"submission_url":   assignment.SubmissionURL,
		"submission_notes": assignment.SubmissionNotes,
	}).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// SelectWinner completes the bounty for winnerID. The status change, the
// assignment flags and the reward credit commit together or not at all.
func (s *BountyService) SelectWinner(ctx context.Context, p *auth.Principal, bountyID, winnerID uint) (*WinnerResult, error) {
	db := s.DB.WithContext(ctx)

	var bounty models.Bounty
	if err := db.Preload("Company").First(&bounty, bountyID).Error; err != nil {
		return nil, notFoundOr(err, "Bounty not found")
	}
	if !p.Owns(bounty.CompanyID) {
		return nil, Forbidden("Only the company that posted this bounty can select a winner")
	}
	if bounty.Status == models.BountyCompleted {
		return nil, Conflict("Bounty has already been completed")
	}

	var assignment models.BountyAssignment
	err := db.Where("user_id = ? AND bounty_id = ?", winnerID, bountyID).First(&assignment).Error
	if err != nil {
		return nil, notFoundOr(err, "This user has not claimed the bounty")
	}
	if !assignment.Submitted() {
		return nil, Conflict("This user has not submitted their work yet")
	}

	var winner models.User
	completedAt := s.now()
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Bounty{}).
			Where("id = ? AND status <> ?", bounty.ID, models.BountyCompleted).
			Updates(map[string]interface{}{
				"status":    models.BountyCompleted,
				"winner_id": winnerID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return Conflict("Bounty has already been completed")
		}

		res = tx.Model(&models.BountyAssignment{}).
			Where("id = ?", assignment.ID).
			Updates(map[string]interface{}{
				"is_winner":    true,
				"is_completed": true,
				"completed_at": completedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return NotFound("This user has not claimed the bounty")
		}

		res = tx.Model(&models.User{}).
			Where("id = ?", winnerID).
			Updates(map[string]interface{}{
				"xp":      gorm.Expr("xp + ?", bounty.RewardXP),
				"balance": gorm.Expr("balance + ?", bounty.RewardMoney),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return NotFound("Winner not found")
		}

		return tx.Select("id", "username", "xp", "balance").First(&winner, winnerID).Error
	})
	if err != nil {
		return nil, err
	}

	bounty.Status = models.BountyCompleted
	bounty.WinnerID = &winnerID
	bounty.IsOwner = true
	assignment.IsWinner = true
	assignment.IsCompleted = true
	assignment.CompletedAt = &completedAt

	return &WinnerResult{
		Bounty:     bounty,
		Assignment: assignment,
		Winner:     WinnerBalance{ID: winner.ID, Username: winner.Username, XP: winner.XP, Balance: winner.Balance},
	}, nil
}

// MyBounties lists the caller's claims with their bounties.
func (s *BountyService) MyBounties(ctx context.Context, p *auth.Principal) ([]models.BountyAssignment, error) {
	if !p.IsUser() {
		return nil, Forbidden("Only users have claimed bounties")
	}
	var assignments []models.BountyAssignment
	err := s.DB.WithContext(ctx).
		Preload("Bounty.Company").
		Where("user_id = ?", p.ID).
		Order("assigned_at DESC, id DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// Applicants lists claims on a bounty for the company that owns it.
func (s *BountyService) Applicants(ctx context.Context, p *auth.Principal, bountyID uint) ([]Applicant, error) {
	if !p.IsCompany() {
		return nil, Forbidden("Only companies can view applicants")
	}
	db := s.DB.WithContext(ctx)

	var bounty models.Bounty
	if err := db.First(&bounty, bountyID).Error; err != nil {
		return nil, notFoundOr(err, "Bounty not found")
	}
	if !p.Owns(bounty.CompanyID) {
		return nil, Forbidden("You can only view applicants for your own bounties")
	}

	var assignments []models.BountyAssignment
	if err := db.Preload("User").Where("bounty_id = ?", bountyID).Order("assigned_at ASC, id ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	out := make([]Applicant, 0, len(assignments))
	for _, a := range assignments {
		var user models.UserSummary
		if a.User != nil {
			user = a.User.Summary()
		}
		out = append(out, Applicant{
			AssignmentID:    a.ID,
			User:            user,
			AssignedAt:      a.AssignedAt,
			SubmissionURL:   a.SubmissionURL,
			SubmissionNotes: a.SubmissionNotes,
			IsCompleted:     a.IsCompleted,
			IsWinner:        a.IsWinner,
		})
	}
	return out, nil
}

// CompanyBounties lists the calling company's bounties, newest first.
func (s *BountyService) CompanyBounties(ctx context.Context, p *auth.Principal) ([]models.Bounty, error) {
	if !p.IsCompany() {
		return nil, Forbidden("Only companies can view their bounties")
	}
	db := s.DB.WithContext(ctx)
	var bounties []models.Bounty
	if err := db.Preload("Company").Where("company_id = ?", p.ID).Order("created_at DESC, id DESC").Find(&bounties).Error; err != nil {
		return nil, err
	}
	if err := s.decorate(db, bounties, p); err != nil {
		return nil, err
	}
	return bounties, nil
}

// CloseExpired closes OPEN bounties whose deadline has passed.
func (s *BountyService) CloseExpired(ctx context.Context) (int64, error) {
	res := s.DB.WithContext(ctx).Model(&models.Bounty{}).
		Where("status = ? AND deadline < ?", models.BountyOpen, s.now()).
		Update("status", models.BountyClosed)
	return res.RowsAffected, res.Error
}
