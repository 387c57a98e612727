package services

import (
	"context"
	"errors"

	"talent-hub/auth"
	"talent-hub/models"

	"gorm.io/gorm"
)

type CompanyService struct {
	DB     *gorm.DB
	Tokens *auth.Issuer
}

func NewCompanyService(db *gorm.DB, tokens *auth.Issuer) *CompanyService {
	return &CompanyService{DB: db, Tokens: tokens}
}

func (s *CompanyService) Register(ctx context.Context, req RegisterCompanyRequest) (*AuthResponse, error) {
	db := s.DB.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Company{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, Conflict("Company with this email already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	company := models.Company{Name: req.Name, Email: req.Email, Password: hash, Description: req.Description}
	if err := db.Create(&company).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("Company with this email already exists")
		}
		return nil, err
	}
	return s.authResponse(company)
}

func (s *CompanyService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).Where("email = ?", req.Email).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(company.Password, req.Password) {
		return nil, Unauthorized("Invalid email or password")
	}
	return s.authResponse(company)
}

func (s *CompanyService) authResponse(c models.Company) (*AuthResponse, error) {
	token, err := s.Tokens.Issue(auth.CompanyPrincipal(c.ID, c.Name, c.Email))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, Company: &models.CompanySummary{ID: c.ID, Name: c.Name}}, nil
}

func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (s *CompanyService) Get(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	if err := s.DB.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, notFoundOr(err, "Company not found")
	}
	return &company, nil
}

// Update is allowed only for the company itself.
func (s *CompanyService) Update(ctx context.Context, p *auth.Principal, id uint, req UpdateCompanyRequest) (*models.Company, error) {
	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Owns(company.ID) {
		return nil, Forbidden("You can only update your own company")
	}

	db := s.DB.WithContext(ctx)
	if req.Email != nil && *req.Email != company.Email {
		var count int64
		if err := db.Model(&models.Company{}).Where("email = ? AND id <> ?", *req.Email, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, Conflict("Email is already taken")
		}
		company.Email = *req.Email
	}
	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Description != nil {
		company.Description = req.Description
	}

	if err := db.Save(company).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("Email is already taken")
		}
		return nil, err
	}
	return company, nil
}

// Delete removes the company with its events and bounties.
func (s *CompanyService) Delete(ctx context.Context, p *auth.Principal, id uint) error {
	company, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !p.Owns(company.ID) {
		return Forbidden("You can only delete your own company")
	}
	return s.DB.WithContext(ctx).Delete(company).Error
}
