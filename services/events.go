package services

import (
	"context"

	"talent-hub/auth"
	"talent-hub/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventService struct {
	DB *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{DB: db}
}

// registrationCounts maps event id to its registration count.
func registrationCounts(db *gorm.DB, eventIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		EventID uint
		Total   int64
	}
	err := db.Model(&models.EventRegistration{}).
		Select("event_id, COUNT(*) AS total").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.EventID] = r.Total
	}
	return counts, nil
}

func (s *EventService) views(ctx context.Context, events []models.Event, p *auth.Principal) ([]EventView, error) {
	ids := make([]uint, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	counts, err := registrationCounts(s.DB.WithContext(ctx), ids)
	if err != nil {
		return nil, err
	}
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		v := toEventView(e, counts[e.ID])
		v.IsOwner = p.Owns(e.CompanyID)
		out = append(out, v)
	}
	return out, nil
}

func (s *EventService) Create(ctx context.Context, p *auth.Principal, req CreateEventRequest) (*EventView, error) {
	if !p.IsCompany() {
		return nil, Forbidden("Only companies can create events")
	}
	db := s.DB.WithContext(ctx)

	var company models.Company
	if err := db.First(&company, p.ID).Error; err != nil {
		return nil, notFoundOr(err, "Company not found")
	}

	event := models.Event{
		Title:           req.Title,
		Description:     req.Description,
		EventDate:       req.EventDate,
		CompanyID:       company.ID,
		RegisteredQuota: req.RegisteredQuota,
	}
	if err := db.Create(&event).Error; err != nil {
		return nil, err
	}
	event.Company = company
	v := toEventView(event, 0)
	v.IsOwner = true
	return &v, nil
}

// List returns all events, soonest first.
func (s *EventService) List(ctx context.Context, p *auth.Principal) ([]EventView, error) {
	var events []models.Event
	if err := s.DB.WithContext(ctx).Preload("Company").Order("event_date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return s.views(ctx, events, p)
}

func (s *EventService) Get(ctx context.Context, p *auth.Principal, id uint) (*EventView, error) {
	db := s.DB.WithContext(ctx)
	var event models.Event
	if err := db.Preload("Company").First(&event, id).Error; err != nil {
		return nil, notFoundOr(err, "Event not found")
	}

	var regs []models.EventRegistration
	if err := db.Preload("User").Where("event_id = ?", id).Order("registered_at ASC").Find(&regs).Error; err != nil {
		return nil, err
	}

	v := toEventView(event, int64(len(regs)))
	v.IsOwner = p.Owns(event.CompanyID)
	v.RegisteredUsers = make([]models.UserSummary, 0, len(regs))
	for _, r := range regs {
		v.RegisteredUsers = append(v.RegisteredUsers, r.User.Summary())
	}
	return &v, nil
}

func (s *EventService) ownedEvent(db *gorm.DB, p *auth.Principal, id uint, action string) (*models.Event, error) {
	var event models.Event
	if err := db.Preload("Company").First(&event, id).Error; err != nil {
		return nil, notFoundOr(err, "Event not found")
	}
	if !p.Owns(event.CompanyID) {
		return nil, Forbidden("You can only " + action + " your own events")
	}
	return &event, nil
}

func (s *EventService) Update(ctx context.Context, p *auth.Principal, id uint, req UpdateEventRequest) (*EventView, error) {
	db := s.DB.WithContext(ctx)
	event, err := s.ownedEvent(db, p, id, "update")
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
		event.Title = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
		event.Description = *req.Description
	}
	if req.EventDate != nil {
		updates["event_date"] = *req.EventDate
		event.EventDate = *req.EventDate
	}
	if req.RegisteredQuota != nil {
		var current int64
		if err := db.Model(&models.EventRegistration{}).Where("event_id = ?", id).Count(&current).Error; err != nil {
			return nil, err
		}
		if int64(*req.RegisteredQuota) < current {
			return nil, Conflict("Quota cannot be lower than the current number of registrations")
		}
		updates["registered_quota"] = *req.RegisteredQuota
		event.RegisteredQuota = *req.RegisteredQuota
	}
	if len(updates) > 0 {
		if err := db.Model(&models.Event{ID: event.ID}).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	views, err := s.views(ctx, []models.Event{*event}, p)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *EventService) Delete(ctx context.Context, p *auth.Principal, id uint) error {
	db := s.DB.WithContext(ctx)
	event, err := s.ownedEvent(db, p, id, "delete")
	if err != nil {
		return err
	}
	return db.Delete(&models.Event{ID: event.ID}).Error
}

// Register signs the calling user up for an event. The event row is locked
// while the quota is checked so concurrent sign-ups cannot overfill it.
func (s *EventService) Register(ctx context.Context, p *auth.Principal, req RegisterEventRequest) (*models.EventRegistration, error) {
	if !p.IsUser() {
		return nil, Forbidden("Only users can register for events")
	}
	if req.UserID != nil && *req.UserID != p.ID {
		return nil, Forbidden("You can only register yourself")
	}

	var reg models.EventRegistration
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, p.ID).Error; err != nil {
			return notFoundOr(err, "User not found")
		}

		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, req.EventID).Error; err != nil {
			return notFoundOr(err, "Event not found")
		}

		var current int64
		if err := tx.Model(&models.EventRegistration{}).Where("event_id = ?", event.ID).Count(&current).Error; err != nil {
			return err
		}
		if current >= int64(event.RegisteredQuota) {
			return Conflict("Event registration quota is full")
		}

		var existing int64
		if err := tx.Model(&models.EventRegistration{}).
			Where("event_id = ? AND user_id = ?", event.ID, user.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return Conflict("User already registered to this event")
		}

		reg = models.EventRegistration{UserID: user.ID, EventID: event.ID}
		if err := tx.Create(&reg).Error; err != nil {
			if isUniqueViolation(err) {
				return Conflict("User already registered to this event")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Unregister removes a registration. The user themself or the event's company may do it.
func (s *EventService) Unregister(ctx context.Context, p *auth.Principal, eventID, userID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, eventID).Error; err != nil {
			return notFoundOr(err, "Event not found")
		}
		self := p.IsUser() && p.ID == userID
		if !self && !p.Owns(event.CompanyID) {
			return Forbidden("You can only unregister yourself")
		}

		res := tx.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&models.EventRegistration{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NotFound("Registration not found")
		}
		return nil
	})
}

// ListByCompany is the public list of a company's events.
func (s *EventService) ListByCompany(ctx context.Context, p *auth.Principal, companyID uint) ([]EventView, error) {
	db := s.DB.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Company{}).Where("id = ?", companyID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, NotFound("Company not found")
	}

	var events []models.Event
	if err := db.Preload("Company").Where("company_id = ?", companyID).Order("event_date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return s.views(ctx, events, p)
}

// CompanyEvents lists the calling company's own events.
func (s *EventService) CompanyEvents(ctx context.Context, p *auth.Principal) ([]EventView, error) {
	if !p.IsCompany() {
		return nil, Forbidden("Only companies can view their events")
	}
	var events []models.Event
	err := s.DB.WithContext(ctx).Preload("Company").
		Where("company_id = ?", p.ID).
		Order("created_at DESC, id DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return s.views(ctx, events, p)
}

// Registrants lists who signed up for an event. Owning company only.
func (s *EventService) Registrants(ctx context.Context, p *auth.Principal, eventID uint) ([]Registrant, error) {
	if !p.IsCompany() {
		return nil, Forbidden("Only companies can view registrants")
	}
	db := s.DB.WithContext(ctx)

	var event models.Event
	if err := db.First(&event, eventID).Error; err != nil {
		return nil, notFoundOr(err, "Event not found")
	}
	if !p.Owns(event.CompanyID) {
		return nil, Forbidden("You don't have permission to view registrants for this event")
	}

	var regs []models.EventRegistration
	if err := db.Preload("User").Where("event_id = ?", eventID).Order("registered_at ASC, id ASC").Find(&regs).Error; err != nil {
		return nil, err
	}
	out := make([]Registrant, 0, len(regs))
	for _, r := range regs {
		out = append(out, Registrant{User: r.User.Summary(), RegisteredAt: r.RegisteredAt})
	}
	return out, nil
}
