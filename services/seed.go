package services

import (
	"context"
	"time"

	"talent-hub/auth"
	"talent-hub/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const seedPassword = "password123"

// Seed wipes the community tables and loads a small demo data set.
func Seed(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range []interface{}{
			&models.CommentVote{}, &models.Comment{}, &models.Post{},
			&models.EventRegistration{}, &models.Event{},
			&models.BountyAssignment{}, &models.Bounty{},
			&models.Application{}, &models.BoardBounty{},
			&models.Company{}, &models.Vote{}, &models.User{},
		} {
			if err := wipe.Delete(m).Error; err != nil {
				return err
			}
		}

		users := []models.User{
			{Username: "alice", Email: "alice@example.com"},
			{Username: "bob", Email: "bob@example.com"},
			{Username: "carol", Email: "carol@example.com"},
			{Username: "dave", Email: "dave@example.com"},
			{Username: "eve", Email: "eve@example.com"},
		}
		for i := range users {
			users[i].Password = hash
			users[i].Role = models.RoleTalent
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}
		log.Info("Seeded users", zap.Int("count", len(users)))

		companies := []models.Company{
			{Name: "Acme Co", Email: "acme@example.com", Description: strPtr("Acme company")},
			{Name: "TechCorp", Email: "tech@example.com", Description: strPtr("TechCorp")},
			{Name: "DesignHub", Email: "design@example.com", Description: strPtr("DesignHub")},
			{Name: "DataFlow", Email: "dataflow@example.com", Description: strPtr("DataFlow")},
			{Name: "SecureNet", Email: "securenet@example.com", Description: strPtr("SecureNet")},
		}
		for i := range companies {
			companies[i].Password = hash
		}
		if err := tx.Create(&companies).Error; err != nil {
			return err
		}
		log.Info("Seeded companies", zap.Int("count", len(companies)))

		posts := []models.Post{
			{UserID: users[0].ID, Content: "Hello from Alice!"},
			{UserID: users[1].ID, Content: "Bob's first post."},
			{UserID: users[2].ID, Content: "Carol shares an update."},
			{UserID: users[3].ID, Content: "Dave's insight on tech."},
			{UserID: users[4].ID, Content: "Eve says hi."},
		}
		if err := tx.Create(&posts).Error; err != nil {
			return err
		}

		comments := []models.Comment{
			{PostID: posts[0].ID, Content: "Nice post Alice!"},
			{PostID: posts[0].ID, Content: "I agree with this."},
			{PostID: posts[1].ID, Content: "Thanks for sharing."},
			{PostID: posts[2].ID, Content: "Interesting."},
			{PostID: posts[3].ID, Content: "Great read."},
		}
		if err := tx.Create(&comments).Error; err != nil {
			return err
		}

		votes := []models.Vote{
			{VoteType: models.VoteUp},
			{VoteType: models.VoteUp},
			{VoteType: models.VoteDown},
			{VoteType: models.VoteUp},
			{VoteType: models.VoteDown},
		}
		if err := tx.Create(&votes).Error; err != nil {
			return err
		}
		links := make([]models.CommentVote, len(votes))
		for i, v := range votes {
			links[i] = models.CommentVote{CommentID: comments[i].ID, VoteID: v.ID}
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
		log.Info("Seeded posts", zap.Int("posts", len(posts)), zap.Int("comments", len(comments)), zap.Int("votes", len(votes)))

		events := []models.Event{
			{Title: "React Meetup", Description: "Discuss React 18 features", EventDate: seedTime("2025-02-20T18:00:00Z"), CompanyID: companies[0].ID, RegisteredQuota: 100},
			{Title: "Design Workshop", Description: "UI/UX hands-on", EventDate: seedTime("2025-03-05T10:00:00Z"), CompanyID: companies[1].ID, RegisteredQuota: 50},
			{Title: "Data Summit", Description: "Scaling Postgres", EventDate: seedTime("2025-04-01T09:00:00Z"), CompanyID: companies[2].ID, RegisteredQuota: 200},
			{Title: "Security Talk", Description: "App security best practices", EventDate: seedTime("2025-01-30T14:00:00Z"), CompanyID: companies[3].ID, RegisteredQuota: 150},
			{Title: "Hiring Fair", Description: "Meet talent", EventDate: seedTime("2025-05-12T11:00:00Z"), CompanyID: companies[4].ID, RegisteredQuota: 300},
		}
		if err := tx.Create(&events).Error; err != nil {
			return err
		}
		log.Info("Seeded events", zap.Int("count", len(events)))

		bounties := []models.Bounty{
			{Title: "Build Mobile App UI", CompanyID: companies[0].ID, Description: strPtr("Create a modern mobile UI"), Deadline: seedTime("2025-01-15T23:59:59Z"), RewardXP: 150, RewardMoney: 75000, Status: models.BountyOpen},
			{Title: "Backend API Development", CompanyID: companies[1].ID, Description: strPtr("Build REST APIs"), Deadline: seedTime("2025-01-20T23:59:59Z"), RewardXP: 200, RewardMoney: 100000, Status: models.BountyOpen},
			{Title: "Database Migration", CompanyID: companies[2].ID, Description: strPtr("Migrate DB"), Deadline: seedTime("2025-01-10T23:59:59Z"), RewardXP: 100, RewardMoney: 50000, Status: models.BountyOpen},
			{Title: "Security Audit", CompanyID: companies[3].ID, Description: strPtr("Security audit"), Deadline: seedTime("2024-12-31T23:59:59Z"), RewardXP: 250, RewardMoney: 150000, Status: models.BountyClosed},
			{Title: "UI/UX Redesign", CompanyID: companies[4].ID, Description: strPtr("Redesign website"), Deadline: seedTime("2025-02-01T23:59:59Z"), RewardXP: 180, RewardMoney: 90000, Status: models.BountyOpen},
		}
		if err := tx.Create(&bounties).Error; err != nil {
			return err
		}
		for i := range bounties {
			bounties[i].Slug = bountySlug(bounties[i].Title, bounties[i].ID)
			if err := tx.Model(&bounties[i]).Update("slug", bounties[i].Slug).Error; err != nil {
				return err
			}
		}
		log.Info("Seeded bounties", zap.Int("count", len(bounties)))
		return nil
	})
}

func strPtr(s string) *string { return &s }

func seedTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}
