package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"talent-hub/models"
	"talent-hub/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func submitReq(url string) SubmitBountyRequest {
	return SubmitBountyRequest{SubmissionURL: url}
}

func TestClaimTwiceConflicts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBountyService(db)
	ctx := context.Background()

	acme := testutil.CreateCompany(t, db, "Acme")
	alice := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateBounty(t, db, acme.ID, "Build UI", 150, 75000)

	_, err := svc.Claim(ctx, testutil.UserPrincipal(alice), b.ID)
	require.NoError(t, err)

	_, err = svc.Claim(ctx, testutil.UserPrincipal(alice), b.ID)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	assert.EqualError(t, err, "400: You have already claimed this bounty")

	var count int64
	require.NoError(t, db.Model(&models.BountyAssignment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestClaimMissingBounty(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")

	_, err := NewBountyService(db).Claim(context.Background(), testutil.UserPrincipal(alice), 999)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestClaimRejectsCompaniesAndClosedBounties(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBountyService(db)
	ctx := context.Background()

	acme := testutil.CreateCompany(t, db, "Acme")
	alice := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateBounty(t, db, acme.ID, "Build UI", 10, 10)

	_, err := svc.Claim(ctx, testutil.CompanyPrincipal(acme), b.ID)
	assert.Equal(t, http.StatusForbidden, StatusOf(err))

	require.NoError(t, db.Model(&b).Update("status", models.BountyClosed).Error)
	_, err = svc.Claim(ctx, testutil.UserPrincipal(alice), b.ID)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestUniqueViolationOnClaimIsConflict(t *testing.T) {
	db := testutil.NewDB(t)
	acme := testutil.CreateCompany(t, db, "Acme")
	alice := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateBounty(t, db, acme.ID, "Build UI", 10, 10)

	require.NoError(t, db.Create(&models.BountyAssignment{UserID: alice.ID, BountyID: b.ID}).Error)
	err := db.Create(&models.BountyAssignment{UserID: alice.ID, BountyID: b.ID}).Error
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
}

func TestUnclaimWithoutClaimNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	acme := testutil.CreateCompany(t, db, "Acme")
	alice := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateBounty(t, db, acme.ID, "Build UI", 10, 10)

	err := NewBountyService(db).Unclaim(context.Background(), testutil.UserPrincipal(alice), b.ID)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestUnclaimRemovesAssignmentOnly(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBountyService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	alice := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateBounty(t, db, acme.ID, "Build UI", 10, 10)

	_, err := svc.Claim(ctx, testutil.UserPrincipal(alice), b.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unclaim(ctx, testutil.UserPrincipal(alice), b.ID))

	var count int64
	require.NoError(t, db.Model(&models.BountyAssignment{}).Count(&count).Error)
	assert.Zero(t, count)

	var stored models.Bounty
	require.NoError(t, db.First(&stored, b.ID).Error)
	assert.Equal(t, models.BountyOpen, stored.Status)

	// a fresh claim is allowed again
	_, err = svc.Claim(ctx, testutil.UserPrincipal(alice), b.ID)
	assert.NoError(t, err)
}

func TestSubmitRequiresClaimAndOverwrites(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBountyService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	alice := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateBounty(t, db, acme.ID, "Build UI", 10, 10)
	p := testutil.UserPrincipal(alice)

	_, err := svc.Submit(ctx, p, b.ID, submitReq("http://x"))
	assert.Equal(t, http.StatusNotFound, StatusOf(err))

	_, err = svc.Claim(ctx, p, b.ID)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, p, b.ID, submitReq("http://first"))
	require.NoError(t, err)
	notes := "second try"
	a, err := svc.Submit(ctx, p, b.ID, SubmitBountyRequest{SubmissionURL: "http://second", SubmissionNotes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "http://second", *a.SubmissionURL)

	var stored models.BountyAssignment
	require.NoError(t, db.Where("user_id = ? AND bounty_id = ?", alice.ID, b.ID).First(&stored).Error)
	assert.Equal(t, "http://second", *stored.SubmissionURL)
	assert.Equal(t, "second try", *stored.SubmissionNotes)
	assert.False(t, stored.IsCompleted)
}

func TestSelectWinnerWithoutSubmissionConflicts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBountyService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	alice := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateBounty(t, db, acme.ID, "Build UI", 150, 75000)

	_, err := svc.Claim(ctx, testutil.UserPrincipal(alice), b.ID)
	require.NoError(t, err)

	_, err = svc.SelectWinner(ctx, testutil.CompanyPrincipal(acme), b.ID, alice.ID)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	assert.Contains(t, err.Error(), "has not submitted")

	var stored models.Bounty
	require.NoError(t, db.First(&stored, b.ID).Error)
	assert.Equal(t, models.BountyOpen, stored.Status)
	assert.Nil(t, stored.WinnerID)
}

func TestSelectWinnerSuccess(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBountyService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	b := testutil.CreateBounty(t, db, acme.ID, "Build UI", 150, 75000)

	for _, u := range []models.User{alice, bob} {
		_, err := svc.Claim(ctx, testutil.UserPrincipal(u), b.ID)
		require.NoError(t, err)
		_, err = svc.Submit(ctx, testutil.UserPrincipal(u), b.ID, submitReq("http://x"))
		require.NoError(t, err)
	}

	res, err := svc.SelectWinner(ctx, testutil.CompanyPrincipal(acme), b.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BountyCompleted, res.Bounty.Status)
	assert.EqualValues(t, 150, res.Winner.XP)
	assert.EqualValues(t, 75000, res.Winner.Balance)

	var stored models.Bounty
	require.NoError(t, db.First(&stored, b.ID).Error)
	assert.Equal(t, models.BountyCompleted, stored.Status)
	require.NotNil(t, stored.WinnerID)
	assert.Equal(t, alice.ID, *stored.WinnerID)

	var winners []models.BountyAssignment
	require.NoError(t, db.Where("bounty_id = ? AND is_winner = ?", b.ID, true).Find(&winners).Error)
	require.Len(t, winners, 1)
	assert.Equal(t, alice.ID, winners[0].UserID)
	assert.True(t, winners[0].IsCompleted)
	assert.NotNil(t, winners[0].CompletedAt)

	var a, o models.User
	require.NoError(t, db.First(&a, alice.ID).Error)
	require.NoError(t, db.First(&o, bob.ID).Error)
	assert.EqualValues(t, 150, a.XP)
	assert.EqualValues(t, 75000, a.Balance)
	assert.Zero(t, o.XP)
	assert.Zero(t, o.Balance)

	// completion is one-way
	_, err = svc.SelectWinner(ctx, testutil.CompanyPrincipal(acme), b.ID, bob.ID)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	require.NoError(t, db.First(&a, alice.ID).Error)
	assert.EqualValues(t, 150, a.XP)

	// the winner can no longer resubmit, and nobody can unclaim
	_, err = svc.Submit(ctx, testutil.UserPrincipal(alice), b.ID, submitReq("http://y"))
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	err = svc.Unclaim(ctx, testutil.UserPrincipal(bob), b.ID)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestSelectWinnerErrorPrecedence(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBountyService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	other := testutil.CreateCompany(t, db, "Other")
	alice := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateBounty(t, db, acme.ID, "Build UI", 1, 1)

	_, err := svc.SelectWinner(ctx, testutil.CompanyPrincipal(acme), 999, alice.ID)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))

	_, err = svc.SelectWinner(ctx, testutil.CompanyPrincipal(other), b.ID, alice.ID)
	assert.Equal(t, http.StatusForbidden, StatusOf(err))

	_, err = svc.SelectWinner(ctx, testutil.UserPrincipal(alice), b.ID, alice.ID)
	assert.Equal(t, http.StatusForbidden, StatusOf(err))

	_, err = svc.SelectWinner(ctx, testutil.CompanyPrincipal(acme), b.ID, alice.ID)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestSelectWinnerRollsBackOnMidTransactionFailure(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBountyService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	alice := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateBounty(t, db, acme.ID, "Build UI", 150, 75000)

	_, err := svc.Claim(ctx, testutil.UserPrincipal(alice), b.ID)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, testutil.UserPrincipal(alice), b.ID, submitReq("http://x"))
	require.NoError(t, err)

	boom := errors.New("reward credit failed")
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_user_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "users" {
			_ = tx.AddError(boom)
		}
	}))

	_, err = svc.SelectWinner(ctx, testutil.CompanyPrincipal(acme), b.ID, alice.ID)
	require.ErrorIs(t, err, boom)

	require.NoError(t, db.Callback().Update().Remove("test:fail_user_update"))

	var stored models.Bounty
	require.NoError(t, db.First(&stored, b.ID).Error)
	assert.Equal(t, models.BountyOpen, stored.Status)
	assert.Nil(t, stored.WinnerID)

	var a models.BountyAssignment
	require.NoError(t, db.Where("user_id = ? AND bounty_id = ?", alice.ID, b.ID).First(&a).Error)
	assert.False(t, a.IsWinner)
	assert.False(t, a.IsCompleted)
	assert.Nil(t, a.CompletedAt)

	var u models.User
	require.NoError(t, db.First(&u, alice.ID).Error)
	assert.Zero(t, u.XP)
	assert.Zero(t, u.Balance)

	// once the fault is gone the same selection succeeds
	_, err = svc.SelectWinner(ctx, testutil.CompanyPrincipal(acme), b.ID, alice.ID)
	require.NoError(t, err)
}

func TestListComputesIsOwnerAndOrdersByDeadline(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBountyService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	tech := testutil.CreateCompany(t, db, "TechCorp")
	alice := testutil.CreateUser(t, db, "alice")

	late := testutil.CreateBounty(t, db, acme.ID, "Late", 1, 1)
	soon := testutil.CreateBounty(t, db, tech.ID, "Soon", 1, 1)
	require.NoError(t, db.Model(&soon).Update("deadline", time.Now().Add(time.Hour)).Error)

	_, err := svc.Claim(ctx, testutil.UserPrincipal(alice), late.ID)
	require.NoError(t, err)

	list, err := svc.List(ctx, testutil.CompanyPrincipal(acme), "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Soon", list[0].Title)
	assert.False(t, list[0].IsOwner)
	assert.True(t, list[1].IsOwner)
	assert.EqualValues(t, 1, list[1].ClaimCount)
	assert.Equal(t, "Acme", list[1].Company.Name)

	anon, err := svc.List(ctx, nil, "")
	require.NoError(t, err)
	for _, b := range anon {
		assert.False(t, b.IsOwner)
	}

	closed, err := svc.List(ctx, nil, string(models.BountyClosed))
	require.NoError(t, err)
	assert.Empty(t, closed)
}

func TestCreateGetRoundTripAndSlug(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBountyService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	desc := "Create a modern mobile UI"
	deadline := time.Date(2030, 1, 15, 23, 59, 59, 0, time.UTC)

	created, err := svc.Create(ctx, testutil.CompanyPrincipal(acme), CreateBountyRequest{
		Title: "Build Mobile App UI", Description: &desc, Deadline: deadline, RewardXP: 150, RewardMoney: 75000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BountyOpen, created.Status)

	got, err := svc.Get(ctx, nil, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, desc, *got.Description)
	assert.True(t, deadline.Equal(got.Deadline))
	assert.EqualValues(t, 150, got.RewardXP)
	assert.EqualValues(t, 75000, got.RewardMoney)
	assert.Equal(t, acme.ID, got.CompanyID)

	bySlug, err := svc.GetBySlug(ctx, nil, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)
	assert.Contains(t, created.Slug, "build-mobile-app-ui")

	_, err = svc.Create(ctx, testutil.UserPrincipal(testutil.CreateUser(t, db, "alice")), CreateBountyRequest{Title: "x", Deadline: deadline})
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
}

func TestUpdateCannotReopenCompleted(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBountyService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	b := testutil.CreateBounty(t, db, acme.ID, "Build UI", 1, 1)

	closed := string(models.BountyClosed)
	updated, err := svc.Update(ctx, testutil.CompanyPrincipal(acme), b.ID, UpdateBountyRequest{Status: &closed})
	require.NoError(t, err)
	assert.Equal(t, models.BountyClosed, updated.Status)

	require.NoError(t, db.Model(&b).Update("status", models.BountyCompleted).Error)
	open := string(models.BountyOpen)
	_, err = svc.Update(ctx, testutil.CompanyPrincipal(acme), b.ID, UpdateBountyRequest{Status: &open})
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestApplicantsAndCompanyBountiesAreCompanyOnly(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBountyService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	other := testutil.CreateCompany(t, db, "Other")
	alice := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateBounty(t, db, acme.ID, "Build UI", 1, 1)
	_, err := svc.Claim(ctx, testutil.UserPrincipal(alice), b.ID)
	require.NoError(t, err)

	_, err = svc.Applicants(ctx, nil, b.ID)
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
	assert.EqualError(t, err, "403: Only companies can view applicants")

	_, err = svc.Applicants(ctx, testutil.CompanyPrincipal(other), b.ID)
	assert.Equal(t, http.StatusForbidden, StatusOf(err))

	applicants, err := svc.Applicants(ctx, testutil.CompanyPrincipal(acme), b.ID)
	require.NoError(t, err)
	require.Len(t, applicants, 1)
	assert.Equal(t, "alice", applicants[0].User.Username)

	_, err = svc.CompanyBounties(ctx, testutil.UserPrincipal(alice))
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
	mine, err := svc.CompanyBounties(ctx, testutil.CompanyPrincipal(acme))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].IsOwner)

	claims, err := svc.MyBounties(ctx, testutil.UserPrincipal(alice))
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, "Build UI", claims[0].Bounty.Title)
}

func TestCloseExpired(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewBountyService(db)
	acme := testutil.CreateCompany(t, db, "Acme")
	past := testutil.CreateBounty(t, db, acme.ID, "Past", 1, 1)
	future := testutil.CreateBounty(t, db, acme.ID, "Future", 1, 1)
	require.NoError(t, db.Model(&past).Update("deadline", time.Now().Add(-time.Hour)).Error)

	n, err := svc.CloseExpired(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var p, f models.Bounty
	require.NoError(t, db.First(&p, past.ID).Error)
	require.NoError(t, db.First(&f, future.ID).Error)
	assert.Equal(t, models.BountyClosed, p.Status)
	assert.Equal(t, models.BountyOpen, f.Status)
}
