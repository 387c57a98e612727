package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"talent-hub/models"
	"talent-hub/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterBeyondQuotaConflicts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewEventService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	ev := testutil.CreateEvent(t, db, acme.ID, "Meetup", 2)

	for _, name := range []string{"alice", "bob"} {
		u := testutil.CreateUser(t, db, name)
		_, err := svc.Register(ctx, testutil.UserPrincipal(u), RegisterEventRequest{EventID: ev.ID})
		require.NoError(t, err)
	}

	carol := testutil.CreateUser(t, db, "carol")
	_, err := svc.Register(ctx, testutil.UserPrincipal(carol), RegisterEventRequest{EventID: ev.ID})
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	assert.EqualError(t, err, "400: Event registration quota is full")

	var count int64
	require.NoError(t, db.Model(&models.EventRegistration{}).Where("event_id = ?", ev.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRegisterTwiceConflicts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewEventService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	ev := testutil.CreateEvent(t, db, acme.ID, "Meetup", 10)
	alice := testutil.CreateUser(t, db, "alice")

	_, err := svc.Register(ctx, testutil.UserPrincipal(alice), RegisterEventRequest{EventID: ev.ID})
	require.NoError(t, err)
	_, err = svc.Register(ctx, testutil.UserPrincipal(alice), RegisterEventRequest{EventID: ev.ID})
	assert.EqualError(t, err, "400: User already registered to this event")
}

func TestUnregisterThenRegisterAgain(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewEventService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	ev := testutil.CreateEvent(t, db, acme.ID, "Meetup", 1)
	alice := testutil.CreateUser(t, db, "alice")
	p := testutil.UserPrincipal(alice)

	err := svc.Unregister(ctx, p, ev.ID, alice.ID)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))

	_, err = svc.Register(ctx, p, RegisterEventRequest{EventID: ev.ID})
	require.NoError(t, err)
	require.NoError(t, svc.Unregister(ctx, p, ev.ID, alice.ID))
	_, err = svc.Register(ctx, p, RegisterEventRequest{EventID: ev.ID})
	assert.NoError(t, err)
}

func TestRegisterAuthorization(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewEventService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	ev := testutil.CreateEvent(t, db, acme.ID, "Meetup", 5)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	_, err := svc.Register(ctx, testutil.CompanyPrincipal(acme), RegisterEventRequest{EventID: ev.ID})
	assert.Equal(t, http.StatusForbidden, StatusOf(err))

	_, err = svc.Register(ctx, testutil.UserPrincipal(alice), RegisterEventRequest{EventID: ev.ID, UserID: &bob.ID})
	assert.Equal(t, http.StatusForbidden, StatusOf(err))

	_, err = svc.Register(ctx, testutil.UserPrincipal(alice), RegisterEventRequest{EventID: 999})
	assert.Equal(t, http.StatusNotFound, StatusOf(err))

	_, err = svc.Register(ctx, testutil.UserPrincipal(alice), RegisterEventRequest{EventID: ev.ID})
	require.NoError(t, err)

	// bob cannot drop alice, the owning company can
	err = svc.Unregister(ctx, testutil.UserPrincipal(bob), ev.ID, alice.ID)
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
	assert.NoError(t, svc.Unregister(ctx, testutil.CompanyPrincipal(acme), ev.ID, alice.ID))
}

func TestEventCreateGetRoundTrip(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewEventService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	when := time.Date(2030, 2, 20, 18, 0, 0, 0, time.UTC)

	created, err := svc.Create(ctx, testutil.CompanyPrincipal(acme), CreateEventRequest{
		Title: "React Meetup", Description: "Discuss React", EventDate: when, RegisteredQuota: 100,
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, nil, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "React Meetup", got.Title)
	assert.Equal(t, "Discuss React", got.Description)
	assert.True(t, when.Equal(got.EventDate))
	assert.Equal(t, 100, got.RegisteredQuota)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.False(t, got.IsOwner)

	owned, err := svc.Get(ctx, testutil.CompanyPrincipal(acme), created.ID)
	require.NoError(t, err)
	assert.True(t, owned.IsOwner)

	_, err = svc.Get(ctx, nil, 999)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestEventOwnershipAndRegistrants(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewEventService(db)
	ctx := context.Background()
	acme := testutil.CreateCompany(t, db, "Acme")
	other := testutil.CreateCompany(t, db, "Other")
	alice := testutil.CreateUser(t, db, "alice")
	ev := testutil.CreateEvent(t, db, acme.ID, "Meetup", 5)

	_, err := svc.Register(ctx, testutil.UserPrincipal(alice), RegisterEventRequest{EventID: ev.ID})
	require.NoError(t, err)

	title := "Renamed"
	_, err = svc.Update(ctx, testutil.CompanyPrincipal(other), ev.ID, UpdateEventRequest{Title: &title})
	assert.Equal(t, http.StatusForbidden, StatusOf(err))

	zero := 0
	_, err = svc.Update(ctx, testutil.CompanyPrincipal(acme), ev.ID, UpdateEventRequest{RegisteredQuota: &zero})
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))

	updated, err := svc.Update(ctx, testutil.CompanyPrincipal(acme), ev.ID, UpdateEventRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.EqualValues(t, 1, updated.CurrentRegistrations)

	_, err = svc.Registrants(ctx, nil, ev.ID)
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
	_, err = svc.Registrants(ctx, testutil.CompanyPrincipal(other), ev.ID)
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
	regs, err := svc.Registrants(ctx, testutil.CompanyPrincipal(acme), ev.ID)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, "alice", regs[0].User.Username)

	mine, err := svc.CompanyEvents(ctx, testutil.CompanyPrincipal(acme))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].IsOwner)

	public, err := svc.ListByCompany(ctx, nil, acme.ID)
	require.NoError(t, err)
	assert.Len(t, public, 1)

	assert.Equal(t, http.StatusForbidden, StatusOf(svc.Delete(ctx, testutil.CompanyPrincipal(other), ev.ID)))
	require.NoError(t, svc.Delete(ctx, testutil.CompanyPrincipal(acme), ev.ID))

	var count int64
	require.NoError(t, db.Model(&models.EventRegistration{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEventListOrder(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewEventService(db)
	acme := testutil.CreateCompany(t, db, "Acme")
	later := testutil.CreateEvent(t, db, acme.ID, "Later", 5)
	sooner := testutil.CreateEvent(t, db, acme.ID, "Sooner", 5)
	require.NoError(t, db.Model(&later).Update("event_date", time.Now().Add(60*24*time.Hour)).Error)
	require.NoError(t, db.Model(&sooner).Update("event_date", time.Now().Add(24*time.Hour)).Error)

	list, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Sooner", list[0].Title)
	assert.Equal(t, "Later", list[1].Title)
}
