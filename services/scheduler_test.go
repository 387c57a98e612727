package services

import (
	"context"
	"testing"
	"time"

	"talent-hub/models"
	"talent-hub/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExpirySchedulerClosesOverdueBounties(t *testing.T) {
	db := testutil.NewDB(t)
	acme := testutil.CreateCompany(t, db, "Acme")
	overdue := testutil.CreateBounty(t, db, acme.ID, "Overdue", 1, 1)
	require.NoError(t, db.Model(&overdue).Update("deadline", time.Now().Add(-time.Hour)).Error)

	sched, err := NewBountyService(db).StartExpiryScheduler(context.Background(), 20*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sched.Shutdown() })

	assert.Eventually(t, func() bool {
		var b models.Bounty
		if err := db.First(&b, overdue.ID).Error; err != nil {
			return false
		}
		return b.Status == models.BountyClosed
	}, 2*time.Second, 20*time.Millisecond)
}
