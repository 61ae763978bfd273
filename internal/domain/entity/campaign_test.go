package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCampaignStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from CampaignStatus
		to   CampaignStatus
		want bool
	}{
		{CampaignStatusPlanning, CampaignStatusActive, true},
		{CampaignStatusPlanning, CampaignStatusCancelled, true},
		{CampaignStatusPlanning, CampaignStatusCompleted, false},
		{CampaignStatusActive, CampaignStatusCompleted, true},
		{CampaignStatusActive, CampaignStatusCancelled, true},
		{CampaignStatusActive, CampaignStatusPlanning, false},
		{CampaignStatusCompleted, CampaignStatusActive, false},
		{CampaignStatusCompleted, CampaignStatusCancelled, false},
		{CampaignStatusCancelled, CampaignStatusActive, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestCampaignStatus_IsTerminal(t *testing.T) {
	assert.False(t, CampaignStatusPlanning.IsTerminal())
	assert.False(t, CampaignStatusActive.IsTerminal())
	assert.True(t, CampaignStatusCompleted.IsTerminal())
	assert.True(t, CampaignStatusCancelled.IsTerminal())
}

func TestCampaign_IsOverdue(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	before := deadline.Add(-time.Hour)
	after := deadline.Add(time.Hour)

	open := &Campaign{Status: CampaignStatusActive, Deadline: deadline}
	assert.False(t, open.IsOverdue(before))
	assert.True(t, open.IsOverdue(after))

	// Terminal campaigns are never overdue, however old.
	done := &Campaign{Status: CampaignStatusCompleted, Deadline: deadline}
	assert.False(t, done.IsOverdue(after))
}

func TestItemStatusFor(t *testing.T) {
	assert.Equal(t, ItemStatusPending, ItemStatusFor(0, 10))
	assert.Equal(t, ItemStatusPartial, ItemStatusFor(1, 10))
	assert.Equal(t, ItemStatusPartial, ItemStatusFor(9, 10))
	assert.Equal(t, ItemStatusCompleted, ItemStatusFor(10, 10))
}

func TestPaymentStatusFor(t *testing.T) {
	assert.Equal(t, PaymentStatusPending, PaymentStatusFor(0, 100))
	assert.Equal(t, PaymentStatusPartial, PaymentStatusFor(1, 100))
	assert.Equal(t, PaymentStatusPartial, PaymentStatusFor(99, 100))
	assert.Equal(t, PaymentStatusPaid, PaymentStatusFor(100, 100))
}

func TestItem_Remaining(t *testing.T) {
	item := &Item{TargetQty: 10, ConsumedQty: 4}
	assert.Equal(t, int64(6), item.Remaining())
}
