package gsc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditWindow_LagsTwoDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	w := AuditWindow(7, now)
	assert.Equal(t, "2026-03-02", w.StartDate)
	assert.Equal(t, "2026-03-08", w.EndDate)
}

func TestAuditWindow_SingleDay(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	w := AuditWindow(1, now)
	assert.Equal(t, "2025-12-30", w.StartDate)
	assert.Equal(t, "2025-12-30", w.EndDate)
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), "https://www.alanranger.com/", "", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Search Console credentials")
}
