package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInvoiceRecord(t *testing.T) {
	rec := NewInvoiceRecord("id-1", "scan.png")

	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, "scan.png", rec.Filename)
	assert.Equal(t, StatusPending, rec.Status)
	assert.Equal(t, CategoryUncategorized, rec.TaxCategory)
	assert.Zero(t, rec.TotalAmount)
}

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from RecordStatus
		to   RecordStatus
		want bool
	}{
		{from: StatusPending, to: StatusProcessing, want: true},
		{from: StatusPending, to: StatusCompleted, want: true},
		{from: StatusPending, to: StatusError, want: true},
		{from: StatusProcessing, to: StatusCompleted, want: true},
		{from: StatusProcessing, to: StatusError, want: true},
		{from: StatusProcessing, to: StatusPending, want: false},
		{from: StatusCompleted, to: StatusProcessing, want: false},
		{from: StatusCompleted, to: StatusError, want: false},
		{from: StatusError, to: StatusCompleted, want: false},
		{from: StatusCompleted, to: StatusCompleted, want: true},
		{from: StatusPending, to: StatusPending, want: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusError.IsTerminal())
}
