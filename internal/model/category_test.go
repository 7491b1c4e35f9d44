package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   TaxCategory
		wantOK bool
	}{
		{name: "exact display name", in: "Travel", want: CategoryTravel, wantOK: true},
		{name: "case insensitive", in: "car and truck expenses", want: CategoryCarTruck, wantOK: true},
		{name: "surrounding whitespace", in: "  Deductible Meals  ", want: CategoryMeals, wantOK: true},
		{name: "unknown falls back", in: "Snacks", want: CategoryUncategorized, wantOK: false},
		{name: "empty falls back", in: "", want: CategoryUncategorized, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCategory(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestAllCategoriesAreValid(t *testing.T) {
	cats := AllCategories()
	assert.Len(t, cats, 22)
	for _, cat := range cats {
		assert.True(t, cat.IsValid(), string(cat))
	}
	assert.False(t, TaxCategory("Snacks").IsValid())
}
