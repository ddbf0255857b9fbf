package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedInput struct {
	Difficulty string  `validate:"difficulty"`
	Type       string  `validate:"questtype"`
	Status     string  `validate:"queststatus"`
	Billing    string  `validate:"billingtype"`
	Category   string  `validate:"category"`
	Attribute  *string `validate:"omitempty,attribute"`
}

func TestValidator_CustomTags(t *testing.T) {
	InitValidator()
	v := GetValidator()

	str := func(s string) *string { return &s }

	tests := []struct {
		name    string
		input   taggedInput
		wantErr string
	}{
		// Best case
		{"all valid", taggedInput{"HARD", "MAIN", "ACTIVE", "FIXED", "TREAT", str("logic")}, ""},
		// Boundary: every tag is optional
		{"all empty", taggedInput{}, ""},
		// Edge: case insensitive
		{"lower case", taggedInput{"epic", "side", "completed", "hourly", "health", str("Focus")}, ""},
		{"unknown tier shape ok", taggedInput{Difficulty: "MYTHIC"}, ""},
		// Invalid
		{"difficulty with digits", taggedInput{Difficulty: "HARD2"}, "difficulty"},
		{"bad type", taggedInput{Type: "EPIC"}, "type"},
		{"bad status", taggedInput{Status: "DONE"}, "status"},
		{"bad billing", taggedInput{Billing: "MONTHLY"}, "billing"},
		{"bad category", taggedInput{Category: "LUXURY"}, "category"},
		{"bad attribute", taggedInput{Attribute: str("charisma")}, "attribute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, FormatValidationError(err), tt.wantErr)
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	InitValidator()

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, FormatValidationError(nil))
	})

	t.Run("non validation error", func(t *testing.T) {
		errs := FormatValidationError(assert.AnError)
		assert.Equal(t, "Invalid request format", errs["error"])
	})

	t.Run("messages per tag", func(t *testing.T) {
		err := GetValidator().ValidateStruct(CreateRewardRequest{Name: "", GoldCost: 0})
		require.Error(t, err)

		errs := FormatValidationError(err)
		assert.Equal(t, "This field is required", errs["name"])
		assert.Equal(t, "This field is required", errs["goldcost"])
	})
}
