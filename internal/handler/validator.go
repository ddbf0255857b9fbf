package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/TaskQuest_Go/internal/domain"
	"github.com/osse101/TaskQuest_Go/internal/reward"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// difficultyPattern accepts tier names; unknown tiers are scored as NORMAL
var difficultyPattern = regexp.MustCompile(`^[A-Za-z_]{1,20}$`)

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("difficulty", validateDifficulty)
	_ = v.RegisterValidation("questtype", oneOfFold(
		string(domain.QuestTypeMain), string(domain.QuestTypeSide), string(domain.QuestTypeDaily),
		string(domain.QuestTypeWeekly), string(domain.QuestTypeBoss)))
	_ = v.RegisterValidation("queststatus", oneOfFold(
		string(domain.QuestStatusActive), string(domain.QuestStatusCompleted),
		string(domain.QuestStatusFailed), string(domain.QuestStatusAbandoned)))
	_ = v.RegisterValidation("billingtype", oneOfFold(string(domain.BillingFixed), string(domain.BillingHourly)))
	_ = v.RegisterValidation("category", oneOfFold(reward.Categories...))
	_ = v.RegisterValidation("attribute", validateAttribute)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map.
// Keys are lower-cased field names so struct names never leak.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "difficulty":
			errs[field] = "Invalid difficulty"
		case "questtype":
			errs[field] = "Invalid quest type"
		case "queststatus":
			errs[field] = "Invalid quest status"
		case "billingtype":
			errs[field] = "Invalid billing type"
		case "category":
			errs[field] = "Invalid category"
		case "attribute":
			errs[field] = "Unknown attribute"
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateDifficulty(fl validator.FieldLevel) bool {
	d := fl.Field().String()
	return d == "" || difficultyPattern.MatchString(d)
}

func validateAttribute(fl validator.FieldLevel) bool {
	a := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	return a == "" || domain.IsValidAttribute(a)
}

// oneOfFold accepts the empty string or any of values, ignoring case
func oneOfFold(values ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v := strings.TrimSpace(fl.Field().String())
		if v == "" {
			return true
		}
		for _, allowed := range values {
			if strings.EqualFold(v, allowed) {
				return true
			}
		}
		return false
	}
}
