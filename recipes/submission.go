package recipes

import (
	"errors"
	"slices"
	"strings"

	"foodpath/catalog"
)

var (
	ErrTitleRequired        = errors.New("recipe title is required")
	ErrDescriptionRequired  = errors.New("description is required")
	ErrCategoryInvalid      = errors.New("category must be one of diet, home, healthy, gym")
	ErrTimeInvalid          = errors.New("preparation time must be at least 1 minute")
	ErrIngredientsRequired  = errors.New("at least one ingredient is required")
	ErrInstructionsRequired = errors.New("at least one instruction is required")
)

// Submission is a visitor-submitted recipe.
type Submission struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	TimeMinutes  int      `json:"time"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// ValidateSubmission trims the fields, drops blank ingredient and instruction
// rows and reports every problem at once.
func ValidateSubmission(s Submission) (Submission, error) {
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	s.Category = strings.ToLower(strings.TrimSpace(s.Category))
	s.Ingredients = compact(s.Ingredients)
	s.Instructions = compact(s.Instructions)

	var errs []error
	if s.Title == "" {
		errs = append(errs, ErrTitleRequired)
	}
	if s.Description == "" {
		errs = append(errs, ErrDescriptionRequired)
	}
	if !slices.Contains(catalog.RecipeCategories(), s.Category) {
		errs = append(errs, ErrCategoryInvalid)
	}
	if s.TimeMinutes < 1 {
		errs = append(errs, ErrTimeInvalid)
	}
	if len(s.Ingredients) == 0 {
		errs = append(errs, ErrIngredientsRequired)
	}
	if len(s.Instructions) == 0 {
		errs = append(errs, ErrInstructionsRequired)
	}

	return s, errors.Join(errs...)
}

func compact(rows []string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// IsValidation reports whether err came from review or submission checks.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrReviewIncomplete, ErrTitleRequired, ErrDescriptionRequired, ErrCategoryInvalid,
		ErrTimeInvalid, ErrIngredientsRequired, ErrInstructionsRequired,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
