package recipes

import (
	"errors"
	"strings"
	"time"

	"foodpath/catalog"
)

var ErrReviewIncomplete = errors.New("Please provide both a rating and review text")

const reviewDateLayout = "1/2/2006"

// ValidateReview requires a 1 to 5 star rating and some text.
func ValidateReview(rating int, comment string) error {
	if rating < 1 || rating > 5 || strings.TrimSpace(comment) == "" {
		return ErrReviewIncomplete
	}
	return nil
}

// NewReview builds the visitor's own review, shown first in the list.
func NewReview(rating int, comment string, now time.Time) (catalog.Review, error) {
	if err := ValidateReview(rating, comment); err != nil {
		return catalog.Review{}, err
	}
	return catalog.Review{
		User:    "You",
		Rating:  rating,
		Comment: comment,
		Date:    now.Format(reviewDateLayout),
	}, nil
}

// Prepend puts r ahead of the existing reviews.
func Prepend(reviews []catalog.Review, r catalog.Review) []catalog.Review {
	return append([]catalog.Review{r}, reviews...)
}
