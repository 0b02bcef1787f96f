package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Author writes books.
type Author struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthorChanges carries a partial update; nil fields are left untouched.
type AuthorChanges struct {
	Name *string
}

// NewAuthor creates a validated Author.
func NewAuthor(name string) (*Author, error) {
	now := time.Now().UTC().Truncate(time.Second)
	author := &Author{
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := author.Validate(); err != nil {
		return nil, err
	}
	return author, nil
}

// Validate checks if the Author has valid data.
func (a *Author) Validate() error {
	if a.Name == "" {
		return NewValidationError("name", "cannot be empty", nil)
	}
	if utf8.RuneCountInString(a.Name) > MaxTitleLength {
		return NewValidationError("name", "may not be greater than 255 characters", nil)
	}
	return nil
}

// Apply updates the author with the non-nil changes.
func (a *Author) Apply(changes AuthorChanges) error {
	updated := *a
	if changes.Name != nil {
		updated.Name = strings.TrimSpace(*changes.Name)
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	*a = updated
	return nil
}
