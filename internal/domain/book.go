package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength bounds book titles and author names.
const MaxTitleLength = 255

var publicationYearPattern = regexp.MustCompile(`^\d{4}$`)

// Book is a published work. Authors are attached through the author_book
// join table and are not loaded onto the struct.
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	PublicationYear string    `json:"publication_year"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BookChanges carries a partial update; nil fields are left untouched.
type BookChanges struct {
	Title           *string
	Description     *string
	PublicationYear *string
}

// NewBook creates a validated Book with creation/update timestamps set.
// The ID is assigned by the store.
func NewBook(title, description, publicationYear string) (*Book, error) {
	now := time.Now().UTC().Truncate(time.Second)
	book := &Book{
		Title:           strings.TrimSpace(title),
		Description:     description,
		PublicationYear: strings.TrimSpace(publicationYear),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}
	return book, nil
}

// Validate checks if the Book has valid data.
func (b *Book) Validate() error {
	if b.Title == "" {
		return NewValidationError("title", "cannot be empty", nil)
	}
	if utf8.RuneCountInString(b.Title) > MaxTitleLength {
		return NewValidationError("title", "may not be greater than 255 characters", nil)
	}
	if b.Description == "" {
		return NewValidationError("description", "cannot be empty", nil)
	}
	if !publicationYearPattern.MatchString(b.PublicationYear) {
		return NewValidationError("publication_year", "must be a four digit year", nil)
	}
	return nil
}

// Apply updates the book with the non-nil changes and bumps UpdatedAt.
// The book is left unchanged when the result would be invalid.
func (b *Book) Apply(changes BookChanges) error {
	updated := *b
	if changes.Title != nil {
		updated.Title = strings.TrimSpace(*changes.Title)
	}
	if changes.Description != nil {
		updated.Description = *changes.Description
	}
	if changes.PublicationYear != nil {
		updated.PublicationYear = strings.TrimSpace(*changes.PublicationYear)
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	*b = updated
	return nil
}
