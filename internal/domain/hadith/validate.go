package hadith

import (
	"errors"
	"fmt"
)

// Validate reports a record that cannot have come from a well-formed response.
func (r Record) Validate() error {
	if r.ID < 1 {
		return fmt.Errorf("hadith_id %d: must be positive", r.ID)
	}
	return nil
}

// Validate checks the identifying fields of a book.
func (b Book) Validate() error {
	if b.ID < 1 {
		return fmt.Errorf("book_id %d: must be positive", b.ID)
	}
	if b.EnglishTitle == "" {
		return fmt.Errorf("book %d: en_title is empty", b.ID)
	}
	return nil
}

// Validate checks every chapter of the list.
func (l ChapterList) Validate() error {
	var errs []error
	for i, ch := range l.Chapters {
		if ch.ID < 1 {
			errs = append(errs, fmt.Errorf("chapters[%d]: chapter_id %d: must be positive", i, ch.ID))
		}
	}
	return errors.Join(errs...)
}

// Validate checks every item of the page that knows how to validate itself.
func (p Page[T]) Validate() error {
	if p.Page < 0 || p.Pages < 0 || p.Total < 0 {
		return fmt.Errorf("page %d of %d (total %d): negative value", p.Page, p.Pages, p.Total)
	}
	return validateAll("results", p.Results)
}

// Validate checks every search hit.
func (o SearchOutcome) Validate() error {
	return validateAll("results", o.Results)
}

func validateAll[T any](field string, items []T) error {
	var errs []error
	for i, it := range items {
		v, ok := any(it).(interface{ Validate() error })
		if !ok {
			return nil
		}
		if err := v.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s[%d]: %w", field, i, err))
		}
	}
	return errors.Join(errs...)
}
