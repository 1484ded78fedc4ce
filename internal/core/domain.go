package core

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DateLayout is the fixed calendar-date encoding. The form is fixed-width and
// zero-padded, so lexicographic order matches chronological order.
const DateLayout = "2006-01-02"

type (
	Role string

	// User is one identity from the fixed roster. The Key is immutable once
	// created and time entries reference it as their owner.
	User struct {
		Key   string `json:"key"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  Role   `json:"role"`
	}

	// TimeEntry is one recorded unit of work owned by a single user.
	// CreatedAt is set once at creation and never changes afterwards.
	TimeEntry struct {
		Key          string  `json:"key"`
		OwnerKey     string  `json:"owner_key"`
		Date         string  `json:"date"` // YYYY-MM-DD
		Hours        float64 `json:"hours"`
		Description  string  `json:"description"`
		MainCategory string  `json:"main_category"`
		SubCategory  string  `json:"sub_category"`
		CreatedAt    string  `json:"created_at"` // RFC3339
	}
)

var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidHours       = errors.New("invalid hours")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrEmptyOwner         = errors.New("empty owner key")
	ErrUnknownCategory    = errors.New("unknown main category")
	ErrUnknownSubcategory = errors.New("subcategory not in main category")
	ErrEntryNotFound      = errors.New("time entry not found")
)

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// IsAdmin reports whether the user may see aggregates across all owners.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidateDate checks the strict YYYY-MM-DD form.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return ErrInvalidDate
	}
	return nil
}

func (e TimeEntry) Validate() error {
	if strings.TrimSpace(e.OwnerKey) == "" {
		return ErrEmptyOwner
	}
	if err := ValidateDate(e.Date); err != nil {
		return err
	}
	if err := ValidateHours(e.Hours); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return ErrDescriptionTooLong
	}
	if !IsValidMainCategory(e.MainCategory) {
		return ErrUnknownCategory
	}
	if !IsValidSubcategory(e.MainCategory, e.SubCategory) {
		return ErrUnknownSubcategory
	}
	return nil
}
