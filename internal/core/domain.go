package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	CategoryFuel        Category = "fuel"
	CategoryFood        Category = "food"
	CategoryMaintenance Category = "maintenance"
	CategoryOther       Category = "other"
)

type (
	// TransactionType discriminates earnings from spending. It decides which
	// of the optional fields is meaningful: category on expenses, distance on
	// income.
	TransactionType string

	// Category tags an expense. Income rows carry no category.
	Category string

	// Transaction is the sole persisted entity. Money is integer cents,
	// timestamps are milliseconds since epoch, DateISO is the business date
	// in fixed-width YYYY-MM-DD form.
	Transaction struct {
		ID             int64           `json:"id"`
		DateISO        string          `json:"dateISO"`
		Type           TransactionType `json:"type"`
		AmountCents    int64           `json:"amountCents"`
		Title          string          `json:"title"`
		Notes          *string         `json:"notes"`
		Category       *Category       `json:"category"`
		DistanceMeters *int64          `json:"distanceMeters"`
		CreatedAt      int64           `json:"createdAt"`
		UpdatedAt      int64           `json:"updatedAt"`
		DeletedAt      *int64          `json:"deletedAt"`
	}

	// EntryInput carries the editable fields of a transaction for insert and
	// update. ID and the system timestamps are assigned by the store.
	EntryInput struct {
		DateISO        string          `json:"dateISO"`
		Type           TransactionType `json:"type"`
		AmountCents    int64           `json:"amountCents"`
		Title          string          `json:"title"`
		Notes          *string         `json:"notes"`
		Category       *Category       `json:"category"`
		DistanceMeters *int64          `json:"distanceMeters"`
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyTitle      = errors.New("empty title")
	ErrTitleTooLong    = errors.New("title too long (max 200 characters)")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDistance = errors.New("invalid distance")
)

var validationErrs = []error{
	ErrInvalidDate,
	ErrInvalidType,
	ErrInvalidAmount,
	ErrEmptyTitle,
	ErrTitleTooLong,
	ErrInvalidCategory,
	ErrInvalidDistance,
}

// IsValidation reports whether err is one of the boundary validation errors.
func IsValidation(err error) bool {
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFuel, CategoryFood, CategoryMaintenance, CategoryOther:
		return true
	}
	return false
}

// ParseDateISO checks that s is a real calendar date in YYYY-MM-DD form.
// The fixed-width zero-padded format is what makes lexicographic range
// queries on dateISO valid.
func ParseDateISO(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Validate enforces the input boundary rules: valid date and type, positive
// amount, non-empty title, recognized category, non-negative distance.
// It does not enforce type/field exclusivity; Normalize clears the field
// the type makes meaningless.
func (in EntryInput) Validate() error {
	if _, err := ParseDateISO(in.DateISO); err != nil {
		return err
	}
	if !in.Type.Valid() {
		return ErrInvalidType
	}
	if in.AmountCents <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(in.Title) == "" {
		return ErrEmptyTitle
	}
	if len(in.Title) > 200 {
		return ErrTitleTooLong
	}
	if in.Category != nil && !in.Category.Valid() {
		return ErrInvalidCategory
	}
	if in.DistanceMeters != nil && *in.DistanceMeters < 0 {
		return ErrInvalidDistance
	}
	return nil
}

// Normalize returns a copy with the type-irrelevant optional field cleared:
// income rows carry no category, expense rows carry no distance.
func (in EntryInput) Normalize() EntryInput {
	out := in
	out.Title = strings.TrimSpace(in.Title)
	switch in.Type {
	case Income:
		out.Category = nil
	case Expense:
		out.DistanceMeters = nil
	}
	return out
}
