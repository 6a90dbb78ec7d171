package core

import (
	"errors"
	"strings"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func validInput() EntryInput {
	return EntryInput{
		DateISO:     "2024-03-01",
		Type:        Expense,
		AmountCents: 5000,
		Title:       "gas station",
		Category:    ptr(CategoryFuel),
	}
}

func TestEntryInputValidate(t *testing.T) {
	if err := validInput().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*EntryInput)
		want   error
	}{
		{"empty date", func(in *EntryInput) { in.DateISO = "" }, ErrInvalidDate},
		{"bad date format", func(in *EntryInput) { in.DateISO = "01/03/2024" }, ErrInvalidDate},
		{"impossible date", func(in *EntryInput) { in.DateISO = "2024-02-30" }, ErrInvalidDate},
		{"unknown type", func(in *EntryInput) { in.Type = "transfer" }, ErrInvalidType},
		{"zero amount", func(in *EntryInput) { in.AmountCents = 0 }, ErrInvalidAmount},
		{"negative amount", func(in *EntryInput) { in.AmountCents = -100 }, ErrInvalidAmount},
		{"empty title", func(in *EntryInput) { in.Title = "  " }, ErrEmptyTitle},
		{"overlong title", func(in *EntryInput) { in.Title = strings.Repeat("x", 201) }, ErrTitleTooLong},
		{"unknown category", func(in *EntryInput) { in.Category = ptr(Category("travel")) }, ErrInvalidCategory},
		{"negative distance", func(in *EntryInput) { in.Type = Income; in.DistanceMeters = ptr(int64(-1)) }, ErrInvalidDistance},
	}
	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)
		err := in.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		if !IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestEntryInputNormalize(t *testing.T) {
	income := EntryInput{
		DateISO:        "2024-03-01",
		Type:           Income,
		AmountCents:    150000,
		Title:          "  deliveries  ",
		Category:       ptr(CategoryFuel),
		DistanceMeters: ptr(int64(100000)),
	}
	got := income.Normalize()
	if got.Category != nil {
		t.Fatalf("income should not keep a category")
	}
	if got.DistanceMeters == nil || *got.DistanceMeters != 100000 {
		t.Fatalf("income should keep its distance")
	}
	if got.Title != "deliveries" {
		t.Fatalf("title not trimmed: %q", got.Title)
	}

	expense := EntryInput{
		DateISO:        "2024-03-02",
		Type:           Expense,
		AmountCents:    5000,
		Title:          "gas",
		Category:       ptr(CategoryFuel),
		DistanceMeters: ptr(int64(1000)),
	}
	got = expense.Normalize()
	if got.DistanceMeters != nil {
		t.Fatalf("expense should not keep a distance")
	}
	if got.Category == nil || *got.Category != CategoryFuel {
		t.Fatalf("expense should keep its category")
	}
}

func TestEnumValidity(t *testing.T) {
	for _, typ := range []TransactionType{Income, Expense} {
		if !typ.Valid() {
			t.Fatalf("%q should be valid", typ)
		}
	}
	if TransactionType("transfer").Valid() {
		t.Fatalf("unknown type should be invalid")
	}

	for _, c := range []Category{CategoryFuel, CategoryFood, CategoryMaintenance, CategoryOther} {
		if !c.Valid() {
			t.Fatalf("%q should be valid", c)
		}
	}
	if Category("travel").Valid() {
		t.Fatalf("unknown category should be invalid")
	}
}
