package model

import (
	"testing"
	"time"
)

func TestCategory_IsValid(t *testing.T) {
	t.Parallel()

	valid := []Category{CategoryElectricity, CategoryGas, CategoryWater, CategoryInternet}
	for _, c := range valid {
		if !c.IsValid() {
			t.Errorf("IsValid(%s) = false, want true", c)
		}
	}

	invalid := []Category{"", "Phone", "electricity", "GAS"}
	for _, c := range invalid {
		if c.IsValid() {
			t.Errorf("IsValid(%q) = true, want false", c)
		}
	}
}

func TestBill_IsPayable_SameMonth(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		date time.Time
		want bool
	}{
		{"same day", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), true},
		{"first of month", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), true},
		{"last of month", time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC), true},
		{"previous month", time.Date(2024, time.February, 15, 12, 0, 0, 0, time.UTC), false},
		{"next month", time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), false},
		{"same month last year", time.Date(2023, time.March, 15, 12, 0, 0, 0, time.UTC), false},
		{"same month next year", time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			bill := &Bill{Date: tc.date}
			if got := bill.IsPayable(now); got != tc.want {
				t.Errorf("IsPayable(%s vs %s) = %v, want %v", tc.date, now, got, tc.want)
			}
		})
	}
}

func TestBill_IsPayable_YearBoundary(t *testing.T) {
	t.Parallel()

	// December 2023 and January 2024 are adjacent but never the same month.
	december := time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC)
	january := time.Date(2024, time.January, 1, 1, 0, 0, 0, time.UTC)

	bill := &Bill{Date: december}
	if bill.IsPayable(january) {
		t.Error("December bill should not be payable in January")
	}

	bill = &Bill{Date: january}
	if bill.IsPayable(december) {
		t.Error("January bill should not be payable in December")
	}
}

func TestBill_IsPayable_TimezoneNormalized(t *testing.T) {
	t.Parallel()

	// 2024-03-31 23:00 in UTC-5 is already April in UTC. The rule compares
	// UTC calendar fields on both operands.
	est := time.FixedZone("EST", -5*3600)
	billDate := time.Date(2024, time.March, 31, 23, 0, 0, 0, est) // 2024-04-01T04:00Z
	now := time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)

	bill := &Bill{Date: billDate}
	if !bill.IsPayable(now) {
		t.Error("bill dated April in UTC should be payable in April")
	}

	marchNow := time.Date(2024, time.March, 30, 0, 0, 0, 0, time.UTC)
	if bill.IsPayable(marchNow) {
		t.Error("bill dated April in UTC should not be payable in March")
	}
}
