package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestStampCreatedSetsEqualTimestamps(t *testing.T) {
	var b Booking
	now := time.Date(2025, 3, 1, 9, 30, 0, 123456789, time.FixedZone("EST", -5*3600))
	StampCreated(&b, now)

	if !b.CreatedAt.Equal(b.UpdatedAt) {
		t.Fatalf("createdAt %v != updatedAt %v", b.CreatedAt, b.UpdatedAt)
	}
	if b.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", b.CreatedAt.Location())
	}
	if b.CreatedAt.Nanosecond()%1000 != 0 {
		t.Fatalf("expected microsecond precision, got %d ns", b.CreatedAt.Nanosecond())
	}
}

func TestStampUpdatedKeepsCreatedAt(t *testing.T) {
	var b Booking
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	StampCreated(&b, created)

	later := created.Add(time.Hour)
	StampUpdated(&b, later)
	if !b.CreatedAt.Equal(created) {
		t.Fatalf("createdAt changed to %v", b.CreatedAt)
	}
	if !b.UpdatedAt.Equal(later) {
		t.Fatalf("updatedAt = %v, want %v", b.UpdatedAt, later)
	}
}

func TestStampUpdatedNeverGoesBackwards(t *testing.T) {
	var b Booking
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	StampCreated(&b, created)
	StampUpdated(&b, created.Add(time.Minute))

	StampUpdated(&b, created.Add(-time.Hour))
	if !b.UpdatedAt.Equal(created.Add(time.Minute)) {
		t.Fatalf("updatedAt moved backwards to %v", b.UpdatedAt)
	}
	if b.UpdatedAt.Before(b.CreatedAt) {
		t.Fatalf("updatedAt %v before createdAt %v", b.UpdatedAt, b.CreatedAt)
	}
}

func TestBookingJSONKeepsDecimalPrecision(t *testing.T) {
	raw := `{"passengerEmail":"a@x.com","basePrice":123.45,"totalFare":"0.10","trackingEnabled":true}`
	var b Booking
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !b.BasePrice.Valid || b.BasePrice.Decimal.String() != "123.45" {
		t.Fatalf("basePrice = %+v", b.BasePrice)
	}
	if !b.TotalFare.Valid || b.TotalFare.Decimal.String() != "0.1" {
		t.Fatalf("totalFare = %+v", b.TotalFare)
	}

	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"basePrice":"123.45"`) {
		t.Fatalf("basePrice not preserved: %s", out)
	}
	if !strings.Contains(string(out), `"pickupDate":null`) {
		t.Fatalf("expected null pickupDate: %s", out)
	}
}

func TestBookingJSONMissingPricesAreNull(t *testing.T) {
	var b Booking
	if err := json.Unmarshal([]byte(`{"tripId":"T-1"}`), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.BasePrice.Valid || b.TotalFare.Valid {
		t.Fatalf("expected invalid prices, got %+v %+v", b.BasePrice, b.TotalFare)
	}
	out, _ := json.Marshal(b)
	if !strings.Contains(string(out), `"totalFare":null`) {
		t.Fatalf("expected null totalFare: %s", out)
	}
}

func TestParseDateTimeAcceptsOffsetlessForm(t *testing.T) {
	cases := map[string]time.Time{
		"2025-07-04T18:00:00":         time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC),
		"2025-07-04T18:00:00.250":     time.Date(2025, 7, 4, 18, 0, 0, 250000000, time.UTC),
		"2025-07-04T18:00":            time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC),
		"2025-07-04T18:00:00Z":        time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC),
		"2025-07-04T14:00:00-04:00":   time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC),
		"2025-07-04T18:00:00.5+00:00": time.Date(2025, 7, 4, 18, 0, 0, 500000000, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseDateTime(in)
		if err != nil {
			t.Fatalf("ParseDateTime(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseDateTime(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseDateTime("04/07/2025"); err == nil {
		t.Fatalf("expected error for non ISO-8601 input")
	}
}

func TestBookingJSONPickupDateForms(t *testing.T) {
	var b Booking
	if err := json.Unmarshal([]byte(`{"tripId":"T-1","pickupDate":"2025-07-04T18:00:00"}`), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.TripID != "T-1" || b.PickupDate == nil {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if !b.PickupDate.Equal(time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)) || b.PickupDate.Location() != time.UTC {
		t.Fatalf("pickupDate = %v", b.PickupDate)
	}

	for _, raw := range []string{`{"pickupDate":null}`, `{"pickupDate":""}`, `{}`} {
		var nb Booking
		if err := json.Unmarshal([]byte(raw), &nb); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if nb.PickupDate != nil {
			t.Fatalf("%s: expected nil pickupDate, got %v", raw, nb.PickupDate)
		}
	}

	for _, raw := range []string{`{"pickupDate":"tomorrow"}`, `{"pickupDate":20250704}`} {
		var bad Booking
		if err := json.Unmarshal([]byte(raw), &bad); err == nil {
			t.Fatalf("%s: expected error", raw)
		}
	}
}

func TestRoundMoneyMatchesColumnScale(t *testing.T) {
	got := RoundMoney(decimal.NewNullDecimal(decimal.RequireFromString("10.555")))
	if !got.Valid || got.Decimal.String() != "10.56" {
		t.Fatalf("RoundMoney = %+v", got)
	}
	if RoundMoney(decimal.NullDecimal{}).Valid {
		t.Fatalf("null price should stay null")
	}
}

func TestMoneyFits(t *testing.T) {
	fits := []string{"0", "9999999999.99", "-9999999999.99", "9999999999.994"}
	for _, v := range fits {
		if !MoneyFits(decimal.NewNullDecimal(decimal.RequireFromString(v))) {
			t.Fatalf("%s should fit", v)
		}
	}
	overflow := []string{"10000000000", "9999999999.995", "-10000000000"}
	for _, v := range overflow {
		if MoneyFits(decimal.NewNullDecimal(decimal.RequireFromString(v))) {
			t.Fatalf("%s should not fit", v)
		}
	}
	if !MoneyFits(decimal.NullDecimal{}) {
		t.Fatalf("null price always fits")
	}
}
