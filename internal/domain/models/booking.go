package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Booking is a limousine reservation. ID, CreatedAt and UpdatedAt are owned by
// the store; Status is the only field mutated after creation.
type Booking struct {
	ID                 int64               `json:"id"`
	TripID             string              `json:"tripId"`
	PassengerFirstName string              `json:"passengerFirstName"`
	PassengerLastName  string              `json:"passengerLastName"`
	PassengerPhone     string              `json:"passengerPhone"`
	PassengerEmail     string              `json:"passengerEmail"`
	PickupDate         *time.Time          `json:"pickupDate"`
	PickupTime         string              `json:"pickupTime"`
	PickupLocation     string              `json:"pickupLocation"`
	DropoffLocation    string              `json:"dropoffLocation"`
	VehicleType        string              `json:"vehicleType"`
	ServiceType        string              `json:"serviceType"`
	BasePrice          decimal.NullDecimal `json:"basePrice"`
	TotalFare          decimal.NullDecimal `json:"totalFare"`
	Status             string              `json:"status"`
	JobStatus          string              `json:"jobStatus"`
	PaymentStatus      string              `json:"paymentStatus"`
	TrackingEnabled    bool                `json:"trackingEnabled"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// localDateTimeLayouts are the offset-less forms accepted for pickupDate after
// RFC 3339. They are read as UTC. Fractional seconds are accepted by Parse.
var localDateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseDateTime reads an ISO-8601 date-time with or without a zone offset.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range localDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("pickupDate: cannot parse %q as an ISO-8601 date-time", s)
}

// UnmarshalJSON decodes a booking, accepting pickupDate with or without a
// zone offset.
func (b *Booking) UnmarshalJSON(data []byte) error {
	type plain Booking
	aux := struct {
		*plain
		PickupDate json.RawMessage `json:"pickupDate"`
	}{plain: (*plain)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.PickupDate)
	switch {
	case len(raw) == 0:
		return nil
	case bytes.Equal(raw, []byte("null")):
		b.PickupDate = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("pickupDate: %w", err)
	}
	if s == "" {
		b.PickupDate = nil
		return nil
	}
	t, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	b.PickupDate = &t
	return nil
}

// storedTime matches DATETIME(6): UTC with microsecond precision, so the value
// handed back to callers equals what a later read returns.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// StampCreated sets both timestamps for a booking about to be inserted.
func StampCreated(b *Booking, now time.Time) {
	now = storedTime(now)
	b.CreatedAt = now
	b.UpdatedAt = now
}

// StampUpdated refreshes UpdatedAt before a write. UpdatedAt never moves
// backwards and never falls behind CreatedAt, even if the clock does.
func StampUpdated(b *Booking, now time.Time) {
	now = storedTime(now)
	if now.Before(b.UpdatedAt) {
		now = b.UpdatedAt
	}
	if now.Before(b.CreatedAt) {
		now = b.CreatedAt
	}
	b.UpdatedAt = now
}

// MoneyScale and MoneyIntegerDigits describe the DECIMAL(12,2) price columns.
const (
	MoneyScale         = 2
	MoneyIntegerDigits = 10
)

var moneyLimit = decimal.New(1, MoneyIntegerDigits)

// RoundMoney rounds a price half away from zero to MoneyScale places, the way
// MySQL does when storing into the price columns.
func RoundMoney(d decimal.NullDecimal) decimal.NullDecimal {
	if !d.Valid {
		return d
	}
	return decimal.NewNullDecimal(d.Decimal.Round(MoneyScale))
}

// MoneyFits reports whether a rounded price fits the price columns.
func MoneyFits(d decimal.NullDecimal) bool {
	if !d.Valid {
		return true
	}
	return d.Decimal.Round(MoneyScale).Abs().LessThan(moneyLimit)
}
