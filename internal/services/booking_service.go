package services

import (
	"context"
	"strings"

	"limo-backend/internal/domain"
	"limo-backend/internal/domain/models"
)

// BookingStore is the persistence contract the service depends on.
type BookingStore interface {
	Insert(ctx context.Context, b models.Booking) (models.Booking, error)
	FindByID(ctx context.Context, id int64) (models.Booking, error)
	FindAll(ctx context.Context) ([]models.Booking, error)
	FindByEmail(ctx context.Context, email string) ([]models.Booking, error)
	Update(ctx context.Context, b models.Booking) (models.Booking, error)
}

type BookingService struct {
	Store BookingStore
}

func NewBookingService(store BookingStore) BookingService {
	return BookingService{Store: store}
}

// Create stores a new booking. Lifecycle fields left empty get their
// initial values; everything else is stored as given.
func (s BookingService) Create(ctx context.Context, b models.Booking) (models.Booking, error) {
	applyCreateDefaults(&b)
	created, err := s.Store.Insert(ctx, b)
	if err != nil {
		return models.Booking{}, storeError("failed to save booking", err)
	}
	return created, nil
}

func (s BookingService) GetAll(ctx context.Context) ([]models.Booking, error) {
	out, err := s.Store.FindAll(ctx)
	if err != nil {
		return nil, storeError("failed to load bookings", err)
	}
	return out, nil
}

func (s BookingService) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	b, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return models.Booking{}, storeError("failed to load bookings", err)
	}
	return b, nil
}

func (s BookingService) GetByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	out, err := s.Store.FindByEmail(ctx, email)
	if err != nil {
		return nil, storeError("failed to load bookings", err)
	}
	return out, nil
}

// UpdateStatus changes only the status of an existing booking. Unknown ids
// fail with domain.NotFoundError and nothing is written.
func (s BookingService) UpdateStatus(ctx context.Context, id int64, status string) (models.Booking, error) {
	b, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return models.Booking{}, storeError("failed to load bookings", err)
	}
	b.Status = status
	updated, err := s.Store.Update(ctx, b)
	if err != nil {
		return models.Booking{}, storeError("failed to update booking status", err)
	}
	return updated, nil
}

func applyCreateDefaults(b *models.Booking) {
	if strings.TrimSpace(b.Status) == "" {
		b.Status = domain.DefaultStatus
	}
	if strings.TrimSpace(b.JobStatus) == "" {
		b.JobStatus = domain.DefaultJobStatus
	}
	if strings.TrimSpace(b.PaymentStatus) == "" {
		b.PaymentStatus = domain.DefaultPaymentStatus
	}
}

// storeError keeps domain errors intact and marks everything else as an
// internal failure.
func storeError(msg string, err error) error {
	if domain.IsNotFound(err) || domain.IsValidation(err) || domain.IsInternal(err) {
		return err
	}
	return domain.InternalError{Msg: msg, Err: err}
}
