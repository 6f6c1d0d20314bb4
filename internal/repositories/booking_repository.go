package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	intdb "limo-backend/internal/db"
	"limo-backend/internal/domain"
	"limo-backend/internal/domain/models"
	"limo-backend/internal/utils"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

const bookingColumns = `
	id, trip_id, passenger_first_name, passenger_last_name, passenger_phone, passenger_email,
	pickup_date, pickup_time, pickup_location, dropoff_location, vehicle_type, service_type,
	base_price, total_fare, status, job_status, payment_status, tracking_enabled,
	created_at, updated_at`

// BookingRepository stores bookings in the MySQL bookings table.
type BookingRepository struct {
	DB  *sql.DB
	Now func() time.Time
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return BookingRepository{DB: db, Now: utils.NowUTC}
}

func (r BookingRepository) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return utils.NowUTC()
}

func (r BookingRepository) db() (*sql.DB, error) {
	if r.DB == nil {
		return nil, errors.New("database not connected")
	}
	return r.DB, nil
}

// EnsureSchema creates the bookings table when it does not exist yet.
func (r BookingRepository) EnsureSchema(ctx context.Context) error {
	db, err := r.db()
	if err != nil {
		return err
	}
	return intdb.EnsureBookingsTable(ctx, db)
}

// bookingRow is the column-level shape of a booking.
type bookingRow struct {
	ID                 int64
	TripID             string
	PassengerFirstName string
	PassengerLastName  string
	PassengerPhone     string
	PassengerEmail     string
	PickupDate         sql.NullTime
	PickupTime         string
	PickupLocation     string
	DropoffLocation    string
	VehicleType        string
	ServiceType        string
	BasePrice          decimal.NullDecimal
	TotalFare          decimal.NullDecimal
	Status             string
	JobStatus          string
	PaymentStatus      string
	TrackingEnabled    bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func toRow(b models.Booking) bookingRow {
	row := bookingRow{
		ID:                 b.ID,
		TripID:             b.TripID,
		PassengerFirstName: b.PassengerFirstName,
		PassengerLastName:  b.PassengerLastName,
		PassengerPhone:     b.PassengerPhone,
		PassengerEmail:     b.PassengerEmail,
		PickupTime:         b.PickupTime,
		PickupLocation:     b.PickupLocation,
		DropoffLocation:    b.DropoffLocation,
		VehicleType:        b.VehicleType,
		ServiceType:        b.ServiceType,
		BasePrice:          models.RoundMoney(b.BasePrice),
		TotalFare:          models.RoundMoney(b.TotalFare),
		Status:             b.Status,
		JobStatus:          b.JobStatus,
		PaymentStatus:      b.PaymentStatus,
		TrackingEnabled:    b.TrackingEnabled,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	if b.PickupDate != nil {
		row.PickupDate = sql.NullTime{Time: b.PickupDate.UTC(), Valid: true}
	}
	return row
}

func (row bookingRow) toModel() models.Booking {
	b := models.Booking{
		ID:                 row.ID,
		TripID:             row.TripID,
		PassengerFirstName: row.PassengerFirstName,
		PassengerLastName:  row.PassengerLastName,
		PassengerPhone:     row.PassengerPhone,
		PassengerEmail:     row.PassengerEmail,
		PickupTime:         row.PickupTime,
		PickupLocation:     row.PickupLocation,
		DropoffLocation:    row.DropoffLocation,
		VehicleType:        row.VehicleType,
		ServiceType:        row.ServiceType,
		BasePrice:          row.BasePrice,
		TotalFare:          row.TotalFare,
		Status:             row.Status,
		JobStatus:          row.JobStatus,
		PaymentStatus:      row.PaymentStatus,
		TrackingEnabled:    row.TrackingEnabled,
		CreatedAt:          row.CreatedAt.UTC(),
		UpdatedAt:          row.UpdatedAt.UTC(),
	}
	if row.PickupDate.Valid {
		t := row.PickupDate.Time.UTC()
		b.PickupDate = &t
	}
	return b
}

// mutableArgs lists every column written by both INSERT and UPDATE, in
// column order; created_at is handled separately.
func (row bookingRow) mutableArgs() []any {
	return []any{
		row.TripID, row.PassengerFirstName, row.PassengerLastName, row.PassengerPhone, row.PassengerEmail,
		row.PickupDate, row.PickupTime, row.PickupLocation, row.DropoffLocation, row.VehicleType, row.ServiceType,
		row.BasePrice, row.TotalFare, row.Status, row.JobStatus, row.PaymentStatus, row.TrackingEnabled,
		row.UpdatedAt,
	}
}

// MySQL server errors for values that do not fit their column.
const (
	erWarnDataOutOfRange = 1264
	erDataTooLong        = 1406
)

var columnInMessage = regexp.MustCompile("column '([a-z_]+)'")

// columnFields maps column names to their JSON field names.
var columnFields = map[string]string{
	"trip_id":              "tripId",
	"passenger_first_name": "passengerFirstName",
	"passenger_last_name":  "passengerLastName",
	"passenger_phone":      "passengerPhone",
	"passenger_email":      "passengerEmail",
	"pickup_date":          "pickupDate",
	"pickup_time":          "pickupTime",
	"pickup_location":      "pickupLocation",
	"dropoff_location":     "dropoffLocation",
	"vehicle_type":         "vehicleType",
	"service_type":         "serviceType",
	"base_price":           "basePrice",
	"total_fare":           "totalFare",
	"status":               "status",
	"job_status":           "jobStatus",
	"payment_status":       "paymentStatus",
}

// checkPrices rejects prices the DECIMAL(12,2) columns cannot hold.
func checkPrices(b models.Booking) error {
	if !models.MoneyFits(b.BasePrice) {
		return domain.ValidationError{Field: "basePrice", Msg: "must be less than 10000000000"}
	}
	if !models.MoneyFits(b.TotalFare) {
		return domain.ValidationError{Field: "totalFare", Msg: "must be less than 10000000000"}
	}
	return nil
}

// writeError turns column overflow errors into validation errors; anything
// else is wrapped with op.
func writeError(op string, err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && (myErr.Number == erDataTooLong || myErr.Number == erWarnDataOutOfRange) {
		field := "booking"
		if m := columnInMessage.FindStringSubmatch(myErr.Message); m != nil {
			if f, ok := columnFields[m[1]]; ok {
				field = f
			}
		}
		msg := "value is too long"
		if myErr.Number == erWarnDataOutOfRange {
			msg = "value is out of range"
		}
		return domain.ValidationError{Field: field, Msg: msg, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(s rowScanner) (models.Booking, error) {
	var row bookingRow
	if err := s.Scan(
		&row.ID,
		&row.TripID,
		&row.PassengerFirstName,
		&row.PassengerLastName,
		&row.PassengerPhone,
		&row.PassengerEmail,
		&row.PickupDate,
		&row.PickupTime,
		&row.PickupLocation,
		&row.DropoffLocation,
		&row.VehicleType,
		&row.ServiceType,
		&row.BasePrice,
		&row.TotalFare,
		&row.Status,
		&row.JobStatus,
		&row.PaymentStatus,
		&row.TrackingEnabled,
		&row.CreatedAt,
		&row.UpdatedAt,
	); err != nil {
		return models.Booking{}, err
	}
	return row.toModel(), nil
}

// Insert assigns a new id and both timestamps. Any id on b is ignored. The
// returned booking carries prices as stored, rounded to two places.
func (r BookingRepository) Insert(ctx context.Context, b models.Booking) (models.Booking, error) {
	db, err := r.db()
	if err != nil {
		return models.Booking{}, err
	}

	if err := checkPrices(b); err != nil {
		return models.Booking{}, err
	}

	b.ID = 0
	models.StampCreated(&b, r.now())
	row := toRow(b)

	args := append(row.mutableArgs(), row.CreatedAt)
	res, err := db.ExecContext(ctx, `
		INSERT INTO bookings (
			trip_id, passenger_first_name, passenger_last_name, passenger_phone, passenger_email,
			pickup_date, pickup_time, pickup_location, dropoff_location, vehicle_type, service_type,
			base_price, total_fare, status, job_status, payment_status, tracking_enabled,
			updated_at, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`, args...)
	if err != nil {
		return models.Booking{}, writeError("insert booking", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Booking{}, fmt.Errorf("insert booking id: %w", err)
	}
	row.ID = id
	return row.toModel(), nil
}

func (r BookingRepository) FindByID(ctx context.Context, id int64) (models.Booking, error) {
	db, err := r.db()
	if err != nil {
		return models.Booking{}, err
	}
	b, err := scanBooking(db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", ID: id, Err: err}
		}
		return models.Booking{}, fmt.Errorf("find booking %d: %w", id, err)
	}
	return b, nil
}

func (r BookingRepository) FindAll(ctx context.Context) ([]models.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY id`)
}

// FindByEmail matches passenger_email exactly and case-sensitively.
func (r BookingRepository) FindByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE passenger_email = ? ORDER BY id`, email)
}

func (r BookingRepository) FindByJobStatus(ctx context.Context, jobStatus string) ([]models.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE job_status = ? ORDER BY id`, jobStatus)
}

func (r BookingRepository) FindByStatus(ctx context.Context, status string) ([]models.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE status = ? ORDER BY id`, status)
}

func (r BookingRepository) list(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return out, nil
}

// Update writes every mutable column of an existing booking and refreshes
// UpdatedAt. created_at is never written.
func (r BookingRepository) Update(ctx context.Context, b models.Booking) (models.Booking, error) {
	if b.ID <= 0 {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", ID: b.ID}
	}
	db, err := r.db()
	if err != nil {
		return models.Booking{}, err
	}

	if err := checkPrices(b); err != nil {
		return models.Booking{}, err
	}

	models.StampUpdated(&b, r.now())
	row := toRow(b)

	args := append(row.mutableArgs(), row.ID)
	res, err := db.ExecContext(ctx, `
		UPDATE bookings SET
			trip_id=?, passenger_first_name=?, passenger_last_name=?, passenger_phone=?, passenger_email=?,
			pickup_date=?, pickup_time=?, pickup_location=?, dropoff_location=?, vehicle_type=?, service_type=?,
			base_price=?, total_fare=?, status=?, job_status=?, payment_status=?, tracking_enabled=?,
			updated_at=?
		WHERE id=?`, args...)
	if err != nil {
		return models.Booking{}, writeError(fmt.Sprintf("update booking %d", b.ID), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Booking{}, fmt.Errorf("update booking %d: %w", b.ID, err)
	}
	if n == 0 {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", ID: b.ID}
	}
	return row.toModel(), nil
}
