package domain

// Booking lifecycle values applied when a create request leaves them empty.
const (
	DefaultStatus        = "pending"
	DefaultJobStatus     = "unassigned"
	DefaultPaymentStatus = "pending"
)
