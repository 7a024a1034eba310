package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID        uuid.UUID     `bson:"_id" json:"id"`
	RenterID  uuid.UUID     `bson:"renter_id" json:"renter_id"`
	BikeID    uuid.UUID     `bson:"bike_id" json:"bike_id"`
	StartDate time.Time     `bson:"start_date" json:"start_date"`
	EndDate   time.Time     `bson:"end_date" json:"end_date"`
	Status    BookingStatus `bson:"status" json:"status"`
	// TotalPrice is computed once at creation and never recomputed
	TotalPrice float64   `bson:"total_price" json:"total_price"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// BookingView carries the referenced bike document and renter name
// alongside the booking for the listing endpoints.
type BookingView struct {
	Booking    `bson:",inline"`
	Bike       *Bike  `bson:"bike,omitempty" json:"bike,omitempty"`
	RenterName string `bson:"renter_name" json:"renter_name"`
}
