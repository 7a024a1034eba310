package models

import (
	"time"

	"github.com/google/uuid"
)

type Bike struct {
	ID          uuid.UUID `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title" validate:"required"`
	Description string    `bson:"description" json:"description"`
	Image       string    `bson:"image" json:"image"`
	// Price is the rental price per day
	Price     float64   `bson:"price" json:"price" validate:"required,gt=0"`
	Location  string    `bson:"location" json:"location" validate:"required"`
	Available bool      `bson:"available" json:"available"`
	HosterID  uuid.UUID `bson:"hoster_id" json:"hoster_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// BikeWithHoster carries the hoster's name alongside the bike document
// for the public listing endpoints.
type BikeWithHoster struct {
	Bike       `bson:",inline"`
	HosterName string `bson:"hoster_name" json:"hoster_name"`
}
