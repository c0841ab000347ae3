package domain

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrDonationNotFound = errors.New("donation not found")
var ErrDonationAlreadyClaimed = errors.New("donation already claimed")
var ErrUserNotFound = errors.New("user not found")

// Coordinates represents a geocoded point.
type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// Donation is the core aggregate: a posted surplus-food record available for
// claiming. Timestamps are milliseconds since epoch to stay compatible with
// the web client. Latitude/Longitude are nil when geocoding failed; the
// client sorts those entries last.
type Donation struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Category        string             `json:"category" bson:"category"`
	FoodName        string             `json:"foodname" bson:"foodname"`
	GeocodeLocation string             `json:"geocode_location" bson:"geocode_location"`
	DisplayAddress  string             `json:"display_address" bson:"display_address"`
	Phone           string             `json:"phone" bson:"phone"`
	Count           int                `json:"count" bson:"count"`
	Note            string             `json:"note,omitempty" bson:"note,omitempty"`
	DonorEmail      string             `json:"donor_email" bson:"donor_email"`
	Claimed         bool               `json:"claimed" bson:"claimed"`
	Timestamp       int64              `json:"timestamp" bson:"timestamp"`
	Latitude        *float64           `json:"latitude" bson:"latitude"`
	Longitude       *float64           `json:"longitude" bson:"longitude"`
}
