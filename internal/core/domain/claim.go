package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Claim is the append-only audit record of a receiver taking a donation.
// Donor email, food name and location are denormalized at claim time so the
// record stays meaningful after the donation itself is purged.
type Claim struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DonationID    string             `json:"donation_id" bson:"donation_id"`
	ReceiverName  string             `json:"receiver_name" bson:"receiver_name"`
	ReceiverEmail string             `json:"receiver_email" bson:"receiver_email"`
	ReceiverPhone string             `json:"receiver_phone" bson:"receiver_phone"`
	ClaimedAt     int64              `json:"claimed_at" bson:"claimed_at"`
	DonorEmail    string             `json:"donor_email" bson:"donor_email"`
	FoodName      string             `json:"foodname" bson:"foodname"`
	Location      string             `json:"location" bson:"location"`
}
