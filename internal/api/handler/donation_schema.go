package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the acknowledgment envelope returned on success. The
// caller never learns whether the background notifications were delivered.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type createDonationRequest struct {
	Category        string `json:"category"         validate:"required"`
	FoodName        string `json:"foodname"         validate:"required"`
	GeocodeLocation string `json:"geocode_location" validate:"required"`
	DisplayAddress  string `json:"display_address"  validate:"required"`
	Phone           string `json:"phone"            validate:"required"`
	Count           int    `json:"count"            validate:"required,gt=0"`
	Note            string `json:"note"`
	DonorEmail      string `json:"donor_email"      validate:"required,email"`
}

type claimDonationRequest struct {
	DonationID    string `json:"donation_id"    validate:"required"`
	ReceiverName  string `json:"receiver_name"  validate:"required"`
	ReceiverEmail string `json:"receiver_email" validate:"required,email"`
	ReceiverPhone string `json:"receiver_phone" validate:"required"`
}

// --- Response types ---

// donationResponse is the transport view of a donation, intentionally
// separate from the domain type so the JSON contract is not coupled to
// internal changes. Latitude/longitude are null when geocoding failed; the
// web client sorts those entries last.
type donationResponse struct {
	ID              string   `json:"id"`
	Category        string   `json:"category"`
	FoodName        string   `json:"foodname"`
	GeocodeLocation string   `json:"geocode_location"`
	DisplayAddress  string   `json:"display_address"`
	Phone           string   `json:"phone"`
	Count           int      `json:"count"`
	Note            string   `json:"note,omitempty"`
	DonorEmail      string   `json:"donor_email"`
	Claimed         bool     `json:"claimed"`
	Timestamp       int64    `json:"timestamp"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}
