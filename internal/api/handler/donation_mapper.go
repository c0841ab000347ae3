package handler

import (
	"github.com/sharebite/donation-system/internal/core/domain"
	"github.com/sharebite/donation-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createDonationRequest) ports.CreateDonationInput {
	return ports.CreateDonationInput{
		Category:        req.Category,
		FoodName:        req.FoodName,
		GeocodeLocation: req.GeocodeLocation,
		DisplayAddress:  req.DisplayAddress,
		Phone:           req.Phone,
		Count:           req.Count,
		Note:            req.Note,
		DonorEmail:      req.DonorEmail,
	}
}

func toClaimInput(req claimDonationRequest) ports.ClaimDonationInput {
	return ports.ClaimDonationInput{
		DonationID:    req.DonationID,
		ReceiverName:  req.ReceiverName,
		ReceiverEmail: req.ReceiverEmail,
		ReceiverPhone: req.ReceiverPhone,
	}
}

// --- Domain → HTTP response ---

func toDonationResponse(d *domain.Donation) donationResponse {
	return donationResponse{
		ID:              d.ID.Hex(),
		Category:        d.Category,
		FoodName:        d.FoodName,
		GeocodeLocation: d.GeocodeLocation,
		DisplayAddress:  d.DisplayAddress,
		Phone:           d.Phone,
		Count:           d.Count,
		Note:            d.Note,
		DonorEmail:      d.DonorEmail,
		Claimed:         d.Claimed,
		Timestamp:       d.Timestamp,
		Latitude:        d.Latitude,
		Longitude:       d.Longitude,
	}
}

func toDonationListResponse(donations []*domain.Donation) []donationResponse {
	out := make([]donationResponse, 0, len(donations))
	for _, d := range donations {
		out = append(out, toDonationResponse(d))
	}
	return out
}
