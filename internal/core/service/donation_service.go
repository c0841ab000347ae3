package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharebite/donation-system/internal/core/domain"
	"github.com/sharebite/donation-system/internal/core/ports"
)

type donationService struct {
	repo     ports.DonationRepository
	geocoder ports.Geocoder
	queue    ports.TaskQueue
	log      zerolog.Logger
}

// NewDonationService returns a DonationService implementation.
func NewDonationService(
	repo ports.DonationRepository,
	geocoder ports.Geocoder,
	queue ports.TaskQueue,
	log zerolog.Logger,
) ports.DonationService {
	return &donationService{
		repo:     repo,
		geocoder: geocoder,
		queue:    queue,
		log:      log,
	}
}

// CreateDonation geocodes the supplied address, persists the donation and
// schedules the alert broadcast plus a retention sweep as background tasks.
// Geocoding failure is never fatal; a persistence failure is.
func (s *donationService) CreateDonation(ctx context.Context, input ports.CreateDonationInput) (*ports.DonationResult, error) {
	donation := &domain.Donation{
		Category:        input.Category,
		FoodName:        input.FoodName,
		GeocodeLocation: input.GeocodeLocation,
		DisplayAddress:  input.DisplayAddress,
		Phone:           input.Phone,
		Count:           input.Count,
		Note:            input.Note,
		DonorEmail:      input.DonorEmail,
		Claimed:         false,
		Timestamp:       time.Now().UnixMilli(),
	}

	// 1. Best-effort geocoding. Timeouts and provider errors leave the
	// coordinates unset.
	coords, err := s.geocoder.Geocode(ctx, input.GeocodeLocation)
	if err != nil {
		s.log.Warn().Err(err).Str("address", input.GeocodeLocation).Msg("geocoding failed, storing donation without coordinates")
	} else if coords != nil {
		donation.Latitude = &coords.Latitude
		donation.Longitude = &coords.Longitude
	}

	// 2. Persist. This is the only step on the critical path.
	id, err := s.repo.Create(ctx, donation)
	if err != nil {
		s.log.Error().Err(err).Str("foodname", input.FoodName).Msg("failed to create donation")
		return nil, err
	}

	// 3. Fan out. Outcomes are not awaited and not reported to the caller.
	s.queue.Enqueue(ports.Task{Kind: ports.TaskDonationAlert, Donation: donation})
	s.queue.Enqueue(ports.Task{Kind: ports.TaskCleanup})

	s.log.Info().
		Str("donation_id", id).
		Str("foodname", donation.FoodName).
		Bool("geocoded", donation.Latitude != nil).
		Msg("donation created")

	return &ports.DonationResult{
		ID:        id,
		Timestamp: donation.Timestamp,
		Geocoded:  donation.Latitude != nil,
	}, nil
}

// ListUnclaimed returns every donation still available for claiming.
func (s *donationService) ListUnclaimed(ctx context.Context) ([]*domain.Donation, error) {
	donations, err := s.repo.FindUnclaimed(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list donations")
		return nil, err
	}
	return donations, nil
}
