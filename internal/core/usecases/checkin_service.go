package usecases

import (
	"context"
	"time"

	"github.com/samirrijal/fitpass/internal/core/domain"
	"github.com/samirrijal/fitpass/internal/core/ports"
	"github.com/samirrijal/fitpass/internal/pkg/geospatial"
)

const (
	// MaxDistanceMeters is how close a user must be to check in.
	MaxDistanceMeters = 100.0
	// ValidationWindow is how long after creation a check-in may be validated.
	ValidationWindow = 20 * time.Minute
)

// CheckInService handles check-in creation, validation, history, and metrics.
type CheckInService struct {
	checkIns ports.CheckInRepository
	gyms     ports.GymRepository
	events   ports.EventPublisher
}

// NewCheckInService creates a new CheckInService.
func NewCheckInService(checkIns ports.CheckInRepository, gyms ports.GymRepository, events ports.EventPublisher) *CheckInService {
	return &CheckInService{checkIns: checkIns, gyms: gyms, events: events}
}

// Create records a check-in for the user at the gym. The user must be within
// MaxDistanceMeters of the gym and must not have checked in yet on the current
// UTC calendar day. The same-day lookup always hits the repository; the unique
// index on (user, day) closes the race between concurrent attempts.
func (s *CheckInService) Create(ctx context.Context, userID, gymID string, userLocation domain.GeoPoint) (*domain.CheckIn, error) {
	gym, err := s.gyms.GetByID(ctx, gymID)
	if err != nil {
		return nil, err
	}

	distance := geospatial.Haversine(
		userLocation.Lat, userLocation.Lon,
		gym.Location.Lat, gym.Location.Lon,
	)
	if distance > MaxDistanceMeters {
		return nil, domain.ErrMaxDistance
	}

	existing, err := s.checkIns.FindByUserOnDay(ctx, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrMaxNumberOfCheckIns
	}

	checkIn := &domain.CheckIn{UserID: userID, GymID: gymID}
	if err := s.checkIns.Create(ctx, checkIn); err != nil {
		// A concurrent same-day insert surfaces here as the unique-index
		// violation, already mapped by the repository.
		return nil, err
	}

	if s.events != nil {
		_ = s.events.PublishCheckInCreated(ctx, checkIn)
	}
	return checkIn, nil
}

// Validate marks a check-in as confirmed. Only callable by admins; the HTTP
// layer enforces the role before this runs. Validation must happen within
// ValidationWindow of creation and only once.
func (s *CheckInService) Validate(ctx context.Context, checkInID string) (*domain.CheckIn, error) {
	checkIn, err := s.checkIns.GetByID(ctx, checkInID)
	if err != nil {
		return nil, err
	}

	if checkIn.Validated() {
		return nil, domain.ErrCheckInAlreadyValidated
	}

	now := time.Now()
	if now.Sub(checkIn.CreatedAt) > ValidationWindow {
		return nil, domain.ErrLateCheckInValidation
	}

	if err := s.checkIns.SetValidated(ctx, checkIn.ID, now); err != nil {
		return nil, err
	}
	checkIn.ValidatedAt = &now

	if s.events != nil {
		_ = s.events.PublishCheckInValidated(ctx, checkIn)
	}
	return checkIn, nil
}

// History returns one page of the user's check-ins, newest first, plus the
// total count. Pages are 1-based, PageSize items each.
func (s *CheckInService) History(ctx context.Context, userID string, page int) ([]domain.CheckIn, int, error) {
	if page < 1 {
		page = 1
	}
	return s.checkIns.ListByUser(ctx, userID, PageSize, (page-1)*PageSize)
}

// Count returns how many check-ins the user has made in total.
func (s *CheckInService) Count(ctx context.Context, userID string) (int, error) {
	return s.checkIns.CountByUser(ctx, userID)
}
