package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"ridehub/pkg/logger"
	"ridehub/pkg/models"
	"ridehub/storage"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyCompleted = errors.New("booking is already completed")
	ErrNotAssigned      = errors.New("booking is not assigned to this provider")
	ErrNoProvider       = errors.New("no provider account available")
)

// CreateBookingRequest carries everything a customer submits on the booking
// form, plus the optional context the session layer supplies: the owning
// account's email and the last captured geolocation fix.
type CreateBookingRequest struct {
	Name        string
	Phone       string
	Email       string
	Vehicle     string
	ServiceType string
	Pickup      string
	Destination string
	Datetime    time.Time // zero value defaults to the creation time
	Notes       string
	UserEmail   string
	Coords      *models.Coordinates
}

type CustomerStats struct {
	Total    int
	Pending  int
	Assigned int
}

type ProviderStats struct {
	Total            int
	Pending          int
	AssignedToYou    int
	AssignedToOthers int
	Completed        int
}

// BookingService enacts the booking state machine:
// pending -> assigned -> completed, with a side set of providers who declined
// while the booking was still on offer.
type BookingService interface {
	Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	Accept(ctx context.Context, id, providerEmail string) (*models.Booking, error)
	Decline(ctx context.Context, id, providerEmail string) (*models.Booking, error)
	Complete(ctx context.Context, id, providerEmail string) (*models.Booking, error)
	AutoAssign(ctx context.Context, id string) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	ForCustomer(ctx context.Context, email string) ([]models.Booking, error)
	VisibleTo(providerEmail string, bookings []models.Booking) []models.Booking
	Recent(bookings []models.Booking, n int) []models.Booking
	CustomerStats(ctx context.Context, email string) (CustomerStats, error)
	ProviderStats(ctx context.Context, providerEmail string) (ProviderStats, error)
}

type bookingService struct {
	bookings storage.IBookingStorage
	users    storage.IUserStorage
	log      logger.ILogger
}

func NewBookingService(stg storage.IStorage, log logger.ILogger) BookingService {
	return &bookingService{
		bookings: stg.Booking(),
		users:    stg.User(),
		log:      log,
	}
}

func (s *bookingService) Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	booking := models.Booking{
		Name:              strings.TrimSpace(req.Name),
		Phone:             strings.TrimSpace(req.Phone),
		Email:             strings.TrimSpace(req.Email),
		Vehicle:           strings.TrimSpace(req.Vehicle),
		ServiceType:       strings.TrimSpace(req.ServiceType),
		Pickup:            strings.TrimSpace(req.Pickup),
		Destination:       strings.TrimSpace(req.Destination),
		Datetime:          req.Datetime,
		Notes:             strings.TrimSpace(req.Notes),
		UserEmail:         req.UserEmail,
		Status:            models.StatusPending,
		DeclinedProviders: []string{},
	}

	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", booking.Name},
		{"phone", booking.Phone},
		{"email", booking.Email},
		{"vehicle", booking.Vehicle},
		{"serviceType", booking.ServiceType},
		{"pickup", booking.Pickup},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	booking.ID = uuid.NewString()
	booking.CreatedAt = time.Now()
	if booking.Datetime.IsZero() {
		booking.Datetime = booking.CreatedAt
	}
	if req.Coords != nil {
		lat, lng := req.Coords.Latitude, req.Coords.Longitude
		booking.Lat, booking.Lng = &lat, &lng
	}

	if err := s.bookings.Append(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		logger.String("id", booking.ID),
		logger.String("serviceType", booking.ServiceType),
		logger.String("pickup", booking.Pickup),
	)
	return &booking, nil
}

func (s *bookingService) Accept(ctx context.Context, id, providerEmail string) (*models.Booking, error) {
	return s.update(ctx, id, func(b *models.Booking) error {
		// completed is terminal, the status never moves backwards
		if b.Status == models.StatusCompleted {
			return ErrAlreadyCompleted
		}
		b.ProviderEmail = providerEmail
		b.Status = models.StatusAssigned
		// a provider may re-accept after having declined earlier
		b.DeclinedProviders = slices.DeleteFunc(b.DeclinedProviders, func(e string) bool {
			return e == providerEmail
		})
		return nil
	})
}

func (s *bookingService) Decline(ctx context.Context, id, providerEmail string) (*models.Booking, error) {
	return s.update(ctx, id, func(b *models.Booking) error {
		if !b.DeclinedBy(providerEmail) {
			b.DeclinedProviders = append(b.DeclinedProviders, providerEmail)
		}
		// the booking stays pending and on offer to everyone else
		return nil
	})
}

func (s *bookingService) Complete(ctx context.Context, id, providerEmail string) (*models.Booking, error) {
	return s.update(ctx, id, func(b *models.Booking) error {
		if b.ProviderEmail != providerEmail {
			return ErrNotAssigned
		}
		b.Status = models.StatusCompleted
		return nil
	})
}

// AutoAssign hands an unassigned booking to the first provider account on
// record. It is an explicit operation; Create never calls it.
func (s *bookingService) AutoAssign(ctx context.Context, id string) (*models.Booking, error) {
	users, _, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	provider := ""
	for _, u := range users {
		if u.Role == models.RoleProvider {
			provider = u.Email
			break
		}
	}
	if provider == "" {
		return nil, ErrNoProvider
	}
	return s.update(ctx, id, func(b *models.Booking) error {
		if b.ProviderEmail != "" {
			return nil
		}
		b.ProviderEmail = provider
		b.Status = models.StatusAssigned
		return nil
	})
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	bookings, revision, err := s.bookings.Load(ctx)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(bookings, func(b models.Booking) bool { return b.ID == id })
	if idx == -1 {
		return ErrBookingNotFound
	}
	if err := s.bookings.Save(ctx, slices.Delete(bookings, idx, idx+1), revision); err != nil {
		return err
	}
	s.log.Info("booking deleted", logger.String("id", id))
	return nil
}

func (s *bookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	bookings, _, err := s.bookings.Load(ctx)
	return bookings, err
}

func (s *bookingService) ForCustomer(ctx context.Context, email string) ([]models.Booking, error) {
	bookings, _, err := s.bookings.Load(ctx)
	if err != nil {
		return nil, err
	}
	var own []models.Booking
	for _, b := range bookings {
		if b.UserEmail == email {
			own = append(own, b)
		}
	}
	return own, nil
}

// VisibleTo filters out bookings the provider has declined and orders the
// rest newest first for display. Ordering is a display choice, not a store
// invariant.
func (s *bookingService) VisibleTo(providerEmail string, bookings []models.Booking) []models.Booking {
	visible := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.DeclinedBy(providerEmail) {
			continue
		}
		visible = append(visible, b)
	}
	slices.SortFunc(visible, func(a, b models.Booking) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return visible
}

// Recent picks the n newest bookings for the dashboard's recent-requests
// panel.
func (s *bookingService) Recent(bookings []models.Booking, n int) []models.Booking {
	sorted := slices.Clone(bookings)
	slices.SortFunc(sorted, func(a, b models.Booking) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func (s *bookingService) CustomerStats(ctx context.Context, email string) (CustomerStats, error) {
	bookings, err := s.ForCustomer(ctx, email)
	if err != nil {
		return CustomerStats{}, err
	}
	stats := CustomerStats{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusAssigned:
			stats.Assigned++
		}
	}
	return stats, nil
}

func (s *bookingService) ProviderStats(ctx context.Context, providerEmail string) (ProviderStats, error) {
	bookings, _, err := s.bookings.Load(ctx)
	if err != nil {
		return ProviderStats{}, err
	}
	stats := ProviderStats{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusAssigned:
			if b.ProviderEmail == providerEmail {
				stats.AssignedToYou++
			} else {
				stats.AssignedToOthers++
			}
		case models.StatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}

// update is the read-modify-write cycle every transition goes through: load
// the whole collection, mutate the matching record in memory, write the
// whole collection back at the loaded revision. If mutate returns an error
// nothing is persisted. A concurrent writer surfaces as storage.ErrConflict.
func (s *bookingService) update(ctx context.Context, id string, mutate func(*models.Booking) error) (*models.Booking, error) {
	bookings, revision, err := s.bookings.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(bookings, func(b models.Booking) bool { return b.ID == id })
	if idx == -1 {
		return nil, ErrBookingNotFound
	}
	if err := mutate(&bookings[idx]); err != nil {
		return nil, err
	}
	if err := s.bookings.Save(ctx, bookings, revision); err != nil {
		return nil, err
	}
	updated := bookings[idx]
	s.log.Debug("booking updated",
		logger.String("id", updated.ID),
		logger.String("status", string(updated.Status)),
		logger.String("provider", updated.ProviderEmail),
	)
	return &updated, nil
}
