package storage

import (
	"context"

	"ridehub/pkg/logger"
	"ridehub/pkg/models"
)

type bookingRepo struct {
	kv  KV
	log logger.ILogger
}

func (r *bookingRepo) Load(ctx context.Context) ([]models.Booking, int64, error) {
	bookings, revision, err := loadCollection[models.Booking](ctx, r.kv, KeyBookings)
	if err != nil {
		r.log.Error("failed to load bookings", logger.Error(err))
		return nil, 0, err
	}
	return bookings, revision, nil
}

func (r *bookingRepo) Save(ctx context.Context, bookings []models.Booking, revision int64) error {
	if err := saveCollection(ctx, r.kv, KeyBookings, bookings, revision); err != nil {
		r.log.Error("failed to save bookings", logger.Error(err))
		return err
	}
	return nil
}

func (r *bookingRepo) Append(ctx context.Context, booking models.Booking) error {
	bookings, revision, err := r.Load(ctx)
	if err != nil {
		return err
	}
	return r.Save(ctx, append(bookings, booking), revision)
}

// FindByID is a linear scan over the whole collection. A missing booking is
// (nil, nil): the caller decides whether that is an error.
func (r *bookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	bookings, _, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			return &bookings[i], nil
		}
	}
	return nil, nil
}
