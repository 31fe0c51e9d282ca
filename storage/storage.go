package storage

import (
	"context"
	"errors"

	"ridehub/pkg/models"
)

// Collection keys in the backing store. The layout is a flat set of
// JSON-serializable collections accessed by string key, same as the browser
// profile this store models.
const (
	KeyBookings    = "bookings"
	KeyUsers       = "users"
	KeyMessages    = "messages"
	KeyCurrentUser = "currentUser"
	KeyChat        = "chatMessages"
)

// ErrConflict is returned by KV.Store when the caller's revision is stale:
// another writer replaced the document since it was loaded.
var ErrConflict = errors.New("storage: revision conflict")

// KV is the collections substrate. A document is loaded and stored whole;
// there is no partial update, no indexing and no cross-key transaction.
// Load of an absent key yields an empty document at revision 0, never an
// error. Store is a compare-and-set on the revision returned by Load.
type KV interface {
	Load(ctx context.Context, key string) (doc []byte, revision int64, err error)
	Store(ctx context.Context, key string, doc []byte, revision int64) error
	Delete(ctx context.Context, key string) error
	Close()
}

type IStorage interface {
	Booking() IBookingStorage
	User() IUserStorage
	Message() IMessageStorage
	Chat() IChatStorage
	Session() ISessionStorage
	Close()
}

// IBookingStorage reads and writes the booking sequence as one unit. Every
// mutation is a full read-modify-write cycle; the revision token from Load
// must be passed back to Save so a concurrent writer is detected instead of
// silently clobbered.
type IBookingStorage interface {
	Load(ctx context.Context) ([]models.Booking, int64, error)
	Save(ctx context.Context, bookings []models.Booking, revision int64) error
	Append(ctx context.Context, booking models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
}

type IUserStorage interface {
	Load(ctx context.Context) ([]models.User, int64, error)
	Save(ctx context.Context, users []models.User, revision int64) error
	Append(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type IMessageStorage interface {
	Load(ctx context.Context) ([]models.ContactMessage, int64, error)
	Save(ctx context.Context, messages []models.ContactMessage, revision int64) error
	Append(ctx context.Context, message models.ContactMessage) error
}

type IChatStorage interface {
	Load(ctx context.Context) ([]models.ChatMessage, int64, error)
	Append(ctx context.Context, message models.ChatMessage) error
}

// ISessionStorage holds the at-most-one current-user record.
type ISessionStorage interface {
	Get(ctx context.Context) (*models.Session, error)
	Set(ctx context.Context, session models.Session) error
	Clear(ctx context.Context) error
}
