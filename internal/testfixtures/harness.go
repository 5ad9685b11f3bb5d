package testfixtures

import (
	"context"
	"log/slog"
	"testing"

	"github.com/spf13/afero"

	"github.com/example/roombook/internal/application"
	"github.com/example/roombook/internal/persistence/jsonfile"
)

// Harness wires the flat-file repositories over an in-memory filesystem for
// integration-style persistence tests.
type Harness struct {
	Fs       afero.Fs
	Store    *jsonfile.Store
	Users    *jsonfile.UserRepository
	Rooms    *jsonfile.RoomRepository
	Bookings *jsonfile.BookingRepository
}

// NewHarness constructs a harness rooted at /data on a fresh mem-map
// filesystem.
func NewHarness(tb testing.TB) *Harness {
	tb.Helper()

	fs := afero.NewMemMapFs()
	store, err := jsonfile.Open(fs, "/data")
	if err != nil {
		tb.Fatalf("failed to open store: %v", err)
	}

	users := jsonfile.NewUserRepository(store)
	return &Harness{
		Fs:       fs,
		Store:    store,
		Users:    users,
		Rooms:    jsonfile.NewRoomRepository(store),
		Bookings: jsonfile.NewBookingRepository(store, users),
	}
}

// SeedRegistry persists the shared user registry and room catalog fixtures.
func (h *Harness) SeedRegistry(tb testing.TB) {
	tb.Helper()
	ctx := context.Background()
	if err := h.Users.SaveUsers(ctx, RegisteredUsers()); err != nil {
		tb.Fatalf("failed to seed users: %v", err)
	}
	if err := h.Rooms.SaveRooms(ctx, SampleRooms()); err != nil {
		tb.Fatalf("failed to seed rooms: %v", err)
	}
}

// ServiceDeps captures optional overrides for NewServices.
type ServiceDeps struct {
	IDGenerator func() string
	Logger      *slog.Logger
}

// Services bundles the application services wired over one harness.
type Services struct {
	Users    *application.UserService
	Rooms    *application.RoomService
	Bookings *application.BookingService
}

// NewServices builds application services backed by the harness repositories,
// defaulting to a deterministic identifier generator.
func (h *Harness) NewServices(deps ServiceDeps) *Services {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = NewIDGenerator("booking").NextFunc()
	}
	return &Services{
		Users:    application.NewUserServiceWithLogger(h.Users, deps.Logger),
		Rooms:    application.NewRoomServiceWithLogger(h.Rooms, deps.Logger),
		Bookings: application.NewBookingServiceWithLogger(h.Bookings, h.Users, idGen, deps.Logger),
	}
}
