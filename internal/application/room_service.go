package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/roombook/internal/persistence"
)

// RoomCatalog captures the persistence operations needed by the room service.
type RoomCatalog interface {
	LoadRooms(ctx context.Context) ([]persistence.Room, error)
	SaveRooms(ctx context.Context, rooms []persistence.Room) error
}

// RoomService orchestrates validation and persistence for the room catalog.
type RoomService struct {
	rooms  RoomCatalog
	logger *slog.Logger
}

// NewRoomService wires dependencies for the room service.
func NewRoomService(rooms RoomCatalog) *RoomService {
	return NewRoomServiceWithLogger(rooms, nil)
}

// NewRoomServiceWithLogger constructs a room service with a specified logger.
func NewRoomServiceWithLogger(rooms RoomCatalog, logger *slog.Logger) *RoomService {
	return &RoomService{rooms: rooms, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// SaveRooms replaces the catalog wholesale. Two rooms sharing an identifier
// fail with ErrDuplicateRoom and nothing is written.
func (s *RoomService) SaveRooms(ctx context.Context, rooms []persistence.Room) (err error) {
	if s == nil {
		return fmt.Errorf("RoomService is nil")
	}

	logger := s.loggerWith(ctx, "SaveRooms", "room_count", len(rooms))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to save rooms", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "room catalog saved")
	}()

	vErr := &ValidationError{}
	for i, room := range rooms {
		if strings.TrimSpace(room.ID) == "" {
			vErr.add(fmt.Sprintf("rooms[%d].id", i), "must not be empty")
		}
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if s.rooms == nil {
		err = fmt.Errorf("room catalog not configured")
		return
	}

	if err = s.rooms.SaveRooms(ctx, rooms); err != nil {
		if errors.Is(err, persistence.ErrDuplicateID) {
			err = fmt.Errorf("%v: %w", err, ErrDuplicateRoom)
		}
		return
	}
	return
}

// Rooms returns the catalog in stored order.
func (s *RoomService) Rooms(ctx context.Context) ([]persistence.Room, error) {
	if s == nil {
		return nil, fmt.Errorf("RoomService is nil")
	}
	if s.rooms == nil {
		return nil, fmt.Errorf("room catalog not configured")
	}
	return s.rooms.LoadRooms(ctx)
}
