package jsonfile

import (
	"context"
	"fmt"

	"github.com/example/roombook/internal/persistence"
)

// RoomRepository implements persistence.RoomRepository on rooms.json.
type RoomRepository struct {
	store *Store
}

// NewRoomRepository creates a room repository backed by the store.
func NewRoomRepository(store *Store) *RoomRepository {
	return &RoomRepository{store: store}
}

func (r *RoomRepository) path() string {
	return r.store.filePath(roomsFileName)
}

// LoadRooms returns the catalog in stored order. An absent file is an empty
// catalog.
func (r *RoomRepository) LoadRooms(ctx context.Context) ([]persistence.Room, error) {
	var rooms []persistence.Room
	err := r.store.withPathLock(r.path(), func() error {
		_, err := r.store.readJSON(r.path(), &rooms)
		return err
	})
	if err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []persistence.Room{}
	}
	return rooms, nil
}

// SaveRooms persists the catalog wholesale. Duplicate identifiers fail with
// persistence.ErrDuplicateID before anything is written.
func (r *RoomRepository) SaveRooms(ctx context.Context, rooms []persistence.Room) error {
	if rooms == nil {
		rooms = []persistence.Room{}
	}
	seen := make(map[string]struct{}, len(rooms))
	for _, room := range rooms {
		if _, dup := seen[room.ID]; dup {
			return fmt.Errorf("room %q: %w", room.ID, persistence.ErrDuplicateID)
		}
		seen[room.ID] = struct{}{}
	}
	return r.store.withPathLock(r.path(), func() error {
		return r.store.writeJSON(r.path(), rooms)
	})
}
