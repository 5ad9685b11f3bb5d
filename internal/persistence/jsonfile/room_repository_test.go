package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/example/roombook/internal/persistence"
)

func roomWithName(id, name string) persistence.Room {
	raw, _ := json.Marshal(name)
	return persistence.Room{ID: id, Extra: map[string]json.RawMessage{"name": raw}}
}

func TestRoomRepository_LoadRooms_EmptyWhenAbsent(t *testing.T) {
	repo := NewRoomRepository(newTestStore(t))

	rooms, err := repo.LoadRooms(context.Background())
	if err != nil {
		t.Fatalf("LoadRooms failed: %v", err)
	}
	if len(rooms) != 0 {
		t.Errorf("Expected empty catalog, got %v", rooms)
	}
}

func TestRoomRepository_SaveAndLoad_PreservesOrder(t *testing.T) {
	repo := NewRoomRepository(newTestStore(t))
	ctx := context.Background()

	in := []persistence.Room{
		roomWithName("r2", "Boardroom"),
		roomWithName("r1", "Huddle"),
		roomWithName("r3", "War Room"),
	}
	if err := repo.SaveRooms(ctx, in); err != nil {
		t.Fatalf("SaveRooms failed: %v", err)
	}

	rooms, err := repo.LoadRooms(ctx)
	if err != nil {
		t.Fatalf("LoadRooms failed: %v", err)
	}
	if len(rooms) != 3 {
		t.Fatalf("Expected 3 rooms, got %d", len(rooms))
	}
	for i, id := range []string{"r2", "r1", "r3"} {
		if rooms[i].ID != id {
			t.Errorf("Expected room %s at index %d, got %s", id, i, rooms[i].ID)
		}
	}
}

func TestRoomRepository_SaveRooms_DuplicateID(t *testing.T) {
	repo := NewRoomRepository(newTestStore(t))
	ctx := context.Background()

	seed := []persistence.Room{roomWithName("r1", "Huddle")}
	if err := repo.SaveRooms(ctx, seed); err != nil {
		t.Fatalf("Seed SaveRooms failed: %v", err)
	}

	dup := []persistence.Room{
		roomWithName("r1", "Huddle"),
		roomWithName("r2", "Boardroom"),
		roomWithName("r1", "Impostor"),
	}
	err := repo.SaveRooms(ctx, dup)
	if err == nil {
		t.Fatal("Expected error for duplicate room id, got nil")
	}
	if !errors.Is(err, persistence.ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID, got %v", err)
	}

	// The failed save must not have written partial data.
	rooms, err := repo.LoadRooms(ctx)
	if err != nil {
		t.Fatalf("LoadRooms failed: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != "r1" {
		t.Errorf("Expected the seeded catalog to survive, got %v", rooms)
	}
}
