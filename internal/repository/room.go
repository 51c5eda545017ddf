package repository

import (
	"context"

	"github.com/osse101/TriCard_Go/internal/domain"
)

// Room is the room document store. Writes are optimistic: SaveRoom succeeds only
// when the stored version equals room.Version, and bumps it on success.
type Room interface {
	GetRoom(ctx context.Context, id string) (*domain.Room, error)
	GetOpenRoomByCode(ctx context.Context, code string) (*domain.Room, error)
	ListOpenRooms(ctx context.Context) ([]domain.Room, error)
	CreateRoom(ctx context.Context, room *domain.Room) error
	SaveRoom(ctx context.Context, room *domain.Room) error
}
