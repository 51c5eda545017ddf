package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/osse101/TriCard_Go/internal/domain"
)

// RoomRepository stores rooms as JSONB documents with a version column
type RoomRepository struct {
	db *pgxpool.Pool
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

const roomColumns = `document, version, created_at, updated_at`

func scanRoom(row pgx.Row) (*domain.Room, error) {
	var (
		doc  []byte
		room domain.Room
	)
	if err := row.Scan(&doc, &room.Version, &room.CreatedAt, &room.UpdatedAt); err != nil {
		return nil, err
	}
	version, created, updated := room.Version, room.CreatedAt, room.UpdatedAt
	if err := json.Unmarshal(doc, &room); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeRoom, err)
	}
	room.Version, room.CreatedAt, room.UpdatedAt = version, created, updated
	return &room, nil
}

// GetRoom loads a room by id
func (r *RoomRepository) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	room, err := scanRoom(r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE room_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRoomNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRoom, err)
	}
	return room, nil
}

// GetOpenRoomByCode loads the room holding code that is not closed
func (r *RoomRepository) GetOpenRoomByCode(ctx context.Context, code string) (*domain.Room, error) {
	room, err := scanRoom(r.db.QueryRow(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE code = $1 AND status <> $2`, code, string(domain.RoomStatusClosed)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: code %s", domain.ErrRoomNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRoom, err)
	}
	return room, nil
}

// ListOpenRooms returns rooms that are not closed, oldest first
func (r *RoomRepository) ListOpenRooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE status <> $1 ORDER BY created_at`, string(domain.RoomStatusClosed))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRoom, err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRoom, err)
	}
	return rooms, nil
}

// CreateRoom inserts a room at version 1. A code already held by an open room
// fails with domain.ErrRoomCodeTaken.
func (r *RoomRepository) CreateRoom(ctx context.Context, room *domain.Room) error {
	room.Version = 1
	doc, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeRoom, err)
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO rooms (room_id, code, status, version, document, created_at, updated_at)
		VALUES ($1, $2, $3, 1, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`, room.ID, room.Code, string(room.Status), doc).Scan(&room.CreatedAt, &room.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrRoomCodeTaken, room.Code)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertRoom, err)
	}
	return nil
}

// SaveRoom writes room if its version still matches the stored one
func (r *RoomRepository) SaveRoom(ctx context.Context, room *domain.Room) error {
	next := *room
	next.Version = room.Version + 1
	doc, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeRoom, err)
	}

	err = r.db.QueryRow(ctx, `
		UPDATE rooms
		SET document = $2, status = $3, code = $4, version = version + 1, updated_at = NOW()
		WHERE room_id = $1 AND version = $5
		RETURNING version, updated_at
	`, room.ID, doc, string(room.Status), room.Code, room.Version).Scan(&room.Version, &room.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if qerr := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM rooms WHERE room_id = $1)`, room.ID).Scan(&exists); qerr != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToQueryRoom, qerr)
		}
		if !exists {
			return fmt.Errorf("%w: %s", domain.ErrRoomNotFound, room.ID)
		}
		return fmt.Errorf("%w: %s at version %d", domain.ErrRoomVersionConflict, room.ID, room.Version)
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrRoomCodeTaken, room.Code)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateRoom, err)
	}
	return nil
}
