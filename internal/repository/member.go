package repository

import (
	"context"

	"github.com/osse101/TriCard_Go/internal/domain"
)

// Member looks up and registers participants
type Member interface {
	GetMember(ctx context.Context, id string) (*domain.Member, error)
	CreateMember(ctx context.Context, member *domain.Member) error
}
