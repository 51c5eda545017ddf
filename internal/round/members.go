package round

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/repository"
)

// memberDirectory resolves member display names through a small expiring cache
type memberDirectory struct {
	repo  repository.Member
	names *expirable.LRU[string, string]
}

func newMemberDirectory(repo repository.Member, size int, ttl time.Duration) *memberDirectory {
	if size <= 0 {
		size = DefaultMemberCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultMemberCacheTTL
	}
	return &memberDirectory{
		repo:  repo,
		names: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

// name returns the member's display name
func (d *memberDirectory) name(ctx context.Context, memberID string) (string, error) {
	if name, ok := d.names.Get(memberID); ok {
		return name, nil
	}
	m, err := d.repo.GetMember(ctx, memberID)
	if err != nil {
		return "", err
	}
	d.names.Add(m.ID, m.Username)
	return m.Username, nil
}

// exists reports a lookup error, or domain.ErrMemberNotFound when the member is missing
func (d *memberDirectory) exists(ctx context.Context, memberID string) error {
	if memberID == "" {
		return fmt.Errorf("%w: member id is required", domain.ErrInvalidInput)
	}
	_, err := d.name(ctx, memberID)
	return err
}

// ensure returns the member, registering it with an opening balance on first sight
func (d *memberDirectory) ensure(ctx context.Context, memberID, username string, opening int64) (*domain.Member, error) {
	if memberID == "" {
		return nil, fmt.Errorf("%w: member id is required", domain.ErrInvalidInput)
	}
	m, err := d.repo.GetMember(ctx, memberID)
	if err == nil {
		d.names.Add(m.ID, m.Username)
		return m, nil
	}
	if !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, fmt.Errorf("%s: %w", ErrContextLookupMember, err)
	}

	if username == "" {
		username = memberID
	}
	m = &domain.Member{ID: memberID, Username: username, TicketBalance: opening}
	if err := d.repo.CreateMember(ctx, m); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextEnsureMember, err)
	}
	d.names.Add(m.ID, m.Username)
	return m, nil
}
