package postgres

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/osse101/TriCard_Go/internal/database"
	"github.com/osse101/TriCard_Go/internal/domain"
	"github.com/osse101/TriCard_Go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	_ repository.Room   = (*RoomRepository)(nil)
	_ repository.Ledger = (*WalletRepository)(nil)
	_ repository.Member = (*WalletRepository)(nil)
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	var terminate func()
	if !testing.Short() {
		terminate = setupDatabase(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupDatabase(ctx context.Context) func() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupDatabase: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return func() {}
	}
	terminate := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		return terminate
	}
	pool, err := database.NewPool(ctx, connStr, 10)
	if err != nil {
		fmt.Printf("WARNING: Failed to connect: %v\n", err)
		return terminate
	}
	if err := database.Migrate(ctx, pool); err != nil {
		fmt.Printf("WARNING: Failed to migrate: %v\n", err)
		pool.Close()
		return terminate
	}
	testPool = pool
	return terminate
}

func requireDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
	return testPool
}

func uniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestRoomRepository_Integration(t *testing.T) {
	pool := requireDB(t)
	repo := NewRoomRepository(pool)
	ctx := context.Background()

	room := &domain.Room{
		ID:        uniqueID("room"),
		Code:      "321",
		DealerID:  "dealer",
		MemberIDs: []string{"dealer"},
		Status:    domain.RoomStatusBetting,
		Round:     1,
	}
	require.NoError(t, repo.CreateRoom(ctx, room))
	assert.Equal(t, int64(1), room.Version)

	t.Run("code unique among open rooms", func(t *testing.T) {
		dup := &domain.Room{ID: uniqueID("room"), Code: "321", Status: domain.RoomStatusBetting}
		assert.ErrorIs(t, repo.CreateRoom(ctx, dup), domain.ErrRoomCodeTaken)
	})

	t.Run("round trip", func(t *testing.T) {
		loaded, err := repo.GetRoom(ctx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, room.Code, loaded.Code)
		assert.Equal(t, []string{"dealer"}, loaded.MemberIDs)

		loaded.AdjustWager("dealer", domain.ParseSpot("slot2-suits-♦♥"), 9)
		require.NoError(t, repo.SaveRoom(ctx, loaded))
		assert.Equal(t, int64(2), loaded.Version)

		again, err := repo.GetRoom(ctx, room.ID)
		require.NoError(t, err)
		require.Len(t, again.Wagers, 1)
		assert.Equal(t, domain.CategoryDualSuit, again.Wagers[0].Spot.Category)
		assert.Equal(t, []domain.Suit{domain.SuitDiamonds, domain.SuitHearts}, again.Wagers[0].Spot.Suits)
		assert.Equal(t, int64(2), again.Version)
	})

	t.Run("stale write conflicts", func(t *testing.T) {
		a, err := repo.GetRoom(ctx, room.ID)
		require.NoError(t, err)
		b, err := repo.GetRoom(ctx, room.ID)
		require.NoError(t, err)

		require.NoError(t, repo.SaveRoom(ctx, a))
		assert.ErrorIs(t, repo.SaveRoom(ctx, b), domain.ErrRoomVersionConflict)
	})

	t.Run("missing room", func(t *testing.T) {
		_, err := repo.GetRoom(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrRoomNotFound)
		assert.ErrorIs(t, repo.SaveRoom(ctx, &domain.Room{ID: "nope", Version: 1}), domain.ErrRoomNotFound)
	})

	t.Run("closing frees the code", func(t *testing.T) {
		open, err := repo.GetOpenRoomByCode(ctx, "321")
		require.NoError(t, err)
		assert.Equal(t, room.ID, open.ID)

		open.Status = domain.RoomStatusClosed
		require.NoError(t, repo.SaveRoom(ctx, open))

		_, err = repo.GetOpenRoomByCode(ctx, "321")
		assert.ErrorIs(t, err, domain.ErrRoomNotFound)
		require.NoError(t, repo.CreateRoom(ctx, &domain.Room{ID: uniqueID("room"), Code: "321", Status: domain.RoomStatusBetting}))

		rooms, err := repo.ListOpenRooms(ctx)
		require.NoError(t, err)
		for _, r := range rooms {
			assert.NotEqual(t, domain.RoomStatusClosed, r.Status)
		}
	})
}

func TestWalletRepository_Integration(t *testing.T) {
	pool := requireDB(t)
	repo := NewWalletRepository(pool)
	ctx := context.Background()

	memberID := uniqueID("member")
	require.NoError(t, repo.CreateMember(ctx, &domain.Member{ID: memberID, Username: "alice", TicketBalance: 100}))

	m, err := repo.GetMember(ctx, memberID)
	require.NoError(t, err)
	assert.Equal(t, "alice", m.Username)
	assert.Equal(t, int64(100), m.TicketBalance)

	tx, err := repo.Debit(ctx, memberID, 40, "wager")
	require.NoError(t, err)
	assert.Equal(t, int64(60), tx.ResultingBalance)

	_, err = repo.Debit(ctx, memberID, 61, "too much")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	tx, err = repo.Credit(ctx, memberID, 15, "payout")
	require.NoError(t, err)
	assert.Equal(t, int64(75), tx.ResultingBalance)

	history, err := repo.ListTransactions(ctx, memberID, 10)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "payout", history[0].Reason)
	assert.Equal(t, domain.TransactionDebit, history[1].Type)
	assert.Equal(t, OpeningBalanceReason, history[2].Reason)

	_, err = repo.Credit(ctx, "ghost", 1, "x")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
	_, err = repo.GetMember(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestWalletRepository_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	pool := requireDB(t)
	repo := NewWalletRepository(pool)
	ctx := context.Background()

	memberID := uniqueID("member")
	require.NoError(t, repo.CreateMember(ctx, &domain.Member{ID: memberID, Username: "bob", TicketBalance: 50}))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Debit(ctx, memberID, 10, "race"); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	balance, err := repo.GetBalance(ctx, memberID)
	require.NoError(t, err)
	assert.Equal(t, 5, ok)
	assert.Zero(t, balance)
}
