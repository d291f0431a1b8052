package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
)

var (
	repoTestDBOnce sync.Once
	repoTestDBPool *pgxpool.Pool
	repoTestDBErr  error
)

func TestWorkoutRepositoryListOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	pool := repoIntegrationTestPool(t)
	repo := NewWorkoutRepository(pool)

	userID := createRepoTestUser(t, ctx, pool)
	t.Cleanup(func() { cleanupRepoTestUser(t, ctx, pool, userID) })

	older, err := repo.Create(ctx, CreateWorkoutInput{
		UserID: userID, Name: "Morning run", Type: "running", Duration: 30,
	})
	require.NoError(t, err)
	// Push the first record into the past so the two created_at values
	// cannot collide.
	_, err = pool.Exec(ctx, `UPDATE workouts SET created_at = created_at - INTERVAL '1 hour' WHERE id = $1`, older.ID)
	require.NoError(t, err)

	newer, err := repo.Create(ctx, CreateWorkoutInput{
		UserID: userID, Name: "Evening lift", Type: "strength", Duration: 45,
	})
	require.NoError(t, err)

	workouts, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, workouts, 2)
	require.Equal(t, newer.ID, workouts[0].ID, "newest workout must come first")
	require.Equal(t, older.ID, workouts[1].ID)
}

func TestWorkoutRepositoryUpdatePartialPreservesUntouchedFields(t *testing.T) {
	ctx := context.Background()
	pool := repoIntegrationTestPool(t)
	repo := NewWorkoutRepository(pool)

	userID := createRepoTestUser(t, ctx, pool)
	t.Cleanup(func() { cleanupRepoTestUser(t, ctx, pool, userID) })

	calories := 250
	created, err := repo.Create(ctx, CreateWorkoutInput{
		UserID:   userID,
		Name:     "Morning run",
		Type:     "running",
		Duration: 30,
		Calories: &calories,
		Notes:    "easy pace",
	})
	require.NoError(t, err)
	require.Nil(t, created.UpdatedAt)

	notes := "tempo intervals"
	updated, err := repo.UpdatePartial(ctx, created.ID, UpdateWorkoutInput{
		Notes: &notes,
	})
	require.NoError(t, err)

	require.Equal(t, "tempo intervals", updated.Notes)
	require.Equal(t, "Morning run", updated.Name)
	require.Equal(t, "running", updated.Type)
	require.Equal(t, 30, updated.Duration)
	require.NotNil(t, updated.Calories)
	require.Equal(t, 250, *updated.Calories)
	require.Equal(t, created.UserID, updated.UserID)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.NotNil(t, updated.UpdatedAt, "partial update must stamp updated_at")
}

func repoIntegrationTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	repoTestDBOnce.Do(func() {
		_ = godotenv.Load(".env")
		_ = godotenv.Load(filepath.Join("..", "..", ".env"))

		dbURL := os.Getenv("DB_URL")
		if dbURL == "" {
			repoTestDBErr = fmt.Errorf("DB_URL is not set")
			return
		}

		cfg, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			repoTestDBErr = err
			return
		}

		repoTestDBPool, repoTestDBErr = pgxpool.NewWithConfig(context.Background(), cfg)
		if repoTestDBErr != nil {
			return
		}
		repoTestDBErr = repoTestDBPool.Ping(context.Background())
	})

	if repoTestDBErr != nil {
		t.Skipf("skipping integration test: %v", repoTestDBErr)
	}
	return repoTestDBPool
}

func createRepoTestUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool) string {
	t.Helper()

	id := uuid.New().String()
	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, membership_type, membership_expiry)
		VALUES ($1, $2, 'x', 'basic', NOW() + INTERVAL '30 days')
	`, id, fmt.Sprintf("member-%s@example.com", id))
	require.NoError(t, err)
	return id
}

func cleanupRepoTestUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userID string) {
	t.Helper()

	_, err := pool.Exec(ctx, `DELETE FROM workouts WHERE user_id = $1`, userID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	require.NoError(t, err)
}
