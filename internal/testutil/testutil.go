// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/billmate/billmate/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 731731

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops and recreates the full schema by replaying every
// migration file: all Down sections in reverse order, then all Up
// sections in order.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	paths, err := filepath.Glob(filepath.Join(root, "migrations", "*.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(paths)

	ups := make([]string, 0, len(paths))
	downs := make([]string, 0, len(paths))
	for _, path := range paths {
		up, down, err := splitMigration(path)
		if err != nil {
			return err
		}
		ups = append(ups, up)
		downs = append(downs, down)
	}

	for i := len(downs) - 1; i >= 0; i-- {
		if downs[i] == "" {
			continue
		}
		if _, err := pool.Exec(ctx, downs[i]); err != nil {
			return fmt.Errorf("apply down migration %s: %w", filepath.Base(paths[i]), err)
		}
	}

	for i, up := range ups {
		if _, err := pool.Exec(ctx, up); err != nil {
			return fmt.Errorf("apply up migration %s: %w", filepath.Base(paths[i]), err)
		}
	}

	return nil
}

// splitMigration separates the Up and Down sections of a goose migration.
func splitMigration(path string) (up, down string, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read migration: %w", err)
	}

	content := string(raw)
	const downMarker = "-- +goose Down"

	if idx := strings.Index(content, downMarker); idx >= 0 {
		up = content[:idx]
		down = content[idx+len(downMarker):]
	} else {
		up = content
	}

	up = stripGooseDirectives(up)
	down = stripGooseDirectives(down)
	return up, down, nil
}

func stripGooseDirectives(sql string) string {
	lines := strings.Split(sql, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "-- +goose") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestBill creates a bill with sensible defaults, dated now so it is
// payable in the current month.
func NewTestBill(t testing.TB, title string) *model.Bill {
	t.Helper()
	now := time.Now().UTC()
	return &model.Bill{
		ID:           UniqueID("bill"),
		Title:        title,
		Category:     model.CategoryElectricity,
		Amount:       120.50,
		Location:     "Springfield",
		Description:  "Monthly electricity bill",
		Date:         now,
		CreatorEmail: "creator@example.com",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewTestPayment creates a payment record owned by email.
func NewTestPayment(t testing.TB, billID, email string) *model.Payment {
	t.Helper()
	now := time.Now().UTC()
	return &model.Payment{
		ID:        UniqueID("payment"),
		BillID:    billID,
		Email:     email,
		PayerName: "Test Payer",
		Address:   "12 Main St",
		Phone:     "555-0100",
		Amount:    120.50,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestUser creates a password-provider user.
func NewTestUser(t testing.TB, email string) *model.User {
	t.Helper()
	now := time.Now().UTC()
	return &model.User{
		ID:           UniqueID("user"),
		Email:        email,
		DisplayName:  "Test User",
		Provider:     model.ProviderPassword,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
