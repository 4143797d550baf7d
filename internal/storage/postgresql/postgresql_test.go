package postgresql

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/barbershop/internal/storage"
	"github.com/magabrotheeeer/barbershop/internal/storage/storagetest"
)

// connString берёт строку подключения из TEST_POSTGRES, а без неё поднимает контейнер.
func connString(t *testing.T) string {
	if connStr := os.Getenv("TEST_POSTGRES"); connStr != "" {
		return connStr
	}
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("barbershop"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func setupStorage(t *testing.T) *Storage {
	s, err := New(context.Background(), connString(t))
	require.NoError(t, err, "failed to connect test db")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func truncate(t *testing.T, s *Storage) {
	_, err := s.pool.Exec(context.Background(),
		"TRUNCATE users, services, appointments, testimonials, contact_messages RESTART IDENTITY CASCADE;")
	require.NoError(t, err, "failed to truncate tables")
}

func TestStorageContract(t *testing.T) {
	s := setupStorage(t)

	storagetest.Run(t, func(t *testing.T) storage.Storage {
		truncate(t, s)
		return s
	})
}

func TestNew_MigratesTwice(t *testing.T) {
	connStr := connString(t)

	first, err := New(context.Background(), connStr)
	require.NoError(t, err)
	defer first.Close()

	second, err := New(context.Background(), connStr)
	require.NoError(t, err)
	defer second.Close()
}

func TestGetAppointments_Ordered(t *testing.T) {
	s := setupStorage(t)
	truncate(t, s)
	ctx := context.Background()

	for _, in := range [][2]string{{"2025-01-02", "09:00"}, {"2025-01-01", "12:00"}, {"2025-01-01", "10:00"}} {
		_, err := s.CreateAppointment(ctx, storagetest.NewAppointment(in[0], in[1]))
		require.NoError(t, err)
	}

	got, err := s.GetAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "10:00", got[0].Time)
	assert.Equal(t, "12:00", got[1].Time)
	assert.Equal(t, "2025-01-02", got[2].Date)
}
