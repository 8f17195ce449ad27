package services

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/analisys/biblioteca-circulacion/src/middleware"
	"github.com/analisys/biblioteca-circulacion/src/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	// one connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, conn.AutoMigrate(&models.Prestamo{}, &models.UserModel{}))
	return conn
}

func newTestTokens() *middleware.TokenManager {
	return middleware.NewTokenManager("test-secret", time.Hour)
}

// fixedClock returns start, start+1h, start+2h, ... on successive calls.
func fixedClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Hour)
		return now
	}
}

func TestPrestamoService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewPrestamoService(newTestDB(t))
	start := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(start)

	require.NoError(t, svc.PrestarLibro(ctx, models.NewUsuarioId("U1"), models.NewLibroId("B1")))
	require.NoError(t, svc.PrestarLibro(ctx, models.NewUsuarioId("U2"), models.NewLibroId("B2")))

	prestamos, err := svc.ObtenerTodosPrestamos(ctx)
	require.NoError(t, err)
	require.Len(t, prestamos, 2)

	first, second := prestamos[0], prestamos[1]
	assert.Equal(t, models.UsuarioId("U1"), first.UsuarioId)
	assert.Equal(t, models.LibroId("B1"), first.LibroId)
	assert.Equal(t, models.UsuarioId("U2"), second.UsuarioId)
	assert.True(t, first.FechaPrestamo.Before(second.FechaPrestamo))
	assert.WithinDuration(t, start, first.FechaPrestamo, time.Second)

	for _, p := range prestamos {
		assert.Equal(t, models.EstadoActivo, p.Estado)
		assert.Nil(t, p.FechaDevolucion)
		_, err := uuid.Parse(p.Id.String())
		assert.NoError(t, err, "id %q", p.Id)
	}
	assert.NotEqual(t, first.Id, second.Id)

	require.NoError(t, svc.DevolverLibro(ctx, first.Id))

	prestamos, err = svc.ObtenerTodosPrestamos(ctx)
	require.NoError(t, err)
	require.Len(t, prestamos, 2)
	assert.Equal(t, first.Id, prestamos[0].Id)
	assert.Equal(t, models.EstadoDevuelto, prestamos[0].Estado)
	require.NotNil(t, prestamos[0].FechaDevolucion)
	assert.WithinDuration(t, start.Add(2*time.Hour), *prestamos[0].FechaDevolucion, time.Second)
	assert.Equal(t, models.EstadoActivo, prestamos[1].Estado)
	assert.Nil(t, prestamos[1].FechaDevolucion)
}

func TestPrestamoService_ListOrderedByFechaPrestamo(t *testing.T) {
	ctx := context.Background()
	svc := NewPrestamoService(newTestDB(t))
	times := []time.Time{
		time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
	}
	for i, ts := range times {
		ts := ts
		svc.now = func() time.Time { return ts }
		require.NoError(t, svc.PrestarLibro(ctx, models.NewUsuarioId("U"), models.NewLibroId([]string{"C", "A", "B"}[i])))
	}

	prestamos, err := svc.ObtenerTodosPrestamos(ctx)
	require.NoError(t, err)
	require.Len(t, prestamos, 3)
	assert.Equal(t, models.LibroId("A"), prestamos[0].LibroId)
	assert.Equal(t, models.LibroId("B"), prestamos[1].LibroId)
	assert.Equal(t, models.LibroId("C"), prestamos[2].LibroId)
}

func TestPrestamoService_DevolverUnknownId(t *testing.T) {
	ctx := context.Background()
	svc := NewPrestamoService(newTestDB(t))

	err := svc.DevolverLibro(ctx, models.NewPrestamoId("no-existe"))

	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	prestamos, err := svc.ObtenerTodosPrestamos(ctx)
	require.NoError(t, err)
	assert.Empty(t, prestamos)
}

func TestUserService_CreateAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	tokens := newTestTokens()
	svc := NewUserService(newTestDB(t), tokens)

	user, err := svc.CreateUser(ctx, "ana", "clave", []string{"ROLE_LIBRARIAN"})
	require.NoError(t, err)
	assert.NotEqual(t, "clave", user.Password)
	assert.Equal(t, []string{"LIBRARIAN"}, user.RoleList())

	token, err := svc.AuthenticateUser(ctx, "ana", "clave")
	require.NoError(t, err)
	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, []string{"LIBRARIAN"}, claims.AllRoles())

	_, err = svc.AuthenticateUser(ctx, "ana", "otra")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.AuthenticateUser(ctx, "nadie", "clave")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
