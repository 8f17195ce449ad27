package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"github.com/analisys/biblioteca-circulacion/src/models"
)

type fakeCirculacion struct {
	prestamos []models.Prestamo
	err       error
}

func (f *fakeCirculacion) PrestarLibro(context.Context, models.UsuarioId, models.LibroId) error {
	return nil
}

func (f *fakeCirculacion) DevolverLibro(context.Context, models.PrestamoId) error { return nil }

func (f *fakeCirculacion) ObtenerTodosPrestamos(context.Context) ([]models.Prestamo, error) {
	return f.prestamos, f.err
}

func TestExportPrestamos_WritesOneRowPerLoan(t *testing.T) {
	fecha := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	devuelto := fecha.Add(72 * time.Hour)
	svc := NewExportService(&fakeCirculacion{prestamos: []models.Prestamo{
		{Id: "P1", UsuarioId: "U1", LibroId: "B1", FechaPrestamo: fecha, Estado: models.EstadoActivo},
		{Id: "P2", UsuarioId: "U2", LibroId: "B2", FechaPrestamo: fecha, FechaDevolucion: &devuelto, Estado: models.EstadoDevuelto},
	}})

	var buf bytes.Buffer
	n, err := svc.ExportPrestamos(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(prestamosSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, []string{"P1", "U1", "B1", "2026-05-04 09:30", "", "ACTIVO"}, rows[1])
	assert.Equal(t, []string{"P2", "U2", "B2", "2026-05-04 09:30", "2026-05-07 09:30", "DEVUELTO"}, rows[2])
}

func TestExportPrestamos_PropagatesServiceError(t *testing.T) {
	svc := NewExportService(&fakeCirculacion{err: errors.New("boom")})

	var buf bytes.Buffer
	_, err := svc.ExportPrestamos(context.Background(), &buf)
	assert.EqualError(t, err, "boom")
	assert.Zero(t, buf.Len())
}

func TestJoinRoles(t *testing.T) {
	assert.Equal(t, "LIBRARIAN,USER", JoinRoles([]string{"ROLE_LIBRARIAN", "user", " librarian ", ""}))
	assert.Equal(t, "", JoinRoles(nil))

	u := models.UserModel{Roles: JoinRoles([]string{"ROLE_USER", "LIBRARIAN"})}
	assert.Equal(t, []string{"USER", "LIBRARIAN"}, u.RoleList())
}
