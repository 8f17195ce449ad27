package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"github.com/analisys/biblioteca-circulacion/src/config"
	"github.com/analisys/biblioteca-circulacion/src/models"
	"github.com/analisys/biblioteca-circulacion/src/services"
)

type stubCirculacion struct {
	prestamos []models.Prestamo
}

func (s stubCirculacion) PrestarLibro(context.Context, models.UsuarioId, models.LibroId) error {
	return nil
}

func (s stubCirculacion) DevolverLibro(context.Context, models.PrestamoId) error { return nil }

func (s stubCirculacion) ObtenerTodosPrestamos(context.Context) ([]models.Prestamo, error) {
	return s.prestamos, nil
}

func TestExportCmd_RequiresDSN(t *testing.T) {
	chdir(t, t.TempDir())
	m, err := config.NewManager("")
	require.NoError(t, err)
	cfgManager = m
	t.Cleanup(func() { cfgManager = nil })

	err = exportCmd.RunE(exportCmd, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db.dsn")
}

func TestWriteExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prestamos.xlsx")
	svc := services.NewExportService(stubCirculacion{prestamos: []models.Prestamo{
		{Id: "P1", UsuarioId: "U1", LibroId: "B1", FechaPrestamo: time.Now(), Estado: models.EstadoActivo},
	}})

	n, err := writeExport(context.Background(), svc, path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Prestamos")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestWriteExport_BadPath(t *testing.T) {
	svc := services.NewExportService(stubCirculacion{})

	_, err := writeExport(context.Background(), svc, filepath.Join(t.TempDir(), "missing", "out.xlsx"))
	assert.Error(t, err)
}

// chdir mirrors testing.T.Chdir (Go 1.24+): switch the working directory for
// the duration of the test and restore it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
