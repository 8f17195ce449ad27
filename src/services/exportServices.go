package services

import (
	"context"
	"fmt"
	"io"

	excelize "github.com/xuri/excelize/v2"

	"github.com/analisys/biblioteca-circulacion/src/models"
)

const prestamosSheet = "Prestamos"

var prestamosHeader = []interface{}{"ID", "Usuario", "Libro", "Fecha préstamo", "Fecha devolución", "Estado"}

type ExportService struct {
	circulacion CirculacionService
}

func NewExportService(circulacion CirculacionService) *ExportService {
	return &ExportService{circulacion: circulacion}
}

// ExportPrestamos writes every loan to an xlsx workbook.
func (s *ExportService) ExportPrestamos(ctx context.Context, w io.Writer) (int, error) {
	prestamos, err := s.circulacion.ObtenerTodosPrestamos(ctx)
	if err != nil {
		return 0, err
	}

	f, err := BuildPrestamosWorkbook(prestamos)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("failed to write workbook: %w", err)
	}
	return len(prestamos), nil
}

func BuildPrestamosWorkbook(prestamos []models.Prestamo) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", prestamosSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(prestamosSheet, "A1", &prestamosHeader); err != nil {
		return nil, err
	}

	for i, p := range prestamos {
		devolucion := ""
		if p.FechaDevolucion != nil {
			devolucion = p.FechaDevolucion.Format("2006-01-02 15:04")
		}
		row := []interface{}{
			p.Id.String(),
			p.UsuarioId.String(),
			p.LibroId.String(),
			p.FechaPrestamo.Format("2006-01-02 15:04"),
			devolucion,
			string(p.Estado),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(prestamosSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
