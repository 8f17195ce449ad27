package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/analisys/biblioteca-circulacion/src/models"
)

// CirculacionService is the loan lifecycle contract the HTTP layer delegates to.
type CirculacionService interface {
	PrestarLibro(ctx context.Context, usuarioId models.UsuarioId, libroId models.LibroId) error
	DevolverLibro(ctx context.Context, prestamoId models.PrestamoId) error
	ObtenerTodosPrestamos(ctx context.Context) ([]models.Prestamo, error)
}

// PrestamoService stores loans with GORM. It records what it is asked to
// record and applies no lending rules of its own.
type PrestamoService struct {
	db  *gorm.DB
	now func() time.Time
}

var _ CirculacionService = (*PrestamoService)(nil)

// NewPrestamoService creates a new instance of PrestamoService
func NewPrestamoService(db *gorm.DB) *PrestamoService {
	return &PrestamoService{db: db, now: time.Now}
}

// PrestarLibro inserts an active loan pairing the user and the book
func (s *PrestamoService) PrestarLibro(ctx context.Context, usuarioId models.UsuarioId, libroId models.LibroId) error {
	prestamo := models.Prestamo{
		Id:            models.NewPrestamoId(uuid.NewString()),
		UsuarioId:     usuarioId,
		LibroId:       libroId,
		FechaPrestamo: s.now(),
		Estado:        models.EstadoActivo,
	}
	if err := s.db.WithContext(ctx).Create(&prestamo).Error; err != nil {
		return fmt.Errorf("failed to create prestamo: %w", err)
	}
	slog.Info("prestamo registrado", "prestamo_id", prestamo.Id, "usuario_id", usuarioId, "libro_id", libroId)
	return nil
}

// DevolverLibro closes the loan identified by prestamoId
func (s *PrestamoService) DevolverLibro(ctx context.Context, prestamoId models.PrestamoId) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prestamo models.Prestamo
		if err := tx.First(&prestamo, "id = ?", prestamoId).Error; err != nil {
			return err
		}

		devuelto := s.now()
		return tx.Model(&prestamo).Updates(map[string]interface{}{
			"fecha_devolucion": devuelto,
			"estado":           models.EstadoDevuelto,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to close prestamo %s: %w", prestamoId, err)
	}
	slog.Info("prestamo devuelto", "prestamo_id", prestamoId)
	return nil
}

// ObtenerTodosPrestamos retrieves every loan record, oldest first
func (s *PrestamoService) ObtenerTodosPrestamos(ctx context.Context) ([]models.Prestamo, error) {
	var prestamos []models.Prestamo
	if err := s.db.WithContext(ctx).Order("fecha_prestamo").Find(&prestamos).Error; err != nil {
		return nil, fmt.Errorf("failed to list prestamos: %w", err)
	}
	return prestamos, nil
}
