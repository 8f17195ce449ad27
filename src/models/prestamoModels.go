package models

import "time"

type EstadoPrestamo string

const (
	EstadoActivo   EstadoPrestamo = "ACTIVO"
	EstadoDevuelto EstadoPrestamo = "DEVUELTO"
)

type Prestamo struct {
	Id              PrestamoId     `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UsuarioId       UsuarioId      `json:"usuarioId" gorm:"column:usuario_id;type:varchar(255);not null;index"`
	LibroId         LibroId        `json:"libroId" gorm:"column:libro_id;type:varchar(255);not null;index"`
	FechaPrestamo   time.Time      `json:"fechaPrestamo" gorm:"column:fecha_prestamo;not null"`
	FechaDevolucion *time.Time     `json:"fechaDevolucion" gorm:"column:fecha_devolucion"`
	Estado          EstadoPrestamo `json:"estado" gorm:"type:varchar(20);not null"`
}

func (Prestamo) TableName() string {
	return "prestamos"
}
