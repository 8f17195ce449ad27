package models

// UsuarioId identifies a library patron.
type UsuarioId string

// LibroId identifies a book in the catalog.
type LibroId string

// PrestamoId identifies a loan record.
type PrestamoId string

func NewUsuarioId(id string) UsuarioId { return UsuarioId(id) }

func NewLibroId(id string) LibroId { return LibroId(id) }

func NewPrestamoId(id string) PrestamoId { return PrestamoId(id) }

func (id UsuarioId) String() string { return string(id) }

func (id LibroId) String() string { return string(id) }

func (id PrestamoId) String() string { return string(id) }
