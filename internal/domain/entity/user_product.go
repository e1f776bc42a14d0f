package entity

import "time"

// UserProduct representa un lote de entrada de stock ("factura" en la UI):
// un contenedor con nombre que agrupa líneas de producto de un mismo usuario.
// Su borrado es explícito y cascada hacia las líneas y sus movimientos.
type UserProduct struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
