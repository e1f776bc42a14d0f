package repository

import "github.com/essaghir/stock-ledger-api/internal/domain/entity"

// UserProductRepository define el puerto de persistencia para lotes (UserProduct).
// Delete borra solo la cabecera: la cascada completa (movimientos → líneas → lote)
// la orquesta el caso de uso dentro de una transacción.
type UserProductRepository interface {
	Create(up *entity.UserProduct) error
	GetByID(id string) (*entity.UserProduct, error)
	ListByUser(userID string, limit, offset int) ([]*entity.UserProduct, error)
	Delete(id string) error
}
