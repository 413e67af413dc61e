package model

import "time"

// CartItem is one (customer, product) row of a shopping cart. There is at
// most one row per pair; adding the same product again increments quantity.
type CartItem struct {
	ID         int64     `json:"id" db:"id_carrinho_item"`
	CustomerID int64     `json:"clienteId" db:"id_cliente"`
	ProductID  int64     `json:"produtoId" db:"id_produto"`
	Quantity   int       `json:"quantidade" db:"quantidade"`
	AddedAt    time.Time `json:"dataAdicao" db:"data_adicao"`
	UpdatedAt  time.Time `json:"dataAtualizacao" db:"data_atualizacao"`
	Product    *Product  `json:"produto,omitempty"`
}

// CartAddRequest is the payload for POST /api/carrinho/adicionar.
type CartAddRequest struct {
	CustomerID int64 `json:"clienteId"`
	ProductID  int64 `json:"produtoId"`
	Quantity   int   `json:"quantidade"`
}

// CartQuantityRequest is the payload for updating one cart line's quantity.
type CartQuantityRequest struct {
	CustomerID int64 `json:"clienteId"`
	ProductID  int64 `json:"produtoId"`
	Quantity   int   `json:"quantidade"`
}
