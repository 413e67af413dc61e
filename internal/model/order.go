package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order. No transition table is
// enforced; any status may be set from any other.
type OrderStatus string

const (
	StatusAwaitingPayment  OrderStatus = "AWAITING_PAYMENT"
	StatusPaymentRejected  OrderStatus = "PAYMENT_REJECTED"
	StatusPaymentSucceeded OrderStatus = "PAYMENT_SUCCEEDED"
	StatusAwaitingPickup   OrderStatus = "AWAITING_PICKUP"
	StatusInTransit        OrderStatus = "IN_TRANSIT"
	StatusDelivered        OrderStatus = "DELIVERED"
	StatusCancelled        OrderStatus = "CANCELLED"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusAwaitingPayment, StatusPaymentRejected, StatusPaymentSucceeded,
		StatusAwaitingPickup, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order is the persisted order aggregate. Total always equals subtotal plus
// shipping fee; line items are immutable history once created.
type Order struct {
	ID          int64           `json:"id" db:"id_pedido"`
	CustomerID  int64           `json:"clienteId" db:"id_cliente"`
	Number      string          `json:"numeroPedido" db:"numero_pedido"`
	Status      OrderStatus     `json:"status" db:"status"`
	Subtotal    decimal.Decimal `json:"subtotal" db:"subtotal"`
	ShippingFee decimal.Decimal `json:"valorFrete" db:"valor_frete"`
	Total       decimal.Decimal `json:"valorTotal" db:"valor_total"`

	// Delivery address snapshot
	PostalCode   string `json:"enderecoEntregaCep" db:"endereco_entrega_cep"`
	Street       string `json:"enderecoEntregaLogradouro" db:"endereco_entrega_logradouro"`
	StreetNumber string `json:"enderecoEntregaNumero" db:"endereco_entrega_numero"`
	Complement   string `json:"enderecoEntregaComplemento,omitempty" db:"endereco_entrega_complemento"`
	District     string `json:"enderecoEntregaBairro" db:"endereco_entrega_bairro"`
	City         string `json:"enderecoEntregaCidade" db:"endereco_entrega_cidade"`
	State        string `json:"enderecoEntregaUf" db:"endereco_entrega_uf"`

	Notes     string      `json:"observacoes,omitempty" db:"observacoes"`
	CreatedAt time.Time   `json:"dataPedido" db:"data_pedido"`
	UpdatedAt time.Time   `json:"dataAtualizacao" db:"data_atualizacao"`
	Items     []OrderItem `json:"itens"`
}

// OrderItem is one line of an order with the unit price and product display
// data snapshotted at purchase time, so later catalogue edits never alter
// historical orders.
type OrderItem struct {
	ID                 int64           `json:"id" db:"id_item_pedido"`
	OrderID            int64           `json:"-" db:"id_pedido"`
	ProductID          int64           `json:"produtoId" db:"id_produto"`
	Quantity           int             `json:"quantidade" db:"quantidade"`
	UnitPrice          decimal.Decimal `json:"precoUnitario" db:"preco_unitario"`
	Subtotal           decimal.Decimal `json:"subtotal" db:"subtotal"`
	ProductName        string          `json:"nomeProduto" db:"nome_produto"`
	ProductDescription string          `json:"descricaoProduto,omitempty" db:"descricao_produto"`
}

// CreateOrderRequest is the payload for POST /api/pedidos. The unit price is
// accepted into the DTO but totals are always computed from the server-held
// product price.
type CreateOrderRequest struct {
	CustomerID *int64             `json:"clienteId"`
	Items      []OrderItemRequest `json:"itens"`
	PostalCode string             `json:"cepEntrega"`
	Street     string             `json:"enderecoEntregaLogradouro"`
	Number     string             `json:"enderecoEntregaNumero"`
	Complement string             `json:"enderecoEntregaComplemento"`
	District   string             `json:"enderecoEntregaBairro"`
	City       string             `json:"enderecoEntregaCidade"`
	State      string             `json:"enderecoEntregaUf"`
	Notes      string             `json:"observacoes"`
	ChosenFee  *decimal.Decimal   `json:"valorFreteEscolhido"`
}

// OrderItemRequest is a single requested line.
type OrderItemRequest struct {
	ProductID int64            `json:"produtoId"`
	Quantity  int              `json:"quantidade"`
	UnitPrice *decimal.Decimal `json:"precoUnitario"`
}
