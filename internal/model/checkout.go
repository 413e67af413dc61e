package model

import "github.com/shopspring/decimal"

// CheckoutRequest is the payload for the pre-order checkout endpoints.
type CheckoutRequest struct {
	CustomerID *int64             `json:"clienteId"`
	Items      []OrderItemRequest `json:"itens"`
	PostalCode string             `json:"cep"`
}

// CheckoutSummary is the computed totals preview returned before an order is
// actually placed. Nothing is persisted and no stock is reserved.
type CheckoutSummary struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"valorFrete"`
	Total       decimal.Decimal `json:"valorTotal"`
}
