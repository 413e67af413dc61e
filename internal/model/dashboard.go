package model

import "github.com/shopspring/decimal"

// DashboardStats aggregates the backoffice landing page counters.
type DashboardStats struct {
	TotalProducts    int64           `json:"totalProdutos"`
	ActiveProducts   int64           `json:"produtosAtivos"`
	InactiveProducts int64           `json:"produtosInativos"`
	LowStock         int64           `json:"baixoEstoque"`
	InventoryValue   decimal.Decimal `json:"valorTotalEstoque"`
	TotalUsers       int64           `json:"totalUsuarios"`
}
