package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalogue product.
type Product struct {
	ID          int64            `json:"id" db:"id_produto"`
	Name        string           `json:"nome" db:"nome"`
	Price       decimal.Decimal  `json:"preco" db:"preco"`
	Stock       int              `json:"quantidadeEstoque" db:"qtd_estoque"`
	Rating      *decimal.Decimal `json:"avaliacao,omitempty" db:"avaliacao"`
	Description *string          `json:"descricao,omitempty" db:"descricao"`
	Active      bool             `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"dataCriacao" db:"data_criacao"`
	Images      []ProductImage   `json:"imagens,omitempty"`
}

// ProductImage is a stored image file belonging to a product. At most one
// image per product carries the primary flag.
type ProductImage struct {
	ID        int64  `json:"id" db:"id_imagem"`
	ProductID int64  `json:"produtoId" db:"id_produto"`
	FileName  string `json:"nomeArquivo" db:"nome_arquivo"`
	Directory string `json:"diretorio" db:"diretorio"`
	Primary   bool   `json:"imagemPrincipal" db:"imagem_principal"`
}

// ProductUpdate carries a partial update; only non-nil fields are applied.
type ProductUpdate struct {
	Name        *string          `json:"nome"`
	Price       *decimal.Decimal `json:"preco"`
	Stock       *int             `json:"quantidadeEstoque"`
	Rating      *decimal.Decimal `json:"avaliacao"`
	Description *string          `json:"descricao"`
	Active      *bool            `json:"status"`
}

// ProductSearch holds the paged catalogue search parameters.
type ProductSearch struct {
	Name   string
	Active *bool
	Page   int
	Size   int
	SortBy string
	Desc   bool
}
