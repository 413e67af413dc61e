package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the DDL for all application tables. Kept idempotent so it can be
// applied on startup and by the integration test harness.
const Schema = `
	CREATE TABLE IF NOT EXISTS tb_cliente (
		id_cliente BIGSERIAL PRIMARY KEY,
		nome VARCHAR(150) NOT NULL,
		cpf VARCHAR(14) NOT NULL UNIQUE,
		email VARCHAR(150) NOT NULL UNIQUE,
		senha VARCHAR(255) NOT NULL,
		data_nascimento DATE NOT NULL,
		genero VARCHAR(30) NOT NULL,
		status BOOLEAN NOT NULL DEFAULT TRUE,
		data_criacao TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tb_endereco_cliente (
		id_endereco BIGSERIAL PRIMARY KEY,
		id_cliente BIGINT NOT NULL REFERENCES tb_cliente(id_cliente) ON DELETE CASCADE,
		tipo VARCHAR(20) NOT NULL,
		cep VARCHAR(9) NOT NULL,
		logradouro VARCHAR(255) NOT NULL,
		numero VARCHAR(50) NOT NULL,
		complemento VARCHAR(255),
		bairro VARCHAR(150) NOT NULL,
		cidade VARCHAR(150) NOT NULL,
		uf CHAR(2) NOT NULL,
		endereco_padrao BOOLEAN NOT NULL DEFAULT FALSE,
		ativo BOOLEAN NOT NULL DEFAULT TRUE,
		data_criacao TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tb_produto (
		id_produto BIGSERIAL PRIMARY KEY,
		nome VARCHAR(200) NOT NULL,
		preco DECIMAL(10, 2) NOT NULL,
		qtd_estoque INTEGER NOT NULL DEFAULT 0 CHECK (qtd_estoque >= 0),
		avaliacao DECIMAL(2, 1),
		descricao TEXT,
		status BOOLEAN NOT NULL DEFAULT TRUE,
		data_criacao TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tb_produto_imagem (
		id_imagem BIGSERIAL PRIMARY KEY,
		id_produto BIGINT NOT NULL REFERENCES tb_produto(id_produto) ON DELETE CASCADE,
		nome_arquivo VARCHAR(255) NOT NULL,
		diretorio VARCHAR(255) NOT NULL,
		imagem_principal BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE TABLE IF NOT EXISTS tb_carrinho_item (
		id_carrinho_item BIGSERIAL PRIMARY KEY,
		id_cliente BIGINT NOT NULL REFERENCES tb_cliente(id_cliente) ON DELETE CASCADE,
		id_produto BIGINT NOT NULL REFERENCES tb_produto(id_produto),
		quantidade INTEGER NOT NULL CHECK (quantidade > 0),
		data_adicao TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		data_atualizacao TIMESTAMP,
		UNIQUE (id_cliente, id_produto)
	);

	CREATE TABLE IF NOT EXISTS tb_pedido (
		id_pedido BIGSERIAL PRIMARY KEY,
		id_cliente BIGINT NOT NULL REFERENCES tb_cliente(id_cliente),
		numero_pedido VARCHAR(30) NOT NULL UNIQUE,
		status VARCHAR(30) NOT NULL,
		subtotal DECIMAL(10, 2) NOT NULL,
		valor_frete DECIMAL(10, 2) NOT NULL,
		valor_total DECIMAL(10, 2) NOT NULL,
		endereco_entrega_cep VARCHAR(9) NOT NULL,
		endereco_entrega_logradouro VARCHAR(255) NOT NULL,
		endereco_entrega_numero VARCHAR(50) NOT NULL,
		endereco_entrega_complemento VARCHAR(255),
		endereco_entrega_bairro VARCHAR(150) NOT NULL,
		endereco_entrega_cidade VARCHAR(150) NOT NULL,
		endereco_entrega_uf CHAR(2) NOT NULL,
		observacoes TEXT,
		data_pedido TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		data_atualizacao TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tb_item_pedido (
		id_item_pedido BIGSERIAL PRIMARY KEY,
		id_pedido BIGINT NOT NULL REFERENCES tb_pedido(id_pedido) ON DELETE CASCADE,
		id_produto BIGINT NOT NULL REFERENCES tb_produto(id_produto),
		quantidade INTEGER NOT NULL CHECK (quantidade > 0),
		preco_unitario DECIMAL(10, 2) NOT NULL,
		subtotal DECIMAL(10, 2) NOT NULL,
		nome_produto VARCHAR(200) NOT NULL,
		descricao_produto TEXT
	);

	CREATE TABLE IF NOT EXISTS tb_usuario (
		id_user BIGSERIAL PRIMARY KEY,
		nm_user VARCHAR(100) NOT NULL,
		ds_email VARCHAR(250) NOT NULL UNIQUE,
		ds_cpf VARCHAR(20) NOT NULL,
		ds_telefone VARCHAR(20) NOT NULL,
		ds_senha VARCHAR(255) NOT NULL,
		grupo VARCHAR(50) NOT NULL DEFAULT 'Estoquista',
		status BOOLEAN NOT NULL DEFAULT TRUE
	);

	CREATE INDEX IF NOT EXISTS idx_pedido_cliente ON tb_pedido(id_cliente);
	CREATE INDEX IF NOT EXISTS idx_pedido_status ON tb_pedido(status);
	CREATE INDEX IF NOT EXISTS idx_item_pedido_pedido ON tb_item_pedido(id_pedido);
	CREATE INDEX IF NOT EXISTS idx_carrinho_cliente ON tb_carrinho_item(id_cliente);
	CREATE INDEX IF NOT EXISTS idx_produto_nome ON tb_produto(LOWER(nome));
`

// Migrate applies the schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
