package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/LidioGab/PI4-Ratech/internal/database"
	"github.com/LidioGab/PI4-Ratech/internal/model"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, connects a pool with the
// decimal codec registered and applies the application schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedCustomer inserts one active customer with a billing address and returns
// its id. The password is "senha123".
func SeedCustomer(t *testing.T, pool *pgxpool.Pool) int64 {
	t.Helper()

	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash seed password: %v", err)
	}

	var id int64
	err = pool.QueryRow(ctx,
		`INSERT INTO tb_cliente (nome, cpf, email, senha, data_nascimento, genero, status)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		 RETURNING id_cliente`,
		"Maria Souza", "123.456.789-09", "maria@example.com", string(hash),
		time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC), model.GenderFemale,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO tb_endereco_cliente (id_cliente, tipo, cep, logradouro, numero, bairro, cidade, uf, endereco_padrao, ativo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, TRUE)`,
		id, model.AddressBilling, "01310-100", "Avenida Paulista", "1000",
		"Bela Vista", "São Paulo", "SP",
	)
	if err != nil {
		t.Fatalf("failed to seed customer address: %v", err)
	}

	return id
}

// SeedProducts inserts test catalogue data and returns the generated ids in
// insertion order.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) []int64 {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		name   string
		price  decimal.Decimal
		stock  int
		active bool
	}{
		{"Teclado Mecânico", decimal.NewFromFloat(199.90), 10, true},
		{"Mouse Gamer", decimal.NewFromFloat(89.90), 5, true},
		{"Monitor 24", decimal.NewFromFloat(899.00), 3, true},
		{"Headset", decimal.NewFromFloat(149.90), 0, true},
		{"Cabo HDMI", decimal.NewFromFloat(19.90), 50, false},
	}

	ids := make([]int64, 0, len(products))
	for _, p := range products {
		var id int64
		err := pool.QueryRow(ctx,
			`INSERT INTO tb_produto (nome, preco, qtd_estoque, status)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id_produto`,
			p.name, p.price, p.stock, p.active,
		).Scan(&id)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.name, err)
		}
		ids = append(ids, id)
	}

	return ids
}

// CleanupDB cleans all data from the test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{
		"tb_item_pedido",
		"tb_pedido",
		"tb_carrinho_item",
		"tb_produto_imagem",
		"tb_produto",
		"tb_endereco_cliente",
		"tb_cliente",
		"tb_usuario",
	}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
