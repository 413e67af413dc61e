package model

// Backoffice groups allowed through the admin login.
const (
	GroupAdmin    = "Administrador"
	GroupStock    = "Estoquista"
	GroupCustomer = "Cliente"
)

// User is an admin/staff account, distinct from storefront customers.
type User struct {
	ID           int64  `json:"id" db:"id_user"`
	Name         string `json:"nome" db:"nm_user"`
	Email        string `json:"email" db:"ds_email"`
	CPF          string `json:"cpf" db:"ds_cpf"`
	Phone        string `json:"telefone" db:"ds_telefone"`
	PasswordHash string `json:"-" db:"ds_senha"`
	Group        string `json:"grupo" db:"grupo"`
	Active       bool   `json:"status" db:"status"`
}

// Session is the payload returned by a successful login.
type Session struct {
	ID    int64  `json:"id"`
	Name  string `json:"nome"`
	Group string `json:"grupo"`
}
