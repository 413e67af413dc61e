package model

import "time"

// Gender mirrors the values accepted by the registration form.
type Gender string

const (
	GenderMale        Gender = "MASCULINO"
	GenderFemale      Gender = "FEMININO"
	GenderOther       Gender = "OUTRO"
	GenderUndisclosed Gender = "PREFIRO_NAO_INFORMAR"
)

// Valid reports whether g is one of the known gender values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUndisclosed:
		return true
	}
	return false
}

// AddressType distinguishes the billing address from delivery addresses.
type AddressType string

const (
	AddressBilling  AddressType = "FATURAMENTO"
	AddressDelivery AddressType = "ENTREGA"
)

// Customer represents a registered storefront customer.
type Customer struct {
	ID           int64     `json:"id" db:"id_cliente"`
	Name         string    `json:"nome" db:"nome"`
	CPF          string    `json:"cpf" db:"cpf"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"senha"`
	BirthDate    time.Time `json:"dataNascimento" db:"data_nascimento"`
	Gender       Gender    `json:"genero" db:"genero"`
	Active       bool      `json:"status" db:"status"`
	CreatedAt    time.Time `json:"dataCriacao" db:"data_criacao"`
	Addresses    []Address `json:"enderecos,omitempty"`
}

// RegisterRequest is the payload for POST /api/clientes. The address list
// must contain exactly one billing address and at least one delivery address.
type RegisterRequest struct {
	Name            string    `json:"nome"`
	CPF             string    `json:"cpf"`
	Email           string    `json:"email"`
	Password        string    `json:"senha"`
	PasswordConfirm string    `json:"confirmacaoSenha"`
	BirthDate       string    `json:"dataNascimento"`
	Gender          Gender    `json:"genero"`
	Addresses       []Address `json:"enderecos"`
}

// UpdateProfileRequest carries the editable profile fields. Email and CPF are
// immutable after registration.
type UpdateProfileRequest struct {
	Name      string `json:"nome"`
	BirthDate string `json:"dataNascimento"`
	Gender    Gender `json:"genero"`
}

// Address is a customer address. The billing address is created once at
// registration; delivery addresses may be added later.
type Address struct {
	ID         int64       `json:"id" db:"id_endereco"`
	CustomerID int64       `json:"clienteId" db:"id_cliente"`
	Type       AddressType `json:"tipo" db:"tipo"`
	PostalCode string      `json:"cep" db:"cep"`
	Street     string      `json:"logradouro" db:"logradouro"`
	Number     string      `json:"numero" db:"numero"`
	Complement string      `json:"complemento,omitempty" db:"complemento"`
	District   string      `json:"bairro" db:"bairro"`
	City       string      `json:"cidade" db:"cidade"`
	State      string      `json:"uf" db:"uf"`
	Default    bool        `json:"enderecoPadrao" db:"endereco_padrao"`
	Active     bool        `json:"ativo" db:"ativo"`
	CreatedAt  time.Time   `json:"dataCriacao" db:"data_criacao"`
}
