package model

// LoginRequest is the payload for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// ChangePasswordRequest is the payload for a password change. The current
// password must match before the new one is accepted.
type ChangePasswordRequest struct {
	Current string `json:"senhaAtual"`
	New     string `json:"novaSenha"`
	Confirm string `json:"confirmacaoSenha"`
}
