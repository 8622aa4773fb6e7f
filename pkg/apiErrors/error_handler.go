package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro da API
const (
	// Erros de autenticação e autorização (AUTH)
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_004" // Token inválido
	ErrExpiredToken          = "AUTH_005" // Token expirado
	ErrInsufficientPrivilege = "AUTH_006" // Privilégios insuficientes
	ErrUserAlreadyExists     = "AUTH_007" // Usuário já existe
	ErrInvalidAPIKey         = "AUTH_008" // Chave de API ausente ou incorreta

	// Erros de validação (VAL)
	ErrInvalidRequest       = "VAL_001" // Requisição inválida
	ErrMissingRequiredData  = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat        = "VAL_003" // Formato de dados inválido
	ErrUnrecognizedProfile  = "VAL_004" // Perfil fora da lista oficial
	ErrInvalidRateValue     = "VAL_005" // Valor de tarifa não numérico
	ErrInvalidQuoteInput    = "VAL_006" // Parâmetros de estimativa inválidos
	ErrInvalidStatusChange  = "VAL_007" // Transição de status não permitida

	// Erros de recurso (NF)
	ErrQuoteNotFound = "NF_001" // Cotação não encontrada
	ErrRateNotFound  = "NF_002" // Tarifa não encontrada

	// Erros do servidor (SRV)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExportFailure     = "SRV_003" // Erro ao gerar documento de exportação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusBadRequest,
	ErrInvalidAPIKey:         http.StatusUnauthorized,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrUnrecognizedProfile:   http.StatusBadRequest,
	ErrInvalidRateValue:      http.StatusBadRequest,
	ErrInvalidQuoteInput:     http.StatusBadRequest,
	ErrInvalidStatusChange:   http.StatusBadRequest,
	ErrQuoteNotFound:         http.StatusNotFound,
	ErrRateNotFound:          http.StatusNotFound,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExportFailure:         http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP associado a um código de erro
func StatusFor(code string) int {
	if status, exists := httpStatusMap[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError escreve o erro padronizado para a resposta HTTP.
// A mensagem sempre identifica o campo/perfil/nível que causou a falha nos
// casos de validação, nunca um erro genérico.
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}
