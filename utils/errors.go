package utils

import "errors"

// Core workflow errors. Controllers map these onto 400-class responses
// with a stable message; raw internals never reach public callers.
var (
	ErrDuplicatePendingRequest = errors.New("já existe uma solicitação em análise para este cadastro, aguarde a aprovação ou reprovação")
	ErrInvalidStateTransition  = errors.New("esta solicitação já foi analisada")
	ErrDuplicateEntity         = errors.New("já existe um cadastro ativo com esta chave")
	ErrRequestNotFound         = errors.New("solicitação não encontrada")
	ErrProtocolExhausted       = errors.New("limite de protocolos do ano atingido")
	ErrNoPermission            = errors.New("you don't have permission for this action")
)

// FieldErrors carries per-field validation messages back to the submitter.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	for field, msg := range fe {
		return field + ": " + msg
	}
	return "validation failed"
}

// Add records a message for a field, keeping only the first one.
func (fe FieldErrors) Add(field, msg string) {
	if _, exists := fe[field]; !exists {
		fe[field] = msg
	}
}

// AsFieldErrors unwraps err into FieldErrors if it carries them.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
