package core

import (
	"errors"
	"fmt"
	"net/http"
)

// User-facing messages
const (
	MsgRateLimited     = "Muitas requisições. Por favor, aguarde alguns minutos."
	MsgPayloadTooLarge = "Arquivo muito grande. Máximo 5MB."
	MsgServerError     = "Erro no servidor. Tente novamente."
	MsgUnknownError    = "Erro desconhecido"
	MsgAnalysisFailed  = "Erro ao processar análise"
	MsgNoResponse      = "Servidor não respondeu. Verifique sua conexão."
	MsgSendFailed      = "Erro ao enviar requisição"
	MsgCopyFailed      = "Erro ao copiar resultado"
)

// ErrorKind classifies where a failure came from
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindTransport
	KindProtocol
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	default:
		return "protocol"
	}
}

// ErrorState is a failed validation or submission. StatusCode 0 means no
// response was received.
type ErrorState struct {
	Message    string
	StatusCode int
	local      bool
}

// NewValidationError creates a local error that never reached the network
func NewValidationError(format string, args ...any) *ErrorState {
	return &ErrorState{
		Message:    fmt.Sprintf(format, args...),
		StatusCode: http.StatusBadRequest,
		local:      true,
	}
}

// NewTransportError creates an error for a request that got no response
func NewTransportError(message string) *ErrorState {
	if message == "" {
		message = MsgSendFailed
	}
	return &ErrorState{Message: message}
}

// NewProtocolError creates an error from a response status and detail
func NewProtocolError(status int, detail string) *ErrorState {
	if detail == "" {
		detail = MsgAnalysisFailed
	}
	return &ErrorState{Message: detail, StatusCode: status}
}

func (e *ErrorState) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Kind reports the taxonomy of the error
func (e *ErrorState) Kind() ErrorKind {
	switch {
	case e.local:
		return KindValidation
	case e.StatusCode == 0:
		return KindTransport
	default:
		return KindProtocol
	}
}

// AsErrorState recovers an ErrorState from err. Anything else is reported
// as a transport failure.
func AsErrorState(err error) *ErrorState {
	var es *ErrorState
	if errors.As(err, &es) {
		return es
	}
	return NewTransportError(err.Error())
}

// Describe maps an error to the message shown to the user
func Describe(e ErrorState) string {
	switch e.StatusCode {
	case http.StatusTooManyRequests:
		return MsgRateLimited
	case http.StatusRequestEntityTooLarge:
		return MsgPayloadTooLarge
	case http.StatusBadRequest:
		return e.Message
	case http.StatusInternalServerError:
		return MsgServerError
	}
	if e.Message == "" {
		return MsgUnknownError
	}
	return e.Message
}
