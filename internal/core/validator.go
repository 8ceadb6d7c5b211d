package core

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Validation messages
const (
	MsgInvalidType  = "Tipo de arquivo inválido. Use PDF ou TXT."
	MsgFileTooLarge = "Arquivo muito grande. Máximo %dMB. Recebido: %.2fMB"
	MsgNoFile       = "Por favor, selecione um arquivo."
	MsgEmptyText    = "Por favor, cole o conteúdo do email."
	MsgTextTooLong  = "Texto muito longo. Máximo %d caracteres."
)

// Validator checks user input before anything is sent
type Validator struct {
	logger *zap.Logger
}

// NewValidator creates a new validator
func NewValidator(logger *zap.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate checks the input belonging to the active mode
func (v *Validator) Validate(mode InputMode, file *InputFile, text string) (*AnalysisRequest, error) {
	if mode == ModeUpload {
		if file == nil {
			return nil, NewValidationError(MsgNoFile)
		}
		return v.ValidateFile(file)
	}
	return v.ValidateText(text)
}

// ValidateFile checks the type and size of a file
func (v *Validator) ValidateFile(file *InputFile) (*AnalysisRequest, error) {
	if file.MimeType != MimeTypePDF && file.MimeType != MimeTypeText {
		v.logger.Debug("Rejected file type",
			zap.String("file", file.Name),
			zap.String("mime_type", file.MimeType))
		return nil, NewValidationError(MsgInvalidType)
	}

	if file.Size > MaxFileSize {
		v.logger.Debug("Rejected file size",
			zap.String("file", file.Name),
			zap.Int64("size", file.Size))
		return nil, NewValidationError(MsgFileTooLarge, MaxFileSizeMB, file.SizeMB())
	}

	return &AnalysisRequest{File: file}, nil
}

// ValidateText trims pasted text and checks its length
func (v *Validator) ValidateText(text string) (*AnalysisRequest, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, NewValidationError(MsgEmptyText)
	}

	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		v.logger.Debug("Rejected text length", zap.Int("length", n))
		return nil, NewValidationError(MsgTextTooLong, MaxTextLength)
	}

	return &AnalysisRequest{Text: text}, nil
}

// Confirmation is the label shown for an accepted file
func Confirmation(file *InputFile) string {
	return fmt.Sprintf("%s (%.2f MB)", file.Name, file.SizeMB())
}
