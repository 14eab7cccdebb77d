// Package i18n translates user-facing API messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is used when the client asks for nothing we support.
	DefaultLocale = "en"
	// AcceptLanguageHeader carries the client's language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator looks messages up by key and locale.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a translator loaded with the built-in catalogs.
func NewTranslator() *Translator {
	return &Translator{messages: catalogs}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, then in DefaultLocale, then the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msgs, ok := t.messages[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supported reports whether locale has a catalog.
func (t *Translator) Supported(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale picks the first supported base language from Accept-Language.
func GetLocale(c *gin.Context) string {
	header := c.GetHeader(AcceptLanguageHeader)
	if header == "" {
		return DefaultLocale
	}
	t := GetTranslator()
	for _, part := range strings.Split(header, ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		lang = strings.ToLower(lang)
		if t.Supported(lang) {
			return lang
		}
	}
	return DefaultLocale
}

var catalogs = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:        "Invalid request",
		ErrKeyInvalidRequestBody:    "Invalid request body",
		ErrKeyInternalError:         "An unexpected error occurred",
		ErrKeyUnavailable:           "Storage is temporarily unavailable, please retry",
		ErrKeyNotFound:              "Not found",
		ErrKeyConflict:              "Conflict",
		ErrKeyRateLimitExceeded:     "Too many requests, please try again later",
		ErrKeyTimeout:               "The request took too long to complete",
		ErrKeyUnauthorized:          "Unauthorized",
		ErrKeyAPIKeyRequired:        "API key is required",
		ErrKeyInvalidAPIKey:         "Invalid API key",
		ErrKeyTokenRequired:         "Authentication token is required",
		ErrKeyInvalidToken:          "Invalid or expired token",
		ErrKeyForbidden:             "Your role does not allow this operation",
		ErrKeyKitNotFound:           "Kit not found",
		ErrKeyAssignmentNotFound:    "Assignment not found",
		ErrKeyInventoryItemNotFound: "Inventory item not found",
		ErrKeyInvalidQuantity:       "Quantity must be a positive whole number",
		ErrKeyUnknownStatus:         "Unknown assignment status",
		ErrKeyIllegalTransition:     "Assignments can only move to the next status",
		ErrKeyStatusConflict:        "The assignment was updated by someone else, reload and retry",
		ErrKeyValidation:            "Validation failed",
		ErrKeyIdempotencyConflict:   "A request with this Idempotency-Key is still being processed",

		SuccessKeyKitSaved:          "Kit saved",
		SuccessKeyInventorySaved:    "Inventory item saved",
		SuccessKeyMaterialsLinked:   "Kit materials linked to inventory",
		SuccessKeyAssignmentCreated: "Assignment created",
		SuccessKeyAssignmentDeleted: "Assignment deleted",
		SuccessKeyStatusUpdated:     "Assignment status updated",
	},
	"pt": {
		ErrKeyInvalidRequest:        "Requisição inválida",
		ErrKeyInvalidRequestBody:    "Corpo da requisição inválido",
		ErrKeyInternalError:         "Ocorreu um erro inesperado",
		ErrKeyUnavailable:           "Armazenamento temporariamente indisponível, tente novamente",
		ErrKeyNotFound:              "Não encontrado",
		ErrKeyConflict:              "Conflito",
		ErrKeyRateLimitExceeded:     "Muitas requisições, tente novamente mais tarde",
		ErrKeyTimeout:               "A requisição demorou demais para ser concluída",
		ErrKeyUnauthorized:          "Não autorizado",
		ErrKeyAPIKeyRequired:        "Chave de API é obrigatória",
		ErrKeyInvalidAPIKey:         "Chave de API inválida",
		ErrKeyTokenRequired:         "Token de autenticação é obrigatório",
		ErrKeyInvalidToken:          "Token inválido ou expirado",
		ErrKeyForbidden:             "Seu perfil não permite esta operação",
		ErrKeyKitNotFound:           "Kit não encontrado",
		ErrKeyAssignmentNotFound:    "Atribuição não encontrada",
		ErrKeyInventoryItemNotFound: "Item de estoque não encontrado",
		ErrKeyInvalidQuantity:       "A quantidade deve ser um número inteiro positivo",
		ErrKeyUnknownStatus:         "Status de atribuição desconhecido",
		ErrKeyIllegalTransition:     "Atribuições só podem avançar para o próximo status",
		ErrKeyStatusConflict:        "A atribuição foi alterada por outra pessoa, recarregue e tente novamente",
		ErrKeyValidation:            "Falha na validação",
		ErrKeyIdempotencyConflict:   "Uma requisição com esta Idempotency-Key ainda está em processamento",

		SuccessKeyKitSaved:          "Kit salvo",
		SuccessKeyInventorySaved:    "Item de estoque salvo",
		SuccessKeyMaterialsLinked:   "Materiais do kit vinculados ao estoque",
		SuccessKeyAssignmentCreated: "Atribuição criada",
		SuccessKeyAssignmentDeleted: "Atribuição removida",
		SuccessKeyStatusUpdated:     "Status da atribuição atualizado",
	},
}
