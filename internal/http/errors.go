package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/guttosm/kit-service/internal/circuitbreaker"
	"github.com/guttosm/kit-service/internal/domain/dto"
	"github.com/guttosm/kit-service/internal/domain/model"
	"github.com/guttosm/kit-service/internal/i18n"
	"github.com/guttosm/kit-service/internal/service"
)

type errorMapping struct {
	status     int
	code       string
	messageKey string
	details    map[string]string
}

var notFoundErrors = []struct {
	err error
	key string
}{
	{model.ErrKitNotFound, i18n.ErrKeyKitNotFound},
	{model.ErrAssignmentNotFound, i18n.ErrKeyAssignmentNotFound},
	{model.ErrInventoryItemNotFound, i18n.ErrKeyInventoryItemNotFound},
}

func mapError(err error) errorMapping {
	for _, nf := range notFoundErrors {
		if errors.Is(err, nf.err) {
			return errorMapping{status: http.StatusNotFound, code: dto.ErrCodeNotFound, messageKey: nf.key}
		}
	}

	var transition *model.TransitionError
	if errors.As(err, &transition) {
		return errorMapping{
			status:     http.StatusConflict,
			code:       dto.ErrCodeIllegalTransition,
			messageKey: i18n.ErrKeyIllegalTransition,
			details:    map[string]string{"from": string(transition.From), "to": string(transition.To)},
		}
	}

	var validation *model.ValidationError
	switch {
	case errors.As(err, &validation):
		return errorMapping{
			status:     http.StatusBadRequest,
			code:       dto.ErrCodeValidation,
			messageKey: i18n.ErrKeyValidation,
			details:    map[string]string{"field": validation.Field, "reason": validation.Message},
		}
	case errors.Is(err, model.ErrInvalidQuantity):
		return errorMapping{
			status:     http.StatusBadRequest,
			code:       dto.ErrCodeValidation,
			messageKey: i18n.ErrKeyInvalidQuantity,
			details:    map[string]string{"field": "quantity"},
		}
	case errors.Is(err, model.ErrUnknownStatus):
		return errorMapping{
			status:     http.StatusBadRequest,
			code:       dto.ErrCodeValidation,
			messageKey: i18n.ErrKeyUnknownStatus,
			details:    map[string]string{"field": "status"},
		}
	case errors.Is(err, model.ErrStatusConflict):
		return errorMapping{status: http.StatusConflict, code: dto.ErrCodeStatusConflict, messageKey: i18n.ErrKeyStatusConflict}
	case errors.Is(err, circuitbreaker.ErrCircuitOpen), errors.Is(err, service.ErrRepositoryNotConfigured):
		return errorMapping{status: http.StatusServiceUnavailable, code: dto.ErrCodeServiceUnavailable, messageKey: i18n.ErrKeyUnavailable}
	case errors.Is(err, context.DeadlineExceeded):
		return errorMapping{status: http.StatusGatewayTimeout, code: dto.ErrCodeTimeout, messageKey: i18n.ErrKeyTimeout}
	default:
		return errorMapping{status: http.StatusInternalServerError, code: dto.ErrCodeInternal, messageKey: i18n.ErrKeyInternalError}
	}
}
