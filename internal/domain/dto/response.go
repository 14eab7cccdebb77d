package dto

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/kit-service/internal/domain/model"
)

func init() {
	// Quantities go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeValidation         = "validation_failed"
	ErrCodeInternal           = "internal_error"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeForbidden          = "forbidden"
	ErrCodeNotFound           = "not_found"
	ErrCodeRateLimit          = "rate_limit_exceeded"
	ErrCodeConflict           = "conflict"
	ErrCodeIllegalTransition  = "illegal_transition"
	ErrCodeStatusConflict     = "status_conflict"
	ErrCodeTimeout            = "timeout"
	ErrCodeServiceUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      interface{} `json:"data" swaggertype:"object"`
	Message   string      `json:"message,omitempty" example:"Assignment created"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2026-10-15T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the error envelope of every endpoint.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"illegal_transition"`
	Message string `json:"message,omitempty" example:"Assignments can only move to the next status"`
	// Details carries machine-readable context, e.g. {"from": "assigned", "to": "dispatched"}.
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2026-10-15T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetails attaches details; an empty map is dropped.
func (e ErrorResponse) WithDetails(details map[string]string) ErrorResponse {
	if len(details) > 0 {
		e.Details = details
	}
	return e
}

// ErrCodeFromStatus returns the generic error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeServiceUnavailable
	default:
		return ErrCodeInternal
	}
}

// KitResponse is a kit with its recipe parsed and its backlog derived.
// @Description Kit with parsed packing structure and stock status
type KitResponse struct {
	model.Kit
	PackingStructure model.PackingStructure `json:"packing_structure"`
	ToBeMade         int64                  `json:"to_be_made" example:"6"`
	StockStatus      model.StockStatus      `json:"stock_status" example:"backlog"`
} // @name KitResponse

// NewKitResponse derives the read view of a kit.
func NewKitResponse(k model.Kit) KitResponse {
	return KitResponse{
		Kit:              k,
		PackingStructure: k.Structure(),
		ToBeMade:         k.ToBeMade(),
		StockStatus:      k.StockStatus(),
	}
}

// NewKitResponses maps a kit list.
func NewKitResponses(kits []model.Kit) []KitResponse {
	out := make([]KitResponse, 0, len(kits))
	for _, k := range kits {
		out = append(out, NewKitResponse(k))
	}
	return out
}

// InventoryItemResponse adds the minimum-stock flag to an item.
type InventoryItemResponse struct {
	model.InventoryItem
	BelowMinimum bool `json:"below_minimum"`
} // @name InventoryItemResponse

// NewInventoryResponses maps an inventory snapshot.
func NewInventoryResponses(items []model.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, InventoryItemResponse{InventoryItem: i, BelowMinimum: i.BelowMinimum()})
	}
	return out
}

// AssignmentMutationResponse reports an assignment and, when stock moved, the kit's new stock.
// @Description Assignment with the post-mutation kit stock
type AssignmentMutationResponse struct {
	Assignment   model.Assignment `json:"assignment"`
	StockCount   *int64           `json:"stock_count,omitempty" example:"-6"`
	ToBeMade     int64            `json:"to_be_made" example:"6"`
	StockChanged bool             `json:"stock_changed"`
} // @name AssignmentMutationResponse

// NewAssignmentMutationResponse builds the create/delete response.
func NewAssignmentMutationResponse(a model.Assignment, stock int64, changed bool) AssignmentMutationResponse {
	resp := AssignmentMutationResponse{Assignment: a, StockChanged: changed}
	if changed {
		resp.StockCount = &stock
		if stock < 0 {
			resp.ToBeMade = -stock
		}
	}
	return resp
}

// LinkMaterialsResponse reports the outcome of linking a kit to inventory.
type LinkMaterialsResponse struct {
	Kit          KitResponse           `json:"kit"`
	Linked       int                   `json:"linked" example:"3"`
	CreatedItems []model.InventoryItem `json:"created_items"`
} // @name LinkMaterialsResponse

// ProcurementResponse is a procurement list with its total shortage.
type ProcurementResponse struct {
	model.ProcurementList
	TotalShortage decimal.Decimal `json:"total_shortage" swaggertype:"number" example:"3"`
	ShortageLines int             `json:"shortage_lines" example:"1"`
} // @name ProcurementResponse

// NewProcurementResponse adds totals to a procurement list.
func NewProcurementResponse(list model.ProcurementList) ProcurementResponse {
	lines := 0
	for _, r := range list.Summary {
		if r.Shortage.IsPositive() {
			lines++
		}
	}
	return ProcurementResponse{ProcurementList: list, TotalShortage: list.TotalShortage(), ShortageLines: lines}
}
