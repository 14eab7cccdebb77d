package i18n

// Error message keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnavailable        = "error.service_unavailable"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyConflict           = "error.conflict"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyTimeout            = "error.timeout"

	ErrKeyUnauthorized   = "error.unauthorized"
	ErrKeyAPIKeyRequired = "error.api_key_required"
	ErrKeyInvalidAPIKey  = "error.invalid_api_key"
	ErrKeyTokenRequired  = "error.token_required"
	ErrKeyInvalidToken   = "error.invalid_token"
	ErrKeyForbidden      = "error.forbidden"

	ErrKeyKitNotFound           = "error.kit_not_found"
	ErrKeyAssignmentNotFound    = "error.assignment_not_found"
	ErrKeyInventoryItemNotFound = "error.inventory_item_not_found"
	ErrKeyInvalidQuantity       = "error.invalid_quantity"
	ErrKeyUnknownStatus         = "error.unknown_status"
	ErrKeyIllegalTransition     = "error.illegal_transition"
	ErrKeyStatusConflict        = "error.status_conflict"
	ErrKeyValidation            = "error.validation"
	ErrKeyIdempotencyConflict   = "error.idempotency_conflict"
)

// Success message keys.
const (
	SuccessKeyKitSaved          = "success.kit_saved"
	SuccessKeyInventorySaved    = "success.inventory_saved"
	SuccessKeyMaterialsLinked   = "success.materials_linked"
	SuccessKeyAssignmentCreated = "success.assignment_created"
	SuccessKeyAssignmentDeleted = "success.assignment_deleted"
	SuccessKeyStatusUpdated     = "success.status_updated"
)
