package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/kit-service/internal/domain/dto"
	"github.com/guttosm/kit-service/internal/i18n"
	"github.com/guttosm/kit-service/internal/middleware"
)

// Response DTO pools for reducing allocations.
var (
	successResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.SuccessResponse{}
		},
	}

	errorResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.ErrorResponse{}
		},
	}
)

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	*resp = dto.SuccessResponse{}
	successResponsePool.Put(resp)
}

func getErrorResponse() *dto.ErrorResponse {
	if resp, ok := errorResponsePool.Get().(*dto.ErrorResponse); ok {
		return resp
	}
	return &dto.ErrorResponse{}
}

func putErrorResponse(resp *dto.ErrorResponse) {
	*resp = dto.ErrorResponse{}
	errorResponsePool.Put(resp)
}

// BindJSON decodes the request body into a new T using gin's binding rules.
func BindJSON[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// BindQuery decodes the query string into a new T.
func BindQuery[T any](c *gin.Context) (*T, error) {
	var q T
	if err := c.ShouldBindQuery(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

// ResponseBuilder writes the success and error envelopes for one request.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

func (b *ResponseBuilder) translate(key string) string {
	return i18n.GetTranslator().Translate(key, i18n.GetLocale(b.c))
}

// Success sends data in the success envelope. A non-empty messageKey is
// translated into the message field.
func (b *ResponseBuilder) Success(statusCode int, messageKey string, data interface{}) {
	resp := getSuccessResponse()
	defer putSuccessResponse(resp)

	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now().UTC()
	if messageKey != "" {
		resp.Message = b.translate(messageKey)
	}

	// gin serializes synchronously, so the pooled value can be reused afterwards
	b.c.JSON(statusCode, resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, "", data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(messageKey string, data interface{}) {
	b.Success(http.StatusCreated, messageKey, data)
}

// Error sends the error envelope. err, when non-nil, is attached to the context
// for the ErrorHandler middleware to log.
func (b *ResponseBuilder) Error(statusCode int, code, messageKey string, details map[string]string, err error) {
	resp := getErrorResponse()
	defer putErrorResponse(resp)

	if code == "" {
		code = dto.ErrCodeFromStatus(statusCode)
	}
	resp.Error = code
	resp.Message = b.translate(messageKey)
	if len(details) > 0 {
		resp.Details = details
	}
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now().UTC()

	if err != nil {
		_ = b.c.Error(err)
	}
	b.c.AbortWithStatusJSON(statusCode, resp)
}

// BadRequest reports an undecodable body or query string.
func (b *ResponseBuilder) BadRequest(err error) {
	b.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequestBody, nil, err)
}

// Fail maps a service error onto the error envelope.
func (b *ResponseBuilder) Fail(err error) {
	m := mapError(err)
	if m.status >= http.StatusInternalServerError {
		b.Error(m.status, m.code, m.messageKey, m.details, err)
		return
	}
	middleware.Logger(b.c).Debug().Err(err).Int("status", m.status).Msg("Request rejected")
	b.Error(m.status, m.code, m.messageKey, m.details, nil)
}
