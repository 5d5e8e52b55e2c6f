package router

import (
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

type ServiceResult struct {
	StatusCode int    `json:"code"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}

type RateLimitResponse struct {
	Limit      int    `json:"limit"`
	Window     string `json:"window"`
	RetryAfter string `json:"retry_after"`
}

type HandlerFunction func(*RequestContext) *ServiceResult

// ResponseShape selects how a controller's results are written.
type ResponseShape int

const (
	// EnvelopeShape writes {code, data, message}.
	EnvelopeShape ResponseShape = iota
	// AckShape writes {ok: true} on success and {error, details?} on failure,
	// the contract the landing page forms read.
	AckShape
)

type RESTController struct {
	name         string
	mountPoint   string
	shape        ResponseShape
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

func (result *ServiceResult) ToJSON() gin.H {
	return gin.H{
		"code":    result.StatusCode,
		"data":    result.Data,
		"message": result.Message,
	}
}

func (result *ServiceResult) ToAckJSON() gin.H {
	if result.IsSuccess() {
		return gin.H{"ok": true}
	}

	body := gin.H{"error": result.Message}
	if result.Data != nil {
		body["details"] = result.Data
	}
	return body
}

func (result *ServiceResult) Render(shape ResponseShape) gin.H {
	if shape == AckShape {
		return result.ToAckJSON()
	}
	return result.ToJSON()
}

func (result *ServiceResult) IsSuccess() bool {
	return result.StatusCode >= 200 && result.StatusCode < 300
}

func (result *ServiceResult) IsError() bool {
	return result.StatusCode >= 400
}
