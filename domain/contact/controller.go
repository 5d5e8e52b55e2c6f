package contact

import (
	"github.com/nataa-app/landing-gateway/config/router"
	"github.com/nataa-app/landing-gateway/pkg/ratelimit"
)

func NewContactController(service ContactService, limiter ratelimit.RateLimiter) *router.RESTController {
	return router.NewAckRESTController(
		"ContactController",
		"/api/contact",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPostHandler(c, limiter, "", submitContactHandler(service))
		},
	)
}

func submitContactHandler(service ContactService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var req SubmitContactRequest
		if result := router.BindLenient(ctx, &req, MsgInvalidPayload); result != nil {
			return result
		}

		if err := service.SubmitContact(ctx.Request.Context(), &req); err != nil {
			return router.ErrorFromAppError(err)
		}

		return router.AckResult()
	}
}
