package waitlist

import (
	"github.com/nataa-app/landing-gateway/config/router"
	"github.com/nataa-app/landing-gateway/pkg/ratelimit"
)

func NewWaitlistController(service WaitlistService, limiter ratelimit.RateLimiter) *router.RESTController {
	return router.NewAckRESTController(
		"WaitlistController",
		"/api/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPostHandler(c, limiter, "", joinWaitlistHandler(service))
		},
	)
}

func joinWaitlistHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var req JoinWaitlistRequest
		if result := router.BindLenient(ctx, &req, MsgInvalidPayload); result != nil {
			return result
		}

		if err := service.JoinWaitlist(ctx.Request.Context(), &req); err != nil {
			return router.ErrorFromAppError(err)
		}

		return router.AckResult()
	}
}
