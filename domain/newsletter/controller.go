package newsletter

import (
	"github.com/nataa-app/landing-gateway/config/router"
	"github.com/nataa-app/landing-gateway/pkg/ratelimit"
)

func NewNewsletterController(service NewsletterService, limiter ratelimit.RateLimiter) *router.RESTController {
	return router.NewAckRESTController(
		"NewsletterController",
		"/api/newsletter",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPostHandler(c, limiter, "", subscribeHandler(service))
		},
	)
}

func subscribeHandler(service NewsletterService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		// Configuration wins over any body problem, including oversized or mistyped ones.
		if err := service.CheckConfigured(ctx.Request.Context()); err != nil {
			return router.ErrorFromAppError(err)
		}

		var req SubscribeRequest
		if result := router.BindLenient(ctx, &req, MsgInvalidPayload); result != nil {
			return result
		}

		if err := service.Subscribe(ctx.Request.Context(), &req); err != nil {
			return router.ErrorFromAppError(err)
		}

		return router.AckResult()
	}
}
