package partner

import (
	"github.com/nataa-app/landing-gateway/config/router"
	"github.com/nataa-app/landing-gateway/pkg/ratelimit"
)

func NewPartnerController(service PartnerService, limiter ratelimit.RateLimiter) *router.RESTController {
	return router.NewAckRESTController(
		"PartnerController",
		"/api/partners",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPostHandler(c, limiter, "", submitApplicationHandler(service))
		},
	)
}

func submitApplicationHandler(service PartnerService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		var req ApplyRequest
		if result := router.BindLenient(ctx, &req, MsgInvalidPayload); result != nil {
			return result
		}

		if err := service.SubmitApplication(ctx.Request.Context(), &req); err != nil {
			return router.ErrorFromAppError(err)
		}

		return router.AckResult()
	}
}
