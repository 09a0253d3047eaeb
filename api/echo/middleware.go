package echoapi

import (
	"github.com/labstack/echo/v4"
)

// emailOwnerMiddleware guards routes keyed by an :email param: only the
// authenticated owner (or an admin) gets through. Others get a 404, not a
// 403, so the route does not confirm the account exists.
func emailOwnerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if ownsEmail(ctx, ctx.Param("email")) {
				return next(ctx)
			}
			return errHttpNotFound
		}
	}
}
