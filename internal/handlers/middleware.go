package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/msgs"
	"github.com/DaniyalFarrukh/pak-rent-hub-sub000/internal/utils"
)

func (rh *RestHandler) MustAuthenticateMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		jwtToken := ctx.GetHeader("Authorization")
		if strings.Contains(jwtToken, "Bearer") {
			jwtToken = strings.Replace(jwtToken, "Bearer ", "", 1)
		}

		if jwtToken == "" {
			respondUnauthorized(ctx, msgs.MsgYouMustLoginFirst)
			return
		}

		claims, err := utils.VerifyToken(jwtToken, rh.authService.JwtKey())
		if err != nil {
			respondUnauthorized(ctx, msgs.MsgYouMustLoginFirst)
			return
		}

		ctx.Set("user_id", claims.ID)
		ctx.Set("user_email", claims.Email)
		ctx.Set("user_first_name", claims.FirstName)
		ctx.Set("user_last_name", claims.LastName)
		ctx.Set("authenticated", true)
		ctx.Next()
	}
}
