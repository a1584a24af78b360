package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/katatrina/plg-shop/internal/backend"
	"github.com/katatrina/plg-shop/internal/token"
)

const (
	authorizationHeaderKey  = "Authorization"
	authorizationTypeBearer = "Bearer"
	authorizationPayloadKey = "authPayload"
	accessTokenCookieName   = "access_token"

	checkoutScopeCookieName = "plg_sid"
	checkoutScopeKey        = "checkoutScope"
	checkoutScopeMaxAge     = 60 * 60 * 24 * 30

	loginPath = "/login"
)

// accessTokenFromRequest reads the bearer token, falling back to the access_token cookie set by the storefront.
func accessTokenFromRequest(ctx *gin.Context) (string, error) {
	authorizationHeader := ctx.GetHeader(authorizationHeaderKey)
	if authorizationHeader == "" {
		cookie, err := ctx.Cookie(accessTokenCookieName)
		if err != nil || cookie == "" {
			return "", errors.New("authorization header is not provided")
		}
		return cookie, nil
	}

	fields := strings.Fields(authorizationHeader)
	if len(fields) != 2 {
		return "", errors.New("invalid authorization header format")
	}

	authorizationHeaderType := fields[0]
	if authorizationHeaderType != authorizationTypeBearer {
		return "", errors.New("unsupported authorization header type")
	}

	return fields[1], nil
}

// authMiddleware authenticates the user.
func authMiddleware(tokenMaker token.Maker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		accessToken, err := accessTokenFromRequest(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(err))
			return
		}

		payload, err := tokenMaker.VerifyToken(accessToken)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(err))
			return
		}

		ctx.Set(authorizationPayloadKey, payload)
		ctx.Next()
	}
}

// pageAuthMiddleware is authMiddleware for HTML pages: guests are sent to the login page instead of a 401.
func pageAuthMiddleware(tokenMaker token.Maker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		accessToken, err := accessTokenFromRequest(ctx)
		if err == nil {
			var payload *token.Payload
			payload, err = tokenMaker.VerifyToken(accessToken)
			if err == nil {
				ctx.Set(authorizationPayloadKey, payload)
				ctx.Next()
				return
			}
		}

		next := ctx.Request.URL.Path
		if ctx.Request.Method != http.MethodGet {
			next = checkoutPath
		}
		ctx.Redirect(http.StatusSeeOther, loginPath+"?next="+url.QueryEscape(next))
		ctx.Abort()
	}
}

// checkoutScopeMiddleware gives every browser a stable checkout scope, shared by all its tabs and popups.
func checkoutScopeMiddleware(secure bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		scope, err := ctx.Cookie(checkoutScopeCookieName)
		if err != nil || uuid.Validate(scope) != nil {
			scope = uuid.NewString()
			ctx.SetSameSite(http.SameSiteLaxMode)
			ctx.SetCookie(checkoutScopeCookieName, scope, checkoutScopeMaxAge, "/", "", secure, true)
		}

		ctx.Set(checkoutScopeKey, scope)
		ctx.Next()
	}
}

func checkoutScope(ctx *gin.Context) string {
	return ctx.GetString(checkoutScopeKey)
}

// credentials collects what the backend needs to identify the shopper.
func credentials(ctx *gin.Context) backend.Credentials {
	accessToken, _ := accessTokenFromRequest(ctx)

	var cookies []*http.Cookie
	for _, cookie := range ctx.Request.Cookies() {
		if cookie.Name == checkoutScopeCookieName {
			continue
		}
		cookies = append(cookies, cookie)
	}

	return backend.Credentials{
		AccessToken: accessToken,
		Cookies:     cookies,
	}
}
