package api

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/katatrina/plg-shop/internal/selection"
	"github.com/rs/zerolog/log"
)

var selectionTokenAliases = []string{"ExtraData", "selectionToken", "extraData"}

// @Summary		Logistics provider redirect bridge
// @Description	Receives the provider's form POST after a store was picked and redirects the popup to the callback page
// @Tags			logistics
// @Accept			x-www-form-urlencoded
// @Produce		json
// @Param			ExtraData	formData	string	false	"Selection token"
// @Success		303			{string}	string	"Redirect to /payment/store-callback"
// @Failure		415			{object}	object	"Body is not form encoded"
// @Failure		500			{object}	object	"Body could not be parsed"
// @Router			/api/logistics/client-callback [post]
func (server *Server) bridgeLogisticsCallback(ctx *gin.Context) {
	if ctx.ContentType() != binding.MIMEPOSTForm {
		ctx.JSON(http.StatusUnsupportedMediaType, messageResponse(ErrUnsupportedMedia))
		return
	}

	if err := ctx.Request.ParseForm(); err != nil {
		log.Error().Err(err).Msg("failed to parse logistics callback body")
		ctx.JSON(http.StatusInternalServerError, messageResponse(ErrCallbackFailed))
		return
	}

	ctx.Redirect(http.StatusSeeOther, storeCallbackLocation(ctx.Request.PostForm))
}

// storeCallbackLocation forwards the selection token and every recognised store field.
func storeCallbackLocation(values url.Values) string {
	query := url.Values{}
	for _, key := range selection.AllAliases() {
		if value := values.Get(key); value != "" {
			query.Set(key, value)
		}
	}

	if token := selection.Resolve(values.Get, selectionTokenAliases...); token != "" {
		query.Set("token", token)
	}

	if len(query) == 0 {
		return storeCallbackPath
	}
	return storeCallbackPath + "?" + query.Encode()
}

// rejectMethod answers a known path requested with a method it does not serve.
func rejectMethod(ctx *gin.Context) {
	if ctx.Request.URL.Path == logisticsCallbackPath {
		ctx.Header("Allow", http.MethodPost)
	}
	ctx.JSON(http.StatusMethodNotAllowed, messageResponse(ErrMethodNotAllowed))
}
