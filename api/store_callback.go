package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/katatrina/plg-shop/internal/selection"
	"github.com/rs/zerolog/log"
)

// callbackCloseDelay leaves the confirmation visible briefly before the popup closes itself.
const callbackCloseDelay = 400

type storeCallbackPage struct {
	Title            string
	Message          string
	Store            *selection.SelectedStore
	CloseAfterMillis int
}

// @Summary		Store picker callback
// @Description	Final popup page: records the picked store for the opener and closes itself
// @Tags			picker
// @Produce		html
// @Param			token	query		string	false	"Selection token issued when the picker was opened"
// @Param			storeid	query		string	false	"Store ID (also CVSStoreID, ReceiverStoreID, ...)"
// @Success		200		{string}	string	"Self-closing HTML page"
// @Router			/payment/store-callback [get]
func (server *Server) receiveStoreCallback(ctx *gin.Context) {
	page := storeCallbackPage{
		Title:            "門市選擇完成",
		Message:          "已選擇門市，視窗即將關閉。若未自動關閉，請手動關閉此視窗並返回結帳頁面。",
		CloseAfterMillis: callbackCloseDelay,
	}

	store, ok := selection.FromValues(ctx.Request.URL.Query())
	if !ok {
		page.Title = "未取得門市資訊"
		page.Message = "請關閉此視窗後重新選擇門市。"
		ctx.HTML(http.StatusOK, "store_callback.html", page)
		return
	}

	scope := checkoutScope(ctx)
	if token := ctx.Query("token"); token != "" {
		resolved, err := server.pickerController.Complete(ctx.Request.Context(), token)
		if err != nil {
			// Token cũ hoặc giả mạo: không ghi đè lựa chọn hiện tại.
			log.Warn().Err(err).Str("store_id", store.ID).Msg("discarding store callback with unknown token")
			page.Title = "門市選擇已逾時"
			page.Message = "請關閉此視窗後重新選擇門市。"
			ctx.HTML(http.StatusOK, "store_callback.html", page)
			return
		}
		scope = resolved
	}

	// Ghi vào kho trước, sau đó mới gửi tin nhắn cho cửa sổ chính.
	if err := server.storeChannel.Write(ctx.Request.Context(), scope, store); err != nil {
		log.Error().Err(err).Str("scope", scope).Msg("failed to save selected store")
		page.Title = "門市選擇失敗"
		page.Message = "請關閉此視窗後重新選擇門市。"
		ctx.HTML(http.StatusOK, "store_callback.html", page)
		return
	}

	if err := server.storeChannel.PostMessage(ctx.Request.Context(), scope, store.Payload()); err != nil {
		log.Warn().Err(err).Str("scope", scope).Msg("failed to notify opener of selected store")
	}

	log.Info().Str("scope", scope).Str("store_id", store.ID).Msg("store selected ✅")

	page.Store = &store
	ctx.HTML(http.StatusOK, "store_callback.html", page)
}
