package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/katatrina/plg-shop/internal/backend"
	"github.com/katatrina/plg-shop/internal/checkout"
	"github.com/katatrina/plg-shop/internal/logistics"
	"github.com/rs/zerolog/log"
)

type listOrdersRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

// @Summary		List recent orders
// @Tags			orders
// @Produce		json
// @Security		accessToken
// @Param			limit	query		int	false	"Number of orders, default 10"
// @Success		200		{object}	object	"{\"orders\": []OrderSummary}"
// @Failure		400		{object}	FailedValidationResponse
// @Failure		502		{object}	object
// @Router			/orders [get]
func (server *Server) listOrders(ctx *gin.Context) {
	req := new(listOrdersRequest)
	if err := ctx.ShouldBindQuery(req); err != nil {
		ctx.JSON(http.StatusBadRequest, failedValidationError([]*FieldViolation{fieldViolation("limit", err)}))
		return
	}

	orders, err := server.shopperBackend.FetchOrders(ctx, credentials(ctx), req.Limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch orders")
		ctx.JSON(http.StatusBadGateway, gin.H{"error": checkout.DisplayMessage(err)})
		return
	}

	if orders == nil {
		orders = []backend.OrderSummary{}
	}
	ctx.JSON(http.StatusOK, gin.H{"orders": orders})
}

type printWaybillRequest struct {
	Carrier         string `form:"carrier" json:"carrier" binding:"required,carrier"`
	LogisticsID     string `form:"logisticsId" json:"logisticsId"`
	MerchantTradeNo string `form:"merchantTradeNo" json:"merchantTradeNo" binding:"required_without=LogisticsID"`
	Preview         bool   `form:"preview" json:"preview"`
}

// @Summary		Print a convenience-store waybill
// @Description	Returns a page that auto-submits the provider's waybill print form
// @Tags			orders
// @Accept			x-www-form-urlencoded
// @Produce		html
// @Security		accessToken
// @Param			carrier			formData	string	true	"fami or seven"
// @Param			logisticsId		formData	string	false	"Logistics ID"
// @Param			merchantTradeNo	formData	string	false	"Merchant trade number"
// @Success		200				{string}	string	"Auto-submitting print form"
// @Failure		400				{object}	FailedValidationResponse
// @Failure		502				{object}	object
// @Router			/orders/waybill [post]
func (server *Server) printWaybill(ctx *gin.Context) {
	req := new(printWaybillRequest)
	if err := ctx.ShouldBind(req); err != nil {
		ctx.JSON(http.StatusBadRequest, failedValidationError([]*FieldViolation{fieldViolation("waybill", err)}))
		return
	}

	form, err := server.logisticsProvider.PrintWaybill(ctx, credentials(ctx), logistics.Carrier(req.Carrier), backend.PrintWaybillRequest{
		LogisticsID:     req.LogisticsID,
		MerchantTradeNo: req.MerchantTradeNo,
		Preview:         req.Preview,
	})
	if err != nil {
		log.Error().Err(err).Str("carrier", req.Carrier).Msg("failed to request waybill")
		ctx.JSON(http.StatusBadGateway, gin.H{"error": checkout.DisplayMessage(err)})
		return
	}

	ctx.HTML(http.StatusOK, "form_post.html", formPostPage{
		Title:   "列印託運單",
		Message: "正在開啟託運單...",
		Form:    form,
	})
}
