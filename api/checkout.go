package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/katatrina/plg-shop/internal/checkout"
	"github.com/katatrina/plg-shop/internal/picker"
	shopvalidator "github.com/katatrina/plg-shop/internal/validator"
	"github.com/rs/zerolog/log"
)

const popupBlockedMessage = "請允許瀏覽器跳出視窗以選擇門市"

type checkoutPage struct {
	Draft               *checkout.Draft
	CartCount           int64
	Totals              checkout.Totals
	ShippingOptions     []checkout.ShippingOption
	PaymentOptions      []checkout.PaymentOption
	Error               string
	PickerURL           string
	WindowName          string
	WindowFeatures      string
	PopupBlockedMessage string
}

func newCheckoutPage(draft *checkout.Draft, loadErr error) checkoutPage {
	page := checkoutPage{
		Draft:               draft,
		ShippingOptions:     checkout.ShippingOptions(),
		PaymentOptions:      checkout.PaymentOptions(),
		PickerURL:           pickerPath,
		WindowName:          picker.WindowName,
		WindowFeatures:      picker.WindowFeatures,
		PopupBlockedMessage: popupBlockedMessage,
	}

	if draft != nil {
		page.Totals = draft.Totals()
		page.Error = draft.Error
	}
	if loadErr != nil {
		page.Error = checkout.DisplayMessage(loadErr)
	}

	return page
}

// @Summary		Checkout page
// @Description	Renders the checkout draft of the current browser: cart, shipping method, store or address and totals
// @Tags			checkout
// @Produce		html
// @Security		accessToken
// @Success		200	{string}	string	"HTML page"
// @Failure		303	{string}	string	"Redirect to the login page"
// @Router			/payment [get]
func (server *Server) showCheckout(ctx *gin.Context) {
	creds := credentials(ctx)
	draft, err := server.checkoutService.Load(ctx, checkoutScope(ctx), creds)
	if err != nil {
		log.Error().Err(err).Msg("failed to load checkout draft")
	}

	page := newCheckoutPage(draft, err)
	if page.CartCount, err = server.shopperBackend.CountCartItems(ctx, creds); err != nil {
		log.Warn().Err(err).Msg("failed to count cart items")
	}

	ctx.HTML(http.StatusOK, "checkout.html", page)
}

type selectShippingMethodRequest struct {
	Method string `form:"method" json:"method" binding:"required,shipping_method"`
}

// @Summary		Switch shipping method
// @Description	Persists the shipping method and clears the selected store
// @Tags			checkout
// @Accept			x-www-form-urlencoded
// @Security		accessToken
// @Param			method	formData	string	true	"familymart, seveneleven or home"
// @Success		303		{string}	string	"Redirect to the checkout page"
// @Failure		400		{object}	FailedValidationResponse
// @Router			/payment/shipping [post]
func (server *Server) selectShippingMethod(ctx *gin.Context) {
	req := new(selectShippingMethodRequest)
	if err := ctx.ShouldBind(req); err != nil {
		ctx.JSON(http.StatusBadRequest, failedValidationError([]*FieldViolation{fieldViolation("method", err)}))
		return
	}

	scope := checkoutScope(ctx)
	if err := server.checkoutService.SelectMethod(ctx, scope, checkout.ShippingMethod(req.Method)); err != nil {
		log.Error().Err(err).Str("scope", scope).Msg("failed to switch shipping method")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	// Popup của phương thức cũ không còn hợp lệ.
	server.pickerController.Cancel(ctx, scope)

	ctx.Redirect(http.StatusSeeOther, checkoutPath)
}

// @Summary		Set home delivery address
// @Tags			checkout
// @Accept			x-www-form-urlencoded
// @Security		accessToken
// @Param			city		formData	string	true	"City"
// @Param			district	formData	string	true	"District"
// @Param			detail		formData	string	true	"Street address"
// @Success		303			{string}	string	"Redirect to the checkout page"
// @Failure		400			{object}	FailedValidationResponse
// @Router			/payment/address [post]
func (server *Server) setShippingAddress(ctx *gin.Context) {
	var address checkout.Address
	if err := ctx.ShouldBind(&address); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	if err := shopvalidator.ValidateAddress(address); err != nil {
		ctx.JSON(http.StatusBadRequest, failedValidationError([]*FieldViolation{fieldViolation("address", err)}))
		return
	}

	if err := server.checkoutService.SetAddress(ctx, checkoutScope(ctx), address); err != nil {
		log.Error().Err(err).Msg("failed to save shipping address")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.Redirect(http.StatusSeeOther, checkoutPath)
}

type formPostPage struct {
	Title   string
	Message string
	Form    any
}

type submitCheckoutRequest struct {
	Payment string `form:"payment" json:"payment"`
}

// @Summary		Submit checkout
// @Description	Validates the draft and returns a page that auto-submits the payment gateway form
// @Tags			checkout
// @Produce		html
// @Accept			x-www-form-urlencoded
// @Security		accessToken
// @Param			payment	formData	string	false	"Payment method, ecpay"
// @Success		200		{string}	string	"Auto-submitting gateway form"
// @Success		303		{string}	string	"Validation or gateway failure, error shown on the checkout page"
// @Failure		400		{object}	FailedValidationResponse
// @Router			/payment/checkout [post]
func (server *Server) submitCheckout(ctx *gin.Context) {
	scope := checkoutScope(ctx)

	req := new(submitCheckoutRequest)
	if err := ctx.ShouldBind(req); err != nil {
		ctx.JSON(http.StatusBadRequest, failedValidationError([]*FieldViolation{fieldViolation("payment", err)}))
		return
	}

	if req.Payment != "" {
		if err := server.checkoutService.SelectPayment(ctx, scope, checkout.PaymentMethod(req.Payment)); err != nil {
			ctx.JSON(http.StatusBadRequest, failedValidationError([]*FieldViolation{fieldViolation("payment", err)}))
			return
		}
	}

	result, _, err := server.checkoutService.Submit(ctx, scope, credentials(ctx))
	if err != nil {
		var inputErr *checkout.InputError
		if !errors.As(err, &inputErr) {
			log.Error().Err(err).Str("scope", scope).Msg("failed to submit checkout")
		}
		ctx.Redirect(http.StatusSeeOther, checkoutPath)
		return
	}

	ctx.HTML(http.StatusOK, "form_post.html", formPostPage{
		Title:   "前往付款",
		Message: "正在前往付款頁面...",
		Form:    result.Form,
	})
}
