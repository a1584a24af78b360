package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/katatrina/plg-shop/internal/event"
	"github.com/katatrina/plg-shop/internal/selection"
	"github.com/rs/zerolog/log"
)

const sseEventStore = "store"

// @Summary		Stream store selections via Server-Sent Events
// @Description	Emits every store picked for the current checkout (event "store") and picker failures (event "picker_error")
// @Tags			picker
// @Produce		text/event-stream
// @Success		200	{string}	string	"Event stream. Data will be sent as SSE events with format: 'event: {eventType}\ndata: {jsonData}'"
// @Router			/payment/store/events [get]
func (server *Server) streamStoreEvents(c *gin.Context) {
	scope := checkoutScope(c)
	requestCtx := c.Request.Context()

	stores, stop := server.checkoutService.Watch(requestCtx, scope)
	defer stop()

	// Lỗi của popup không đi qua kho lưu trữ nên nghe trực tiếp trên topic.
	topic := selection.Topic(scope)
	clientChan := make(chan event.Event, 1)
	server.eventSender.Register(topic, clientChan)
	defer server.eventSender.Unregister(topic, clientChan)

	// Thiết lập header SSE
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	for {
		select {
		case store, ok := <-stores:
			if !ok {
				return
			}
			writeSSE(c, sseEventStore, store)

		case ev, ok := <-clientChan:
			if !ok {
				return
			}
			if ev.Type == event.EventTypePickerError {
				writeSSE(c, ev.Type, ev.Data)
			}

		case <-requestCtx.Done():
			return
		}
	}
}

func writeSSE(c *gin.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("failed to marshal SSE payload")
		return
	}

	fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", eventType, data)
	c.Writer.Flush()
}

// @Summary		Current store selection
// @Tags			picker
// @Produce		json
// @Success		200	{object}	object	"{\"store\": SelectedStore or null}"
// @Router			/payment/store [get]
func (server *Server) getSelectedStore(ctx *gin.Context) {
	store, err := server.storeChannel.Read(ctx, checkoutScope(ctx))
	if err != nil {
		log.Error().Err(err).Msg("failed to read selected store")
		ctx.JSON(http.StatusInternalServerError, errorResponse(ErrInternalServer))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"store": store})
}

// @Summary		Checkout window regained focus
// @Description	Makes open event streams re-read the stored selection
// @Tags			picker
// @Success		204
// @Router			/payment/store/focus [post]
func (server *Server) focusCheckout(ctx *gin.Context) {
	if err := server.storeChannel.Focus(ctx, checkoutScope(ctx)); err != nil {
		log.Warn().Err(err).Msg("failed to publish focus event")
	}

	ctx.Status(http.StatusNoContent)
}
