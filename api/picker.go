package api

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/katatrina/plg-shop/internal/backend"
	"github.com/katatrina/plg-shop/internal/checkout"
	"github.com/katatrina/plg-shop/internal/event"
	"github.com/katatrina/plg-shop/internal/picker"
	"github.com/katatrina/plg-shop/internal/selection"
	"github.com/rs/zerolog/log"
)

const (
	pickerBusyMessage    = "門市選擇視窗開啟中，請稍候..."
	pickerClosedMessage  = "門市選擇視窗已關閉"
	pickerUnusedMessage  = "此配送方式不需選擇門市"
	pickerFailureMessage = "無法開啟門市選擇，請稍後重試"
)

var errWindowFinished = errors.New("picker window response already finished")

// httpWindow is a picker popup backed by the streaming HTML response of GET /payment/picker.
// Other requests may close it while its own handler is still waiting on the backend.
type httpWindow struct {
	mu        sync.Mutex
	writer    gin.ResponseWriter
	templates *template.Template
	done      <-chan struct{}
	started   bool
	finished  bool
}

func newHTTPWindow(ctx *gin.Context, templates *template.Template) *httpWindow {
	return &httpWindow{
		writer:    ctx.Writer,
		templates: templates,
		done:      ctx.Request.Context().Done(),
	}
}

func (w *httpWindow) Name() string {
	return picker.WindowName
}

// start writes the page head. Callers hold w.mu.
func (w *httpWindow) start(message string) error {
	if w.started {
		return nil
	}
	w.started = true

	w.writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.writer.Header().Set("Cache-Control", "no-store")
	w.writer.WriteHeader(http.StatusOK)

	return w.templates.ExecuteTemplate(w.writer, "picker_loading", gin.H{
		"WindowName": w.Name(),
		"Message":    message,
	})
}

func (w *httpWindow) WriteLoading(message string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return errWindowFinished
	}
	if err := w.start(message); err != nil {
		return err
	}

	w.writer.Flush()
	return nil
}

func (w *httpWindow) SubmitForm(form *backend.FormPost) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return errWindowFinished
	}
	if err := w.start(picker.LoadingMessage); err != nil {
		return err
	}

	w.finished = true
	if err := w.templates.ExecuteTemplate(w.writer, "picker_form", form); err != nil {
		return err
	}

	w.writer.Flush()
	return nil
}

// Close ends the page with a script closing the popup. Closing a finished window is a no-op.
func (w *httpWindow) Close(reason string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return nil
	}
	w.finished = true

	log.Debug().Str("reason", reason).Msg("closing picker window")

	if err := w.start(""); err != nil {
		return err
	}
	if err := w.templates.ExecuteTemplate(w.writer, "picker_close", closeMessage(reason)); err != nil {
		return err
	}

	w.writer.Flush()
	return nil
}

func (w *httpWindow) Closed() bool {
	select {
	case <-w.done:
		return true
	default:
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.finished
}

// finish stops all writes once the handler has returned.
func (w *httpWindow) finish() {
	w.mu.Lock()
	w.finished = true
	w.mu.Unlock()
}

func closeMessage(reason string) string {
	switch reason {
	case pickerUnusedMessage, pickerFailureMessage:
		return reason
	}
	return pickerClosedMessage
}

// @Summary		Open the store picker
// @Description	Popup page: shows a loading message, then auto-submits the logistics provider's store map form
// @Tags			picker
// @Produce		html
// @Param			method	query		string	true	"familymart or seveneleven"
// @Success		200		{string}	string	"Streaming HTML page"
// @Failure		409		{string}	string	"Another picker is opening, the page refreshes itself"
// @Router			/payment/picker [get]
func (server *Server) openStorePicker(ctx *gin.Context) {
	method := checkout.ShippingMethod(ctx.Query("method"))
	scope := checkoutScope(ctx)

	win := newHTTPWindow(ctx, server.templates)
	defer win.finish()

	_, err := server.pickerController.Open(ctx.Request.Context(), scope, method, credentials(ctx), win)
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, picker.ErrPickerBusy):
		ctx.HTML(http.StatusConflict, "picker_busy.html", pickerBusyMessage)

	case errors.Is(err, picker.ErrMethodNotPickable):
		_ = win.Close(pickerUnusedMessage)

	case errors.Is(err, picker.ErrSessionSuperseded):
		log.Info().Str("scope", scope).Msg("picker session superseded")

	default:
		log.Error().Err(err).Str("scope", scope).Msg("failed to open store picker")
		server.notifyPickerError(ctx.Request.Context(), scope, pickerErrorMessage(err))
		_ = win.Close(pickerFailureMessage)
	}
}

func pickerErrorMessage(err error) string {
	var backendErr *backend.Error
	if errors.As(err, &backendErr) {
		return backendErr.Message
	}
	return pickerFailureMessage
}

// notifyPickerError shows message inline on every checkout tab of scope.
func (server *Server) notifyPickerError(ctx context.Context, scope string, message string) {
	err := server.eventPublisher.Publish(context.WithoutCancel(ctx), event.Event{
		Topic: selection.Topic(scope),
		Type:  event.EventTypePickerError,
		Data:  map[string]string{"message": message},
	})
	if err != nil {
		log.Warn().Err(err).Str("scope", scope).Msg("failed to publish picker error")
	}
}
