package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/katatrina/plg-shop/internal/backend"
	"github.com/katatrina/plg-shop/internal/payment"
	"github.com/katatrina/plg-shop/internal/selection"
	"github.com/katatrina/plg-shop/internal/storage"
	"github.com/katatrina/plg-shop/internal/util"
	"github.com/rs/zerolog/log"
)

const draftKeyPrefix = "checkout-draft"

type CartSource interface {
	FetchCart(ctx context.Context, creds backend.Credentials) ([]backend.CartItem, error)
}

// SelectionDiscarder schedules removal of a scope's store selection once its order was handed to the gateway.
type SelectionDiscarder interface {
	ScheduleSelectionDiscard(ctx context.Context, scope string, storeID string) error
}

// draftState is what survives between requests; cart items and the store are always reloaded.
type draftState struct {
	Method  ShippingMethod `json:"method"`
	Payment PaymentMethod  `json:"payment"`
	Address *Address       `json:"address,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type Service struct {
	cart      CartSource
	channel   *selection.Channel
	gateway   payment.Gateway
	drafts    storage.KV
	draftTTL  time.Duration
	discarder SelectionDiscarder
}

func NewService(cart CartSource, channel *selection.Channel, gateway payment.Gateway, drafts storage.KV, draftTTL time.Duration, discarder SelectionDiscarder) *Service {
	return &Service{
		cart:      cart,
		channel:   channel,
		gateway:   gateway,
		drafts:    drafts,
		draftTTL:  draftTTL,
		discarder: discarder,
	}
}

func draftKey(scope string) string {
	return util.ScopeKey(draftKeyPrefix, scope)
}

func (s *Service) loadState(ctx context.Context, scope string) (draftState, error) {
	state := draftState{Method: DefaultShippingMethod, Payment: PaymentECPay}

	data, err := s.drafts.Get(ctx, draftKey(scope))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return state, nil
		}
		return state, fmt.Errorf("failed to load checkout draft: %w", err)
	}

	if err = json.Unmarshal(data, &state); err != nil || !state.Method.Valid() {
		log.Warn().Str("scope", scope).Msg("discarding malformed checkout draft")
		return draftState{Method: DefaultShippingMethod, Payment: PaymentECPay}, nil
	}
	if !state.Payment.Valid() {
		state.Payment = PaymentECPay
	}

	return state, nil
}

func (s *Service) saveState(ctx context.Context, scope string, state draftState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout draft: %w", err)
	}
	if err = s.drafts.Set(ctx, draftKey(scope), data, s.draftTTL); err != nil {
		return fmt.Errorf("failed to save checkout draft: %w", err)
	}
	return nil
}

func (s *Service) updateState(ctx context.Context, scope string, update func(*draftState) error) error {
	state, err := s.loadState(ctx, scope)
	if err != nil {
		return err
	}
	if err = update(&state); err != nil {
		return err
	}
	return s.saveState(ctx, scope, state)
}

// Load builds a fresh draft from the current cart and the persisted choices of scope.
func (s *Service) Load(ctx context.Context, scope string, creds backend.Credentials) (*Draft, error) {
	state, err := s.loadState(ctx, scope)
	if err != nil {
		return nil, err
	}

	items, err := s.cart.FetchCart(ctx, creds)
	if err != nil {
		return nil, err
	}

	draft := NewDraft(items)
	draft.Method = state.Method
	draft.Payment = state.Payment
	draft.Address = state.Address
	draft.Error = state.Error

	if draft.Method.Pickup() {
		store, err := s.channel.Read(ctx, scope)
		if err != nil {
			return nil, err
		}
		if store != nil {
			// Lỗi của lần gửi trước vẫn phải hiển thị; chỉ cửa hàng mới đến (Watch) mới xóa lỗi.
			draft.RestoreStore(*store)
		}
	}

	return draft, nil
}

// SelectMethod switches the shipping method and drops whatever store was selected before.
func (s *Service) SelectMethod(ctx context.Context, scope string, method ShippingMethod) error {
	err := s.updateState(ctx, scope, func(state *draftState) error {
		draft := &Draft{Method: state.Method, Error: state.Error}
		if err := draft.SwitchMethod(method); err != nil {
			return err
		}

		state.Method = draft.Method
		state.Error = draft.Error
		return nil
	})
	if err != nil {
		return err
	}

	return s.channel.Clear(ctx, scope)
}

func (s *Service) SelectPayment(ctx context.Context, scope string, method PaymentMethod) error {
	if !method.Valid() {
		return inputError("payment", "請選擇付款方式")
	}

	return s.updateState(ctx, scope, func(state *draftState) error {
		state.Payment = method
		return nil
	})
}

func (s *Service) SetAddress(ctx context.Context, scope string, address Address) error {
	return s.updateState(ctx, scope, func(state *draftState) error {
		state.Address = &address
		if state.Error != "" && address.Complete() {
			state.Error = ""
		}
		return nil
	})
}

// Watch emits every store selection that is valid for the current shipping method of scope.
// Accepting a store clears the inline error of the draft.
func (s *Service) Watch(ctx context.Context, scope string) (<-chan selection.SelectedStore, func()) {
	watchCtx, stopWatch := context.WithCancel(ctx)
	stores, unsubscribe := s.channel.Subscribe(watchCtx, scope)
	out := make(chan selection.SelectedStore)

	go func() {
		defer close(out)
		for store := range stores {
			state, err := s.loadState(watchCtx, scope)
			if err != nil {
				log.Error().Err(err).Str("scope", scope).Msg("failed to load draft for store update")
				continue
			}

			draft := &Draft{Method: state.Method}
			if !draft.ApplyStore(store) {
				continue
			}

			if state.Error != "" {
				state.Error = ""
				if err = s.saveState(watchCtx, scope, state); err != nil {
					log.Error().Err(err).Str("scope", scope).Msg("failed to clear draft error")
				}
			}

			select {
			case out <- store:
			case <-watchCtx.Done():
				return
			}
		}
	}()

	return out, func() {
		stopWatch()
		unsubscribe()
	}
}

// Submit validates the draft and requests the gateway form that transfers the shopper to the payment provider.
// On failure the draft is left intact and the returned draft carries the inline error.
func (s *Service) Submit(ctx context.Context, scope string, creds backend.Credentials) (*payment.CheckoutResult, *Draft, error) {
	draft, err := s.Load(ctx, scope, creds)
	if err != nil {
		return nil, nil, err
	}

	if err = draft.Validate(); err != nil {
		s.recordError(ctx, scope, draft, err)
		return nil, draft, err
	}

	result, err := s.gateway.Checkout(ctx, creds, draft.Order())
	if err != nil {
		s.recordError(ctx, scope, draft, err)
		return nil, draft, err
	}

	draft.Error = ""
	s.recordError(ctx, scope, draft, nil)

	if s.discarder != nil && draft.Store != nil {
		if err = s.discarder.ScheduleSelectionDiscard(ctx, scope, draft.Store.ID); err != nil {
			log.Error().Err(err).Str("scope", scope).Msg("failed to schedule selection discard")
		}
	}

	log.Info().Str("scope", scope).Str("trade_no", result.TradeNo).Str("method", string(draft.Method)).Msg("checkout submitted ✅")
	return result, draft, nil
}

func (s *Service) recordError(ctx context.Context, scope string, draft *Draft, cause error) {
	draft.Error = DisplayMessage(cause)

	err := s.updateState(ctx, scope, func(state *draftState) error {
		state.Error = draft.Error
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("scope", scope).Msg("failed to record checkout error")
	}
}
