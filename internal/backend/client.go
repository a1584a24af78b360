package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"resty.dev/v3"
)

const defaultFallbackMessage = "無法取得回應，請稍後重試"

// Credentials are the session credentials of the shopper, forwarded on every backend call.
type Credentials struct {
	AccessToken string
	Cookies     []*http.Cookie
}

// FormPost is a server-signed form: the browser posts Fields to Action.
type FormPost struct {
	Action string            `json:"action"`
	Fields map[string]string `json:"fields"`
}

func (f *FormPost) validate() error {
	if f == nil || f.Action == "" {
		return errors.New("form action is missing")
	}

	u, err := url.Parse(f.Action)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("form action %q is not an absolute http(s) url", f.Action)
	}

	if f.Fields == nil {
		f.Fields = map[string]string{}
	}
	return nil
}

// Error là lỗi trả về từ backend hoặc lỗi mạng, Message luôn hiển thị được cho người dùng.
type Error struct {
	StatusCode int // 0 when the request never got a response
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Client talks to the PLG REST backend.
type Client struct {
	resty *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	restyClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{resty: restyClient}
}

func (c *Client) Close() error {
	return c.resty.Close()
}

func (c *Client) request(ctx context.Context, creds Credentials) *resty.Request {
	req := c.resty.R().SetContext(ctx)
	if creds.AccessToken != "" {
		req.SetAuthToken(creds.AccessToken)
	}
	if len(creds.Cookies) > 0 {
		req.SetCookies(creds.Cookies)
	}
	return req
}

// do executes req and converts any failure into *Error carrying a display message.
func do(req *resty.Request, method, path, fallback string) error {
	body := &errorBody{}
	req.SetError(body)

	resp, err := req.Execute(method, path)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		message := fallback
		if errors.Is(err, context.DeadlineExceeded) {
			message = "連線逾時，請稍後重試"
		}
		return &Error{Message: message, Err: err}
	}

	if resp.IsError() {
		message := body.Message
		if message == "" {
			message = body.Error
		}
		if message == "" {
			message = fallback
		}
		log.Warn().Int("status", resp.StatusCode()).Str("path", path).Str("message", message).Msg("backend returned error")
		return &Error{
			StatusCode: resp.StatusCode(),
			Message:    message,
			Err:        fmt.Errorf("backend %s %s returned status %d", method, path, resp.StatusCode()),
		}
	}

	return nil
}

func (c *Client) postForm(ctx context.Context, creds Credentials, path string, payload any, fallback string) (*FormPost, error) {
	var form FormPost
	req := c.request(ctx, creds).SetBody(payload).SetResult(&form)
	if err := do(req, http.MethodPost, path, fallback); err != nil {
		return nil, err
	}

	if err := form.validate(); err != nil {
		return nil, &Error{Message: fallback, Err: err}
	}

	return &form, nil
}
