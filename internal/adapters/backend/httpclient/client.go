package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/vishalsx/tubstudio-sub001/internal/auth"
	"github.com/vishalsx/tubstudio-sub001/internal/domain"
	"github.com/vishalsx/tubstudio-sub001/internal/ports"
)

// Client talks JSON over HTTP to the review backend. It is a thin transport
// wrapper; every stateful decision stays in the usecase layer.
type Client struct {
	BaseURL string
	http    *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	c := resty.New().SetTimeout(timeout)
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), http: c}
}

func (c *Client) req(ctx context.Context) *resty.Request {
	r := c.http.R().SetContext(ctx)
	if token := auth.TokenFromContext(ctx); token != "" {
		r.SetHeader("Authorization", "Bearer "+token)
	}
	return r
}

// Identify sends the image (or a known content hash) for one language. A
// 400-class response is a content-policy rejection, reported as
// domain.ErrContentPolicy rather than an ordinary error.
func (c *Client) Identify(ctx context.Context, req ports.IdentifyRequest) (*domain.IdentifyResult, error) {
	var res domain.IdentifyResult
	r := c.req(ctx).SetResult(&res)
	if req.ContentHash != "" {
		r.SetFormData(map[string]string{
			"content_hash": req.ContentHash,
			"language":     req.Language,
		})
	} else {
		name := req.Filename
		if name == "" {
			name = "image"
		}
		r.SetFileReader("image", name, bytes.NewReader(req.Image)).
			SetFormData(map[string]string{"language": req.Language})
	}
	rr, err := r.Post(c.BaseURL + "/identify")
	if err != nil {
		return nil, fmt.Errorf("identify %s: %w", req.Language, err)
	}
	if rr.IsError() {
		if rr.StatusCode() >= 400 && rr.StatusCode() < 500 {
			return nil, fmt.Errorf("identify %s: %s: %w", req.Language, rr.Status(), domain.ErrContentPolicy)
		}
		return nil, fmt.Errorf("identify %s: %s; body: %s", req.Language, rr.Status(), rr.String())
	}
	return &res, nil
}

// Save sends the common attributes plus a one-element language list, the
// resolved permission action, and the image when attached.
func (c *Client) Save(ctx context.Context, req ports.SaveRequest) (*ports.SaveResult, error) {
	payload := map[string]any{
		"common_attributes":   req.Common,
		"language_attributes": []ports.LanguageAttributes{req.Language},
		"permission_action":   req.PermissionAction,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("save: marshal payload: %w", err)
	}
	var res []ports.SaveResult
	r := c.req(ctx).SetResult(&res).
		SetMultipartField("payload", "", "application/json", bytes.NewReader(body))
	if len(req.Image) > 0 {
		name := req.Filename
		if name == "" {
			name = "image"
		}
		r.SetFileReader("image", name, bytes.NewReader(req.Image))
	}
	rr, err := r.Post(c.BaseURL + "/translations/save")
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", req.Language.Language, err)
	}
	if rr.IsError() {
		return nil, fmt.Errorf("save %s: %s; body: %s", req.Language.Language, rr.Status(), rr.String())
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("save %s: empty response list", req.Language.Language)
	}
	return &res[0], nil
}

func (c *Client) GetByID(ctx context.Context, translationID string) (*domain.RecordDetail, error) {
	var res domain.RecordDetail
	rr, err := c.req(ctx).SetResult(&res).
		Get(c.BaseURL + "/translations/" + translationID)
	if err != nil {
		return nil, fmt.Errorf("get translation %s: %w", translationID, err)
	}
	if rr.IsError() {
		return nil, fmt.Errorf("get translation %s: %s; body: %s", translationID, rr.Status(), rr.String())
	}
	return &res, nil
}

func (c *Client) UnlockAndSkip(ctx context.Context, translationID string) error {
	rr, err := c.req(ctx).Post(c.BaseURL + "/translations/" + translationID + "/skip")
	if err != nil {
		return fmt.Errorf("skip %s: %w", translationID, err)
	}
	if rr.IsError() {
		return fmt.Errorf("skip %s: %s; body: %s", translationID, rr.Status(), rr.String())
	}
	return nil
}

func (c *Client) FetchWorklist(ctx context.Context, languages []string) ([]*domain.WorklistItem, error) {
	var res []*domain.WorklistItem
	rr, err := c.req(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"languages": languages}).
		SetResult(&res).
		Post(c.BaseURL + "/worklist/fetch")
	if err != nil {
		return nil, fmt.Errorf("fetch worklist: %w", err)
	}
	if rr.IsError() {
		return nil, fmt.Errorf("fetch worklist: %s; body: %s", rr.Status(), rr.String())
	}
	return res, nil
}

var _ ports.Backend = (*Client)(nil)
