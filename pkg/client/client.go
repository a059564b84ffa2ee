// Package client is a typed Go client for the technico-web HTTP API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/apostol1s/technico-web/internal/domain"
	"github.com/apostol1s/technico-web/internal/service"
)

// envelope mirrors the server's response wrapper.
type envelope struct {
	Code    int             `json:"code"`
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type Client struct {
	httpClient *resty.Client
}

func New(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{httpClient: c}
}

// SetToken attaches a session token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.httpClient.SetAuthToken(token)
}

func (c *Client) call(ctx context.Context, method, path string, body any, out any) error {
	var env envelope
	req := c.httpClient.R().SetContext(ctx).SetResult(&env).SetError(&env)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	if resp.IsError() || env.Code != 0 {
		return fmt.Errorf("api error (%d): %s", resp.StatusCode(), env.Message)
	}
	if out != nil {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}
	return nil
}

// Owners

func (c *Client) CreateOwner(ctx context.Context, req service.CreateOwnerRequest) (*domain.Owner, error) {
	var owner domain.Owner
	if err := c.call(ctx, "POST", "/owner/create", req, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

func (c *Client) UpdateOwner(ctx context.Context, id int64, req service.UpdateOwnerRequest) (*domain.Owner, error) {
	var owner domain.Owner
	if err := c.call(ctx, "PUT", fmt.Sprintf("/owner/update/%d", id), req, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

func (c *Client) FindOwnerByTaxID(ctx context.Context, taxID string) (*domain.Owner, error) {
	var owner domain.Owner
	if err := c.call(ctx, "GET", "/owner/findByTaxId/"+taxID, nil, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

func (c *Client) FindOwnerByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	var owner domain.Owner
	if err := c.call(ctx, "GET", "/owner/findByEmail/"+email, nil, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}

func (c *Client) FindAllOwners(ctx context.Context) ([]*domain.Owner, error) {
	var owners []*domain.Owner
	if err := c.call(ctx, "GET", "/owner/findAll", nil, &owners); err != nil {
		return nil, err
	}
	return owners, nil
}

func (c *Client) SoftDeleteOwner(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := c.call(ctx, "DELETE", fmt.Sprintf("/owner/softDelete/%d", id), nil, &deleted)
	return deleted, err
}

func (c *Client) HardDeleteOwner(ctx context.Context, id int64) error {
	return c.call(ctx, "DELETE", fmt.Sprintf("/owner/hardDelete/%d", id), nil, nil)
}

// Properties

func (c *Client) CreateProperty(ctx context.Context, req service.CreatePropertyRequest) (*domain.Property, error) {
	var property domain.Property
	if err := c.call(ctx, "POST", "/property/create", req, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *Client) UpdateProperty(ctx context.Context, id int64, req service.UpdatePropertyRequest) (*domain.Property, error) {
	var property domain.Property
	if err := c.call(ctx, "PUT", fmt.Sprintf("/property/update/%d", id), req, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *Client) FindPropertyByParcelID(ctx context.Context, parcelID string) (*domain.Property, error) {
	var property domain.Property
	if err := c.call(ctx, "GET", "/property/findByParcelId/"+parcelID, nil, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *Client) FindPropertiesByOwnerTaxID(ctx context.Context, taxID string) ([]*domain.Property, error) {
	var properties []*domain.Property
	if err := c.call(ctx, "GET", "/property/findByTaxId/"+taxID, nil, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (c *Client) SoftDeleteProperty(ctx context.Context, id int64) error {
	return c.call(ctx, "DELETE", fmt.Sprintf("/property/softDelete/%d", id), nil, nil)
}

func (c *Client) HardDeleteProperty(ctx context.Context, id int64) error {
	return c.call(ctx, "DELETE", fmt.Sprintf("/property/hardDelete/%d", id), nil, nil)
}

// Repairs

func (c *Client) CreateRepair(ctx context.Context, req service.CreateRepairRequest) (*domain.Repair, error) {
	var repair domain.Repair
	if err := c.call(ctx, "POST", "/repair/create", req, &repair); err != nil {
		return nil, err
	}
	return &repair, nil
}

func (c *Client) UpdateRepairAdmin(ctx context.Context, id int64, req service.UpdateRepairAdminRequest) (*domain.Repair, error) {
	var repair domain.Repair
	if err := c.call(ctx, "PUT", fmt.Sprintf("/repair/updateAdmin/%d", id), req, &repair); err != nil {
		return nil, err
	}
	return &repair, nil
}

func (c *Client) UpdateRepairOwner(ctx context.Context, id int64, req service.UpdateRepairOwnerRequest) (*domain.Repair, error) {
	var repair domain.Repair
	if err := c.call(ctx, "PUT", fmt.Sprintf("/repair/updateOwner/%d", id), req, &repair); err != nil {
		return nil, err
	}
	return &repair, nil
}

func (c *Client) FindRepairByID(ctx context.Context, id int64) (*domain.Repair, error) {
	var repair domain.Repair
	if err := c.call(ctx, "GET", fmt.Sprintf("/repair/findByID/%d", id), nil, &repair); err != nil {
		return nil, err
	}
	return &repair, nil
}

func (c *Client) FindRepairsByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Repair, error) {
	var repairs []*domain.Repair
	if err := c.call(ctx, "GET", fmt.Sprintf("/repair/findByOwnerID/%d", ownerID), nil, &repairs); err != nil {
		return nil, err
	}
	return repairs, nil
}

func (c *Client) FindRepairsByDate(ctx context.Context, at domain.DateTime) ([]*domain.Repair, error) {
	var repairs []*domain.Repair
	path := "/repair/findByDate?date=" + at.Format(domain.TimeLayout)
	if err := c.call(ctx, "GET", path, nil, &repairs); err != nil {
		return nil, err
	}
	return repairs, nil
}

func (c *Client) SoftDeleteRepair(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := c.call(ctx, "DELETE", fmt.Sprintf("/repair/softDelete/%d", id), nil, &deleted)
	return deleted, err
}

func (c *Client) HardDeleteRepair(ctx context.Context, id int64) error {
	return c.call(ctx, "DELETE", fmt.Sprintf("/repair/hardDelete/%d", id), nil, nil)
}

// Auth

func (c *Client) SignIn(ctx context.Context, email, password string) (*service.SignInResponse, error) {
	var resp service.SignInResponse
	req := service.SignInRequest{Email: email, Password: password}
	if err := c.call(ctx, "POST", "/auth/signIn", req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}
