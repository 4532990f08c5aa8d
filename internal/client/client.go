// Package client is a thin REST client for the menu CMS API.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Lixing-Zhang/menu-cms/internal/models"
)

// APIError is a response the server answered with a non-2xx status
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to the menu CMS API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets an admin token obtained earlier
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges the admin password for a token and keeps it for later calls
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	form := url.Values{"password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		Error   string `json:"error"`
	}
	if err := c.send(req, &resp); err != nil {
		return "", err
	}
	if !resp.Success || resp.Token == "" {
		return "", &APIError{Status: http.StatusUnauthorized, Message: resp.Error}
	}

	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()
	return resp.Token, nil
}

// ListCategories returns the categories in server order
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var list models.CategoryList
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &list); err != nil {
		return nil, err
	}
	return list.CategoriesWithIDs, nil
}

// CreateCategory appends a new category
func (c *Client) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodPost, "/api/categories", models.CategoryInput{Name: name}, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory renames a category
func (c *Client) UpdateCategory(ctx context.Context, id int64, in models.CategoryInput) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodPut, "/api/categories/"+strconv.FormatInt(id, 10), in, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/categories/"+strconv.FormatInt(id, 10), nil, nil)
}

// ReorderCategories sends the complete ordered list
func (c *Client) ReorderCategories(ctx context.Context, categories []models.Category) error {
	return c.do(ctx, http.MethodPut, "/api/categories/reorder", categories, nil)
}

// ListMenuItems returns every menu item
func (c *Client) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.do(ctx, http.MethodGet, "/api/menu-items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetRestaurantInfo returns the restaurant profile
func (c *Client) GetRestaurantInfo(ctx context.Context) (*models.RestaurantInfo, error) {
	var info models.RestaurantInfo
	if err := c.do(ctx, http.MethodGet, "/api/restaurant-info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetQRCode returns the decoded PNG and the URL it encodes
func (c *Client) GetQRCode(ctx context.Context) ([]byte, string, error) {
	var qr struct {
		QRCode  string `json:"qr_code"`
		MenuURL string `json:"menu_url"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/qr-code", nil, &qr); err != nil {
		return nil, "", err
	}
	png, err := base64.StdEncoding.DecodeString(qr.QRCode)
	if err != nil {
		return nil, "", fmt.Errorf("decode qr code: %w", err)
	}
	return png, qr.MenuURL, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	return c.send(req, out)
}

// send executes req. Transport failures are wrapped; non-2xx responses become
// *APIError.
func (c *Client) send(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
