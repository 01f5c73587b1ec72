package client

// http_client.go wraps the mindwell REST API for the CLI.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"mindwell/internal/microservices/http-api/dto"
	"mindwell/internal/microservices/http-api/models"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// APIError is a failure envelope returned by the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Pagination *dto.Pagination `json:"pagination"`

	body []byte
}

// InteractResult is the reply to a toggle.
type InteractResult struct {
	Message    string             `json:"message"`
	Interacted bool               `json:"interacted"`
	Engagement *models.Engagement `json:"engagement"`
}

type RateResult struct {
	Message string                `json:"message"`
	Rating  *models.RatingSummary `json:"rating"`
}

// ListOptions mirrors the list query parameters; zero values are omitted.
type ListOptions struct {
	Category       string
	Type           string
	Difficulty     string
	Language       string
	TargetAudience string
	Search         string
	Page           int
	Limit          int
	SortBy         string
	SortOrder      string
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("category", o.Category)
	set("type", o.Type)
	set("difficulty", o.Difficulty)
	set("language", o.Language)
	set("targetAudience", o.TargetAudience)
	set("search", o.Search)
	set("sortBy", o.SortBy)
	set("sortOrder", o.SortOrder)
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	return v
}

// NewHTTPClient expects apiURL to include the /api/v1 root.
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do sends one request and decodes the envelope. Non-2xx replies become *APIError.
func (c *HTTPClient) do(method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unexpected response (HTTP %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Error
		if msg == "" {
			msg = resp.Status
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}
	env.body = raw
	return &env, nil
}

func decodeData[T any](env *envelope) (T, error) {
	var out T
	if len(env.Data) == 0 {
		return out, nil
	}
	err := json.Unmarshal(env.Data, &out)
	return out, err
}

// Resources

func (c *HTTPClient) ListResources(opts ListOptions) ([]models.Resource, *dto.Pagination, error) {
	path := "/resources"
	if q := opts.values().Encode(); q != "" {
		path += "?" + q
	}
	env, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return nil, nil, err
	}
	items, err := decodeData[[]models.Resource](env)
	return items, env.Pagination, err
}

func (c *HTTPClient) FeaturedResources(limit int) ([]models.Resource, error) {
	path := "/resources/featured"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	env, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]models.Resource](env)
}

func (c *HTTPClient) GetResource(id string) (*models.Resource, error) {
	env, err := c.do(http.MethodGet, "/resources/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	r, err := decodeData[models.Resource](env)
	return &r, err
}

// Meta returns the distinct categories or types, kind being "categories" or "types".
func (c *HTTPClient) Meta(kind string) ([]string, error) {
	env, err := c.do(http.MethodGet, "/resources/meta/"+kind, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]string](env)
}

func (c *HTTPClient) Interact(resourceID, interactionType string) (*InteractResult, error) {
	req := dto.InteractRequest{InteractionType: interactionType}
	env, err := c.do(http.MethodPost, "/resources/"+url.PathEscape(resourceID)+"/interact", req)
	if err != nil {
		return nil, err
	}
	// toggle replies carry their fields at the top level
	var out InteractResult
	if err := json.Unmarshal(env.body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Rate(resourceID string, rating int) (*RateResult, error) {
	env, err := c.do(http.MethodPost, "/resources/"+url.PathEscape(resourceID)+"/rate", dto.RateRequest{Rating: &rating})
	if err != nil {
		return nil, err
	}
	var out RateResult
	if err := json.Unmarshal(env.body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) History(interactionType string) ([]dto.InteractionResponse, error) {
	path := "/resources/user/interactions"
	if interactionType != "" {
		path += "?type=" + url.QueryEscape(interactionType)
	}
	env, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]dto.InteractionResponse](env)
}

// Bookings

func (c *HTTPClient) CreateBooking(req *dto.CreateBookingDTO) (*models.BookingRequest, error) {
	env, err := c.do(http.MethodPost, "/bookings", req)
	if err != nil {
		return nil, err
	}
	b, err := decodeData[models.BookingRequest](env)
	return &b, err
}

func (c *HTTPClient) MyBookings() ([]models.BookingRequest, error) {
	env, err := c.do(http.MethodGet, "/bookings/me", nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]models.BookingRequest](env)
}

func (c *HTTPClient) GetBooking(id string) (*models.BookingRequest, error) {
	env, err := c.do(http.MethodGet, "/bookings/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	b, err := decodeData[models.BookingRequest](env)
	return &b, err
}

func (c *HTTPClient) CounsellorQueue(counsellorID, status string) ([]models.BookingRequest, error) {
	path := "/bookings/counsellor/" + url.PathEscape(counsellorID)
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	env, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]models.BookingRequest](env)
}

func (c *HTTPClient) DecideBooking(id, action string) (*models.BookingRequest, error) {
	env, err := c.do(http.MethodPatch, "/bookings/"+url.PathEscape(id)+"/decision", dto.DecideBookingDTO{Action: action})
	if err != nil {
		return nil, err
	}
	b, err := decodeData[models.BookingRequest](env)
	return &b, err
}

// Notifications

func (c *HTTPClient) UnreadNotifications() ([]models.Notification, error) {
	env, err := c.do(http.MethodGet, "/notifications/unread", nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]models.Notification](env)
}

func (c *HTTPClient) MarkNotificationRead(id int64) error {
	_, err := c.do(http.MethodPut, "/notifications/"+strconv.FormatInt(id, 10)+"/read", nil)
	return err
}

func (c *HTTPClient) MarkAllNotificationsRead() error {
	_, err := c.do(http.MethodPut, "/notifications/read-all", nil)
	return err
}

func (c *HTTPClient) Health() (map[string]any, error) {
	env, err := c.do(http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}
	return decodeData[map[string]any](env)
}
