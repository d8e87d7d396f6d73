// Package trello is a minimal Trello REST API client covering the board,
// list, card, checklist, and label operations the engine needs.
package trello

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.trello.com/1"

// Config holds the Trello API credentials.
type Config struct {
	APIKey  string
	Token   string
	BaseURL string
}

// Validate reports whether the credentials look usable. Trello keys and
// tokens are long hex strings; anything shorter is a placeholder.
func (c Config) Validate() error {
	if c.APIKey == "" || c.Token == "" {
		return fmt.Errorf("trello credentials missing: set TRELLO_API_KEY and TRELLO_TOKEN")
	}
	if len(c.APIKey) < 10 || len(c.Token) < 10 {
		return fmt.Errorf("trello credentials look invalid (too short)")
	}
	return nil
}

// APIError is a non-2xx response from the Trello API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("trello: %s (HTTP %d)", e.Message, e.StatusCode)
}

// Client talks to the Trello REST API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Trello client with a 30 second request timeout.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Member is the authenticated Trello member.
type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// List is a Trello list.
type List struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Label is a Trello board label.
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Card is a Trello card.
type Card struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// BoardInfo is summary information about a board.
type BoardInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Me fetches the authenticated member, which doubles as a connection test.
func (c *Client) Me(ctx context.Context) (*Member, error) {
	var member Member
	if err := c.request(ctx, http.MethodGet, "members/me", nil, nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// BoardInfo fetches board metadata.
func (c *Client) BoardInfo(ctx context.Context, boardID string) (*BoardInfo, error) {
	var info BoardInfo
	if err := c.request(ctx, http.MethodGet, "boards/"+boardID, nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// BoardLists fetches all lists on a board.
func (c *Client) BoardLists(ctx context.Context, boardID string) ([]List, error) {
	var lists []List
	if err := c.request(ctx, http.MethodGet, "boards/"+boardID+"/lists", nil, nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// CreateList creates a new list on a board.
func (c *Client) CreateList(ctx context.Context, boardID, name string) (List, error) {
	var list List
	body := map[string]string{"idBoard": boardID, "name": name}
	if err := c.request(ctx, http.MethodPost, "lists", nil, body, &list); err != nil {
		return List{}, err
	}
	return list, nil
}

// BoardLabels fetches all labels on a board.
func (c *Client) BoardLabels(ctx context.Context, boardID string) ([]Label, error) {
	var labels []Label
	if err := c.request(ctx, http.MethodGet, "boards/"+boardID+"/labels", nil, nil, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// GetOrCreateLabel returns the ID of the named board label, creating it with
// the given color when no label of that name exists.
func (c *Client) GetOrCreateLabel(ctx context.Context, boardID, name, color string) (string, error) {
	labels, err := c.BoardLabels(ctx, boardID)
	if err != nil {
		return "", err
	}
	for _, label := range labels {
		if label.Name == name {
			return label.ID, nil
		}
	}

	var created Label
	body := map[string]string{"name": name, "color": color}
	if err := c.request(ctx, http.MethodPost, "boards/"+boardID+"/labels", nil, body, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// CreateCard creates a card on a list with optional label IDs.
func (c *Client) CreateCard(ctx context.Context, listID, name, desc string, labelIDs []string) (Card, error) {
	var card Card
	body := map[string]interface{}{
		"idList": listID,
		"name":   name,
		"desc":   desc,
	}
	if len(labelIDs) > 0 {
		body["idLabels"] = strings.Join(labelIDs, ",")
	}
	if err := c.request(ctx, http.MethodPost, "cards", nil, body, &card); err != nil {
		return Card{}, err
	}
	return card, nil
}

// CreateChecklist creates a checklist on a card and adds every item to it
// in order.
func (c *Client) CreateChecklist(ctx context.Context, cardID, name string, items []string) error {
	var checklist struct {
		ID string `json:"id"`
	}
	body := map[string]string{"idCard": cardID, "name": name}
	if err := c.request(ctx, http.MethodPost, "checklists", nil, body, &checklist); err != nil {
		return err
	}
	for _, item := range items {
		itemBody := map[string]string{"name": item}
		if err := c.request(ctx, http.MethodPost, "checklists/"+checklist.ID+"/checkItems", nil, itemBody, nil); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) request(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("key", c.cfg.APIKey)
	query.Set("token", c.cfg.Token)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+"/"+path+"?"+query.Encode(), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "sprint-board-helper/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("trello request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode trello response: %w", err)
	}
	return nil
}

func apiError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &APIError{resp.StatusCode, "authentication failed, check your API key and token"}
	case http.StatusForbidden:
		return &APIError{resp.StatusCode, "access forbidden, check your board permissions"}
	case http.StatusNotFound:
		return &APIError{resp.StatusCode, "resource not found, check your board ID"}
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{resp.StatusCode, string(bytes.TrimSpace(detail))}
	}
}
