package notestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"resty.dev/v3"

	"github.com/livedreligion/wheresreligion/internal/note"
)

// ErrUnexpectedStatus is returned when the remote store answers with a status
// the operation does not accept.
var ErrUnexpectedStatus = errors.New("unexpected response status")

const DefaultType = "message"

// Config holds the remote store endpoints.
type Config struct {
	// BaseURL is the prefix the operation names are appended to, e.g.
	// "https://store.example.com/v1/api/".
	BaseURL string
	// PublishedURL is the query endpoint used for published notes.
	// It defaults to BaseURL + "query".
	PublishedURL string
	// Type is the record type notes are stored under.
	Type string
}

// Client talks to the remote note store over HTTP.
type Client struct {
	httpClient   *resty.Client
	noteType     string
	publishedURL string
}

var _ Store = (*Client)(nil)

func NewClient(cfg Config) *Client {
	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetHeader("Content-Type", "application/json")
	client.SetAllowMethodDeletePayload(true)

	noteType := cfg.Type
	if noteType == "" {
		noteType = DefaultType
	}
	publishedURL := cfg.PublishedURL
	if publishedURL == "" {
		publishedURL = "query"
	}
	return &Client{
		httpClient:   client,
		noteType:     noteType,
		publishedURL: publishedURL,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type queryRequest struct {
	Type      string `json:"type"`
	Creator   string `json:"creator,omitempty"`
	Published *bool  `json:"published,omitempty"`
}

type deleteRequest struct {
	Type    string `json:"type"`
	Creator string `json:"creator"`
	ID      string `json:"@id"`
}

type creatorResponse struct {
	Name string `json:"name"`
}

func (client *Client) FetchGlobalNotes(ctx context.Context) ([]note.Note, error) {
	published := true
	return client.query(ctx, client.publishedURL, queryRequest{Type: client.noteType, Published: &published})
}

func (client *Client) FetchAllNotes(ctx context.Context) ([]note.Note, error) {
	return client.query(ctx, "query", queryRequest{Type: client.noteType})
}

func (client *Client) FetchUserNotes(ctx context.Context, userID string) ([]note.Note, error) {
	return client.query(ctx, "query", queryRequest{Type: client.noteType, Creator: userID})
}

// SearchNotes returns the notes whose title or tags contain query, ignoring
// case. A blank query matches nothing and issues no request.
func (client *Client) SearchNotes(ctx context.Context, query string) ([]note.Note, error) {
	if strings.TrimSpace(query) == "" {
		return []note.Note{}, nil
	}
	notes, err := client.query(ctx, "query", queryRequest{Type: client.noteType})
	if err != nil {
		return nil, err
	}
	matched := make([]note.Note, 0, len(notes))
	for _, n := range notes {
		if n.MatchesQuery(query) {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

func (client *Client) query(ctx context.Context, url string, body queryRequest) ([]note.Note, error) {
	var records []record
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&records).
		Post(url)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post(%s) > %w", url, err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("%w: response error %d: %s", ErrUnexpectedStatus, response.StatusCode(), response.String())
	}
	slog.Default().Debug("note store query",
		"url", url,
		"request", body,
		"count", len(records),
	)
	return toNotes(records), nil
}

func (client *Client) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	body := newRecord(client.noteType, n)
	body.ID = ""
	return client.write(ctx, http.MethodPost, "create", n, body)
}

func (client *Client) OverwriteNote(ctx context.Context, n note.Note) (note.Note, error) {
	return client.write(ctx, http.MethodPut, "overwrite", n, newRecord(client.noteType, n))
}

func (client *Client) write(ctx context.Context, method, url string, n note.Note, body record) (note.Note, error) {
	var saved record
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&saved).
		Execute(method, url)
	if err != nil {
		return note.Note{}, fmt.Errorf("httpClient.%s(%s) > %w", method, url, err)
	}
	if response.IsError() {
		return note.Note{}, fmt.Errorf("%w: response error %d: %s", ErrUnexpectedStatus, response.StatusCode(), response.String())
	}

	result := n
	switch {
	case saved.ID != "":
		result.ID = saved.ID
	case response.Header().Get("Location") != "":
		result.ID = response.Header().Get("Location")
	}
	if saved.Creator != "" {
		result.Creator = saved.Creator
	}
	slog.Default().Debug("note store write",
		"method", method,
		"url", url,
		"id", result.ID,
		"status", response.StatusCode(),
	)
	return result, nil
}

// DeleteNote succeeds only when the remote store answers 204 No Content.
func (client *Client) DeleteNote(ctx context.Context, id, ownerID string) error {
	payload, err := json.Marshal(deleteRequest{Type: client.noteType, Creator: ownerID, ID: id})
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/plain; charset=utf-8").
		SetBody(payload).
		Delete("delete")
	if err != nil {
		return fmt.Errorf("httpClient.Delete > %w", err)
	}
	if response.StatusCode() != http.StatusNoContent {
		return fmt.Errorf("%w: response error %d: %s", ErrUnexpectedStatus, response.StatusCode(), response.String())
	}
	return nil
}

// FetchCreatorName resolves a creator identifier, which is a URL, to a display name.
func (client *Client) FetchCreatorName(ctx context.Context, creatorURL string) (string, error) {
	var creator creatorResponse
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetResult(&creator).
		Get(creatorURL)
	if err != nil {
		return "", fmt.Errorf("httpClient.Get(%s) > %w", creatorURL, err)
	}
	if response.IsError() {
		return "", fmt.Errorf("%w: response error %d: %s", ErrUnexpectedStatus, response.StatusCode(), response.String())
	}
	return creator.Name, nil
}
