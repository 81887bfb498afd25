package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/CyberAustin/AFSCbot/internal/config"
	"github.com/CyberAustin/AFSCbot/internal/domain"
	"github.com/CyberAustin/AFSCbot/internal/ports"
)

const (
	defaultTokenURL = "https://www.reddit.com/api/v1/access_token"
	defaultAPIURL   = "https://oauth.reddit.com"
	permalinkBase   = "https://www.reddit.com"

	loginRetryDelay = 5 * time.Second
	pageLimit       = 100

	// A before-cursor pointing at a deleted comment makes the listing
	// come back empty forever; drop the cursor after this many dry polls.
	staleCursorPolls = 20
)

// Client implements the comment stream against the Reddit OAuth API using
// the script-app password grant.
type Client struct {
	cfg    config.RedditConfig
	client *http.Client
	logger *slog.Logger

	tokenURL string
	apiURL   string

	token       string
	tokenExpiry time.Time

	pending    []domain.Comment
	before     string
	emptyPolls int
}

var _ ports.CommentSource = (*Client)(nil)

// NewClient wires credentials and a polling HTTP client.
func NewClient(cfg config.RedditConfig, logger *slog.Logger) *Client {
	return &Client{
		cfg:      cfg,
		client:   &http.Client{Timeout: 20 * time.Second},
		logger:   logger,
		tokenURL: defaultTokenURL,
		apiURL:   defaultAPIURL,
	}
}

// Authenticate obtains the first access token, retrying transient failures
// indefinitely. Rejected credentials are permanent and returned as-is.
func (c *Client) Authenticate(ctx context.Context) error {
	for {
		err := c.requestToken(ctx)
		if err == nil {
			c.logger.Info("logged in", "user", c.cfg.Username)
			return nil
		}
		var credErr *CredentialsError
		if errors.As(err, &credErr) {
			return err
		}

		c.logger.Error("login failed, retrying", "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(loginRetryDelay):
		}
	}
}

// CredentialsError marks a login rejected by Reddit; retrying is pointless.
type CredentialsError struct {
	Status string
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("reddit rejected credentials: %s", e.Status)
}

// Next blocks until a new comment arrives, polling the subreddit listing
// at the configured cadence. Comments are yielded oldest-first.
func (c *Client) Next(ctx context.Context) (domain.Comment, error) {
	for {
		if len(c.pending) > 0 {
			next := c.pending[0]
			c.pending = c.pending[1:]
			return next, nil
		}

		fetched, err := c.fetchNewComments(ctx)
		if err != nil {
			return domain.Comment{}, err
		}
		c.pending = fetched

		if len(c.pending) == 0 {
			select {
			case <-ctx.Done():
				return domain.Comment{}, ctx.Err()
			case <-time.After(c.cfg.PollPeriod()):
			}
		}
	}
}

// Reply posts an annotation under the given comment.
func (c *Client) Reply(ctx context.Context, commentID, body string) error {
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("thing_id", "t1_"+commentID)
	form.Set("text", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/api/comment", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post reply: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reddit reply error: %s", resp.Status)
	}

	return nil
}

// Permalink renders the canonical URL of a comment for logging.
func (c *Client) Permalink(comment domain.Comment) string {
	return permalinkBase + comment.Permalink
}

type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID        string `json:"id"`
				Name      string `json:"name"`
				Author    string `json:"author"`
				Body      string `json:"body"`
				Permalink string `json:"permalink"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (c *Client) fetchNewComments(ctx context.Context) ([]domain.Comment, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/r/%s/comments?limit=%d", c.apiURL, c.cfg.Subreddit, pageLimit)
	if c.before != "" {
		endpoint += "&before=" + url.QueryEscape(c.before)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// token expired server-side; force a refresh on the next call
		c.token = ""
		return nil, fmt.Errorf("reddit listing error: %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit listing error: %s", resp.Status)
	}

	var page listing
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	children := page.Data.Children
	if len(children) == 0 {
		c.emptyPolls++
		if c.before != "" && c.emptyPolls >= staleCursorPolls {
			c.logger.Warn("comment cursor looks stale, resetting", "before", c.before)
			c.before = ""
			c.emptyPolls = 0
		}
		return nil, nil
	}
	c.emptyPolls = 0

	// listings arrive newest-first; yield oldest-first
	comments := make([]domain.Comment, 0, len(children))
	for i := len(children) - 1; i >= 0; i-- {
		data := children[i].Data
		comments = append(comments, domain.Comment{
			ID:        data.ID,
			Author:    data.Author,
			Body:      data.Body,
			Permalink: data.Permalink,
		})
	}
	c.before = children[0].Data.Name

	return comments, nil
}

func (c *Client) ensureToken(ctx context.Context) error {
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return nil
	}
	return c.requestToken(ctx)
}

func (c *Client) requestToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.cfg.Username)
	form.Set("password", c.cfg.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &CredentialsError{Status: resp.Status}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token endpoint returned %s", resp.Status)
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("decode token: %w", err)
	}
	if token.Error != "" {
		return &CredentialsError{Status: token.Error}
	}
	if token.AccessToken == "" {
		return fmt.Errorf("token endpoint returned no token")
	}

	c.token = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second).Add(-time.Minute)
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
}
