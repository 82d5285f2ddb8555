package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FetchTimeout bounds the server-side proxy fetch of a stored asset.
const FetchTimeout = 15 * time.Second

// ErrFetchTimeout lets callers tell a slow origin apart from a broken
// one. It wraps context.DeadlineExceeded so errors.Is works upstream.
var ErrFetchTimeout = fmt.Errorf("cloudinary: fetch timed out: %w", context.DeadlineExceeded)

// Client is a thin wrapper over the Cloudinary REST API. We only consume
// capabilities here: sign upload params for the admin panel, produce
// time-boxed download links, and stream stored assets.
type Client struct {
	cloudName string
	apiKey    string
	apiSecret string
	http      *http.Client
}

func NewClient(cloudName, apiKey, apiSecret string) *Client {
	return &Client{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		http:      &http.Client{Timeout: FetchTimeout},
	}
}

func (c *Client) CloudName() string {
	return c.cloudName
}

// SignParams produces the signature the browser-side upload widget needs:
// sha1 of the sorted params joined with '&', with the api secret appended.
func (c *Client) SignParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

// SignedURL returns a time-boxed private download link for a stored asset.
func (c *Client) SignedURL(publicID string, ttl time.Duration) (string, error) {
	if publicID == "" {
		return "", fmt.Errorf("cloudinary: empty public id")
	}

	expiresAt := strconv.FormatInt(time.Now().Add(ttl).Unix(), 10)
	params := map[string]string{
		"public_id":  publicID,
		"expires_at": expiresAt,
	}
	signature := c.SignParams(params)

	q := url.Values{}
	q.Set("public_id", publicID)
	q.Set("expires_at", expiresAt)
	q.Set("api_key", c.apiKey)
	q.Set("signature", signature)

	return fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/utils/download?%s", c.cloudName, q.Encode()), nil
}

// Fetch streams the asset at assetURL. The caller owns the returned body.
// Timeouts come back as ErrFetchTimeout so the handler can report them
// distinctly; other upstream failures carry the status code only, never
// response internals.
func (c *Client) Fetch(ctx context.Context, assetURL string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("cloudinary: building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		cancel()
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrFetchTimeout
		}
		return nil, fmt.Errorf("cloudinary: fetch failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("cloudinary: unexpected status %d", resp.StatusCode)
	}

	// The context must stay alive while the caller drains the body.
	return &cancelReadCloser{ReadCloser: resp.Body, cancel: cancel}, nil
}

type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
