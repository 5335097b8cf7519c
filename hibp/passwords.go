package hibp

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
)

// PwnedPasswordCount reports how many times password appears in the pwned
// password corpus, using the k-anonymity range API: only the first five
// characters of the SHA-1 hash ever leave the process. Zero means the
// password was not found.
func (c *Client) PwnedPasswordCount(ctx context.Context, password string) (int, error) {
	if password == "" {
		return 0, fmt.Errorf("password required")
	}

	hash := fmt.Sprintf("%X", sha1.Sum([]byte(password)))
	prefix, suffix := hash[:5], hash[5:]

	body, err := c.fetchRange(ctx, prefix)
	if err != nil {
		return 0, err
	}

	for _, line := range strings.Split(body, "\n") {
		rest, found := strings.CutPrefix(strings.TrimSpace(line), suffix+":")
		if !found {
			continue
		}
		count, err := strconv.Atoi(rest)
		if err != nil {
			return 0, fmt.Errorf("parse pwned count: %w", err)
		}
		return count, nil
	}
	return 0, nil
}

// fetchRange returns the hash-suffix listing for a five-character SHA-1
// prefix. The response is plain text, so it is cached as a JSON string
// rather than raw bytes.
func (c *Client) fetchRange(ctx context.Context, prefix string) (string, error) {
	endpoint := "range/" + prefix

	if c.store != nil {
		if data, ok := c.store.Get(endpoint, nil); ok {
			var body string
			if err := json.Unmarshal(data, &body); err == nil {
				return body, nil
			}
		}
	}

	u := *c.pwBaseURL
	u.Path = path.Join(u.Path, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("GET %s: read body: %w", endpoint, err)
	}
	body := string(raw)

	if c.store != nil {
		if data, err := json.Marshal(body); err == nil {
			c.store.Set(endpoint, nil, data)
		}
	}
	return body, nil
}
