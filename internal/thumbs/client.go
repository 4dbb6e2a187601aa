package thumbs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"
)

const boxartDir = "Named_Boxarts"

var hrefRegexp = regexp.MustCompile(`href="([^"?]+\.png)"`)

// Client fetches cover candidates from a libretro-thumbnails style server.
// Each platform maps to a repository directory whose index lists one PNG per
// title.
type Client struct {
	host       string
	httpClient *http.Client
}

var defaultClient *Client

// SetDefaultClient assigns the global thumbnail client.
func SetDefaultClient(c *Client) {
	defaultClient = c
}

// DefaultClient returns the configured global thumbnail client.
func DefaultClient() *Client {
	return defaultClient
}

// New creates a thumbnail repository client.
func New(host string, timeout time.Duration) (*Client, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, fmt.Errorf("thumbs host must be provided")
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid thumbs host: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		host: strings.TrimSuffix(u.String(), "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *Client) repoURL(repo string, name string) string {
	segments := []string{url.PathEscape(repo), boxartDir}
	if name != "" {
		segments = append(segments, url.PathEscape(name))
	}
	return c.host + "/" + strings.Join(segments, "/")
}

// ListCovers retrieves the candidate cover identifiers (PNG file names) for a
// platform repository by scraping its directory index.
func (c *Client) ListCovers(ctx context.Context, repo string) ([]string, error) {
	endpoint := c.repoURL(repo, "") + "/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "cubesync/fetch-cover")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("list covers %s: status %d: %s", repo, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", repo, err)
	}

	seen := make(map[string]struct{})
	var names []string
	for _, m := range hrefRegexp.FindAllStringSubmatch(string(body), -1) {
		name := m[1]
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
		if decoded, err := url.PathUnescape(name); err == nil {
			name = decoded
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Download fetches one cover by its identifier within a platform repository.
func (c *Client) Download(ctx context.Context, repo, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.repoURL(repo, name), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "cubesync/fetch-cover")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("download cover %s/%s: status %d: %s", repo, name, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("read cover %s/%s: %w", repo, name, err)
	}
	return data, nil
}
