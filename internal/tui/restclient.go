package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// reads room counters from the REST API
type RESTClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewRESTClient(endpoint string) *RESTClient {
	return &RESTClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: statsRequestTimeout,
		},
	}
}

// fetches the current room counters
func (c *RESTClient) Stats(ctx context.Context) (*Stats, error) {
	url := fmt.Sprintf("%s/api/v1/stats", c.endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats returned status %d", resp.StatusCode)
	}

	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to parse stats: %w", err)
	}

	return &stats, nil
}

// returns a tea.Cmd that fetches stats
func (c *RESTClient) StatsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), statsRequestTimeout)
		defer cancel()

		stats, err := c.Stats(ctx)
		if err != nil {
			return ErrorMsg{err: err}
		}

		return StatsMsg{stats: *stats}
	}
}
