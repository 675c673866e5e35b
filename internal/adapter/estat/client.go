// Package estat is an HTTP client for the e-Stat government statistics API
// (getStatsData endpoint, JSON flavor).
package estat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wardwatch/tokyo-ward-stats/internal/domain"
)

// Client fetches raw indicator observations from e-Stat.
type Client struct {
	appID      string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an e-Stat client. baseURL is the API root up to and
// including the /json segment; tests point it at a local server.
func NewClient(appID, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		appID: appID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// GetStatsData requests the given indicator codes for the given areas from
// one statistics table. A non-success HTTP status is an error and aborts the
// caller's build. A response without rows is not an error; it returns an
// empty slice, since upstream tables legitimately have gaps.
func (c *Client) GetStatsData(ctx context.Context, tableID string, indicatorCodes, areaCodes []string) ([]domain.RawObservation, error) {
	params := url.Values{
		"appId":       {c.appID},
		"statsDataId": {tableID},
		"cdCat01":     {strings.Join(indicatorCodes, ",")},
		"cdArea":      {strings.Join(areaCodes, ",")},
	}

	fullURL := c.baseURL + "/getStatsData?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("estat request for table %s: %w", tableID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("estat API error: status %d: %s", resp.StatusCode, body)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	values := env.GetStatsData.StatisticalData.DataInf.Values
	if len(values) == 0 {
		c.logger.Warn("estat table returned no rows", "table", tableID, "codes", strings.Join(indicatorCodes, ","))
		return []domain.RawObservation{}, nil
	}

	observations := make([]domain.RawObservation, 0, len(values))
	for _, v := range values {
		observations = append(observations, domain.RawObservation{
			Area:          v.Area,
			IndicatorCode: v.Cat01,
			Period:        v.Time,
			Value:         v.Raw,
		})
	}
	return observations, nil
}

// e-Stat getStatsData response envelope. Only the fields we read.

type envelope struct {
	GetStatsData struct {
		StatisticalData struct {
			DataInf struct {
				Values valueList `json:"VALUE"`
			} `json:"DATA_INF"`
		} `json:"STATISTICAL_DATA"`
	} `json:"GET_STATS_DATA"`
}

type value struct {
	Tab   string `json:"@tab"`
	Cat01 string `json:"@cat01"`
	Area  string `json:"@area"`
	Time  string `json:"@time"`
	Unit  string `json:"@unit"`
	Raw   string `json:"$"`
}

// valueList absorbs an e-Stat quirk: VALUE is an array when a table has
// multiple rows but a bare object when it has exactly one.
type valueList []value

func (l *valueList) UnmarshalJSON(data []byte) error {
	var many []value
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one value
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = []value{one}
	return nil
}
