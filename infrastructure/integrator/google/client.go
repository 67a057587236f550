package google

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/adsight/adsight-api/infrastructure/integrator"
	"github.com/adsight/adsight-api/internal/config"
	"github.com/adsight/adsight-api/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Connector busca o relatório diário de performance do Google Ads.
type Connector struct {
	cfg    *config.Config
	client *http.Client
}

func New(cfg *config.Config) *Connector {
	return &Connector{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Sync.RequestTimeout()},
	}
}

func (c *Connector) Platform() domain.Platform {
	return domain.PlatformGoogleAds
}

type reportResponse struct {
	Results []reportRow `json:"results"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type reportRow struct {
	Date             string `json:"date"`
	CostMicros       string `json:"costMicros"`
	Impressions      string `json:"impressions"`
	Clicks           string `json:"clicks"`
	Conversions      string `json:"conversions"`
	ConversionsValue string `json:"conversionsValue"`
}

func (c *Connector) FetchInsights(ctx context.Context, credential *domain.Credential, window domain.DateRange) ([]domain.RawInsight, error) {
	insights := make([]domain.RawInsight, 0)

	for _, account := range credential.Payload.Accounts {
		accountInsights, err := c.fetchCustomerReport(ctx, credential.Payload.AccessToken, account.ID, window)
		if err != nil {
			return nil, err
		}
		insights = append(insights, accountInsights...)
	}

	return insights, nil
}

func (c *Connector) fetchCustomerReport(ctx context.Context, accessToken, customerID string, window domain.DateRange) ([]domain.RawInsight, error) {
	baseURL := fmt.Sprintf("%s/customers/%s/adPerformance:report", c.cfg.Google.URL, customerID)

	params := url.Values{}
	params.Add("since", window.Since.Format(time.DateOnly))
	params.Add("until", window.Until.Format(time.DateOnly))
	params.Add("granularity", "DAY")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "google: erro ao criar a requisição")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, integrator.NewTransportError(domain.PlatformGoogleAds, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, integrator.NewTransportError(domain.PlatformGoogleAds, err)
	}

	if resp.StatusCode != http.StatusOK {
		message := string(body)
		var errResp reportResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil {
			message = errResp.Error.Message
		}
		return nil, integrator.ClassifyStatus(domain.PlatformGoogleAds, resp.StatusCode, message)
	}

	var response reportResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "google: erro ao decodificar JSON")
	}

	insights := make([]domain.RawInsight, 0, len(response.Results))
	for _, row := range response.Results {
		date, err := time.Parse(time.DateOnly, row.Date)
		if err != nil {
			continue
		}

		costMicros, _ := strconv.ParseFloat(row.CostMicros, 64)
		impressions, _ := strconv.ParseInt(row.Impressions, 10, 64)
		clicks, _ := strconv.ParseInt(row.Clicks, 10, 64)
		conversions, _ := strconv.ParseFloat(row.Conversions, 64)
		conversionsValue, _ := strconv.ParseFloat(row.ConversionsValue, 64)

		insights = append(insights, domain.RawInsight{
			ExternalAccountID: customerID,
			Date:              date,
			Spend:             costMicros / 1e6,
			Impressions:       impressions,
			Clicks:            clicks,
			Actions:           []domain.RawAction{{Type: "purchase", Value: conversions}},
			ActionValues:      []domain.RawAction{{Type: "purchase", Value: conversionsValue}},
		})
	}

	return insights, nil
}
