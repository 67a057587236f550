package tiktok

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

// Connector busca o relatório integrado diário da Business API do TikTok.
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
	return domain.PlatformTikTokAds
}

type reportResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		List []reportItem `json:"list"`
	} `json:"data"`
}

type reportItem struct {
	Dimensions struct {
		StatTimeDay string `json:"stat_time_day"`
	} `json:"dimensions"`
	Metrics struct {
		Spend                     string `json:"spend"`
		Impressions               string `json:"impressions"`
		Clicks                    string `json:"clicks"`
		CompletePayment           string `json:"complete_payment"`
		TotalCompletePaymentValue string `json:"total_complete_payment_value"`
	} `json:"metrics"`
}

func (c *Connector) FetchInsights(ctx context.Context, credential *domain.Credential, window domain.DateRange) ([]domain.RawInsight, error) {
	insights := make([]domain.RawInsight, 0)

	for _, account := range credential.Payload.Accounts {
		accountInsights, err := c.fetchAdvertiserReport(ctx, credential.Payload.AccessToken, account.ID, window)
		if err != nil {
			return nil, err
		}
		insights = append(insights, accountInsights...)
	}

	return insights, nil
}

func (c *Connector) fetchAdvertiserReport(ctx context.Context, accessToken, advertiserID string, window domain.DateRange) ([]domain.RawInsight, error) {
	baseURL := fmt.Sprintf("%s/open_api/v1.3/report/integrated/get/", c.cfg.TikTok.BaseURL)

	params := url.Values{}
	params.Add("advertiser_id", advertiserID)
	params.Add("report_type", "BASIC")
	params.Add("data_level", "AUCTION_ADVERTISER")
	params.Add("dimensions", `["stat_time_day"]`)
	params.Add("metrics", `["spend","impressions","clicks","complete_payment","total_complete_payment_value"]`)
	params.Add("start_date", window.Since.Format(time.DateOnly))
	params.Add("end_date", window.Until.Format(time.DateOnly))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "tiktok: erro ao criar a requisição")
	}
	req.Header.Set("Access-Token", accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, integrator.NewTransportError(domain.PlatformTikTokAds, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, integrator.NewTransportError(domain.PlatformTikTokAds, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, integrator.ClassifyStatus(domain.PlatformTikTokAds, resp.StatusCode, string(body))
	}

	var response reportResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "tiktok: erro ao decodificar JSON")
	}

	// A Business API devolve 200 com código de negócio no corpo.
	if response.Code != 0 {
		return nil, integrator.ClassifyStatus(domain.PlatformTikTokAds, http.StatusUnauthorized, response.Message)
	}

	insights := make([]domain.RawInsight, 0, len(response.Data.List))
	for _, item := range response.Data.List {
		date, err := time.Parse(time.DateOnly, item.Dimensions.StatTimeDay)
		if err != nil {
			// stat_time_day pode vir com hora ("2006-01-02 15:04:05")
			date, err = time.Parse(time.DateTime, item.Dimensions.StatTimeDay)
			if err != nil {
				continue
			}
		}

		spend, _ := strconv.ParseFloat(item.Metrics.Spend, 64)
		impressions, _ := strconv.ParseInt(item.Metrics.Impressions, 10, 64)
		clicks, _ := strconv.ParseInt(item.Metrics.Clicks, 10, 64)
		payments, _ := strconv.ParseFloat(item.Metrics.CompletePayment, 64)
		paymentValue, _ := strconv.ParseFloat(item.Metrics.TotalCompletePaymentValue, 64)

		insights = append(insights, domain.RawInsight{
			ExternalAccountID: advertiserID,
			Date:              date,
			Spend:             spend,
			Impressions:       impressions,
			Clicks:            clicks,
			Actions:           []domain.RawAction{{Type: "complete_payment", Value: payments}},
			ActionValues:      []domain.RawAction{{Type: "complete_payment", Value: paymentValue}},
		})
	}

	return insights, nil
}
