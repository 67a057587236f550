package shopify

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

// Connector agrega pedidos da Admin API do Shopify em registros diários.
// Shopify não é uma plataforma de mídia: spend/impressions/clicks são zero e
// apenas receita e conversões (pedidos) são preenchidas.
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
	return domain.PlatformShopify
}

type ordersResponse struct {
	Orders []order `json:"orders"`
	Errors string  `json:"errors,omitempty"`
}

type order struct {
	CreatedAt  string `json:"created_at"`
	TotalPrice string `json:"total_price"`
}

func (c *Connector) FetchInsights(ctx context.Context, credential *domain.Credential, window domain.DateRange) ([]domain.RawInsight, error) {
	insights := make([]domain.RawInsight, 0)

	for _, account := range credential.Payload.Accounts {
		shopInsights, err := c.fetchShopOrders(ctx, credential.Payload.AccessToken, account.ID, window)
		if err != nil {
			return nil, err
		}
		insights = append(insights, shopInsights...)
	}

	return insights, nil
}

func (c *Connector) shopBaseURL(shop string) string {
	if c.cfg.Shopify.BaseURL != "" {
		return c.cfg.Shopify.BaseURL
	}
	return fmt.Sprintf("https://%s.myshopify.com", shop)
}

func (c *Connector) fetchShopOrders(ctx context.Context, accessToken, shop string, window domain.DateRange) ([]domain.RawInsight, error) {
	baseURL := fmt.Sprintf("%s/admin/api/%s/orders.json", c.shopBaseURL(shop), c.cfg.Shopify.APIVersion)

	params := url.Values{}
	params.Add("status", "any")
	params.Add("created_at_min", window.Since.Format(time.RFC3339))
	params.Add("created_at_max", window.Until.AddDate(0, 0, 1).Format(time.RFC3339))
	params.Add("limit", "250")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "shopify: erro ao criar a requisição")
	}
	req.Header.Set("X-Shopify-Access-Token", accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, integrator.NewTransportError(domain.PlatformShopify, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, integrator.NewTransportError(domain.PlatformShopify, err)
	}

	if resp.StatusCode != http.StatusOK {
		message := string(body)
		var errResp ordersResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Errors != "" {
			message = errResp.Errors
		}
		return nil, integrator.ClassifyStatus(domain.PlatformShopify, resp.StatusCode, message)
	}

	var response ordersResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "shopify: erro ao decodificar JSON")
	}

	return aggregateByDay(shop, response.Orders), nil
}

// aggregateByDay soma receita e contagem de pedidos por dia do calendário.
func aggregateByDay(shop string, orders []order) []domain.RawInsight {
	type bucket struct {
		revenue float64
		count   float64
	}

	buckets := make(map[string]*bucket)
	for _, o := range orders {
		createdAt, err := time.Parse(time.RFC3339, o.CreatedAt)
		if err != nil {
			continue
		}
		total, err := strconv.ParseFloat(o.TotalPrice, 64)
		if err != nil {
			continue
		}

		day := createdAt.Format(time.DateOnly)
		if buckets[day] == nil {
			buckets[day] = &bucket{}
		}
		buckets[day].revenue += total
		buckets[day].count++
	}

	insights := make([]domain.RawInsight, 0, len(buckets))
	for day, b := range buckets {
		date, _ := time.Parse(time.DateOnly, day)
		insights = append(insights, domain.RawInsight{
			ExternalAccountID: shop,
			Date:              date,
			Actions:           []domain.RawAction{{Type: "purchase", Value: b.count}},
			ActionValues:      []domain.RawAction{{Type: "purchase", Value: b.revenue}},
		})
	}

	return insights
}
