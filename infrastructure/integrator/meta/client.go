package meta

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
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Connector busca insights diários da Graph API do Meta (act_{id}/insights
// com time_increment=1).
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
	return domain.PlatformMetaAds
}

// A Graph API pagina os resultados: com time_increment=1 cada dia da janela
// vira uma linha, então uma janela de 30 dias não cabe na página padrão de
// 25 itens. O cursor paging.next é seguido até esgotar.
type insightsResponse struct {
	Data   []insightRow  `json:"data"`
	Paging *insightPage  `json:"paging,omitempty"`
	Error  *errorDetails `json:"error,omitempty"`
}

type insightPage struct {
	Next string `json:"next"`
}

// A Graph API serializa números como strings.
type insightRow struct {
	DateStart    string      `json:"date_start"`
	Spend        string      `json:"spend"`
	Impressions  string      `json:"impressions"`
	Clicks       string      `json:"clicks"`
	Actions      []actionRow `json:"actions,omitempty"`
	ActionValues []actionRow `json:"action_values,omitempty"`
}

type actionRow struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

type errorDetails struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func (c *Connector) FetchInsights(ctx context.Context, credential *domain.Credential, window domain.DateRange) ([]domain.RawInsight, error) {
	insights := make([]domain.RawInsight, 0)

	for _, account := range credential.Payload.Accounts {
		accountInsights, err := c.fetchAccountInsights(ctx, credential.Payload.AccessToken, account.ID, window)
		if err != nil {
			return nil, err
		}
		insights = append(insights, accountInsights...)
	}

	return insights, nil
}

// maxInsightPages limita o seguimento de cursores para não entrar em loop
// caso o upstream devolva um paging.next cíclico.
const maxInsightPages = 50

func (c *Connector) fetchAccountInsights(ctx context.Context, accessToken, accountID string, window domain.DateRange) ([]domain.RawInsight, error) {
	baseURL := fmt.Sprintf("%s/act_%s/insights", c.cfg.Meta.URL, accountID)

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}",
		window.Since.Format(time.DateOnly), window.Until.Format(time.DateOnly))

	params := url.Values{}
	params.Add("fields", "spend,impressions,clicks,actions,action_values")
	params.Add("time_increment", "1")
	params.Add("time_range", timeRange)
	params.Add("limit", "100")
	params.Add("access_token", accessToken)

	insights := make([]domain.RawInsight, 0)
	requestURL := baseURL + "?" + params.Encode()

	for page := 0; requestURL != "" && page < maxInsightPages; page++ {
		response, err := c.fetchInsightPage(ctx, accountID, requestURL)
		if err != nil {
			return nil, err
		}

		for _, row := range response.Data {
			insight, err := row.toRawInsight(accountID)
			if err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"account_id": accountID,
					"date":       row.DateStart,
				}).Warn("meta: registro diário inválido, pulando")
				continue
			}
			insights = append(insights, insight)
		}

		requestURL = ""
		if response.Paging != nil {
			requestURL = response.Paging.Next
		}
	}

	return insights, nil
}

func (c *Connector) fetchInsightPage(ctx context.Context, accountID, requestURL string) (*insightsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "meta: erro ao criar a requisição")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("account_id", accountID).Error("meta: erro de transporte")
		return nil, integrator.NewTransportError(domain.PlatformMetaAds, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, integrator.NewTransportError(domain.PlatformMetaAds, err)
	}

	if resp.StatusCode != http.StatusOK {
		message := string(body)
		var errResp insightsResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil {
			message = errResp.Error.Message
		}
		return nil, integrator.ClassifyStatus(domain.PlatformMetaAds, resp.StatusCode, message)
	}

	var response insightsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "meta: erro ao decodificar JSON")
	}

	return &response, nil
}

func (r insightRow) toRawInsight(accountID string) (domain.RawInsight, error) {
	date, err := time.Parse(time.DateOnly, r.DateStart)
	if err != nil {
		return domain.RawInsight{}, errors.Wrap(err, "data inválida")
	}

	spend, err := parseFloat(r.Spend)
	if err != nil {
		return domain.RawInsight{}, errors.Wrap(err, "spend inválido")
	}

	impressions, err := parseInt(r.Impressions)
	if err != nil {
		return domain.RawInsight{}, errors.Wrap(err, "impressions inválido")
	}

	clicks, err := parseInt(r.Clicks)
	if err != nil {
		return domain.RawInsight{}, errors.Wrap(err, "clicks inválido")
	}

	return domain.RawInsight{
		ExternalAccountID: accountID,
		Date:              date,
		Spend:             spend,
		Impressions:       impressions,
		Clicks:            clicks,
		Actions:           toRawActions(r.Actions),
		ActionValues:      toRawActions(r.ActionValues),
	}, nil
}

func toRawActions(rows []actionRow) []domain.RawAction {
	if len(rows) == 0 {
		return nil
	}

	actions := make([]domain.RawAction, 0, len(rows))
	for _, row := range rows {
		value, err := parseFloat(row.Value)
		if err != nil {
			continue
		}
		actions = append(actions, domain.RawAction{Type: row.ActionType, Value: value})
	}
	return actions
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
