package normalizing

import (
	"errors"

	"github.com/adsight/adsight-api/internal/domain"
	"github.com/adsight/adsight-api/pkg/utils"
)

// ErrInvalidRecord indica um registro bruto malformado; o orquestrador pula
// o registro e segue com o restante do lote.
var ErrInvalidRecord = errors.New("registro bruto inválido")

// Tipos de ação que contam como "compra" nas plataformas suportadas.
// Receita e conversões saem exclusivamente destes tipos; qualquer outro é
// ignorado.
var purchaseActionTypes = map[string]struct{}{
	"purchase":                             {},
	"omni_purchase":                        {},
	"offsite_conversion.fb_pixel_purchase": {},
	"onsite_conversion.purchase":           {},
	"complete_payment":                     {},
}

// Normalize converte um registro bruto de plataforma para a métrica canônica
// diária. É uma função pura: sem I/O, mesma entrada produz sempre a mesma
// saída. Todas as razões derivadas são recalculadas aqui — valores vindos do
// upstream nunca são confiados — e divisões por zero resultam em exatamente
// 0, nunca em NaN/Inf ou erro.
func Normalize(raw domain.RawInsight) (domain.DailyMetric, error) {
	if raw.Date.IsZero() {
		return domain.DailyMetric{}, ErrInvalidRecord
	}
	if raw.Spend < 0 || raw.Impressions < 0 || raw.Clicks < 0 {
		return domain.DailyMetric{}, ErrInvalidRecord
	}

	revenue := purchaseTotal(raw.ActionValues)
	conversions := int64(purchaseTotal(raw.Actions))

	metric := domain.DailyMetric{
		Date:        raw.Date,
		Spend:       raw.Spend,
		Revenue:     revenue,
		Impressions: raw.Impressions,
		Clicks:      raw.Clicks,
		Conversions: conversions,
	}

	metric.ROAS = utils.RoundWithTwoDecimalPlace(safeRatio(revenue, raw.Spend))
	metric.CPA = utils.RoundWithTwoDecimalPlace(safeRatio(raw.Spend, float64(conversions)))
	metric.CTR = utils.RoundWithFourDecimalPlace(safeRatio(float64(raw.Clicks), float64(raw.Impressions)))
	metric.CVR = utils.RoundWithFourDecimalPlace(safeRatio(float64(conversions), float64(raw.Clicks)))

	return metric, nil
}

// purchaseTotal soma os valores das ações do tipo compra. Ausência de ação
// de compra resulta em 0, não em omissão.
func purchaseTotal(actions []domain.RawAction) float64 {
	var total float64
	for _, action := range actions {
		if _, ok := purchaseActionTypes[action.Type]; ok {
			total += action.Value
		}
	}
	return total
}

func safeRatio(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}
