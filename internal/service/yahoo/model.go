package yahoo

import (
	"time"

	"SwingBasket/internal/domain/models"
)

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Symbol    string `json:"symbol"`
		LongName  string `json:"longName"`
		ShortName string `json:"shortName"`
		Timezone  string `json:"exchangeTimezoneName"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// toHistory zips the column arrays into bars. Bars without a close are dropped.
func (r chartResult) toHistory(symbol string) models.PriceHistory {
	h := models.PriceHistory{
		Symbol:      symbol,
		CompanyName: r.Meta.LongName,
	}
	if h.CompanyName == "" {
		h.CompanyName = r.Meta.ShortName
	}
	if len(r.Indicators.Quote) == 0 {
		return h
	}

	q := r.Indicators.Quote[0]
	h.Bars = make([]models.PriceBar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		closePx := at(q.Close, i)
		if closePx == nil {
			continue
		}
		h.Bars = append(h.Bars, models.PriceBar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   deref(at(q.Open, i)),
			High:   deref(at(q.High, i)),
			Low:    deref(at(q.Low, i)),
			Close:  *closePx,
			Volume: deref(at(q.Volume, i)),
		})
	}
	return h
}

func at(s []*float64, i int) *float64 {
	if i < len(s) {
		return s[i]
	}
	return nil
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
