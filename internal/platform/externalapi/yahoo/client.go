package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"twstock/internal/platform/externalapi/yahoo/dto"
	"twstock/internal/shared/symbolcode"
)

// ErrNotFound はティッカーが存在しない、またはデータが空であることを示します。
var ErrNotFound = errors.New("yahoo: symbol not found")

// ErrUnsupported は未対応のintervalまたはrangeが指定されたことを示します。
var ErrUnsupported = errors.New("yahoo: unsupported parameter")

var (
	validIntervals = map[string]bool{"1d": true, "1wk": true, "1mo": true}
	validRanges    = map[string]bool{
		"5d": true, "1mo": true, "3mo": true, "6mo": true,
		"1y": true, "2y": true, "5y": true, "10y": true, "max": true,
	}
)

// Bar は取引所のタイムゾーンで日付を表したOHLCVです。
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Chart はひとつのティッカーの日足とメタデータです。
type Chart struct {
	Ticker     string   // 実際に取得できたティッカー (例: "2330.TW")
	LongName   string   // 正式名称（提供されない場合は空）
	ShortName  string   // 略称（提供されない場合は空）
	Currency   string   // 通貨コード
	Week52High *float64 // 52週高値
	Week52Low  *float64 // 52週安値
	Bars       []Bar    // 日付昇順、同一日の重複なし
}

// Client はYahoo FinanceのチャートAPIクライアントです。
type Client struct {
	cfg     Config
	client  *http.Client
	observe func(outcome string)
}

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client, observe: func(string) {}}
}

// WithObserver はリクエスト結果 ("ok", "not_found", "error") の通知先を設定します。
func (c *Client) WithObserver(fn func(outcome string)) *Client {
	if fn != nil {
		c.observe = fn
	}
	return c
}

// FetchTW は台湾株コードの日足を取得します。
// 接尾辞がなければ上場(.TW)を試し、データが空なら上櫃(.TWO)にフォールバックします。
func (c *Client) FetchTW(ctx context.Context, code, interval, rng string) (*Chart, error) {
	candidates := symbolcode.Candidates(code)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: empty code", ErrNotFound)
	}
	for _, ticker := range candidates {
		chart, err := c.Fetch(ctx, ticker, interval, rng)
		if errors.Is(err, ErrNotFound) {
			slog.Debug("ticker not found, trying next", "ticker", ticker)
			continue
		}
		if err != nil {
			return nil, err
		}
		return chart, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
}

// Fetch はティッカーを変換せずにチャートを取得します。
func (c *Client) Fetch(ctx context.Context, ticker, interval, rng string) (*Chart, error) {
	if !validIntervals[interval] {
		return nil, fmt.Errorf("%w: interval %q", ErrUnsupported, interval)
	}
	if !validRanges[rng] {
		return nil, fmt.Errorf("%w: range %q", ErrUnsupported, rng)
	}

	q := url.Values{}
	q.Set("interval", interval)
	q.Set("range", rng)
	q.Set("includePrePost", "false")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.cfg.BaseURL, url.PathEscape(ticker), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		c.observe("error")
		return nil, fmt.Errorf("yahoo fetch %s: %w", ticker, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		c.observe("error")
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}

	var payload dto.ChartResponse
	decodeErr := json.Unmarshal(body, &payload)

	// 存在しないティッカーは404とerror.code="Not Found"で返る
	if res.StatusCode == http.StatusNotFound ||
		(decodeErr == nil && payload.Chart.Error != nil && payload.Chart.Error.Code == "Not Found") {
		c.observe("not_found")
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ticker)
	}
	if res.StatusCode >= 400 {
		c.observe("error")
		return nil, fmt.Errorf("yahoo http %d", res.StatusCode)
	}
	if decodeErr != nil {
		c.observe("error")
		return nil, fmt.Errorf("yahoo decode: %w", decodeErr)
	}
	if payload.Chart.Error != nil {
		c.observe("error")
		return nil, fmt.Errorf("yahoo api error: %s: %s", payload.Chart.Error.Code, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 {
		c.observe("not_found")
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ticker)
	}

	chart, err := toChart(ticker, payload.Chart.Result[0])
	if err != nil {
		c.observe("error")
		return nil, err
	}
	if len(chart.Bars) == 0 {
		c.observe("not_found")
		return nil, fmt.Errorf("%w: %s has no bars", ErrNotFound, ticker)
	}
	c.observe("ok")
	return chart, nil
}

// toChart はAPIレスポンスをChartに変換します。
// OHLCのいずれかがnullの足（休場日など）は除外し、同じ日付が続く場合は後の足を採用します。
func toChart(ticker string, r dto.ChartResult) (*Chart, error) {
	chart := &Chart{
		Ticker:     ticker,
		LongName:   r.Meta.LongName,
		ShortName:  r.Meta.ShortName,
		Currency:   r.Meta.Currency,
		Week52High: r.Meta.FiftyTwoWeekHigh,
		Week52Low:  r.Meta.FiftyTwoWeekLow,
	}
	if r.Meta.Symbol != "" {
		chart.Ticker = r.Meta.Symbol
	}
	if len(r.Timestamp) == 0 || len(r.Indicators.Quote) == 0 {
		return chart, nil
	}

	q := r.Indicators.Quote[0]
	n := len(r.Timestamp)
	if len(q.Open) != n || len(q.High) != n || len(q.Low) != n || len(q.Close) != n {
		return nil, fmt.Errorf("yahoo: column length mismatch for %s", ticker)
	}

	loc := exchangeLocation(r.Meta)
	bars := make([]Bar, 0, n)
	for i, ts := range r.Timestamp {
		if q.Open[i] == nil || q.High[i] == nil || q.Low[i] == nil || q.Close[i] == nil {
			continue
		}
		var vol int64
		if i < len(q.Volume) && q.Volume[i] != nil {
			vol = *q.Volume[i]
		}
		t := time.Unix(ts, 0).In(loc)
		bars = append(bars, Bar{
			Time:   time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc),
			Open:   *q.Open[i],
			High:   *q.High[i],
			Low:    *q.Low[i],
			Close:  *q.Close[i],
			Volume: vol,
		})
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	chart.Bars = dedupeByDay(bars)
	return chart, nil
}

func dedupeByDay(bars []Bar) []Bar {
	out := bars[:0]
	for _, b := range bars {
		if len(out) > 0 && out[len(out)-1].Time.Equal(b.Time) {
			out[len(out)-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

// exchangeLocation は取引所のタイムゾーンを返します。tzdataがなければUTCオフセットで代用します。
func exchangeLocation(m dto.ChartMeta) *time.Location {
	if m.ExchangeTimezoneName != "" {
		if loc, err := time.LoadLocation(m.ExchangeTimezoneName); err == nil {
			return loc
		}
	}
	if m.GMTOffset != 0 {
		return time.FixedZone("", m.GMTOffset)
	}
	return time.FixedZone("CST", 8*60*60)
}
