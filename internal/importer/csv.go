// Package importer reads and writes journal trades as CSV. Bookmaker and
// exchange exports are frequently UTF-16LE Excel dumps with BOMs and
// locale-formatted numbers, so the reader is deliberately tolerant: it
// detects the encoding, maps headers case-insensitively, parses numbers in
// either decimal convention and skips malformed rows instead of failing the
// whole import.
package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"betjournal/internal/domain"
	"betjournal/internal/numutil"
	"betjournal/internal/ports"
)

// Result summarizes one import run.
type Result struct {
	Trades  []*domain.Trade
	Skipped int // malformed rows dropped, header excluded
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02.01.2006",
	time.RFC3339,
}

// ReadTrades parses a CSV stream of trades. Expected columns (order-free,
// matched by header name): date, competition, home, away, strategy, odds,
// stake_percent, stake, result, profit_loss. Only date, odds and result are
// required per row.
func ReadTrades(r io.Reader) (*Result, error) {
	br := bufio.NewReader(r)

	// Detect a UTF-16 BOM; if present, decode to UTF-8.
	if b, err := br.Peek(2); err == nil && len(b) >= 2 &&
		((b[0] == 0xFF && b[1] == 0xFE) || (b[0] == 0xFE && b[1] == 0xFF)) {
		tr := transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
		br = bufio.NewReader(tr)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := mapHeader(header)
	if _, ok := cols["date"]; !ok {
		return nil, fmt.Errorf("CSV header has no date column: %w", ports.ErrImportFormat)
	}

	res := &Result{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Structurally broken row; count and continue.
			res.Skipped++
			continue
		}
		trade, ok := parseRow(record, cols)
		if !ok {
			res.Skipped++
			continue
		}
		res.Trades = append(res.Trades, trade)
	}
	return res, nil
}

// WriteTrades writes trades as UTF-8 CSV with a fixed header.
func WriteTrades(w io.Writer, trades []*domain.Trade) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	cw.Write([]string{"date", "competition", "home", "away", "strategy", "odds",
		"stake_percent", "stake", "result", "profit_loss", "roi", "points", "daily_pl", "tp_sl"})

	for _, t := range trades {
		cw.Write([]string{
			t.Date.Format("2006-01-02"),
			t.Competition,
			t.HomeTeam,
			t.AwayTeam,
			t.Strategy,
			strconv.FormatFloat(t.Odds, 'f', -1, 64),
			strconv.FormatFloat(t.StakePercent, 'f', -1, 64),
			strconv.FormatFloat(t.StakeAmount, 'f', -1, 64),
			string(t.Result),
			strconv.FormatFloat(t.ProfitLoss, 'f', -1, 64),
			strconv.FormatFloat(t.ROI, 'f', -1, 64),
			strconv.FormatFloat(t.Points, 'f', -1, 64),
			strconv.FormatFloat(t.DailyPL, 'f', -1, 64),
			string(t.TpSl),
		})
	}
	return cw.Error()
}

// mapHeader maps normalized column names to their index. Aliases cover the
// common export spellings.
func mapHeader(header []string) map[string]int {
	aliases := map[string]string{
		"date":          "date",
		"day":           "date",
		"competition":   "competition",
		"league":        "competition",
		"home":          "home",
		"home_team":     "home",
		"away":          "away",
		"away_team":     "away",
		"strategy":      "strategy",
		"tag":           "strategy",
		"odds":          "odds",
		"price":         "odds",
		"stake_percent": "stake_percent",
		"stake_pct":     "stake_percent",
		"stake":         "stake",
		"stake_amount":  "stake",
		"result":        "result",
		"outcome":       "result",
		"profit_loss":   "profit_loss",
		"pl":            "profit_loss",
		"pnl":           "profit_loss",
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.Trim(h, "\uFEFF")))
		key = strings.ReplaceAll(key, " ", "_")
		if canonical, ok := aliases[key]; ok {
			if _, seen := cols[canonical]; !seen {
				cols[canonical] = i
			}
		}
	}
	return cols
}

func parseRow(record []string, cols map[string]int) (*domain.Trade, bool) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, ok := parseDate(field("date"))
	if !ok {
		return nil, false
	}
	odds, err := numutil.ParseFlexibleFloat(field("odds"))
	if err != nil || odds < 1 {
		return nil, false
	}
	result := domain.Result(strings.ToUpper(field("result")))
	if !result.IsValid() {
		return nil, false
	}

	trade := &domain.Trade{
		Date:        date,
		Competition: field("competition"),
		HomeTeam:    field("home"),
		AwayTeam:    field("away"),
		Strategy:    field("strategy"),
		Odds:        odds,
		Result:      result,
	}
	if v, err := numutil.ParseFlexibleFloat(field("stake_percent")); err == nil {
		trade.StakePercent = v
	}
	if v, err := numutil.ParseFlexibleFloat(field("stake")); err == nil {
		trade.StakeAmount = v
	}
	if v, err := numutil.ParseFlexibleFloat(field("profit_loss")); err == nil {
		trade.ProfitLoss = v
	}
	return trade, true
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
