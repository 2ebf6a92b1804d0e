package repository

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"SwingBasket/internal/domain/models"
	applogger "SwingBasket/pkg/logger"

	"github.com/xuri/excelize/v2"
)

// BasketColumns is the brokerage basket layout, in upload order.
var BasketColumns = []string{
	"NUMERO_CONTA", "VALIDADE_PUSH", "VALIDADE_ORDEM", "ATIVO", "ESTRATEGIA",
	"DIRECAO", "QUANTIDADE", "QUANTIDADE_APARENTE", "QUANTIDADE_MINIMA",
	"TIPO_PRECO", "PRECO_LIMITE", "TIPO_DISPARO", "PRECO_DISPARO_CIMA",
	"PRECO_LIMITE_CIMA", "PRECO_DISPARO_BAIXO", "PRECO_LIMITE_BAIXO",
}

// XLSXContentType is the MIME type of generated baskets.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	basketSheet     = "Sheet1"
	timestampLayout = "20060102150405"
)

// ExcelWriter writes baskets as .xlsx files into a directory.
type ExcelWriter struct {
	dir string
	log *applogger.Logger
	now func() time.Time
}

// NewExcelWriter creates dir if needed.
func NewExcelWriter(dir string, log *applogger.Logger) (*ExcelWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	log.Info("basket output directory", applogger.String("dir", dir))
	return &ExcelWriter{dir: dir, log: log, now: time.Now}, nil
}

// Dir returns the output directory.
func (w *ExcelWriter) Dir() string { return w.dir }

// Write saves orders as basket_{TICKER}_{YYYYMMDDHHMMSS}.xlsx and returns its path.
// Files generated within the same second get a -2, -3... suffix.
func (w *ExcelWriter) Write(orders []models.ClientOrder, ticker string) (string, error) {
	if len(orders) == 0 {
		return "", models.ErrNoOrders
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(basketSheet, "A1", &BasketColumns); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		row := orderCells(o)
		if err := f.SetSheetRow(basketSheet, cell, &row); err != nil {
			return "", fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	file, path, err := w.create(fileStem(ticker, w.now()))
	if err != nil {
		return "", err
	}
	if _, err := f.WriteTo(file); err != nil {
		file.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write basket file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close basket file: %w", err)
	}

	w.log.Info("basket file written",
		applogger.String("path", path),
		applogger.Int("orders", len(orders)),
	)
	return path, nil
}

// create opens a new file for stem without overwriting an existing basket.
func (w *ExcelWriter) create(stem string) (*os.File, string, error) {
	for n := 1; n < 1000; n++ {
		name := stem + ".xlsx"
		if n > 1 {
			name = fmt.Sprintf("%s-%d.xlsx", stem, n)
		}
		path := filepath.Join(w.dir, name)
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return file, path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("create basket file: %w", err)
		}
	}
	return nil, "", fmt.Errorf("create basket file: too many files for %s", stem)
}

// Latest returns the most recently modified basket for ticker.
func (w *ExcelWriter) Latest(ticker string) (string, error) {
	safe := sanitizeTicker(ticker)
	if safe == "" {
		return "", fmt.Errorf("%s: %w", ticker, models.ErrBasketFileNotFound)
	}
	matches, err := filepath.Glob(filepath.Join(w.dir, "basket_"+safe+"_*.xlsx"))
	if err != nil {
		return "", fmt.Errorf("glob baskets: %w", err)
	}

	type candidate struct {
		path string
		mod  time.Time
	}
	files := make([]candidate, 0, len(matches))
	for _, m := range matches {
		st, err := os.Stat(m)
		if err != nil || st.IsDir() {
			continue
		}
		files = append(files, candidate{path: m, mod: st.ModTime()})
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%s: %w", ticker, models.ErrBasketFileNotFound)
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].mod.Equal(files[j].mod) {
			return files[i].path > files[j].path
		}
		return files[i].mod.After(files[j].mod)
	})
	return files[0].path, nil
}

// PreviewCSV renders orders with the basket columns as CSV text.
func PreviewCSV(orders []models.ClientOrder) (string, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(BasketColumns); err != nil {
		return "", err
	}
	for _, o := range orders {
		if err := cw.Write(orderRecord(o)); err != nil {
			return "", err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	return buf.String(), nil
}

// ValidateFile checks that path is a basket with the expected header and
// at least one order row. It returns the number of order rows.
func ValidateFile(path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("open basket: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, errors.New("basket has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return 0, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return 0, errors.New("basket is empty")
	}

	header := rows[0]
	if len(header) != len(BasketColumns) {
		return 0, fmt.Errorf("invalid columns: %v", header)
	}
	for i, col := range BasketColumns {
		if header[i] != col {
			return 0, fmt.Errorf("invalid columns: %v", header)
		}
	}
	if len(rows) < 2 {
		return 0, errors.New("basket has no orders")
	}
	return len(rows) - 1, nil
}

func orderCells(o models.ClientOrder) []interface{} {
	return []interface{}{
		o.AccountNumber,
		o.PushValidity,
		o.OrderValidity,
		o.Ticker,
		o.Strategy,
		o.Direction,
		o.Quantity,
		o.ApparentQuantity.Cell(),
		o.MinimumQuantity.Cell(),
		o.PriceType,
		o.LimitPrice,
		o.TriggerType.Cell(),
		o.UpperTriggerPrice.Cell(),
		o.UpperLimitPrice.Cell(),
		o.LowerTriggerPrice.Cell(),
		o.LowerLimitPrice.Cell(),
	}
}

func orderRecord(o models.ClientOrder) []string {
	cells := orderCells(o)
	out := make([]string, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case string:
			out[i] = v
		case int64:
			out[i] = strconv.FormatInt(v, 10)
		case float64:
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}

func fileStem(ticker string, at time.Time) string {
	safe := sanitizeTicker(ticker)
	if safe == "" {
		safe = "UNKNOWN"
	}
	return "basket_" + safe + "_" + at.Format(timestampLayout)
}

// sanitizeTicker keeps the characters that are safe in file names and globs.
func sanitizeTicker(ticker string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, strings.ToUpper(strings.TrimSpace(ticker)))
}
