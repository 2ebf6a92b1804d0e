package repository

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"SwingBasket/internal/domain/models"
	applogger "SwingBasket/pkg/logger"
	"SwingBasket/pkg/util"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Client sheet headers, as normalized by headerKey.
const (
	colAccount       = "NUMERO CONTA"
	colEquityAdvisor = "ASSESSOR RV"
	colAdvisor       = "ADVISOR"
	colClient        = "CLIENTE"
	colStrategy      = "ESTRATEGIA"
	colNetTotal      = "NET TOTAL"
	colNetAvailable  = "NET DISPONIVEL"
	colAvgOperation  = "VALOR MEDIO POR OPERACAO"
)

var requiredClientColumns = []string{colAccount, colClient, colNetTotal}

// ErrInvalidClientFile marks an upload that cannot be read as a client sheet.
var ErrInvalidClientFile = errors.New("invalid client file")

// ClientFileReader parses the desk's client sheet (CSV or XLSX).
type ClientFileReader struct {
	log *applogger.Logger
}

func NewClientFileReader(log *applogger.Logger) *ClientFileReader {
	return &ClientFileReader{log: log}
}

// ReadClients parses r according to filename's extension: .csv as CSV,
// anything else as a workbook (first sheet). Rows that cannot be parsed are
// returned as RowError and left out of the client list. Row numbers are
// 1-based sheet rows, the header being row 1.
func (cr *ClientFileReader) ReadClients(filename string, r io.Reader) ([]models.ClientAccount, []models.RowError, error) {
	var (
		records [][]string
		err     error
	)
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		records, err = readCSV(r)
	} else {
		records, err = readWorkbook(r)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidClientFile, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: file is empty", ErrInvalidClientFile)
	}

	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		key := headerKey(h)
		if _, dup := index[key]; !dup && key != "" {
			index[key] = i
		}
	}
	for _, col := range requiredClientColumns {
		if _, ok := index[col]; !ok {
			return nil, nil, fmt.Errorf("%w: missing column %q", ErrInvalidClientFile, col)
		}
	}

	clients := make([]models.ClientAccount, 0, len(records)-1)
	var rowErrs []models.RowError
	for i, rec := range records[1:] {
		rowNum := i + 2
		if blank(rec) {
			continue
		}
		c, err := parseClientRow(rec, index)
		if err != nil {
			re := models.RowError{Row: rowNum, Err: err}
			cr.log.Warn("skipping client row",
				applogger.Int("row", rowNum),
				applogger.Error(err),
			)
			rowErrs = append(rowErrs, re)
			continue
		}
		clients = append(clients, c)
	}

	cr.log.Info("clients loaded",
		applogger.String("file", filename),
		applogger.Int("clients", len(clients)),
		applogger.Int("skipped", len(rowErrs)),
	)
	return clients, rowErrs, nil
}

func parseClientRow(rec []string, index map[string]int) (models.ClientAccount, error) {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	c := models.ClientAccount{
		AccountNumber: get(colAccount),
		EquityAdvisor: get(colEquityAdvisor),
		Advisor:       get(colAdvisor),
		ClientName:    get(colClient),
		Strategy:      get(colStrategy),
	}
	if c.AccountNumber == "" {
		return c, errors.New("empty account number")
	}

	var err error
	if c.NetTotal, err = util.ParseAmount(get(colNetTotal)); err != nil {
		return c, fmt.Errorf("net total: %w", err)
	}
	if c.NetAvailable, err = util.ParseAmountDefault(get(colNetAvailable), c.NetTotal); err != nil {
		return c, fmt.Errorf("net available: %w", err)
	}
	if c.AverageOperationValue, err = util.ParseAmountDefault(get(colAvgOperation), 0); err != nil {
		return c, fmt.Errorf("average operation value: %w", err)
	}
	return c, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	// Sheets exported with the Brazilian locale use ';' as separator.
	first := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		first = raw[:i]
	}
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		cr.Comma = ';'
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return records, nil
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// headerKey uppercases h, strips accents and folds '_' and repeated spaces
// into single spaces: "Net Disponível" and "NET_DISPONIVEL" share a key.
func headerKey(h string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, h)
	if err != nil {
		s = h
	}
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
