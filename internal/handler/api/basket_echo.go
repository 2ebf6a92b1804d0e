package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"SwingBasket/internal/domain/models"
	domrepo "SwingBasket/internal/domain/repository"
	repo "SwingBasket/internal/repository"
	"SwingBasket/internal/service/metrics"
	"SwingBasket/internal/service/ratelimit"
	xhttp "SwingBasket/pkg/http"
	xlogger "SwingBasket/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	serviceName    = "Swing Trade Basket Generator"
	serviceVersion = "1.0.0"
	clientsField   = "clientes_file"
)

// MarketService is the market data gateway as seen by the API.
type MarketService interface {
	Fetch(ctx context.Context, ticker string) (models.MarketSnapshot, error)
	ClearCache(ctx context.Context) error
}

// TradeValidator evaluates a trade against the desk rules.
type TradeValidator interface {
	Validate(ctx context.Context, trade models.TradeSignal) (models.ValidationResult, error)
}

// BasketGenerator builds a basket from an already validated trade.
type BasketGenerator interface {
	Assemble(ctx context.Context, trade models.TradeSignal, validation models.ValidationResult, clients []models.ClientAccount) (models.BasketResult, error)
}

// ClientReader parses uploaded client sheets.
type ClientReader interface {
	ReadClients(filename string, r io.Reader) ([]models.ClientAccount, []models.RowError, error)
}

// BasketEchoHandler serves the basket API.
type BasketEchoHandler struct {
	logger    *xlogger.Logger
	market    MarketService
	validator TradeValidator
	baskets   BasketGenerator
	clients   ClientReader
	files     domrepo.BasketWriter
	limiter   *ratelimit.Limiter
}

func NewBasketEchoHandler(
	logger *xlogger.Logger,
	market MarketService,
	validator TradeValidator,
	baskets BasketGenerator,
	clients ClientReader,
	files domrepo.BasketWriter,
	limiter *ratelimit.Limiter,
) *BasketEchoHandler {
	return &BasketEchoHandler{
		logger:    logger,
		market:    market,
		validator: validator,
		baskets:   baskets,
		clients:   clients,
		files:     files,
		limiter:   limiter,
	}
}

func (h *BasketEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)

	var limited []echo.MiddlewareFunc
	if h.limiter != nil {
		limited = append(limited, h.limiter.Middleware())
	}

	g := e.Group("/api")
	g.POST("/validate-trade", h.ValidateTrade, limited...)
	g.GET("/market-data/:ticker", h.MarketData, limited...)
	g.POST("/gerar-basket", h.GenerateBasket, limited...)
	g.GET("/download-excel/:ticker", h.DownloadExcel)
	g.DELETE("/cache/clear", h.ClearCache)
}

func (h *BasketEchoHandler) Root(c echo.Context) error {
	return xhttp.JSONResponse(c, map[string]string{
		"status":  "online",
		"service": serviceName,
		"version": serviceVersion,
	})
}

func (h *BasketEchoHandler) Health(c echo.Context) error {
	return xhttp.JSONResponse(c, map[string]string{"status": "healthy"})
}

func (h *BasketEchoHandler) ValidateTrade(c echo.Context) error {
	const endpoint = "validate_trade"
	defer metrics.Observe(endpoint, time.Now())

	req := &models.TradeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.Fail(endpoint, "validation")
		return xhttp.BadRequestResponse(c, verr)
	}
	trade, err := req.Signal()
	if err != nil {
		return h.fail(c, endpoint, err)
	}

	h.logger.Info("validating trade", xlogger.String("ticker", trade.Ticker))
	res, err := h.validator.Validate(c.Request().Context(), trade)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return xhttp.JSONResponse(c, res)
}

func (h *BasketEchoHandler) MarketData(c echo.Context) error {
	const endpoint = "market_data"
	defer metrics.Observe(endpoint, time.Now())

	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.Fail(endpoint, "validation")
		return xhttp.BadRequestResponse(c, verr)
	}

	snap, err := h.market.Fetch(c.Request().Context(), req.Ticker)
	if err != nil {
		if errors.Is(err, models.ErrTickerNotFound) {
			metrics.Fail(endpoint, "not_found")
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("Market data not found for %s", req.Ticker).WithError(err))
		}
		return h.fail(c, endpoint, err)
	}
	return xhttp.JSONResponse(c, snap)
}

func (h *BasketEchoHandler) GenerateBasket(c echo.Context) error {
	const endpoint = "generate_basket"
	defer metrics.Observe(endpoint, time.Now())

	req := &models.TradeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.Fail(endpoint, "validation")
		return xhttp.BadRequestResponse(c, verr)
	}
	trade, err := req.Signal()
	if err != nil {
		return h.fail(c, endpoint, err)
	}

	fh, err := c.FormFile(clientsField)
	if err != nil {
		metrics.Fail(endpoint, "validation")
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_REQUIRED", clientsField,
			clientsField+" is required", http.StatusBadRequest).WithError(err))
	}

	ctx := c.Request().Context()
	validation, err := h.validator.Validate(ctx, trade)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	if !validation.Valid {
		// the upload is not read for a rejected trade
		res, err := h.baskets.Assemble(ctx, trade, validation, nil)
		if err != nil {
			return h.fail(c, endpoint, err)
		}
		return xhttp.JSONResponse(c, res)
	}

	src, err := fh.Open()
	if err != nil {
		return h.fail(c, endpoint, fmt.Errorf("open upload: %w", err))
	}
	defer src.Close()

	clients, rowErrs, err := h.clients.ReadClients(fh.Filename, src)
	if err != nil {
		return h.fail(c, endpoint, err)
	}

	h.logger.Info("generating basket",
		xlogger.String("ticker", trade.Ticker),
		xlogger.String("file", fh.Filename),
		xlogger.Int("clients", len(clients)),
	)
	res, err := h.baskets.Assemble(ctx, trade, validation, clients)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	for _, re := range rowErrs {
		res.SkippedRows = append(res.SkippedRows, re.Error())
	}
	return xhttp.JSONResponse(c, res)
}

func (h *BasketEchoHandler) DownloadExcel(c echo.Context) error {
	const endpoint = "download_excel"
	defer metrics.Observe(endpoint, time.Now())

	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.Fail(endpoint, "validation")
		return xhttp.BadRequestResponse(c, verr)
	}

	path, err := h.files.Latest(req.Ticker)
	if err != nil {
		if errors.Is(err, models.ErrBasketFileNotFound) {
			metrics.Fail(endpoint, "not_found")
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("No Excel file found for %s", req.Ticker).WithError(err))
		}
		return h.fail(c, endpoint, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, repo.XLSXContentType)
	return c.Attachment(path, filepath.Base(path))
}

func (h *BasketEchoHandler) ClearCache(c echo.Context) error {
	if err := h.market.ClearCache(c.Request().Context()); err != nil {
		return h.fail(c, "clear_cache", err)
	}
	return xhttp.JSONResponse(c, map[string]string{"message": "Cache cleared"})
}

// fail maps domain errors onto HTTP answers.
func (h *BasketEchoHandler) fail(c echo.Context, endpoint string, err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidTrade), errors.Is(err, repo.ErrInvalidClientFile):
		metrics.Fail(endpoint, "validation")
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()).WithError(err))
	case errors.Is(err, models.ErrTickerNotFound), errors.Is(err, models.ErrBasketFileNotFound):
		metrics.Fail(endpoint, "not_found")
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()).WithError(err))
	default:
		metrics.Fail(endpoint, "internal")
		h.logger.Error(endpoint+" failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError(err.Error()).WithError(err))
	}
}
