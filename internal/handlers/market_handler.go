package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "moolah/internal/errors"
	"moolah/internal/market"
)

// MarketHandler proxies read-only market data from third-party services.
type MarketHandler struct {
	ratesClient  *market.RatesClient
	cryptoClient *market.CryptoClient
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(ratesClient *market.RatesClient, cryptoClient *market.CryptoClient) *MarketHandler {
	return &MarketHandler{ratesClient: ratesClient, cryptoClient: cryptoClient}
}

// GetRates returns the latest exchange-rate table.
// @Summary     Latest exchange rates
// @Description Proxy the latest fiat exchange rates from the upstream provider
// @Tags        market
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} market.Rates "Latest rates"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Upstream unavailable"
// @Router      /market/rates [get]
func (h *MarketHandler) GetRates(c *gin.Context) {
	rates, err := h.ratesClient.Latest(c.Request.Context())
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrUpstreamUnavailable, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

// GetTopCrypto returns the top crypto assets by market cap.
// @Summary     Top crypto assets
// @Description Proxy the top-N crypto listing from the upstream provider
// @Tags        market
// @Produce     json
// @Security    BearerAuth
// @Param       top query int false "Number of assets (default 10, max 100)"
// @Success     200 {object} object "Upstream listing, passed through"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     502 {object} ErrorResponse "Upstream unavailable"
// @Router      /market/crypto/top [get]
func (h *MarketHandler) GetTopCrypto(c *gin.Context) {
	top := 10
	if raw := c.Query("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "top must be an integer between 1 and 100"))
			return
		}
		top = n
	}

	listing, err := h.cryptoClient.Top(c.Request.Context(), top)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrUpstreamUnavailable, err))
		return
	}

	c.Data(http.StatusOK, "application/json", listing)
}
