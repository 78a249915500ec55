package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stock-predictor-api/internal/models"
)

// stockList is the static list served by /stocks. No lookup logic.
var stockList = []models.Stock{
	{Symbol: "LMT", Name: "Lockheed Martin Corporation", Sector: "defense"},
	{Symbol: "RTX", Name: "Raytheon Technologies Corporation", Sector: "defense"},
	{Symbol: "BA", Name: "The Boeing Company", Sector: "defense"},
	{Symbol: "NOC", Name: "Northrop Grumman Corporation", Sector: "defense"},
	{Symbol: "GD", Name: "General Dynamics Corporation", Sector: "defense"},
}

type StocksHandler struct{}

func NewStocksHandler() *StocksHandler {
	return &StocksHandler{}
}

// Stocks handles GET /stocks
func (h *StocksHandler) Stocks(c *fiber.Ctx) error {
	return c.JSON(models.StockListResponse{
		Stocks: stockList,
		Count:  len(stockList),
	})
}
