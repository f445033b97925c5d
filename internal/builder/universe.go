package builder

import "github.com/alphapie/pieview/internal/models"

// Universe is the pie's ticker universe. The list changes only when the
// pie is rebalanced, so it lives in code rather than configuration.
var Universe = []models.StockRef{
	{Ticker: "GOOGL", Name: "Alphabet Class A"},
	{Ticker: "META", Name: "Meta Platforms"},
	{Ticker: "MSFT", Name: "Microsoft"},
	{Ticker: "NVDA", Name: "NVIDIA"},
	{Ticker: "AMD", Name: "Advanced Micro Devices"},
	{Ticker: "AMZN", Name: "Amazon"},
	{Ticker: "AAPL", Name: "Apple"},
	{Ticker: "ANET", Name: "Arista Networks"},
	{Ticker: "ASML", Name: "ASML"},
	{Ticker: "AVGO", Name: "Broadcom"},
	{Ticker: "AI", Name: "C3.ai"},
	{Ticker: "CRWV", Name: "CoreWeave"},
	{Ticker: "IBM", Name: "IBM"},
	{Ticker: "INTC", Name: "Intel"},
	{Ticker: "MRVL", Name: "Marvell Technology"},
	{Ticker: "MU", Name: "Micron Technology"},
	{Ticker: "ORCL", Name: "Oracle"},
	{Ticker: "PLTR", Name: "Palantir"},
	{Ticker: "QCOM", Name: "Qualcomm"},
	{Ticker: "REKR", Name: "Rekor Systems"},
	{Ticker: "NOW", Name: "ServiceNow"},
	{Ticker: "SNPS", Name: "Synopsys"},
	{Ticker: "TSM", Name: "Taiwan Semiconductor"},
	{Ticker: "TSLA", Name: "Tesla"},
	{Ticker: "VERI", Name: "Veritone"},
}
