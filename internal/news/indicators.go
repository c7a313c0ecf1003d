package news

// Indicator is a reference economic figure shown alongside market news.
type Indicator struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Country     string `json:"country"`
	Description string `json:"description"`
}

// EconomicIndicators returns the reference indicator table. Values are
// static; they change on release schedules measured in months.
func EconomicIndicators() []Indicator {
	return []Indicator{
		{Name: "GDP Growth Rate", Value: "7.8%", Country: "India", Description: "Annual gross domestic product growth"},
		{Name: "Inflation Rate", Value: "5.1%", Country: "India", Description: "Consumer price index, year over year"},
		{Name: "Repo Rate", Value: "6.5%", Country: "India", Description: "Reserve Bank of India policy rate"},
		{Name: "Unemployment Rate", Value: "7.2%", Country: "India", Description: "Share of labour force without work"},
		{Name: "Fed Funds Rate", Value: "5.25%", Country: "United States", Description: "Federal Reserve target rate"},
		{Name: "US Inflation Rate", Value: "3.2%", Country: "United States", Description: "Consumer price index, year over year"},
	}
}
