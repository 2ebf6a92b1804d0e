package models

// ClientAccount is one row of the desk's client sheet.
type ClientAccount struct {
	AccountNumber         string  `json:"account_number"`
	EquityAdvisor         string  `json:"equity_advisor"`
	Advisor               string  `json:"advisor"`
	ClientName            string  `json:"client_name"`
	Strategy              string  `json:"strategy"`
	NetTotal              float64 `json:"net_total"`
	NetAvailable          float64 `json:"net_available"`
	AverageOperationValue float64 `json:"average_operation_value"`
}
