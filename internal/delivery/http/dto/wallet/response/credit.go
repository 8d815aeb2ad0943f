package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type BalanceResponse struct {
	Balance float64 `json:"balance"`
}
