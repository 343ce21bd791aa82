package http

import (
	"encoding/json"
	"net/http"
)

type expenseRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Purpose  string  `json:"purpose"`
}

type limitRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type limitAmountRequest struct {
	Amount float64 `json:"amount"`
}

// decodeJSON fills dst from the request body. Absent fields keep their
// zero value, which the presence checks downstream treat as missing.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
