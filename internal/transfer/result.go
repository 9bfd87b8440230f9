package transfer

// Result carries the outcome of a transfer back to the caller. The codes
// mirror HTTP statuses but travel inside a 2xx response so the body can
// hold the richer logical outcome.
//
//	200  committed, TransactionID set to the debit entry id
//	400  malformed request
//	404  from/to account not found or not open
//	520  from-account balance insufficient
//	503  commit failed internally, or service not activated
type Result struct {
	Code          int    `json:"resultCode"`
	Message       string `json:"resultMessage"`
	TransactionID string `json:"transactionId"`
}

// BadRequest is the result for malformed requests.
var BadRequest = Result{Code: 400, Message: "Request is not well-formed"}

// Unavailable is the result returned while the service is not active.
var Unavailable = Result{Code: 503, Message: "Service is unavailable"}
