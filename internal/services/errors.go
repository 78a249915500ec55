package services

import "errors"

// ClientError marks a request that failed validation. Always mapped to 400.
type ClientError struct {
	msg string
}

func (e *ClientError) Error() string {
	return e.msg
}

var (
	ErrTickerRequired = &ClientError{msg: "ticker is required"}
	ErrDaysFormat     = &ClientError{msg: "days must be an integer"}
	ErrDaysRange      = &ClientError{msg: "days must be between 1 and 30"}
	ErrInvalidTicker  = &ClientError{msg: "invalid ticker"}
)

// ErrNoData is returned when the provider has no history for the requested
// window. Mapped to 404.
var ErrNoData = errors.New("no data found")

// Upstream failure stages. The stage text is part of the wire contract.
const (
	StageDataFetch  = "data fetch failed"
	StagePrediction = "ML prediction failed"
)

// UpstreamError wraps a collaborator failure with the pipeline stage it
// occurred in. Mapped to 500 with the underlying detail in the body.
type UpstreamError struct {
	Stage string
	Err   error
}

func (e *UpstreamError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
