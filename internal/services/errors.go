package services

import "errors"

// Service-level errors mapped to problem details by the transport layer.
var (
	ErrDatasetNotReady   = errors.New("dataset not ready")
	ErrInvalidPercentile = errors.New("percentile must be between 5 and 25")
	ErrInvalidTextColumn = errors.New("text column must be review_content or about_product")
)
