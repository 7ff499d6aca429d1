package mpesa

import "communityaid/internal/domain"

const serviceName = "mpesa"

func upstream(details string, err error) error {
	return &domain.UpstreamError{Service: serviceName, Details: details, Err: err}
}
