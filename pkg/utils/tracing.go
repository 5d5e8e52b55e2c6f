package utils

import "strconv"

const defaultServiceName = "landing-gateway"

// IsTracingEnabled reads OTEL_TRACES_ENABLED. Tracing stays off unless it parses as true.
func IsTracingEnabled() bool {
	enabled, err := strconv.ParseBool(GetEnvTrimmed("OTEL_TRACES_ENABLED"))
	return err == nil && enabled
}

func OTelServiceName() string {
	return GetEnvTrimmedOrDefault("OTEL_SERVICE_NAME", defaultServiceName)
}
