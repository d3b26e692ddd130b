package model

// HealthStatus represents the health check status. Liveness only; no
// dependency checks behind it.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
