package models

// HealthStatus is the payload of the public health endpoint. Uptime is
// preformatted ("3h 12m 5s") so dashboards can render it as-is.
type HealthStatus struct {
	Server   string `json:"server"`
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Hostname string `json:"hostname"`
	Version  string `json:"version,omitempty"`
}
