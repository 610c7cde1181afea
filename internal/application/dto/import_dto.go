package dto

// ImportSummaryResponse totales de una importación masiva por CSV.
type ImportSummaryResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
