package dtos

// AdminStats is the /admin/stats dashboard payload.
type AdminStats struct {
	TotalUsers          int `json:"totalUsers"`
	TotalApartments     int `json:"totalApartments"`
	TotalAmenities      int `json:"totalAmenities"`
	PendingReservations int `json:"pendingReservations"`
	UnpaidExpenses      int `json:"unpaidExpenses"`
}

// ClaimStats is the /admin/claims/stats payload for one period window.
type ClaimStats struct {
	Period  string        `json:"period"` // "week" | "month" | "year"
	Offset  int           `json:"offset"` // windows back from the current one
	Total   int           `json:"total"`
	Buckets []ClaimBucket `json:"buckets"`
}

type ClaimBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}
