package entity

type RescheduleStatus string

const (
	RescheduleStatusPending   RescheduleStatus = "Pending"
	RescheduleStatusConfirmed RescheduleStatus = "Confirmed"
)

// Reschedule is the audit record of one accepted departure change.
type Reschedule struct {
	RescheduleID      string           `json:"rescheduleId"`
	TripID            string           `json:"tripId"`
	OriginalDeparture DateTime         `json:"originalDeparture"`
	OriginalArrival   DateTime         `json:"originalArrival"`
	NewDeparture      DateTime         `json:"newDeparture"`
	NewArrival        DateTime         `json:"newArrival"`
	Status            RescheduleStatus `json:"status"`
}
