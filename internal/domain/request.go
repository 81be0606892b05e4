package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusConfirmed RequestStatus = "CONFIRMED"
	RequestStatusRenting   RequestStatus = "RENTING"
	RequestStatusReturned  RequestStatus = "RETURNED"
	RequestStatusCompleted RequestStatus = "COMPLETED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
	RequestStatusRejected  RequestStatus = "REJECTED"
)

// RentalRequest is owned by the request service. The client never mutates it
// directly; status changes go through explicit status-update commands.
type RentalRequest struct {
	ID              string        `json:"id"`
	ItemID          string        `json:"item_id"`
	RenterID        string        `json:"renter_id"`
	RentalStartTime *time.Time    `json:"rental_start_time,omitempty"`
	RentalEndTime   *time.Time    `json:"rental_end_time,omitempty"`
	Status          RequestStatus `json:"status"`
	PickupLat       float64       `json:"pickup_lat"`
	PickupLng       float64       `json:"pickup_lng"`
	DeliveryLat     float64       `json:"delivery_lat"`
	DeliveryLng     float64       `json:"delivery_lng"`
	CreatedOn       time.Time     `json:"created_on"`
	UpdatedOn       time.Time     `json:"updated_on"`
}
