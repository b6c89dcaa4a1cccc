package model

import "time"

// Status is the lifecycle state of a reservation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// VehicleType is the kind of vehicle to wash.
type VehicleType string

const (
	VehicleBerline     VehicleType = "berline"
	VehicleSUV         VehicleType = "suv"
	VehicleCamionnette VehicleType = "camionnette"
	VehicleMoto        VehicleType = "moto"
	VehicleAutre       VehicleType = "autre"
)

// ServiceType is the wash package ordered.
type ServiceType string

const (
	ServiceExterieur ServiceType = "exterieur"
	ServiceComplet   ServiceType = "complet"
	ServiceForfait   ServiceType = "forfait"
)

// Reservation is a booking request made by a user and processed by an admin.
//
// Fields:
//
//	ID           – UUID primary key.
//	UserID       – owning user.
//	User         – owner projection, populated on reads that need it.
//	VehicleType  – berline | suv | camionnette | moto | autre.
//	Service      – exterieur | complet | forfait.
//	Date         – requested day (UTC midnight).
//	Time         – requested time slot, free-form.
//	Address      – where the wash takes place.
//	Notes        – optional customer notes.
//	Status       – pending | approved | rejected | completed.
//	RejectReason – set together with StatusRejected.
//	CreatedAt    – creation timestamp; lists sort on it, newest first.
type Reservation struct {
	ID           string       `json:"id" bson:"_id"`
	UserID       string       `json:"userId" bson:"user_id"`
	User         *UserSummary `json:"user,omitempty" bson:"-"`
	VehicleType  VehicleType  `json:"vehicleType" bson:"vehicle_type"`
	Service      ServiceType  `json:"service" bson:"service"`
	Date         time.Time    `json:"date" bson:"date"`
	Time         string       `json:"time" bson:"time"`
	Address      string       `json:"address" bson:"address"`
	Notes        string       `json:"notes,omitempty" bson:"notes,omitempty"`
	Status       Status       `json:"status" bson:"status"`
	RejectReason string       `json:"rejectReason,omitempty" bson:"reject_reason,omitempty"`
	CreatedAt    time.Time    `json:"createdAt" bson:"created_at"`
}

// ReservationStats is the admin dashboard summary.
type ReservationStats struct {
	TotalReservations     int64 `json:"totalReservations"`
	PendingReservations   int64 `json:"pendingReservations"`
	ApprovedReservations  int64 `json:"approvedReservations"`
	CompletedReservations int64 `json:"completedReservations"`
	TotalUsers            int64 `json:"totalUsers"`
	UnreadMessages        int64 `json:"unreadMessages"`
}
