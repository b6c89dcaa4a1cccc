package repository

import "database/sql"

// NewMySQLStores wires every MySQL repository onto one connection pool.
func NewMySQLStores(db *sql.DB) Stores {
	return Stores{
		Users:        NewUserRepo(db),
		Admins:       NewAdminRepo(db),
		Reservations: NewReservationRepo(db),
		Contacts:     NewContactRepo(db),
		Reviews:      NewReviewRepo(db),
	}
}
