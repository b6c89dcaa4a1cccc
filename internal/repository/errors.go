// Package repository defines the storage contracts used by the services and
// the MySQL implementation of them.  The sentinel errors below are shared by
// every backend so that handlers can distinguish failure scenarios with
// errors.Is regardless of where the data lives.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when no record matches the lookup.  Handlers
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a user or admin is created with an email
// that is already registered.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicate is returned when a uniqueness constraint other than the email
// one rejects a write, e.g. a second review by the same user.
var ErrDuplicate = errors.New("duplicate")

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
