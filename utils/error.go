package utils

import (
	"errors"

	mysqlDriver "github.com/go-sql-driver/mysql"
)

var ErrorRecordNotFound = errors.New("record not found")

// IsDuplicateKeyErr reports whether err is a MySQL duplicate-entry error
// (1062). Uniqueness pre-checks can race with concurrent writers; the unique
// index is the source of truth and this translates its violation.
func IsDuplicateKeyErr(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
