package services

import (
	"database/sql"

	"gorm.io/gorm"
)

// txRunner is the slice of *gorm.DB the services need to open
// transactions. Tests substitute a runner that invokes the callback
// directly.
type txRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}
