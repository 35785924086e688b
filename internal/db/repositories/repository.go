package repositories

import (
	"github.com/go-pg/pg/v10/orm"
)

type repository struct {
	db orm.DB
}
