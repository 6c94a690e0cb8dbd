package model

import "time"

type BaseModel struct {
	ID           int64     `db:"id"`
	DateCreated  time.Time `db:"date_created"`
	DateModified time.Time `db:"date_modified"`
}
