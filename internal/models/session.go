package models

import "time"

// AdminSession is an issued admin bearer token. Sessions never expire; the
// created_at column exists so a TTL could be added without a migration.
type AdminSession struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}
