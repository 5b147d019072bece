package models

// User is a row in the tenant platform's users table. The admin console
// references these rows but does not own them; soft-deleted rows (deleted_at
// set) are invisible to every operation.
type User struct {
	ID          int64   `json:"id" db:"id"`
	Username    string  `json:"username" db:"username"`
	DisplayName *string `json:"display_name,omitempty" db:"display_name"`
	Group       string  `json:"group" db:"group"`
	Quota       int64   `json:"quota" db:"quota"`
	UsedQuota   int64   `json:"used_quota" db:"used_quota"`
}

// Groups with special meaning for the nightly reset. Other group values are
// accepted everywhere but never touched by the scheduled job.
const (
	GroupVIP     = "vip"
	GroupDefault = "default"
)
