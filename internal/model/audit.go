package model

import "time"

const (
	AuditActionLogin          = "auth.login"
	AuditActionRegister       = "auth.register"
	AuditActionPasswordChange = "auth.password_change"

	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
)

type AuditEntry struct {
	ID            int64     `json:"id"`
	Action        string    `json:"action"`
	OccurredAt    time.Time `json:"occurred_at"`
	ActorUserID   int64     `json:"actor_user_id,omitempty"`
	ActorUsername string    `json:"actor_username,omitempty"`
	ActorIP       string    `json:"actor_ip,omitempty"`
	Status        string    `json:"status"`
	Detail        string    `json:"detail,omitempty"`
}

// AuditActor identifies who triggered an audited action. UserID is zero for
// anonymous callers such as a failed login.
type AuditActor struct {
	UserID   int64
	Username string
	IP       string
}
