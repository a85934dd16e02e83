package models

// TelegramLogin is the Telegram OAuth widget payload forwarded verbatim to
// the backend, which owns verification.
type TelegramLogin struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	AuthDate  int64  `json:"auth_date"`
	Hash      string `json:"hash"`
}

// SessionInfo is the backend's answer to a successful login or refresh.
type SessionInfo struct {
	ClientID int64      `json:"client_id"`
	Role     ClientRole `json:"role"`
}
