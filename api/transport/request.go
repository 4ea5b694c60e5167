package transport

type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	DueAt       string `json:"due_at"`
}

type PushTokenRequest struct {
	Token string `json:"token"`
}
