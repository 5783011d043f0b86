package request

// CreateSessionRequest is the request body for creating a session
type CreateSessionRequest struct {
	Board        string   `json:"board,omitempty"`
	Players      []string `json:"players"`
	StartBalance int      `json:"start_balance,omitempty"`
}

// TakeTurnRequest is the request body for taking a turn
type TakeTurnRequest struct {
	PlayerID string `json:"player_id"`
	// Buy names the purchase policy for this turn: always, never,
	// affordable or random. Defaults to affordable.
	Buy string `json:"buy,omitempty"`
}
