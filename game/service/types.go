package service

// BoardSnapshot is a JSON view of the board
type BoardSnapshot struct {
	Rows     []string    `json:"rows"`
	Capacity map[int]int `json:"capacity"`
	Status   string      `json:"status"`
	Winner   string      `json:"winner,omitempty"`
	Message  string      `json:"message,omitempty"`
	Moves    int         `json:"moves"`
	Text     string      `json:"text"`
}
