package domain

import "time"

// Comment is an append-only reply on a ticket. Comments are owned by exactly
// one ticket and have no independent lifecycle.
type Comment struct {
	ID        int       `json:"id"`
	TicketID  int       `json:"ticket_id"`
	UserID    int       `json:"user_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
