package domain

// ReplyRequest describes the email to answer.
// It serves as the canonical input across the application (Handler -> Generator -> Prompt).
type ReplyRequest struct {
	EmailContent string `json:"emailContent"`
	Tone         string `json:"tone"`
	Instructions string `json:"instructions"`
}
