package prompt

import (
	"strings"

	"email-writer/internal/domain"
)

// Preamble is sent ahead of every request. Models tend to offer several drafts
// or explain themselves unless told not to.
const Preamble = "Write a reply to the email below.\n" +
	"Produce exactly one final reply. Do not offer alternative options or variations. " +
	"Do not add meta-commentary, notes or explanations. " +
	"Output only the body of the reply."

// Section labels
const (
	ToneLabel         = "Tone: "
	OriginalHeader    = "Original email:"
	InstructionHeader = "Additional instructions:"
)

// Build renders the prompt for a reply request. Empty tone and instructions
// are left out entirely. Field values are inserted verbatim.
func Build(req domain.ReplyRequest) string {
	var sb strings.Builder
	sb.WriteString(Preamble)
	sb.WriteString("\n\n")

	if req.Tone != "" {
		sb.WriteString(ToneLabel)
		sb.WriteString(req.Tone)
		sb.WriteString("\n\n")
	}

	sb.WriteString(OriginalHeader)
	sb.WriteString("\n")
	sb.WriteString(req.EmailContent)

	if req.Instructions != "" {
		sb.WriteString("\n\n")
		sb.WriteString(InstructionHeader)
		sb.WriteString("\n")
		sb.WriteString(req.Instructions)
	}

	return sb.String()
}
