package prompt

import (
	"strings"
	"testing"

	"email-writer/internal/domain"
)

func TestBuild_Layout(t *testing.T) {
	got := Build(domain.ReplyRequest{
		EmailContent: "Can we move the meeting to Friday?",
		Tone:         "friendly",
		Instructions: "Accept and suggest 10am.",
	})

	want := Preamble + "\n\n" +
		"Tone: friendly\n\n" +
		"Original email:\nCan we move the meeting to Friday?\n\n" +
		"Additional instructions:\nAccept and suggest 10am."

	if got != want {
		t.Errorf("unexpected prompt\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestBuild_Tone(t *testing.T) {
	tests := []struct {
		name      string
		tone      string
		wantCount int
	}{
		{"Professional", "professional", 1},
		{"Casual", "casual", 1},
		{"MultiWord", "warm but firm", 1},
		{"Empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(domain.ReplyRequest{EmailContent: "Hello", Tone: tt.tone})

			if tt.wantCount == 0 {
				if strings.Contains(p, "Tone:") {
					t.Errorf("expected no Tone line, got:\n%s", p)
				}
				return
			}
			if n := strings.Count(p, "Tone: "+tt.tone); n != tt.wantCount {
				t.Errorf("expected %q exactly %d time(s), found %d", "Tone: "+tt.tone, tt.wantCount, n)
			}
		})
	}
}

func TestBuild_OriginalEmailVerbatim(t *testing.T) {
	emails := []string{
		"plain text",
		`She said "yes" and left.`,
		"line one\nline two\r\n\ttabbed",
		`C:\path\to\file and \n literal`,
		"unicode: héllo 👋 <b>tags</b> & {{braces}}",
		"",
	}

	for _, email := range emails {
		p := Build(domain.ReplyRequest{EmailContent: email})
		if !strings.Contains(p, OriginalHeader+"\n"+email) {
			t.Errorf("original email not found verbatim: %q", email)
		}
	}
}

func TestBuild_Instructions(t *testing.T) {
	p := Build(domain.ReplyRequest{EmailContent: "Hi", Instructions: "Keep it short"})
	if !strings.HasSuffix(p, InstructionHeader+"\nKeep it short") {
		t.Errorf("expected instructions block at the end, got:\n%s", p)
	}

	p = Build(domain.ReplyRequest{EmailContent: "Hi"})
	if strings.Contains(p, InstructionHeader) {
		t.Errorf("expected no instructions header when empty, got:\n%s", p)
	}
}

func TestBuild_AlwaysStartsWithPreamble(t *testing.T) {
	for _, req := range []domain.ReplyRequest{
		{},
		{EmailContent: "x"},
		{EmailContent: "x", Tone: "y", Instructions: "z"},
	} {
		if !strings.HasPrefix(Build(req), Preamble) {
			t.Errorf("prompt for %+v does not start with preamble", req)
		}
	}
}
