package services

import (
	"context"
	"strings"
	"time"

	"suraksha/internal/models"
)

// ChatService answers support-bot messages by keyword. Rules are
// checked in order and the first hit wins, so more specific intents
// must come before broader ones.
type ChatService interface {
	Respond(ctx context.Context, message string) (*models.ChatReply, error)
}

type chatRule struct {
	keywords []string
	reply    string
	links    []models.ChatLink
}

type chatService struct {
	rules       []chatRule
	fallback    string
	suggestions []string
	typingDelay time.Duration
}

// NewChatService builds the responder. typingDelay simulates the bot
// composing its answer; pass 0 to disable it.
func NewChatService(typingDelay time.Duration) ChatService {
	return &chatService{
		rules: []chatRule{
			{
				keywords: []string{"report"},
				reply: "To file a report, log in to your account and open the Report Incident page. " +
					"Describe what happened, add the location and date, and submit. " +
					"You can track its status from your dashboard at any time.",
				links: []models.ChatLink{
					{Label: "Log In & Report", Action: "LOGIN_THEN_REPORT"},
				},
			},
			{
				keywords: []string{"help", "sos"},
				reply: "If you are in immediate danger, call the emergency helpline 112 right now. " +
					"You can also use the SOS button in the app to share your live location with our on-call team.",
			},
			{
				keywords: []string{"counsel"},
				reply: "Our counsellors are here for you. Share your details through the contact page " +
					"and a counsellor will reach out to you confidentially.",
				links: []models.ChatLink{
					{Label: "Contact a Counsellor", URL: "/contact"},
				},
			},
			{
				keywords: []string{"safety", "legal"},
				reply: "We have put together guides on staying safe and on your legal rights, " +
					"including how to approach the authorities and what support you are entitled to.",
			},
			{
				keywords: []string{"friend", "someone else"},
				reply: "Supporting someone else takes courage. Listen without judgement, let them decide " +
					"the pace, and point them to our resources when they are ready.",
				links: []models.ChatLink{
					{Label: "Support Resources", URL: "/resources"},
				},
			},
		},
		fallback: "I am not sure I understood that. You can ask me about reporting an incident, " +
			"safety tips, or reaching a counsellor. If this is an emergency, call 112.",
		suggestions: []string{
			"How to report",
			"Safety tips",
			"Contact a counsellor",
			"Help a friend",
		},
		typingDelay: typingDelay,
	}
}

func (s *chatService) Respond(ctx context.Context, message string) (*models.ChatReply, error) {
	if s.typingDelay > 0 {
		select {
		case <-time.After(s.typingDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	normalized := strings.ToLower(message)

	for _, rule := range s.rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(normalized, keyword) {
				return &models.ChatReply{
					Reply:       rule.reply,
					Links:       rule.links,
					Suggestions: s.suggestions,
				}, nil
			}
		}
	}

	return &models.ChatReply{
		Reply:       s.fallback,
		Suggestions: s.suggestions,
	}, nil
}
