package models

// ChatLink is a navigation suggestion attached to a chatbot reply.
// Either URL or Action is set, never both.
type ChatLink struct {
	Label  string `json:"label"`
	URL    string `json:"url,omitempty"`
	Action string `json:"action,omitempty"`
}

type ChatReply struct {
	Reply       string     `json:"reply"`
	Links       []ChatLink `json:"links"`
	Suggestions []string   `json:"suggestions"`
}
