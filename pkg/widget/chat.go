package widget

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/securewave/securewave_backend/config"
)

var chatBody = template.Must(template.New("chat-body").Parse(
	`<script src="{{.ScriptURL}}" async></script>
<df-messenger{{if .Intent}} intent="{{.Intent}}"{{end}} chat-title="{{.ChatTitle}}" agent-id="{{.AgentID}}" language-code="{{.LanguageCode}}"></df-messenger>`))

// ChatSettings are the conversational agent attributes.
type ChatSettings struct {
	ScriptURL    string `json:"script_url"`
	Intent       string `json:"intent,omitempty"`
	ChatTitle    string `json:"chat_title"`
	AgentID      string `json:"agent_id"`
	LanguageCode string `json:"language_code"`
}

type Chat struct {
	cfg config.ChatWidgetConfig
}

func NewChat(cfg config.ChatWidgetConfig) *Chat {
	return &Chat{cfg: cfg}
}

func (c *Chat) Name() string { return "chat" }

func (c *Chat) Initialize() (*Handle, error) {
	s := ChatSettings{
		ScriptURL:    strings.TrimSpace(c.cfg.ScriptURL),
		Intent:       strings.TrimSpace(c.cfg.Intent),
		ChatTitle:    strings.TrimSpace(c.cfg.ChatTitle),
		AgentID:      strings.TrimSpace(c.cfg.AgentID),
		LanguageCode: strings.TrimSpace(c.cfg.LanguageCode),
	}
	if s.LanguageCode == "" {
		s.LanguageCode = "en"
	}

	if s.AgentID == "" {
		return nil, invalid(c.Name(), "agent id is required")
	}
	if s.ChatTitle == "" {
		return nil, invalid(c.Name(), "chat title is required")
	}
	u, err := url.Parse(s.ScriptURL)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return nil, invalid(c.Name(), "script url must be an absolute https url")
	}

	body, err := render(chatBody, s)
	if err != nil {
		return nil, err
	}
	return &Handle{Name: c.Name(), Body: body, Settings: s}, nil
}
