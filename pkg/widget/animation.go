package widget

import (
	"html/template"
	"strings"

	"github.com/securewave/securewave_backend/config"
)

const (
	aosStylesheet = "https://unpkg.com/aos@2.3.1/dist/aos.css"
	aosScript     = "https://unpkg.com/aos@2.3.1/dist/aos.js"
)

var (
	animationHead = template.Must(template.New("aos-head").Parse(
		`<link rel="stylesheet" href="{{.Stylesheet}}">`))
	animationBody = template.Must(template.New("aos-body").Parse(
		`<script src="{{.Script}}"></script>
<script>
document.addEventListener('DOMContentLoaded', function () {
  AOS.init({duration: {{.DurationMs}}, offset: {{.OffsetPx}}, once: {{.Once}}, easing: {{.Easing}}});
});
</script>`))
)

// AnimationSettings are the animate-on-scroll options.
type AnimationSettings struct {
	DurationMs int    `json:"duration"`
	OffsetPx   int    `json:"offset"`
	Once       bool   `json:"once"`
	Easing     string `json:"easing"`
}

type Animation struct {
	cfg config.AnimationWidgetConfig
}

func NewAnimation(cfg config.AnimationWidgetConfig) *Animation {
	return &Animation{cfg: cfg}
}

func (a *Animation) Name() string { return "animation" }

func (a *Animation) Initialize() (*Handle, error) {
	s := AnimationSettings{
		DurationMs: a.cfg.DurationMs,
		OffsetPx:   a.cfg.OffsetPx,
		Once:       a.cfg.Once,
		Easing:     strings.TrimSpace(a.cfg.Easing),
	}
	// AOS accepts durations in 50ms steps up to 3000ms.
	if s.DurationMs < 0 || s.DurationMs > 3000 {
		return nil, invalid(a.Name(), "duration %dms out of range [0, 3000]", s.DurationMs)
	}
	if s.OffsetPx < 0 {
		return nil, invalid(a.Name(), "offset must not be negative")
	}
	if s.Easing == "" {
		s.Easing = "ease"
	}

	head, err := render(animationHead, map[string]string{"Stylesheet": aosStylesheet})
	if err != nil {
		return nil, err
	}
	body, err := render(animationBody, struct {
		AnimationSettings
		Script string
	}{s, aosScript})
	if err != nil {
		return nil, err
	}
	return &Handle{Name: a.Name(), Head: head, Body: body, Settings: s}, nil
}
