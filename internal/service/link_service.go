package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"course_admin_gateway/internal/config"
)

// Verdict is the three-part answer for a preview link: is the URL well-formed,
// does the video actually exist, and is a probe still in flight.
type Verdict struct {
	IsValid  bool   `json:"isValid"`
	Message  string `json:"message"`
	Checking bool   `json:"checking"`
	Exists   bool   `json:"exists"`
	VideoID  string `json:"videoId,omitempty"`
}

const (
	msgBadScheme     = "URL must start with http:// or https://"
	msgBadDomain     = "URL must point to youtube.com or youtu.be"
	msgNoVideoID     = "could not extract an 11-character video id"
	msgVideoExists   = "video available"
	msgVideoMissing  = "link is well-formed but the video is missing or deleted"
	msgProbeUnknown  = "video existence could not be confirmed"
	defaultThumbTmpl = "https://img.youtube.com/vi/%s/default.jpg"
)

// videoIDPattern pulls the video id out of the recognized YouTube URL shapes:
// watch?v=, embed/, shorts/, v/ and youtu.be short links.
var videoIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|embed/|shorts/|v/)|youtu\.be/)([A-Za-z0-9_-]{11})(?:[?&#/]|$)`)

type LinkService struct {
	mu            sync.RWMutex
	thumbTemplate string
	http          *http.Client
}

func NewLinkService(cfg *config.ProbeConfig) *LinkService {
	s := &LinkService{}
	s.ApplyProbeConfig(cfg)
	return s
}

// ApplyProbeConfig swaps the thumbnail endpoint and probe timeout at runtime,
// so a config reload takes effect without a restart.
func (s *LinkService) ApplyProbeConfig(cfg *config.ProbeConfig) {
	template := cfg.ThumbnailTemplate
	if template == "" {
		template = defaultThumbTmpl
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	s.mu.Lock()
	s.thumbTemplate = template
	s.http = &http.Client{Timeout: timeout}
	s.mu.Unlock()
}

// CheckFormat runs the synchronous part: scheme, domain, id extraction.
func (s *LinkService) CheckFormat(raw string) Verdict {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return Verdict{Message: msgBadScheme}
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return Verdict{Message: msgBadScheme}
	}
	host := parsed.Hostname()
	if !strings.Contains(host, "youtube.com") && !strings.Contains(host, "youtu.be") {
		return Verdict{Message: msgBadDomain}
	}

	match := videoIDPattern.FindStringSubmatch(raw)
	if match == nil {
		return Verdict{Message: msgNoVideoID}
	}

	return Verdict{IsValid: true, VideoID: match[1]}
}

// Validate runs format checks and, when those pass, the existence probe.
// A 404 on the thumbnail means the link parses fine but the video is gone;
// any other probe failure is treated as inconclusive-but-accepted.
func (s *LinkService) Validate(ctx context.Context, raw string) Verdict {
	verdict := s.CheckFormat(raw)
	if !verdict.IsValid {
		return verdict
	}
	verdict.Exists, verdict.Message = s.probe(ctx, verdict.VideoID)
	return verdict
}

func (s *LinkService) probe(ctx context.Context, videoID string) (bool, string) {
	s.mu.RLock()
	template, client := s.thumbTemplate, s.http
	s.mu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(template, videoID), nil)
	if err != nil {
		return true, msgProbeUnknown
	}
	resp, err := client.Do(req)
	if err != nil {
		return true, msgProbeUnknown
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, msgVideoExists
	case http.StatusNotFound:
		return false, msgVideoMissing
	default:
		return true, msgProbeUnknown
	}
}

// GateForSave enforces the submit rule: a record requiring a preview URL is
// savable only when the link is well-formed and the video exists.
func (s *LinkService) GateForSave(ctx context.Context, raw string) (Verdict, bool) {
	verdict := s.Validate(ctx, raw)
	return verdict, verdict.IsValid && verdict.Exists
}

// LinkTracker runs validation cycles for form fields, keyed by an opaque
// client key (one per field instance). The existence probe never blocks the
// caller: Set returns immediately with checking=true and the previous
// resolution intact, and a probe result is discarded if the field's input
// changed while it was in flight.
type LinkTracker struct {
	svc *LinkService

	mu       sync.Mutex
	current  map[string]string
	verdicts map[string]Verdict
}

func NewLinkTracker(svc *LinkService) *LinkTracker {
	return &LinkTracker{
		svc:      svc,
		current:  make(map[string]string),
		verdicts: make(map[string]Verdict),
	}
}

// Set starts a validation cycle for the key. An empty input resets the cycle
// to idle immediately.
func (t *LinkTracker) Set(key, raw string) Verdict {
	raw = strings.TrimSpace(raw)

	t.mu.Lock()
	defer t.mu.Unlock()

	if raw == "" {
		delete(t.current, key)
		delete(t.verdicts, key)
		return Verdict{}
	}

	t.current[key] = raw
	verdict := t.svc.CheckFormat(raw)
	if !verdict.IsValid {
		t.verdicts[key] = verdict
		return verdict
	}

	// Keep the previous resolution visible while the probe runs.
	pending := t.verdicts[key]
	pending.IsValid = true
	pending.VideoID = verdict.VideoID
	pending.Checking = true
	t.verdicts[key] = pending

	go t.resolve(key, raw, verdict)

	return pending
}

func (t *LinkTracker) resolve(key, raw string, verdict Verdict) {
	verdict.Exists, verdict.Message = t.svc.probe(context.Background(), verdict.VideoID)

	t.mu.Lock()
	defer t.mu.Unlock()
	// Late responses for a superseded or cleared input must not land.
	if t.current[key] != raw {
		return
	}
	t.verdicts[key] = verdict
}

// Get returns the cycle's current verdict; the zero Verdict means idle.
func (t *LinkTracker) Get(key string) Verdict {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.verdicts[key]
}
