package services

import (
	"net/url"
	"strings"

	"profilelens/internal/domain/models"
)

// platformMatches are tried in order; first match wins
var platformMatches = []struct {
	needle   string
	platform models.Platform
}{
	{"instagram.com", models.PlatformInstagram},
	{"twitter.com", models.PlatformTwitterX},
	{"x.com", models.PlatformTwitterX},
	{"tiktok.com", models.PlatformTikTok},
	{"facebook.com", models.PlatformFacebook},
	{"linkedin.com", models.PlatformLinkedIn},
	{"reddit.com", models.PlatformReddit},
	{"youtube.com", models.PlatformYouTube},
}

// usernameStoplist holds path segments that never name an account
var usernameStoplist = map[string]bool{
	"user":    true,
	"users":   true,
	"u":       true,
	"profile": true,
	"in":      true,
	"channel": true,
	"c":       true,
}

// ClassifyPlatform maps a profile URL to a platform label and a best-effort
// username. It is total: malformed input yields PlatformUnknown and the
// literal username "unknown" rather than an error.
func ClassifyPlatform(rawURL string) models.PlatformClassification {
	lowered := strings.ToLower(rawURL)

	platform := models.PlatformUnknown
	for _, m := range platformMatches {
		if strings.Contains(lowered, m.needle) {
			platform = m.platform
			break
		}
	}

	return models.PlatformClassification{
		Platform:         platform,
		InferredUsername: inferUsername(rawURL),
	}
}

// inferUsername picks the most likely account name out of the URL path.
// Generic segments (user, profile, channel, ...) and @-handles are skipped
// on the first pass; if nothing survives, the first segment is used as-is.
func inferUsername(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "unknown"
	}

	var segments []string
	for _, seg := range strings.Split(parsed.Path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		return "unknown"
	}

	candidate := ""
	for _, seg := range segments {
		if usernameStoplist[strings.ToLower(seg)] || strings.HasPrefix(seg, "@") {
			continue
		}
		candidate = seg
		break
	}
	if candidate == "" {
		candidate = segments[0]
	}

	return strings.TrimPrefix(candidate, "@")
}
