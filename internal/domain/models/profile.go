package models

// Platform identifies the social network a profile URL belongs to
type Platform string

const (
	PlatformInstagram Platform = "Instagram"
	PlatformTwitterX  Platform = "Twitter/X"
	PlatformTikTok    Platform = "TikTok"
	PlatformFacebook  Platform = "Facebook"
	PlatformLinkedIn  Platform = "LinkedIn"
	PlatformReddit    Platform = "Reddit"
	PlatformYouTube   Platform = "YouTube"
	PlatformUnknown   Platform = "Unknown"
)

// Confidence is the coarse reliability label the extractor attaches to a record
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// PlatformClassification is the result of platform detection on a profile URL.
// Derived deterministically from the input; never involves a network call.
type PlatformClassification struct {
	Platform         Platform `json:"platform"`
	InferredUsername string   `json:"inferred_username"`
}

// ScrapeResult holds whatever the page-scraping service returned for a URL.
// Succeeded=false still permits salvaged markdown content; a scrape failure
// never blocks the pipeline.
type ScrapeResult struct {
	MarkdownContent string   `json:"markdown_content"`
	OutboundLinks   []string `json:"outbound_links"`
	Succeeded       bool     `json:"succeeded"`
}

// ExtractedUsernameFlags are the username heuristics as self-reported by the
// completion service. The normalizer recomputes the security-relevant ones
// rather than trusting these blindly.
type ExtractedUsernameFlags struct {
	NumbersHeavy     bool `json:"numbers_heavy"`
	RandomCharacters bool `json:"random_characters"`
	VeryShort        bool `json:"very_short"`
}

// ExtractedProfile is the JSON contract the completion service must honor.
// Numeric fields are float64 so that fractional model output survives parsing;
// the normalizer rounds and floors them. The pipeline substitutes a complete
// default instance whenever the extraction call or parse fails — a partially
// filled object is never propagated.
type ExtractedProfile struct {
	Username       string                 `json:"username"`
	FollowersCount float64                `json:"followers_count"`
	FollowingCount float64                `json:"following_count"`
	PostsCount     float64                `json:"posts_count"`
	BioLength      float64                `json:"bio_length"`
	AccountAge     float64                `json:"account_age"` // days; 0 = unknown
	HasProfilePic  bool                   `json:"has_profile_pic"`
	UsernameFlags  ExtractedUsernameFlags `json:"username_flags"`
	Platform       string                 `json:"platform"`
	Confidence     Confidence             `json:"confidence"`
	Notes          string                 `json:"notes"`
}

// UsernameFlags are the recomputed risk signals attached to the final record
type UsernameFlags struct {
	NumbersHeavy     bool `json:"numbers_heavy"`
	NoProfilePic     bool `json:"no_profile_pic"`
	RandomCharacters bool `json:"random_characters"`
	VeryShort        bool `json:"very_short"`
}

// NormalizedProfile is the bounded, integer-valued metrics record handed to
// the downstream risk scorer
type NormalizedProfile struct {
	Username       string        `json:"username"`
	FollowersCount int           `json:"followers_count"`
	FollowingCount int           `json:"following_count"`
	PostsCount     int           `json:"posts_count"`
	BioLength      int           `json:"bio_length"`
	AccountAge     int           `json:"account_age"`
	UsernameFlags  UsernameFlags `json:"username_flags"`
}

// AnalyzeRequest is the inbound request to the analysis endpoint
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// AnalyzeResponse is the success envelope returned to the caller. Success is
// always true once the pipeline runs; degradation is signalled only through
// Confidence and Notes, since downstream consumers assume an optimistic
// envelope with an advisory confidence field.
type AnalyzeResponse struct {
	Success    bool              `json:"success"`
	Platform   string            `json:"platform"`
	Confidence Confidence        `json:"confidence"`
	Notes      string            `json:"notes"`
	Profile    NormalizedProfile `json:"profile"`
}
