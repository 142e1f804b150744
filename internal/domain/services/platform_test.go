package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"profilelens/internal/domain/models"
)

func TestClassifyPlatform(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want models.PlatformClassification
	}{
		{
			"instagram profile",
			"https://instagram.com/janedoe",
			models.PlatformClassification{Platform: models.PlatformInstagram, InferredUsername: "janedoe"},
		},
		{
			"instagram with www and query",
			"https://www.instagram.com/janedoe?hl=en",
			models.PlatformClassification{Platform: models.PlatformInstagram, InferredUsername: "janedoe"},
		},
		{
			"instagram with deep path",
			"https://instagram.com/janedoe/reels/",
			models.PlatformClassification{Platform: models.PlatformInstagram, InferredUsername: "janedoe"},
		},
		{
			"twitter",
			"https://twitter.com/someone",
			models.PlatformClassification{Platform: models.PlatformTwitterX, InferredUsername: "someone"},
		},
		{
			"x.com",
			"https://x.com/someone",
			models.PlatformClassification{Platform: models.PlatformTwitterX, InferredUsername: "someone"},
		},
		{
			"tiktok handle",
			"https://www.tiktok.com/@dancer99",
			models.PlatformClassification{Platform: models.PlatformTikTok, InferredUsername: "dancer99"},
		},
		{
			"facebook",
			"https://facebook.com/some.page",
			models.PlatformClassification{Platform: models.PlatformFacebook, InferredUsername: "some.page"},
		},
		{
			"linkedin in-segment skipped",
			"https://www.linkedin.com/in/jane-doe",
			models.PlatformClassification{Platform: models.PlatformLinkedIn, InferredUsername: "jane-doe"},
		},
		{
			"reddit user path",
			"https://reddit.com/user/janedoe123",
			models.PlatformClassification{Platform: models.PlatformReddit, InferredUsername: "janedoe123"},
		},
		{
			"reddit short user path",
			"https://reddit.com/u/someuser",
			models.PlatformClassification{Platform: models.PlatformReddit, InferredUsername: "someuser"},
		},
		{
			"youtube channel path",
			"https://youtube.com/channel/UC12345",
			models.PlatformClassification{Platform: models.PlatformYouTube, InferredUsername: "UC12345"},
		},
		{
			"youtube handle",
			"https://youtube.com/@SomeCreator",
			models.PlatformClassification{Platform: models.PlatformYouTube, InferredUsername: "SomeCreator"},
		},
		{
			"unknown platform",
			"https://example.com/whoever",
			models.PlatformClassification{Platform: models.PlatformUnknown, InferredUsername: "whoever"},
		},
		{
			"empty path",
			"https://instagram.com",
			models.PlatformClassification{Platform: models.PlatformInstagram, InferredUsername: "unknown"},
		},
		{
			"root path only",
			"https://instagram.com/",
			models.PlatformClassification{Platform: models.PlatformInstagram, InferredUsername: "unknown"},
		},
		{
			"unparseable url",
			"ht tp://instagram.com/janedoe",
			models.PlatformClassification{Platform: models.PlatformInstagram, InferredUsername: "unknown"},
		},
		{
			"only stoplist segments falls back to first",
			"https://reddit.com/user",
			models.PlatformClassification{Platform: models.PlatformReddit, InferredUsername: "user"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyPlatform(tt.url)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ClassifyPlatform(%q) mismatch (-want +got):\n%s", tt.url, diff)
			}
		})
	}
}

func TestClassifyPlatformPriorityOrder(t *testing.T) {
	// Instagram is tested before Twitter/X, so a URL containing both matches Instagram
	got := ClassifyPlatform("https://instagram.com/redirect?to=x.com/foo")
	if got.Platform != models.PlatformInstagram {
		t.Errorf("expected Instagram for mixed URL, got %s", got.Platform)
	}
}

func TestClassifyPlatformNeverPanics(t *testing.T) {
	inputs := []string{"", ":", "%zz", "not a url at all", "https://", "//missing-scheme"}
	for _, in := range inputs {
		got := ClassifyPlatform(in)
		if got.InferredUsername == "" {
			t.Errorf("ClassifyPlatform(%q) returned empty username, want a fallback value", in)
		}
	}
}
