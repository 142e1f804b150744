package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"profilelens/internal/domain/models"
)

func TestNormalizeProfileUsernameFlags(t *testing.T) {
	tests := []struct {
		name      string
		extracted models.ExtractedProfile
		urlUser   string
		want      models.UsernameFlags
	}{
		{
			"four digits is numbers heavy",
			models.ExtractedProfile{Username: "john1234", HasProfilePic: true},
			"",
			models.UsernameFlags{NumbersHeavy: true},
		},
		{
			"three digits is not numbers heavy",
			models.ExtractedProfile{Username: "john123", HasProfilePic: true},
			"",
			models.UsernameFlags{},
		},
		{
			"model flag widens numbers heavy",
			models.ExtractedProfile{
				Username:      "john123",
				HasProfilePic: true,
				UsernameFlags: models.ExtractedUsernameFlags{NumbersHeavy: true},
			},
			"",
			models.UsernameFlags{NumbersHeavy: true},
		},
		{
			"three char username is very short",
			models.ExtractedProfile{Username: "abc", HasProfilePic: true},
			"",
			models.UsernameFlags{VeryShort: true},
		},
		{
			"four char username is not very short",
			models.ExtractedProfile{Username: "abcd", HasProfilePic: true},
			"",
			models.UsernameFlags{},
		},
		{
			"model flag widens very short",
			models.ExtractedProfile{
				Username:      "abcdef",
				HasProfilePic: true,
				UsernameFlags: models.ExtractedUsernameFlags{VeryShort: true},
			},
			"",
			models.UsernameFlags{VeryShort: true},
		},
		{
			"no profile pic is the negation",
			models.ExtractedProfile{Username: "someone", HasProfilePic: false},
			"",
			models.UsernameFlags{NoProfilePic: true},
		},
		{
			"random characters passes through",
			models.ExtractedProfile{
				Username:      "xk9qzw2p",
				HasProfilePic: true,
				UsernameFlags: models.ExtractedUsernameFlags{RandomCharacters: true},
			},
			"",
			models.UsernameFlags{RandomCharacters: true},
		},
		{
			"flags computed from url username when extracted is empty",
			models.ExtractedProfile{Username: "", HasProfilePic: true},
			"ab1234",
			models.UsernameFlags{NumbersHeavy: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeProfile(tt.extracted, tt.urlUser)
			if diff := cmp.Diff(tt.want, got.Profile.UsernameFlags); diff != "" {
				t.Errorf("username flags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeProfileUsernameResolution(t *testing.T) {
	got := NormalizeProfile(models.ExtractedProfile{Username: ""}, "fallback_user")
	if got.Profile.Username != "fallback_user" {
		t.Errorf("expected URL-derived username, got %q", got.Profile.Username)
	}

	got = NormalizeProfile(models.ExtractedProfile{Username: "extracted_user"}, "fallback_user")
	if got.Profile.Username != "extracted_user" {
		t.Errorf("expected extracted username to win, got %q", got.Profile.Username)
	}
}

func TestNormalizeProfileCounts(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int
	}{
		{"negative clamps to zero", -5, 0},
		{"large integer passes through", 1200000, 1200000},
		{"fractional rounds", 10.6, 11},
		{"fractional rounds down", 10.4, 10},
		{"zero stays zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeProfile(models.ExtractedProfile{
				Username:       "whoever",
				FollowersCount: tt.in,
			}, "")
			if got.Profile.FollowersCount != tt.want {
				t.Errorf("followers_count = %d, want %d", got.Profile.FollowersCount, tt.want)
			}
		})
	}
}

func TestNormalizeProfileEnvelope(t *testing.T) {
	extracted := models.ExtractedProfile{
		Username:       "janedoe",
		FollowersCount: 1500,
		FollowingCount: 300,
		PostsCount:     42,
		BioLength:      120,
		AccountAge:     900,
		HasProfilePic:  true,
		Platform:       "Instagram",
		Confidence:     models.ConfidenceHigh,
		Notes:          "all metrics visible on page",
	}

	got := NormalizeProfile(extracted, "janedoe")

	want := models.AnalyzeResponse{
		Success:    true,
		Platform:   "Instagram",
		Confidence: models.ConfidenceHigh,
		Notes:      "all metrics visible on page",
		Profile: models.NormalizedProfile{
			Username:       "janedoe",
			FollowersCount: 1500,
			FollowingCount: 300,
			PostsCount:     42,
			BioLength:      120,
			AccountAge:     900,
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NormalizeProfile mismatch (-want +got):\n%s", diff)
	}
}
