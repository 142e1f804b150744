package services

import (
	"math"
	"unicode"

	"profilelens/internal/domain/models"
)

// NormalizeProfile merges extractor output into the final response record.
// It is pure and total. Username risk flags are recomputed here from the
// resolved username instead of trusting the model's self-reported values;
// the model can only widen a flag, never clear one the deterministic rule
// would set.
func NormalizeProfile(extracted models.ExtractedProfile, urlUsername string) models.AnalyzeResponse {
	username := extracted.Username
	if username == "" {
		username = urlUsername
	}

	flags := models.UsernameFlags{
		NumbersHeavy:     digitCount(username) >= 4 || extracted.UsernameFlags.NumbersHeavy,
		NoProfilePic:     !extracted.HasProfilePic,
		RandomCharacters: extracted.UsernameFlags.RandomCharacters,
		VeryShort:        len([]rune(username)) <= 3 || extracted.UsernameFlags.VeryShort,
	}

	return models.AnalyzeResponse{
		Success:    true,
		Platform:   extracted.Platform,
		Confidence: extracted.Confidence,
		Notes:      extracted.Notes,
		Profile: models.NormalizedProfile{
			Username:       username,
			FollowersCount: clampCount(extracted.FollowersCount),
			FollowingCount: clampCount(extracted.FollowingCount),
			PostsCount:     clampCount(extracted.PostsCount),
			BioLength:      clampCount(extracted.BioLength),
			AccountAge:     clampCount(extracted.AccountAge),
			UsernameFlags:  flags,
		},
	}
}

// clampCount floors a count at zero and rounds it to the nearest integer,
// guarding against fractional or negative model output
func clampCount(v float64) int {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Round(v))
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
