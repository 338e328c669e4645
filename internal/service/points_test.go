package service

import "testing"

func TestPointsForReviewSubmission(t *testing.T) {
	tests := []struct {
		rating int
		want   int
	}{
		{1, 10},
		{3, 30},
		{5, 50},
	}
	for _, tt := range tests {
		if got := PointsForReviewSubmission(tt.rating); got != tt.want {
			t.Errorf("PointsForReviewSubmission(%d) = %d, want %d", tt.rating, got, tt.want)
		}
	}
}

func TestPointsForReviewAcceptance(t *testing.T) {
	tests := []struct {
		rating int
		want   int
	}{
		{1, 15},
		{4, 60},
		{5, 75},
	}
	for _, tt := range tests {
		if got := PointsForReviewAcceptance(tt.rating); got != tt.want {
			t.Errorf("PointsForReviewAcceptance(%d) = %d, want %d", tt.rating, got, tt.want)
		}
	}
}

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		points int
		want   string
	}{
		{0, LevelBronze},
		{499, LevelBronze},
		{500, LevelSilver},
		{999, LevelSilver},
		{1000, LevelGold},
		{1999, LevelGold},
		{2000, LevelPlatinum},
		{4999, LevelPlatinum},
		{5000, LevelDiamond},
		{100000, LevelDiamond},
	}
	for _, tt := range tests {
		if got := LevelForPoints(tt.points); got != tt.want {
			t.Errorf("LevelForPoints(%d) = %q, want %q", tt.points, got, tt.want)
		}
	}
}
