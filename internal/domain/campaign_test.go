package domain

import "testing"

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name  string
		stats CampaignStats
		want  int
	}{
		{name: "defaults", stats: DefaultCampaignStats, want: 27},
		{name: "no goal", stats: CampaignStats{RaisedMinor: 100}, want: 0},
		{name: "nothing raised", stats: CampaignStats{GoalMinor: 100}, want: 0},
		{name: "over goal capped", stats: CampaignStats{RaisedMinor: 500, GoalMinor: 100}, want: 100},
		{name: "floors", stats: CampaignStats{RaisedMinor: 199, GoalMinor: 1000}, want: 19},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.stats.ProgressPercent(); got != tc.want {
				t.Fatalf("ProgressPercent() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestDonationAmounts(t *testing.T) {
	amounts := DonationAmounts()
	want := []int64{20, 30, 40, 50, 100, 200, 300, 500, 1000}
	if len(amounts) != len(want) {
		t.Fatalf("DonationAmounts() len = %d, want %d", len(amounts), len(want))
	}
	for i := range want {
		if amounts[i] != want[i] {
			t.Fatalf("DonationAmounts()[%d] = %d, want %d", i, amounts[i], want[i])
		}
	}
	amounts[0] = 1
	if !IsDonationAmount(20) || IsDonationAmount(1) {
		t.Fatalf("DonationAmounts() must return a copy")
	}
	if IsDonationAmount(0) || IsDonationAmount(25) {
		t.Fatalf("IsDonationAmount accepted an amount outside the set")
	}
}
