package portalmodels

import "testing"

func TestTicketEffectiveDate(t *testing.T) {
	cases := []struct {
		name        string
		createdAt   int64
		submittedAt int64
		want        int64
	}{
		{"ưu tiên createdAt", 300, 200, 300},
		{"thiếu createdAt dùng submittedAt", 0, 200, 200},
		{"thiếu cả hai trả về 0", 0, 0, 0},
	}
	for _, tc := range cases {
		ticket := Ticket{CreatedAt: tc.createdAt, SubmittedAt: tc.submittedAt}
		if got := ticket.EffectiveDate(); got != tc.want {
			t.Errorf("%s: muốn %d nhận %d", tc.name, tc.want, got)
		}
	}
}

func TestTierRank(t *testing.T) {
	if TierRank(TierBasic) >= TierRank(TierStandard) || TierRank(TierStandard) >= TierRank(TierPremium) {
		t.Error("Tier phải xếp hạng tăng dần: basic < standard < premium")
	}
	if TierRank("enterprise") != 0 {
		t.Errorf("Tier lạ phải xếp hạng 0, nhận %d", TierRank("enterprise"))
	}
}

func TestMessageDisplayTimestamp(t *testing.T) {
	serverStamped := Message{Timestamp: 500, ClientTimestamp: 400}
	if got := serverStamped.DisplayTimestamp(); got != 500 {
		t.Errorf("Phải ưu tiên timestamp của server, nhận %d", got)
	}

	pending := Message{ClientTimestamp: 400}
	if got := pending.DisplayTimestamp(); got != 400 {
		t.Errorf("Thiếu timestamp server phải dùng mốc client, nhận %d", got)
	}
}
