package recur_test

import (
	"tangocal/src-server/recur"
	"testing"
)

func TestDescribe(t *testing.T) {
	cases := []struct {
		rule      string
		wantDesc  string
		wantUntil string
	}{
		{"FREQ=WEEKLY;BYDAY=TU", "Weekly on Tuesday", ""},
		{"FREQ=WEEKLY;BYDAY=FR,SA", "Weekly on Friday, Saturday", ""},
		{"FREQ=MONTHLY", "Monthly", ""},
		{"FREQ=DAILY;UNTIL=20261231T000000Z", "Daily", "20261231T000000Z"},
		{"", "", ""},
	}
	for _, tc := range cases {
		desc, until := recur.Describe(tc.rule)
		if desc != tc.wantDesc || until != tc.wantUntil {
			t.Errorf("Describe(%q) = (%q, %q), want (%q, %q)",
				tc.rule, desc, until, tc.wantDesc, tc.wantUntil)
		}
	}
}
