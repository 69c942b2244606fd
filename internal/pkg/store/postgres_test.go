package store

import "testing"

func TestSortColumn(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"recipient_name", "recipient_name"},
		{"issue_date", "issue_date"},
		{"created_at", "created_at"},
		{"", "created_at"},
		{"cert_id; DROP TABLE certificates", "created_at"},
	}
	for _, c := range cases {
		if got := SortColumn(c.in); got != c.want {
			t.Errorf("SortColumn(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
