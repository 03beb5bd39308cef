package http

import "testing"

func TestParseIDPath(t *testing.T) {
	tests := []struct {
		path       string
		wantID     int64
		wantAction string
		wantOK     bool
	}{
		{"/api/transactions/42", 42, "", true},
		{"/api/transactions/42/", 42, "", true},
		{"/api/transactions/42/toggle", 42, "toggle", true},
		{"/api/transactions/", 0, "", false},
		{"/api/transactions/abc", 0, "", false},
		{"/api/transactions/0", 0, "", false},
		{"/api/transactions/-5", 0, "", false},
	}
	for _, tt := range tests {
		id, action, ok := parseIDPath(tt.path)
		if id != tt.wantID || action != tt.wantAction || ok != tt.wantOK {
			t.Errorf("parseIDPath(%q) = (%d, %q, %v), want (%d, %q, %v)",
				tt.path, id, action, ok, tt.wantID, tt.wantAction, tt.wantOK)
		}
	}
}

func TestParsePeriodPath(t *testing.T) {
	tests := []struct {
		path       string
		wantName   string
		wantAction string
		wantOK     bool
	}{
		{"/api/budget/start_month", "start_month", "", true},
		{"/api/budget/mid_month/salary", "mid_month", "salary", true},
		{"/api/budget/end_month/expenses", "end_month", "expenses", true},
		{"/api/budget/", "", "", false},
	}
	for _, tt := range tests {
		name, action, ok := parsePeriodPath(tt.path)
		if name != tt.wantName || action != tt.wantAction || ok != tt.wantOK {
			t.Errorf("parsePeriodPath(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.path, name, action, ok, tt.wantName, tt.wantAction, tt.wantOK)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Rent  ", "Rent"},
		{"a\x00b", "ab"},
		{"line1\nline2", "line1\nline2"},
		{"\x1b[31mred\x1b[0m", "[31mred[0m"},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
