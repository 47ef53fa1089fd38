package util

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Jane.Doe@Example.COM ", "jane.doe@example.com"},
		{"already@lower.io", "already@lower.io"},
		{"\tTAB@host.net\n", "tab@host.net"},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{
		"jane@example.com",
		"first.last@sub.domain.org",
		"user-name@host.co",
	}
	invalid := []string{
		"",
		"no-at-sign",
		"missing@tld",
		"@example.com",
		"user@.c",
		"spaces in@example.com",
	}

	for _, e := range valid {
		if !ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = false, want true", e)
		}
	}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = true, want false", e)
		}
	}
}
