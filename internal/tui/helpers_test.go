package tui

import "testing"

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1500, "1 500"},
		{250000, "250 000"},
		{1200000, "1 200 000"},
	}
	for _, tc := range cases {
		if got := formatMoney(tc.in); got != tc.want {
			t.Errorf("formatMoney(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("Abdurakhmon", 6); got != "Abdur…" {
		t.Errorf("got %q", got)
	}
	if got := truncStr("Ali", 6); got != "Ali" {
		t.Errorf("got %q", got)
	}
}

func TestPadCell(t *testing.T) {
	if got := padCell("Ali", 6); got != "Ali   " {
		t.Errorf("got %q", got)
	}
	if got := padCell("Abdurakhmon", 6); got != "Abdur…" {
		t.Errorf("got %q", got)
	}
}

func TestEditRune(t *testing.T) {
	if got := editRune("ab", "c"); got != "abc" {
		t.Errorf("got %q", got)
	}
	if got := editRune("abc", "backspace"); got != "ab" {
		t.Errorf("got %q", got)
	}
	if got := editRune("", "backspace"); got != "" {
		t.Errorf("got %q", got)
	}
	if got := editRune("ab", "enter"); got != "ab" {
		t.Errorf("got %q", got)
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "a\nb\nc\nd\n"
	if got := truncateToHeight(s, 2); got != "a\nb\n" {
		t.Errorf("got %q", got)
	}
	if got := truncateToHeight(s, 0); got != s {
		t.Errorf("got %q", got)
	}
	if got := truncateToHeight("a\nb", 5); got != "a\nb" {
		t.Errorf("got %q", got)
	}
}
