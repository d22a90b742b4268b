package validate

import "testing"

func TestArtCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"ART-0042", "ART-0042", true},
		{" art-7 ", "ART-7", true},
		{"A", "", false},
		{"-BAD", "", false},
		{"ART_0042", "", false},
		{"ART-00000000000000000042", "", false},
	}
	for _, c := range cases {
		got, ok := ArtCode(c.in)
		if ok != c.ok {
			t.Fatalf("ArtCode(%q): ok=%v, want %v", c.in, ok, c.ok)
		}
		if ok && got != c.want {
			t.Fatalf("ArtCode(%q)=%q, want %q", c.in, got, c.want)
		}
	}
}

func TestDateAndClock(t *testing.T) {
	if _, ok := Date("2025-12-01"); !ok {
		t.Fatal("valid date rejected")
	}
	if _, ok := Date("2025-13-01"); ok {
		t.Fatal("month 13 accepted")
	}
	if _, ok := Date("01-12-2025"); ok {
		t.Fatal("wrong layout accepted")
	}
	if _, ok := Clock("18:00"); !ok {
		t.Fatal("valid time rejected")
	}
	if _, ok := Clock("25:00"); ok {
		t.Fatal("hour 25 accepted")
	}
}

func TestPassword(t *testing.T) {
	good := []string{"Passw0rd!", "aB3$efgh"}
	bad := []string{"short1!", "alllowercase1!", "NOLOWER1!", "NoDigits!!", "NoSymbol11", "Way2LongPassword-Way2Long!"}
	for _, p := range good {
		if !Password(p) {
			t.Fatalf("Password(%q) should pass", p)
		}
	}
	for _, p := range bad {
		if Password(p) {
			t.Fatalf("Password(%q) should fail", p)
		}
	}
}

func TestEmail(t *testing.T) {
	if _, ok := Email("mara@example.com"); !ok {
		t.Fatal("valid email rejected")
	}
	if _, ok := Email("not-an-email"); ok {
		t.Fatal("bad email accepted")
	}
}
