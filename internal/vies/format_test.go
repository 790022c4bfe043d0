package vies

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"be-0417-497-106", "BE0417497106"},
		{"BE 0417.497.106", "BE0417497106"},
		{"nl123456789b01", "NL123456789B01"},
		{"  FR 40 303265045 ", "FR40303265045"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidFormat(t *testing.T) {
	valid := []string{
		"BE0417497106",   // Belgian mod-97 check
		"DE136695976",    // German ISO 7064 check
		"IT00743110157",  // Italian Luhn check
		"FR40303265045",  // French numeric key
		"NL810462783B01", // Dutch mod-11 check
		"ATU12345678",
		"PT123456789",
	}
	for _, vat := range valid {
		if !ValidFormat(vat) {
			t.Fatalf("ValidFormat(%q) = false, want true", vat)
		}
	}

	invalid := []string{
		"INVALID123",
		"",
		"BE",
		"BE0417497107", // wrong check digits
		"BE123456789",  // nine digits
		"DE136695977",  // wrong check digit
		"XX123456789",  // not an EU country code
		"GB123456789",  // post-Brexit, not in the registry
		"NL123456789A01",
		"NL123456789B01", // fails the mod-11 check
	}
	for _, vat := range invalid {
		if ValidFormat(vat) {
			t.Fatalf("ValidFormat(%q) = true, want false", vat)
		}
	}
}

func TestCountryName(t *testing.T) {
	if got := CountryName("BE"); got != "Belgium" {
		t.Fatalf("CountryName(BE) = %q, want Belgium", got)
	}
	if got := CountryName("EL"); got != "Greece" {
		t.Fatalf("CountryName(EL) = %q, want Greece", got)
	}
	if got := CountryName("XX"); got != "" {
		t.Fatalf("CountryName(XX) = %q, want empty", got)
	}
	if len(euCountries) != 27 {
		t.Fatalf("expected 27 member states, got %d", len(euCountries))
	}
}
