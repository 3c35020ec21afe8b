package utils

import "testing"

const chromeOnMac = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func TestParseUserAgent(t *testing.T) {
	t.Run("desktop browser", func(t *testing.T) {
		browser, os, device := ParseUserAgent(chromeOnMac)
		if browser != "Chrome" {
			t.Errorf("browser = %q, want Chrome", browser)
		}
		if os == "Unknown OS" {
			t.Errorf("os not detected: %q", os)
		}
		if device != "Desktop" {
			t.Errorf("device = %q, want Desktop", device)
		}
	})

	t.Run("empty user agent", func(t *testing.T) {
		browser, os, device := ParseUserAgent("")
		if browser != "Unknown Browser" || os != "Unknown OS" || device != "Desktop" {
			t.Errorf("got %q/%q/%q", browser, os, device)
		}
	})
}

func TestGenerateSessionName(t *testing.T) {
	name := GenerateSessionName(chromeOnMac)
	if name == "" || name == " on  ()" {
		t.Errorf("unexpected session name: %q", name)
	}
}
