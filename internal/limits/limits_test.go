package limits

import (
	"testing"

	"github.com/faanross/stegocrypt/internal/spec"
)

func TestCheckFormatWhitelist(t *testing.T) {
	for _, kind := range []string{spec.CarrierPNG, spec.CarrierBMP, spec.CarrierWAV} {
		if err := CheckFormat(kind); err != nil {
			t.Fatalf("CheckFormat(%q): %v", kind, err)
		}
	}
	if err := CheckFormat("gif"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestCheckDepthPolicyMobileMandatesDepthOne(t *testing.T) {
	_, err := CheckDepthPolicy(Options{LSBDepth: 2, Platform: spec.PlatformMobile, Expert: true})
	if err == nil {
		t.Fatal("expected error for depth>1 on mobile")
	}
	if _, err := CheckDepthPolicy(Options{LSBDepth: 1, Platform: spec.PlatformMobile}); err != nil {
		t.Fatalf("depth 1 on mobile should be allowed: %v", err)
	}
}

func TestCheckDepthPolicyQuickModeMandatesDepthOne(t *testing.T) {
	_, err := CheckDepthPolicy(Options{LSBDepth: 2, Platform: spec.PlatformDesktop, Quick: true, Expert: true})
	if err == nil {
		t.Fatal("expected error for depth>1 in quick mode")
	}
}

func TestCheckDepthPolicyRequiresExpertForHigherDepth(t *testing.T) {
	_, err := CheckDepthPolicy(Options{LSBDepth: 3, Platform: spec.PlatformDesktop, Expert: false})
	if err == nil {
		t.Fatal("expected error for depth>1 without expert mode")
	}
	warn, err := CheckDepthPolicy(Options{LSBDepth: 3, Platform: spec.PlatformDesktop, Expert: true})
	if err != nil {
		t.Fatalf("expert desktop depth 3 should be allowed: %v", err)
	}
	if !warn {
		t.Fatal("expected detectability warning for depth 3")
	}
}

func TestCheckDepthPolicyRejectsOutOfRange(t *testing.T) {
	if _, err := CheckDepthPolicy(Options{LSBDepth: 0, Platform: spec.PlatformDesktop}); err == nil {
		t.Fatal("expected error for depth 0")
	}
	if _, err := CheckDepthPolicy(Options{LSBDepth: 5, Platform: spec.PlatformDesktop, Expert: true}); err == nil {
		t.Fatal("expected error for depth 5")
	}
}

func TestImageCapacityBytesFormula(t *testing.T) {
	// 8x8 PNG at depth 1 -> floor(8*8*3*1/8) - 8 = 24 - 8 = 16.
	if got := ImageCapacityBytes(8, 8, 1); got != 16 {
		t.Fatalf("capacity mismatch: got %d want 16", got)
	}
}

func TestCheckCapacityBoundary(t *testing.T) {
	if err := CheckCapacity(16, 16); err != nil {
		t.Fatalf("equal-to-capacity should succeed: %v", err)
	}
	if err := CheckCapacity(17, 16); err == nil {
		t.Fatal("one byte over capacity should fail")
	}
}

func TestDensityWarningThresholds(t *testing.T) {
	if got := DensityWarning(40, 100); got != "" {
		t.Fatalf("expected no warning at 40%%, got %q", got)
	}
	if got := DensityWarning(60, 100); got != "near capacity" {
		t.Fatalf("expected near capacity at 60%%, got %q", got)
	}
	if got := DensityWarning(90, 100); got != "high density" {
		t.Fatalf("expected high density at 90%%, got %q", got)
	}
}
