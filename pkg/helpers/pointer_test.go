package helpers

import "testing"

func TestNonBlank(t *testing.T) {
	if NonBlank(nil) != nil {
		t.Fatalf("nil input should stay nil")
	}
	if NonBlank(Ptr("   ")) != nil {
		t.Fatalf("blank input should become nil")
	}
	got := NonBlank(Ptr("  회의 "))
	if got == nil || *got != "회의" {
		t.Fatalf("unexpected value: %v", got)
	}
}

func TestValueOr(t *testing.T) {
	if ValueOr[string](nil, "done") != "done" {
		t.Fatalf("expected fallback")
	}
	if ValueOr(Ptr("in progress"), "done") != "in progress" {
		t.Fatalf("expected pointer value")
	}
	if Value[int](nil) != 0 {
		t.Fatalf("expected zero value")
	}
}
