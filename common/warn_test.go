package common

import "testing"

func TestWarnOnce(t *testing.T) {
	if !WarnOnce("test-degradation", "integration unavailable") {
		t.Error("first WarnOnce for a key should fire")
	}
	if WarnOnce("test-degradation", "integration unavailable") {
		t.Error("repeated WarnOnce for the same key should not fire")
	}
	if !WarnOnce("test-degradation-other", "another integration unavailable") {
		t.Error("WarnOnce for a different key should fire")
	}
}
