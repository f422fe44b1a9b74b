package settings

import (
	"testing"
	"time"
)

func TestPollInterval(t *testing.T) {
	s := Settings{PollIntervalMS: 5000}
	if got := s.PollInterval(); got != 5*time.Second {
		t.Fatalf("PollInterval = %v, want 5s", got)
	}
}

func TestFetchTimeout(t *testing.T) {
	s := Settings{FetchTimeoutMS: 10000}
	if got := s.FetchTimeout(); got != 10*time.Second {
		t.Fatalf("FetchTimeout = %v, want 10s", got)
	}
}
