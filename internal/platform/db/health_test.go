package db

import (
	"testing"
)

func TestPoolStats_HealthyWhenConnected(t *testing.T) {
	stats := &PoolStats{
		TotalConns:    10,
		IdleConns:     5,
		AcquiredConns: 5,
		MaxConns:      20,
		Healthy:       true,
	}

	if !stats.Healthy {
		t.Error("expected Healthy to be true")
	}
	if stats.TotalConns != 10 {
		t.Errorf("expected TotalConns 10, got %d", stats.TotalConns)
	}
}

func TestPoolStats_UnhealthyState(t *testing.T) {
	stats := &PoolStats{
		TotalConns: 0,
		MaxConns:   20,
		Healthy:    false,
	}

	if stats.Healthy {
		t.Error("expected Healthy to be false when TotalConns is 0")
	}
}
