package feature

import (
	"sync"
	"testing"
)

func TestAccumulator_AddFailure(t *testing.T) {
	acc := NewAccumulator()

	feat := acc.AddFailure("192.168.1.1", 7)

	if feat.IP != "192.168.1.1" {
		t.Errorf("Expected IP 192.168.1.1, got %s", feat.IP)
	}
	if feat.FailedLogins != 1 {
		t.Errorf("Expected 1 failed login, got %d", feat.FailedLogins)
	}
	if feat.FirstLine != 7 || feat.LastLine != 7 {
		t.Errorf("Expected first/last line 7, got %d/%d", feat.FirstLine, feat.LastLine)
	}
}

func TestAccumulator_AddFailure_Multiple(t *testing.T) {
	acc := NewAccumulator()

	acc.AddFailure("10.0.0.1", 1)
	acc.AddFailure("10.0.0.1", 4)
	feat := acc.AddFailure("10.0.0.1", 9)

	if feat.FailedLogins != 3 {
		t.Errorf("Expected 3 failures, got %d", feat.FailedLogins)
	}
	if feat.FirstLine != 1 || feat.LastLine != 9 {
		t.Errorf("Expected first/last line 1/9, got %d/%d", feat.FirstLine, feat.LastLine)
	}
}

func TestAccumulator_Flagged_StrictThreshold(t *testing.T) {
	acc := NewAccumulator()

	for i := 0; i < 5; i++ {
		acc.AddFailure("5.5.5.5", i)
	}
	for i := 0; i < 6; i++ {
		acc.AddFailure("6.6.6.6", i)
	}

	flagged := acc.Flagged(5)
	if _, ok := flagged["5.5.5.5"]; ok {
		t.Error("IP with exactly 5 failures must not be flagged")
	}
	if flagged["6.6.6.6"] != 6 {
		t.Errorf("Expected 6.6.6.6 flagged with 6, got %d", flagged["6.6.6.6"])
	}
	if len(flagged) != 1 {
		t.Errorf("Expected 1 flagged IP, got %d", len(flagged))
	}
}

func TestAccumulator_Flagged_EmptyNotNil(t *testing.T) {
	acc := NewAccumulator()
	if flagged := acc.Flagged(5); flagged == nil {
		t.Error("Expected empty map, got nil")
	}
}

func TestAccumulator_Concurrency(t *testing.T) {
	acc := NewAccumulator()

	var wg sync.WaitGroup
	ip := "1.2.3.4"
	iterations := 100

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				acc.AddFailure(ip, id*iterations+j)
			}
		}(i)
	}

	wg.Wait()

	feat := acc.GetFeatures(ip)
	if feat == nil {
		t.Fatal("Expected feature vector, got nil")
	}

	expected := 10 * iterations
	if feat.FailedLogins != expected {
		t.Errorf("Expected %d failures, got %d", expected, feat.FailedLogins)
	}
	if acc.Len() != 1 {
		t.Errorf("Expected 1 tracked IP, got %d", acc.Len())
	}
}
