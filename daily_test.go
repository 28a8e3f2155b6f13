package quill

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDailySinkNoRolloverSameDay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "daily.log")

	sink, err := NewDailyFileSink(path, true)
	if err != nil {
		t.Fatalf("creating sink: %v", err)
	}
	defer sink.Close()

	for i := 0; i < 5; i++ {
		if err := sink.Consume([]byte("same day\n")); err != nil {
			t.Fatalf("consume: %v", err)
		}
	}
	if sink.RotationCount() != 0 {
		t.Errorf("rotation count %d on same day", sink.RotationCount())
	}
}

func TestDailySinkRollsOnDayChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "daily.log")

	sink, err := NewDailyFileSink(path, true)
	if err != nil {
		t.Fatalf("creating sink: %v", err)
	}
	defer sink.Close()

	day0 := time.Date(2026, time.August, 30, 23, 59, 0, 0, time.UTC)
	sink.now = func() time.Time { return day0 }
	sink.openDay = truncateToDay(day0)

	if err := sink.Consume([]byte("yesterday\n")); err != nil {
		t.Fatalf("consume: %v", err)
	}

	// Midnight passes.
	sink.now = func() time.Time { return day0.Add(2 * time.Minute) }

	if err := sink.Consume([]byte("today\n")); err != nil {
		t.Fatalf("consume after day change: %v", err)
	}

	if sink.RotationCount() != 1 {
		t.Fatalf("rotation count %d, want 1", sink.RotationCount())
	}

	rotated := path + ".2026-08-30"
	data, err := os.ReadFile(rotated)
	if err != nil {
		t.Fatalf("reading rotated file: %v", err)
	}
	if string(data) != "yesterday\n" {
		t.Errorf("rotated content %q", data)
	}

	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading active file: %v", err)
	}
	if string(data) != "today\n" {
		t.Errorf("active content %q", data)
	}

	// A second write on the new day does not rotate again.
	if err := sink.Consume([]byte("still today\n")); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if sink.RotationCount() != 1 {
		t.Errorf("rotation count %d after second write, want 1", sink.RotationCount())
	}
}

func TestDailySinkValidation(t *testing.T) {
	if _, err := NewDailyFileSink("", false); err == nil {
		t.Error("empty path accepted")
	}
}
