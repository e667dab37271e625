package monitoring

import (
	"fmt"
	"strings"
	"testing"
)

func TestSetLoggerRedirects(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})

	Logf("imported %d points", 7)

	if len(got) != 1 || !strings.Contains(got[0], "imported 7 points") {
		t.Errorf("got %v", got)
	}
}

func TestSetLoggerNilMutes(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) { called = true })
	SetLogger(nil)

	Logf("should go nowhere")

	if called {
		t.Error("muted logger still reached the previous sink")
	}
}

func TestDefaultLoggerUsable(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf is nil by default")
	}
}
