package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pterm/pterm"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	m.Run()
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer

	err := PrintTable([][]string{{"DATE", "TOTAL"}, {"Jan 1, 2024", "₹425.00"}}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"DATE", "Jan 1, 2024", "₹425.00"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Expected table to contain %q, but got:\n%s", want, buf.String())
		}
	}
}

func TestPrintBarChartSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer

	err := PrintBarChart(&buf, "Hours", []Bar{{Label: "Jan 01"}, {Label: "Jan 02"}})
	if err != nil {
		t.Fatal(err)
	}

	if buf.Len() != 0 {
		t.Errorf("Expected no output, but got: %q", buf.String())
	}

	err = PrintBarChart(&buf, "Hours", []Bar{{Label: "Jan 01", Value: 3}})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "Jan 01") {
		t.Errorf("Expected chart to contain the label, but got: %q", buf.String())
	}
}

func TestNotifier(t *testing.T) {
	var buf bytes.Buffer

	n := &Notifier{Out: &buf}
	n.Success("Session completed", "Earned ₹425.00 in 00:30:00")
	n.Error("Failed to start timer", "")

	out := buf.String()

	for _, want := range []string{
		"Session completed: Earned ₹425.00 in 00:30:00",
		"Failed to start timer",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, but got:\n%s", want, out)
		}
	}
}
