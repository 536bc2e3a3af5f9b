package assert

import (
	"errors"
	"strings"
	"testing"

	"github.com/prysmaticlabs/gasper/testing/assertions"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestAssert_Equal(t *testing.T) {
	tests := []struct {
		name        string
		expected    interface{}
		actual      interface{}
		msg         []interface{}
		expectedErr string
	}{
		{
			name:     "equal values",
			expected: 42,
			actual:   42,
		},
		{
			name:        "non-equal values",
			expected:    42,
			actual:      41,
			expectedErr: "Values are not equal, want: 42 (int), got: 41 (int)",
		},
		{
			name:        "custom error message",
			expected:    42,
			actual:      41,
			msg:         []interface{}{"Custom values are not equal"},
			expectedErr: "Custom values are not equal, want: 42 (int), got: 41 (int)",
		},
		{
			name:        "custom error message with params",
			expected:    42,
			actual:      41,
			msg:         []interface{}{"Custom values are not equal (for slot %d)", 12},
			expectedErr: "Custom values are not equal (for slot 12), want: 42 (int), got: 41 (int)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := &assertions.TBMock{}
			Equal(tb, tt.expected, tt.actual, tt.msg...)
			if tt.expectedErr == "" && tb.ErrorfMsg != "" {
				t.Errorf("unexpected error: %q", tb.ErrorfMsg)
			}
			if !strings.Contains(tb.ErrorfMsg, tt.expectedErr) {
				t.Errorf("got: %q, want: %q", tb.ErrorfMsg, tt.expectedErr)
			}
		})
	}
}

func TestAssert_DeepEqual(t *testing.T) {
	type container struct {
		Slot  uint64
		Roots [][]byte
	}
	tb := &assertions.TBMock{}
	DeepEqual(tb, container{Slot: 1, Roots: [][]byte{{1}}}, container{Slot: 1, Roots: [][]byte{{1}}})
	if tb.ErrorfMsg != "" {
		t.Errorf("unexpected error: %q", tb.ErrorfMsg)
	}
	DeepEqual(tb, container{Slot: 1}, container{Slot: 2})
	if !strings.Contains(tb.ErrorfMsg, "Values are not equal") {
		t.Errorf("got: %q", tb.ErrorfMsg)
	}
	if !strings.Contains(tb.ErrorfMsg, "Slot") {
		t.Errorf("diff does not name the differing field: %q", tb.ErrorfMsg)
	}
}

func TestAssert_NoError(t *testing.T) {
	tb := &assertions.TBMock{}
	NoError(tb, nil)
	if tb.ErrorfMsg != "" {
		t.Errorf("unexpected error: %q", tb.ErrorfMsg)
	}
	NoError(tb, errors.New("failed"), "Custom %s", "message")
	if !strings.Contains(tb.ErrorfMsg, "Custom message: failed") {
		t.Errorf("got: %q", tb.ErrorfMsg)
	}
}

func TestAssert_ErrorContains(t *testing.T) {
	tb := &assertions.TBMock{}
	ErrorContains(tb, "missing parent", errors.New("block has missing parent"))
	if tb.ErrorfMsg != "" {
		t.Errorf("unexpected error: %q", tb.ErrorfMsg)
	}
	ErrorContains(tb, "missing parent", nil)
	if !strings.Contains(tb.ErrorfMsg, "Expected error not returned, got: <nil>, want: missing parent") {
		t.Errorf("got: %q", tb.ErrorfMsg)
	}
}

func TestAssert_NotNil(t *testing.T) {
	tb := &assertions.TBMock{}
	var nilPtr *int
	NotNil(tb, nilPtr)
	if !strings.Contains(tb.ErrorfMsg, "Unexpected nil value") {
		t.Errorf("got: %q", tb.ErrorfMsg)
	}
	tb = &assertions.TBMock{}
	NotNil(tb, 1)
	if tb.ErrorfMsg != "" {
		t.Errorf("unexpected error: %q", tb.ErrorfMsg)
	}
}

func TestAssert_LogsContain(t *testing.T) {
	hook := test.NewGlobal()
	logrus.WithField("rule", "double vote").Info("Slashing evidence found")

	tb := &assertions.TBMock{}
	LogsContain(tb, hook, "evidence found")
	if tb.ErrorfMsg != "" {
		t.Errorf("unexpected error: %q", tb.ErrorfMsg)
	}
	LogsContain(tb, hook, "double vote")
	if tb.ErrorfMsg != "" {
		t.Errorf("field values should be searched: %q", tb.ErrorfMsg)
	}
	LogsDoNotContain(tb, hook, "evidence found")
	if !strings.Contains(tb.ErrorfMsg, "Unexpected log found") {
		t.Errorf("got: %q", tb.ErrorfMsg)
	}
}
