package main

import (
	"bytes"
	"errors"
	"net"
	"net/http/httptest"
	"strings"
	"syscall"
	"testing"

	"github.com/muurk/custdesk/internal/customer"
	"github.com/muurk/custdesk/internal/devserver"
	"github.com/muurk/custdesk/internal/manager"
)

func newDevManager(t *testing.T, seed bool) (*manager.Manager, *devserver.Store) {
	t.Helper()

	store := devserver.NewStore()
	if seed {
		store.Seed()
	}
	srv := httptest.NewServer(devserver.New(devserver.Config{}, store).Handler())
	t.Cleanup(srv.Close)

	return manager.New(customer.NewClient(srv.URL + devserver.BasePath)), store
}

func TestUpdateRecord_OverlaysChangedFields(t *testing.T) {
	mgr, store := newDevManager(t, true)

	record, err := updateRecord(mgr, "2", map[customer.FieldKey]string{
		customer.FieldAddress: "9 Quay St",
	})
	if err != nil {
		t.Fatalf("updateRecord() error = %v", err)
	}
	if record.Address != "9 Quay St" || record.Name != "Ben Okafor" {
		t.Errorf("sent record = %+v", record)
	}
	if got := mgr.Status(); got.Text != manager.MsgUpdated || got.IsError() {
		t.Errorf("Status = %v, want %q", got, manager.MsgUpdated)
	}

	stored, err := store.Get(2)
	if err != nil {
		t.Fatalf("Get(2) error = %v", err)
	}
	want := customer.Customer{ID: 2, Name: "Ben Okafor", Email: "ben@example.com", Contact: "555-0102", Gender: customer.GenderMale, Address: "9 Quay St"}
	if stored != want {
		t.Errorf("stored = %+v, want %+v", stored, want)
	}
	if mgr.Editing() {
		t.Error("manager should be back in create mode")
	}
}

func TestUpdateRecord_IDIsNotOverlaid(t *testing.T) {
	mgr, store := newDevManager(t, true)

	if _, err := updateRecord(mgr, "1", map[customer.FieldKey]string{
		customer.FieldID:   "7",
		customer.FieldName: "Ana S.",
	}); err != nil {
		t.Fatalf("updateRecord() error = %v", err)
	}

	if stored, _ := store.Get(1); stored.Name != "Ana S." {
		t.Errorf("stored name = %q, want %q", stored.Name, "Ana S.")
	}
	if _, err := store.Get(7); err == nil {
		t.Error("record 7 should not exist")
	}
}

func TestUpdateRecord_UnknownID(t *testing.T) {
	mgr, store := newDevManager(t, true)

	if _, err := updateRecord(mgr, "99", map[customer.FieldKey]string{
		customer.FieldName: "Nobody",
	}); err != nil {
		t.Fatalf("updateRecord() error = %v", err)
	}

	if got := mgr.Status(); !got.IsError() || got.Text != manager.MsgNotFound {
		t.Errorf("Status = %v, want error %q", got, manager.MsgNotFound)
	}
	if mgr.Editing() {
		t.Error("a failed lookup must not enter edit mode")
	}
	if len(store.List()) != 3 {
		t.Errorf("store changed: %d records", len(store.List()))
	}
}

func TestUpdateRecord_InvalidGender(t *testing.T) {
	mgr, _ := newDevManager(t, true)

	_, err := updateRecord(mgr, "1", map[customer.FieldKey]string{
		customer.FieldGender: "OTHER",
	})
	if err == nil {
		t.Fatal("updateRecord() should reject an unknown gender")
	}
	if mgr.Submitting() {
		t.Error("nothing should have been submitted")
	}
}

func TestWriteJSON_EmptyCollection(t *testing.T) {
	mgr, _ := newDevManager(t, false)
	mgr.Drive(mgr.Init())

	var buf bytes.Buffer
	if err := writeJSON(&buf, mgr.Customers()); err != nil {
		t.Fatalf("writeJSON() error = %v", err)
	}
	if got := buf.String(); got != "[]\n" {
		t.Errorf("output = %q, want %q", got, "[]\n")
	}
}

func TestWriteJSON_Record(t *testing.T) {
	var buf bytes.Buffer
	c := customer.Customer{ID: 5, Name: "Ana", Email: "a@x.com", Contact: "123", Gender: customer.GenderFemale, Address: "Rd 1"}
	if err := writeJSON(&buf, c); err != nil {
		t.Fatalf("writeJSON() error = %v", err)
	}

	for _, want := range []string{`"id": 5`, `"name": "Ana"`, `"gender": "FEMALE"`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %s:\n%s", want, buf.String())
		}
	}
}

func TestFailureHints(t *testing.T) {
	refused := customer.ClassifyNetworkError("list", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED})

	tests := []struct {
		name  string
		cause error
		want  []string
	}{
		{name: "no cause", cause: nil, want: nil},
		{
			name:  "connection refused",
			cause: refused,
			want:  []string{"Service refused connection - is it running?", "custdesk scan"},
		},
		{
			name:  "server error",
			cause: customer.NewHTTPError("add", 500, "boom"),
			want:  []string{"Service error (HTTP 500)", "--log-level debug"},
		},
		{
			name:  "bad payload",
			cause: customer.NewParseError("list", errors.New("unexpected token")),
			want:  []string{"Failed to parse service response", "may not point at a customer service"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hints := failureHints(tt.cause)
			if len(hints) != len(tt.want) {
				t.Fatalf("failureHints() = %q, want %d hints", hints, len(tt.want))
			}
			for i, want := range tt.want {
				if !strings.Contains(hints[i], want) {
					t.Errorf("hint %d = %q, want it to contain %q", i, hints[i], want)
				}
			}
		})
	}
}

func TestFailureHints_FromManager(t *testing.T) {
	mgr := manager.New(customer.NewClient("http://127.0.0.1:1/customerapi"))
	mgr.Drive(mgr.Refresh())

	if mgr.LastError() == nil {
		t.Fatal("LastError() should hold the transport failure")
	}
	hints := failureHints(mgr.LastError())
	if len(hints) != 2 || !strings.Contains(hints[1], "custdesk config show") {
		t.Errorf("failureHints() = %q", hints)
	}
}

func TestLogOutput_OneShotUsesStderr(t *testing.T) {
	output, err := logOutput(false)
	if err != nil {
		t.Fatalf("logOutput(false) error = %v", err)
	}
	if output != "stderr" {
		t.Errorf("logOutput(false) = %q, want stderr", output)
	}
}
