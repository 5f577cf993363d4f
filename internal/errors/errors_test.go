package errors

import (
	"fmt"
	"testing"
)

func TestErrorInterface(t *testing.T) {
	err := NewInvalidRequest("content is required")
	want := "INVALID_REQUEST: content is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestNewUnauthenticated_DefaultMessage(t *testing.T) {
	err := NewUnauthenticated("")
	if err.Status != 401 {
		t.Errorf("Status = %d, want 401", err.Status)
	}
	if err.Message == "" {
		t.Error("expected a default message")
	}
}

func TestNewService_FallbackMessage(t *testing.T) {
	err := NewService(502, "")
	if err.Message != "HTTP error 502" {
		t.Errorf("Message = %q, want %q", err.Message, "HTTP error 502")
	}
	if err.Details["http_status"] != 502 {
		t.Errorf("Details[http_status] = %v, want 502", err.Details["http_status"])
	}
}

func TestNewService_ServerMessage(t *testing.T) {
	err := NewService(401, "Token expired")
	if err.Message != "Token expired" {
		t.Errorf("Message = %q, want %q", err.Message, "Token expired")
	}
}

func TestNewDelivery(t *testing.T) {
	err := NewDelivery("tab-1", fmt.Errorf("no receiver"))
	if err.Code != ErrDelivery {
		t.Errorf("Code = %q, want %q", err.Code, ErrDelivery)
	}
	if err.Details["page"] != "tab-1" {
		t.Errorf("Details[page] = %v, want tab-1", err.Details["page"])
	}
}

func TestIs(t *testing.T) {
	err := NewNotFound("pendingSelection")
	if !Is(err, ErrNotFound) {
		t.Error("Is should match ErrNotFound")
	}
	if Is(err, ErrInternal) {
		t.Error("Is should not match ErrInternal")
	}
	if Is(fmt.Errorf("plain"), ErrNotFound) {
		t.Error("Is should not match plain errors")
	}
}
