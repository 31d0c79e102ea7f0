package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDirectoryClientGetEmployee(t *testing.T) {
	employeeID := uuid.New()
	departmentID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/employees/"+employeeID.String() {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer service-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + employeeID.String() + `","role":"manager","department_id":"` + departmentID.String() + `"}`))
	}))
	defer server.Close()

	client := NewDirectoryClient(server.URL, "service-token", time.Second)
	employee, err := client.GetEmployee(context.Background(), employeeID)
	if err != nil {
		t.Fatalf("get employee: %v", err)
	}
	if employee.Role != "manager" {
		t.Fatalf("expected role manager, got %s", employee.Role)
	}
	if employee.DepartmentID != departmentID {
		t.Fatalf("department mismatch")
	}
}

func TestDirectoryClientNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewDirectoryClient(server.URL, "", time.Second)
	if _, err := client.GetEmployee(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDirectoryClientDepartmentHeads(t *testing.T) {
	departmentID := uuid.New()
	headA, headB := uuid.New(), uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/departments/"+departmentID.String()+"/heads" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"heads":["` + headA.String() + `","` + headB.String() + `"]}`))
	}))
	defer server.Close()

	client := NewDirectoryClient(server.URL, "", time.Second)
	heads, err := client.DepartmentHeads(context.Background(), departmentID)
	if err != nil {
		t.Fatalf("department heads: %v", err)
	}
	if len(heads) != 2 || heads[0] != headA || heads[1] != headB {
		t.Fatalf("unexpected heads %v", heads)
	}
}
