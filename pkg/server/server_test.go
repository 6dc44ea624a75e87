/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewServerPort(t *testing.T) {
	tests := map[string]int{
		"127.0.0.1:43210": 43210,
		"localhost":       80,
		":8080":           8080,
	}

	for address, expected := range tests {
		server, err := NewServer(address, nil)
		if err != nil {
			t.Errorf("%s: %v", address, err)
			continue
		}

		if server.Port() != expected {
			t.Errorf("%s: expected port %d, got %d", address, expected, server.Port())
		}
	}

	_, err := NewServer("localhost:99999999999999999999", nil)
	if err != ErrInvalidPort {
		t.Errorf("expected ErrInvalidPort, got %v", err)
	}
}

func TestEndpoints(t *testing.T) {
	server, err := NewServer("localhost:0", nil)
	if err != nil {
		t.Fatal(err)
	}

	server.AddEndpointFunc("GET", "/v1/value", func(w http.ResponseWriter, r *http.Request) {
		Respond(w, http.StatusOK, map[string]int{"value": 7})
	})

	handler := server.Handler()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/health", nil))
	if recorder.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/value", nil))
	if recorder.Code != http.StatusOK || recorder.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("value: unexpected response %d %q", recorder.Code, recorder.Header().Get("Content-Type"))
	}

	var body map[string]int
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil || body["value"] != 7 {
		t.Errorf("value: unexpected body %q", recorder.Body.String())
	}

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/missing", nil))
	if recorder.Code != http.StatusNotFound {
		t.Errorf("missing: expected 404, got %d", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("POST", "/v1/value", nil))
	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("value: expected 405 for POST, got %d", recorder.Code)
	}
}
