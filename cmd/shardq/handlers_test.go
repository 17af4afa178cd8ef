package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dreamware/shardq/internal/api"
	"github.com/dreamware/shardq/internal/coordinator"
	"github.com/dreamware/shardq/internal/record"
)

func testServer(t *testing.T) *server {
	t.Helper()
	coord, err := coordinator.New(3, 2, coordinator.WithPicker(coordinator.NewPicker(1)))
	if err != nil {
		t.Fatalf("coordinator: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	return newServer(coord, logger)
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// TestHandleSaveAndQuery tests the save/query round trip over HTTP
func TestHandleSaveAndQuery(t *testing.T) {
	srv := testServer(t)
	h := srv.routes()

	for id := int64(1); id <= 5; id++ {
		age := 25
		if id%2 == 0 {
			age = 40
		}
		w := post(t, h, "/records", api.SaveRequest{Record: record.Record{
			"id":  record.Int64(id),
			"age": record.Int(age),
		}})
		if w.Code != http.StatusNoContent {
			t.Fatalf("save status = %d", w.Code)
		}
	}

	w := post(t, h, "/query", api.QueryRequest{
		Page:     0,
		PageSize: 10,
		Filter:   record.Where("age", record.OpGt, record.Int(30)),
		Sort:     record.By("id"),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("query status = %d: %s", w.Code, w.Body.String())
	}

	var resp api.QueryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("count = %d, want 2 (ids 2 and 4)", resp.Count)
	}
	if id, _ := resp.Records[0].Get("id").AsInt64(); id != 2 {
		t.Errorf("first record id = %d, want 2", id)
	}
}

// TestHandleQueryValidation tests bad requests
func TestHandleQueryValidation(t *testing.T) {
	srv := testServer(t)
	h := srv.routes()

	t.Run("bad json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader([]byte("{")))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("missing sort", func(t *testing.T) {
		w := post(t, h, "/query", api.QueryRequest{Page: 0, PageSize: 10})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("bad page size", func(t *testing.T) {
		w := post(t, h, "/query", api.QueryRequest{PageSize: 0, Sort: record.By("id")})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("empty record", func(t *testing.T) {
		w := post(t, h, "/records", api.SaveRequest{})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

// TestHandleStatusAndToggle tests shard administration over HTTP
func TestHandleStatusAndToggle(t *testing.T) {
	srv := testServer(t)
	h := srv.routes()

	w := post(t, h, "/shards/toggle", api.ToggleRequest{Shard: 1, Online: false})
	if w.Code != http.StatusNoContent {
		t.Fatalf("toggle status = %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status status = %d", rec.Code)
	}

	var resp api.StatusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if resp.Replication != 2 || len(resp.Shards) != 3 {
		t.Fatalf("status = %+v", resp)
	}
	if resp.Shards[1].Online {
		t.Error("shard 1 should be offline after toggle")
	}

	w = post(t, h, "/shards/toggle", api.ToggleRequest{Shard: 99, Online: true})
	if w.Code != http.StatusBadRequest {
		t.Errorf("toggle of unknown shard: status = %d, want 400", w.Code)
	}
}
