package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Goutamdhanani/30-days-challenge/internal/engine"
)

func planJSON(t *testing.T, days int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(`{"title":"Learn Go","days":[`)
	for i := 1; i <= days; i++ {
		if i > 1 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"dayNumber":%d,"tasks":[{"title":"Task %d"}]}`, i, i)
	}
	b.WriteString("]}")
	return b.String()
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := DefaultConfig("test-key")
	cfg.BaseURL = srv.URL
	return NewClient(cfg, nil), srv
}

func messagesBody(text string) string {
	blob, _ := json.Marshal(map[string]any{
		"content": []map[string]string{{"type": "text", "text": text}},
	})
	return string(blob)
}

func TestGeneratePlanParsesResponse(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		fmt.Fprint(w, messagesBody(planJSON(t, 30)))
	})

	plan, err := c.GeneratePlan(context.Background(), "learn go")
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if gotPath != "/v1/messages" {
		t.Fatalf("path = %q, want /v1/messages", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("x-api-key = %q", gotKey)
	}
	if gotVersion != "2023-06-01" {
		t.Fatalf("anthropic-version = %q", gotVersion)
	}
	if plan.Title != "Learn Go" {
		t.Fatalf("title = %q", plan.Title)
	}
	if len(plan.Days) != 30 {
		t.Fatalf("days = %d, want 30", len(plan.Days))
	}
	if plan.Days[0].Tasks[0].Title != "Task 1" {
		t.Fatalf("first task = %q", plan.Days[0].Tasks[0].Title)
	}
}

func TestGeneratePlanStripsFence(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fenced := "```json\n" + planJSON(t, 30) + "\n```"
		fmt.Fprint(w, messagesBody(fenced))
	})

	plan, err := c.GeneratePlan(context.Background(), "learn go")
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if len(plan.Days) != 30 {
		t.Fatalf("days = %d, want 30", len(plan.Days))
	}
}

func TestGeneratePlanWrongDayCount(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, messagesBody(planJSON(t, 12)))
	})

	_, err := c.GeneratePlan(context.Background(), "learn go")
	var shapeErr engine.PlanShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("want PlanShapeError, got %v", err)
	}
}

func TestGeneratePlanServerError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusTooManyRequests)
	})

	if _, err := c.GeneratePlan(context.Background(), "learn go"); err == nil {
		t.Fatal("want error on 429 response")
	}
}

func TestGeneratePlanMalformedJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, messagesBody("Sure! Here is your plan: not json at all"))
	})

	if _, err := c.GeneratePlan(context.Background(), "learn go"); err == nil {
		t.Fatal("want error on non-JSON model output")
	}
}

func TestGeneratePlanMissingKey(t *testing.T) {
	c := NewClient(Config{}, nil)
	if _, err := c.GeneratePlan(context.Background(), "learn go"); err == nil {
		t.Fatal("want error without api key")
	}
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"prose", `Here you go: {"a":{"b":2}} hope it helps`, `{"a":{"b":2}}`},
		{"fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"unbalanced", `{"a":1`, ""},
		{"empty", "", ""},
		{"no object", "just words", ""},
	}
	for _, tc := range cases {
		if got := ExtractJSONObject(tc.in); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
