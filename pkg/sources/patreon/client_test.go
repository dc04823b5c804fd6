package patreon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwaltz/sitesnap/pkg/snapshot"
)

func TestJob_Run(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/campaigns/123456" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"data":{"id":"123456","attributes":{"patron_count":321,"name":"Sunshine"}},"links":{}}`))
	}))
	defer server.Close()

	sink := snapshot.NewSink(t.TempDir(), false)
	job := New(sink, Config{BaseURL: server.URL, CampaignID: "123456"})

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(sink.Dir(), "patreon", "campaign.json"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	// Only the attributes object is persisted, not the envelope.
	want := `{"patron_count":321,"name":"Sunshine"}` + "\n"
	if string(data) != want {
		t.Errorf("output = %s, want %s", data, want)
	}
}
