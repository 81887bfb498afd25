package wiki

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLinks(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`
		<div class="wiki">
		  <a href="https://www.reddit.com/r/AirForce/wiki/jobs/3D0X2">Cyber Systems</a>
		  <a href="https://www.reddit.com/r/AirForce/wiki/jobs/1c1x1">ATC</a>
		  <a href="https://example.com/unrelated">elsewhere</a>
		  <a href="https://www.reddit.com/r/AirForce/about">sidebar</a>
		</div>`))
	}))
	defer server.Close()

	table := NewLinkTable(server.URL, "AFSCbot-test", server.Client())
	links, err := table.Links(context.Background())
	if err != nil {
		t.Fatalf("Links returned error: %v", err)
	}

	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d: %v", len(links), links)
	}
	if links["3D0X2"] != "https://www.reddit.com/r/AirForce/wiki/jobs/3D0X2" {
		t.Fatalf("unexpected 3D0X2 link: %s", links["3D0X2"])
	}
	if links["1C1X1"] != "https://www.reddit.com/r/AirForce/wiki/jobs/1c1x1" {
		t.Fatalf("keys must be uppercased: %v", links)
	}
}

func TestLinksBadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	table := NewLinkTable(server.URL, "AFSCbot-test", server.Client())
	if _, err := table.Links(context.Background()); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
}
