package backend

import (
	"context"
	"net/http"
	"testing"
)

func TestPrimeCapturesCookieAndEchoesHeader(t *testing.T) {
	var gotHeader, gotCookie string

	mux := http.NewServeMux()
	mux.HandleFunc("/analyze/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "tok-123", Path: "/"})
		w.Write([]byte(`<html><body>form page</body></html>`))
	})
	mux.HandleFunc("/api/feedback/", func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-CSRFToken")
		if ck, err := r.Cookie("csrftoken"); err == nil {
			gotCookie = ck.Value
		}
		w.WriteHeader(http.StatusCreated)
	})

	client, _ := newTestClient(t, mux)

	if err := client.PrimeCSRF(context.Background()); err != nil {
		t.Fatalf("PrimeCSRF: %v", err)
	}
	if got := client.Token(); got != "tok-123" {
		t.Fatalf("Token() = %q, want tok-123", got)
	}

	if err := client.SubmitFeedback(context.Background(), "abc", 5); err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}
	if gotHeader != "tok-123" {
		t.Errorf("X-CSRFToken header = %q, want the primed cookie value", gotHeader)
	}
	if gotCookie != "tok-123" {
		t.Errorf("csrftoken cookie = %q, want tok-123", gotCookie)
	}
}

func TestPrimeScrapesHiddenInputWhenNoCookie(t *testing.T) {
	var gotHeader string

	mux := http.NewServeMux()
	mux.HandleFunc("/analyze/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<form method="post">
				<input type="hidden" name="csrfmiddlewaretoken" value="scraped-tok">
			</form>
		</body></html>`))
	})
	mux.HandleFunc("/api/feedback/", func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-CSRFToken")
		w.WriteHeader(http.StatusCreated)
	})

	client, _ := newTestClient(t, mux)

	if err := client.PrimeCSRF(context.Background()); err != nil {
		t.Fatalf("PrimeCSRF: %v", err)
	}
	if got := client.Token(); got != "scraped-tok" {
		t.Fatalf("Token() = %q, want scraped-tok", got)
	}

	if err := client.SubmitFeedback(context.Background(), "abc", 3); err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}
	if gotHeader != "scraped-tok" {
		t.Errorf("X-CSRFToken header = %q, want the scraped token", gotHeader)
	}
}

func TestPrimeFailsWhenPageCarriesNoToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>nothing to see</body></html>`))
	})

	client, _ := newTestClient(t, mux)

	if err := client.PrimeCSRF(context.Background()); err == nil {
		t.Error("expected error when neither cookie nor hidden input is present")
	}
}

func TestPostWithoutTokenOmitsHeader(t *testing.T) {
	headerPresent := false

	mux := http.NewServeMux()
	mux.HandleFunc("/api/feedback/", func(w http.ResponseWriter, r *http.Request) {
		_, headerPresent = r.Header["X-Csrftoken"]
		w.WriteHeader(http.StatusCreated)
	})

	client, _ := newTestClient(t, mux)

	if err := client.SubmitFeedback(context.Background(), "abc", 2); err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}
	if headerPresent {
		t.Error("X-CSRFToken header must be omitted when no token is known")
	}
}

func TestPrimeServiceError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client, _ := newTestClient(t, mux)

	err := client.PrimeCSRF(context.Background())
	if err == nil {
		t.Fatal("expected error for non-2xx prime response")
	}
	if IsTransport(err) {
		t.Error("an answered prime failure is not a transport error")
	}
}
