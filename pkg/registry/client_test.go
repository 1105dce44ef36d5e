package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestClient points an HTTPClient at a test server with short
// timeouts and no real credentials.
func newTestClient(t *testing.T, server *httptest.Server) *HTTPClient {
	t.Helper()
	return &HTTPClient{
		baseURL:         server.URL,
		apiKey:          "test-key",
		httpClient:      server.Client(),
		logger:          testLogger(),
		listTimeout:     5 * time.Second,
		downloadTimeout: 5 * time.Second,
	}
}

func TestListSkipsWithdrawnFilings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"metadata": {"status": "200", "resultset": {"count": 3}},
			"results": [
				{"docID": "S100AAA1", "filerName": "A社", "docTypeCode": "120", "pdfFlag": "1", "withdrawalStatus": "0"},
				{"docID": "S100AAA2", "filerName": "B社", "docTypeCode": "120", "pdfFlag": "1", "withdrawalStatus": "1"},
				{"docID": "S100AAA3", "filerName": "C社", "docTypeCode": "120", "pdfFlag": "0", "withdrawalStatus": "0"}
			]
		}`))
	}))
	defer server.Close()

	filings, err := newTestClient(t, server).List(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(filings) != 2 {
		t.Fatalf("List() = %d filings, want 2 (withdrawn skipped)", len(filings))
	}
	if filings[0].DocID != "S100AAA1" || filings[1].DocID != "S100AAA3" {
		t.Errorf("List() ids = %s, %s", filings[0].DocID, filings[1].DocID)
	}
	if !filings[0].HasPDF || filings[1].HasPDF {
		t.Errorf("pdfFlag decoding wrong: %+v", filings)
	}
}

func TestListInternalStatusFormats(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(error) bool
	}{
		{
			name:  "metadata status 404",
			body:  `{"metadata": {"status": "404", "message": "not found"}}`,
			check: IsNotFound,
		},
		{
			name:  "top-level statusCode 401",
			body:  `{"statusCode": 401, "message": "invalid subscription key"}`,
			check: IsAuthentication,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body)) // HTTP 200 with an internal error
			}))
			defer server.Close()

			_, err := newTestClient(t, server).List(context.Background(), time.Now())
			if err == nil || !tt.check(err) {
				t.Errorf("List() error = %v, classification check failed", err)
			}
		})
	}
}

func TestListAuthErrorNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"message": "unauthorized"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient(t, server).List(context.Background(), time.Now())
	if !IsAuthentication(err) {
		t.Fatalf("List() error = %v, want AuthenticationError", err)
	}
	if calls != 1 {
		t.Errorf("server called %d times, want 1 (no retry on auth)", calls)
	}
}

func TestFetchRejectsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json;charset=utf-8")
		w.Write([]byte(`{"metadata": {"status": "404", "message": "document not found"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server).Fetch(context.Background(), "S100ZZZZ", KindPDF)
	if !IsNotFound(err) {
		t.Fatalf("Fetch() error = %v, want NotFoundError from JSON body", err)
	}
}

func TestFetchReturnsBinaryBody(t *testing.T) {
	payload := []byte("%PDF-1.7 content")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "2" {
			t.Errorf("type param = %s, want 2", got)
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(payload)
	}))
	defer server.Close()

	data, err := newTestClient(t, server).Fetch(context.Background(), "S100ABCD", KindPDF)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("Fetch() = %q, want %q", data, payload)
	}
}

func TestFetchKindExt(t *testing.T) {
	if got := KindPDF.Ext(); got != ".pdf" {
		t.Errorf("KindPDF.Ext() = %s, want .pdf", got)
	}
	for _, kind := range []FetchKind{KindXBRL, KindAttachments, KindEnglish, KindCSV} {
		if got := kind.Ext(); got != ".zip" {
			t.Errorf("kind %d Ext() = %s, want .zip", kind, got)
		}
	}
}
