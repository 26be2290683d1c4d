package vision

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/decorlens/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func completionServer(t *testing.T, content string, status int, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var req chatRequest
		if assert.NoError(t, json.Unmarshal(body, &req)) && assert.Len(t, req.Messages, 1) {
			parts := req.Messages[0].Content
			if assert.Len(t, parts, 2) {
				assert.Equal(t, "text", parts[0].Type)
				assert.True(t, strings.HasPrefix(parts[1].ImageURL.URL, "data:image/png;base64,"))
			}
		}

		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":"boom"}`))
			return
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{APIKey: "test-key", BaseURL: baseURL, Timeout: 5 * time.Second})
}

func selectionInput() domain.VisionSelectionInput {
	return domain.VisionSelectionInput{
		Image:              pngHeader,
		Style:              domain.StyleModern,
		MaxItems:           2,
		RequiredCategories: []string{"sofa"},
		Candidates: []domain.Candidate{
			{Product: &domain.Product{ID: "p1", Name: "Grey Sofa", Category: "sofa"}, TargetCategory: "sofa"},
		},
	}
}

func TestClient_SelectProducts(t *testing.T) {
	content := "Here you go:\n```json\n{\"selectedProducts\":[{\"id\":\"p1\",\"reason\":\"fits the room\"},{\"id\":\" \",\"reason\":\"x\"}]}\n```"
	server := completionServer(t, content, http.StatusOK, nil)
	defer server.Close()

	picks, err := newTestClient(server.URL).SelectProducts(context.Background(), selectionInput())
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, "p1", picks[0].ID)
	assert.Equal(t, "fits the room", picks[0].Reason)
}

func TestClient_SelectProducts_ServerErrorIsSingleAttempt(t *testing.T) {
	var calls int32
	server := completionServer(t, "", http.StatusInternalServerError, &calls)
	defer server.Close()

	_, err := newTestClient(server.URL).SelectProducts(context.Background(), selectionInput())
	assert.ErrorIs(t, err, domain.ErrVisionUnavailable)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_SelectProducts_MalformedContent(t *testing.T) {
	server := completionServer(t, "I would pick the grey sofa.", http.StatusOK, nil)
	defer server.Close()

	_, err := newTestClient(server.URL).SelectProducts(context.Background(), selectionInput())
	assert.ErrorIs(t, err, domain.ErrVisionResponse)
}

func TestClient_DetectItems(t *testing.T) {
	content := `{"items":[{"number":1,"category":"sofa","description":"grey sofa","color":"grey","style":"modern","position":{"x":40,"y":70}},{"number":2,"category":"","position":{"x":1,"y":1}}]}`
	server := completionServer(t, content, http.StatusOK, nil)
	defer server.Close()

	items, err := newTestClient(server.URL).DetectItems(context.Background(), pngHeader)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Number)
	assert.Equal(t, "sofa", items[0].Category)
	assert.Equal(t, domain.Position{X: 40, Y: 70}, items[0].Position)
}

func TestClient_RequiresImage(t *testing.T) {
	client := newTestClient("http://127.0.0.1:0")
	_, err := client.DetectItems(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestClient_CancelledContext(t *testing.T) {
	server := completionServer(t, `{"items":[]}`, http.StatusOK, nil)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).DetectItems(ctx, pngHeader)
	assert.ErrorIs(t, err, domain.ErrVisionUnavailable)
}

func TestDecodeJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "bare", content: `{"items":[]}`},
		{name: "fenced", content: "```json\n{\"items\":[]}\n```"},
		{name: "prose", content: "Sure! {\"items\":[]} Hope this helps."},
		{name: "garbage", content: "no json here", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload detectionPayload
			err := decodeJSONObject(tt.content, &payload)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrVisionResponse)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBuildSelectionPrompt(t *testing.T) {
	prompt := buildSelectionPrompt(selectionInput())
	assert.Contains(t, prompt, "id=p1")
	assert.Contains(t, prompt, "target=sofa")
	assert.Contains(t, prompt, "up to 2 products")
	assert.Contains(t, prompt, "selectedProducts")
}
