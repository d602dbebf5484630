package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanshpreet5618/Helios/core/insight"
	"github.com/vanshpreet5618/Helios/schema"
)

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		model   string
		wantErr bool
	}{
		{name: "http", url: "http://localhost:11434", model: "flan-t5-base"},
		{name: "trailing slash", url: "https://gen.example.com/", model: "m"},
		{name: "missing scheme", url: "localhost:11434", model: "m", wantErr: true},
		{name: "ftp", url: "ftp://host", model: "m", wantErr: true},
		{name: "empty model", url: "http://localhost", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.url, tt.model, time.Second)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.model, c.Model())
		})
	}
}

func TestGenerate(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(generateResponse{Response: "Sales are rising. Keep inventory ready.", Done: true})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "flan-t5-base", time.Second)
	require.NoError(t, err)

	text, err := c.Generate(context.Background(), "Data: x. Question: y.", 150)
	require.NoError(t, err)
	assert.Equal(t, "Sales are rising. Keep inventory ready.", text)
	assert.Equal(t, "flan-t5-base", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, 150, got.Options.NumPredict)
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "model not loaded", http.StatusInternalServerError)
			},
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("{not json"))
			},
		},
		{
			name: "error field",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(generateResponse{Error: "model not found"})
			},
		},
		{
			name: "blank response",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(generateResponse{Response: "   ", Done: true})
			},
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				time.Sleep(200 * time.Millisecond)
				_ = json.NewEncoder(w).Encode(generateResponse{Response: "late"})
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			c, err := NewClient(srv.URL, "m", 50*time.Millisecond)
			require.NoError(t, err)
			_, err = c.Generate(context.Background(), "p", 10)
			assert.Error(t, err)
		})
	}
}

func TestSynthesizerFallsBackWhenServerFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "m", time.Second)
	require.NoError(t, err)

	out := insight.NewSynthesizer(c, nil).Run(context.Background(), schema.InsightContext{
		Summary: "Overall churn rate: 26.5%",
		Query:   "What drives churn?",
	})
	assert.Equal(t, schema.TemplateTier, out.Tier)
	assert.Equal(t, insight.ChurnTemplate, out.Text)
}

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "m", time.Second)
	require.NoError(t, err)
	assert.NoError(t, c.Probe(context.Background()))

	srv.Close()
	assert.Error(t, c.Probe(context.Background()))
}

func TestConnect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[{"name":"flan-t5-base"}]}`))
	}))
	ctx := context.Background()

	c, err := Connect(ctx, srv.URL, "flan-t5-base", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "flan-t5-base", c.Model())

	_, err = Connect(ctx, "localhost:11434", "flan-t5-base", time.Second)
	assert.Error(t, err)

	srv.Close()
	_, err = Connect(ctx, srv.URL, "flan-t5-base", time.Second)
	assert.ErrorContains(t, err, "generator unreachable")
}
