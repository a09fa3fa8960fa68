package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aetheris-dev/aetheris"
	"github.com/aetheris-dev/aetheris/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_EnvelopeError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":1001,"message":"tool disabled","data":null,"timestamp":1}`))
	}))
	defer srv.Close()

	client := api.New(api.WithBaseURL(srv.URL))
	_, err := client.Tools(context.Background())

	require.ErrorIs(t, err, aetheris.ErrAPI)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 1001, apiErr.Code)
	assert.Equal(t, "tool disabled", apiErr.Message)
	assert.Equal(t, "api: code 1001: tool disabled", err.Error())
}

func TestClient_HTTPErrorDetail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"tool not found"}`))
	}))
	defer srv.Close()

	client := api.New(api.WithBaseURL(srv.URL))
	_, err := client.Tool(context.Background(), "missing")

	require.ErrorIs(t, err, aetheris.ErrHTTPStatus)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "tool not found", apiErr.Message)
}

func TestClient_HTTPErrorNonJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down\n"))
	}))
	defer srv.Close()

	client := api.New(api.WithBaseURL(srv.URL))
	_, err := client.Health(context.Background())

	require.ErrorIs(t, err, aetheris.ErrHTTPStatus)
	assert.Equal(t, "api: HTTP 502: upstream down", err.Error())
}

func TestClient_MalformedEnvelope(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	client := api.New(api.WithBaseURL(srv.URL))
	_, err := client.Health(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api: decode response")
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	client := api.New(api.WithBaseURL(srv.URL), api.WithTimeout(20*time.Millisecond))
	_, err := client.Health(context.Background())

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/system/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"code":0,"data":{"status":"healthy","cache":{"size":2}}}`))
	}))
	defer srv.Close()

	client := api.New(api.WithBaseURL(srv.URL))
	h, err := client.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, float64(2), h.Cache["size"])
}

func TestNavigation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/system/navigation", r.URL.Path)
		_, _ = w.Write([]byte(`{"code":0,"data":[{"id":"json","label":"JSON","type":"category","children":[{"id":"json_formatter","label":"JSON Formatter","type":"tool"}]}]}`))
	}))
	defer srv.Close()

	client := api.New(api.WithBaseURL(srv.URL))
	nodes, err := client.Navigation(context.Background())

	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "category", nodes[0].Type)
	require.Len(t, nodes[0].Children, 1)
	assert.Equal(t, "json_formatter", nodes[0].Children[0].ID)
}

func TestExecuteTool(t *testing.T) {
	t.Parallel()

	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tools/json_formatter/execute", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(`{"code":0,"data":{"success":true,"output":"{}"}}`))
	}))
	defer srv.Close()

	client := api.New(api.WithBaseURL(srv.URL))
	out, err := client.ExecuteTool(context.Background(), aetheris.ToolJSONFormatter,
		aetheris.FormatJSONParams("{ }", 2, true), false)

	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"output":"{}"}`, string(out))
	assert.Equal(t, false, captured["cache"])
	params := captured["params"].(map[string]any)
	assert.Equal(t, "{ }", params["input"])
	assert.Equal(t, float64(2), params["indent"])
	assert.Equal(t, true, params["sort_keys"])
}

func TestExecuteTool_EmptyID(t *testing.T) {
	t.Parallel()

	client := api.New(api.WithBaseURL("http://127.0.0.1:0"))
	_, err := client.ExecuteTool(context.Background(), "", nil, true)

	assert.ErrorIs(t, err, aetheris.ErrValidation)
}

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tools/code_generator/generate", r.URL.Path)
		var req aetheris.CodeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://example.com", req.Content)
		assert.Equal(t, aetheris.CodeTypeQR, req.CodeType)
		assert.Equal(t, "H", req.QRErrorCorrect)
		_, _ = w.Write([]byte(`{"code":0,"data":{"success":true,"content":"https://example.com","base64":"iVBO","format":"PNG","width":290,"height":290}}`))
	}))
	defer srv.Close()

	client := api.New(api.WithBaseURL(srv.URL))
	res, err := client.GenerateCode(context.Background(), aetheris.CodeRequest{
		Content:        "https://example.com",
		CodeType:       aetheris.CodeTypeQR,
		QRErrorCorrect: "H",
	})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "iVBO", res.Image)
	assert.Equal(t, 290, res.Width)
}

func TestGenerateCode_InvalidRequest(t *testing.T) {
	t.Parallel()

	client := api.New(api.WithBaseURL("http://127.0.0.1:0"))
	_, err := client.GenerateCode(context.Background(), aetheris.CodeRequest{Content: "x", QRErrorCorrect: "Z"})

	assert.ErrorIs(t, err, aetheris.ErrValidation)
}

func TestGenerateCodeBatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tools/code_generator/generate_batch", r.URL.Path)
		var req aetheris.BatchCodeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Items, 2)
		assert.Equal(t, 4, req.MaxConcurrent)
		_, _ = w.Write([]byte(`{"code":0,"data":{"success":true,"total":2,"success_count":1,"fail_count":1,"results":[{"success":true,"content":"a"},{"success":false,"content":"b","error":"bad"}]}}`))
	}))
	defer srv.Close()

	client := api.New(api.WithBaseURL(srv.URL))
	res, err := client.GenerateCodeBatch(context.Background(), aetheris.BatchCodeRequest{
		Items:         []aetheris.CodeRequest{{Content: "a"}, {Content: "b"}},
		MaxConcurrent: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, "bad", res.Results[1].Error)
}

func TestGenerateCodeBatch_OmitsEmptyItemContent(t *testing.T) {
	t.Parallel()

	bodies := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		bodies <- body
		_, _ = w.Write([]byte(`{"code":0,"data":{"success":true,"total":1,"success_count":1,"results":[{"success":true,"content":"shared"}]}}`))
	}))
	defer srv.Close()

	client := api.New(api.WithBaseURL(srv.URL))
	_, err := client.GenerateCodeBatch(context.Background(), aetheris.BatchCodeRequest{
		Items:        []aetheris.CodeRequest{{CodeType: aetheris.CodeTypeQR}},
		CommonConfig: &aetheris.CodeRequest{Content: "shared"},
	})
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"items":[{"code_type":"qrcode"}],"common_config":{"content":"shared"}}`,
		string(<-bodies))
}

func TestGenerateCodeBatch_InvalidCommonConfigNotSent(t *testing.T) {
	t.Parallel()

	client := api.New(api.WithBaseURL("http://127.0.0.1:1"))
	_, err := client.GenerateCodeBatch(context.Background(), aetheris.BatchCodeRequest{
		Items:        []aetheris.CodeRequest{{Content: "a"}},
		CommonConfig: &aetheris.CodeRequest{QRErrorCorrect: "Z"},
	})
	require.ErrorIs(t, err, aetheris.ErrValidation)
}

func TestGenerateCodeWithTemplate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tools/code_generator/generate_with_template", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "hello", r.FormValue("content"))
		assert.Equal(t, "barcode", r.FormValue("code_type"))
		assert.Equal(t, "code128", r.FormValue("barcode_format"))
		assert.Equal(t, "10", r.FormValue("position_x"))
		assert.Equal(t, "20", r.FormValue("position_y"))
		assert.Equal(t, "0.4", r.FormValue("barcode_width"))
		assert.Empty(t, r.FormValue("qr_box_size"))

		f, hdr, err := r.FormFile("template")
		if assert.NoError(t, err) {
			defer f.Close()
			data, _ := io.ReadAll(f)
			assert.Equal(t, "card.png", hdr.Filename)
			assert.Equal(t, "PNGDATA", string(data))
		}
		_, _ = w.Write([]byte(`{"code":0,"data":{"success":true,"content":"hello","base64":"abc"}}`))
	}))
	defer srv.Close()

	client := api.New(api.WithBaseURL(srv.URL))
	res, err := client.GenerateCodeWithTemplate(context.Background(), aetheris.CodeRequest{
		Content:       "hello",
		CodeType:      aetheris.CodeTypeBarcode,
		BarcodeFormat: "code128",
		BarcodeWidth:  0.4,
		PositionX:     10,
		PositionY:     20,
	}, aetheris.Template{Filename: "/tmp/card.png", Body: bytes.NewReader([]byte("PNGDATA"))})

	require.NoError(t, err)
	assert.Equal(t, "abc", res.Image)
}

func TestGenerateCodeWithTemplate_MissingTemplate(t *testing.T) {
	t.Parallel()

	client := api.New(api.WithBaseURL("http://127.0.0.1:0"))
	_, err := client.GenerateCodeWithTemplate(context.Background(), aetheris.CodeRequest{Content: "x"}, aetheris.Template{})

	assert.ErrorIs(t, err, aetheris.ErrValidation)
}

func TestCodeFormats(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tools/code_generator/formats", r.URL.Path)
		_, _ = w.Write([]byte(`{"code":0,"data":{"barcode_formats":["code128","ean13"],"qrcode_error_correct":["L","M","Q","H"],"output_formats":["PNG","JPEG"]}}`))
	}))
	defer srv.Close()

	client := api.New(api.WithBaseURL(srv.URL))
	f, err := client.CodeFormats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"code128", "ean13"}, f.BarcodeFormats)
	assert.Equal(t, aetheris.QRErrorCorrections, f.QRErrorCorrect)
	assert.Equal(t, []string{"PNG", "JPEG"}, f.OutputFormats)
}
