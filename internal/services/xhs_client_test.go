package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripnote/pkg/utils"
)

func newTestXhsClient(baseURL string) *XhsClient {
	return &XhsClient{
		HTTP:           &http.Client{Timeout: 5 * time.Second},
		BaseURL:        baseURL,
		OcrImageCap:    5,
		OcrConcurrency: 3,
	}
}

func TestFetchPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "http://xhslink.com/abc", r.PostForm.Get("xhs_url"))
		fmt.Fprint(w, `{"status":"success","code":200,"data":{"title":"成都三日游","desc":"攻略正文","images":["https://img.example.com/1.jpg"]}}`)
	}))
	defer server.Close()

	client := newTestXhsClient(server.URL)
	post, err := client.FetchPost(context.Background(), "http://xhslink.com/abc")

	require.NoError(t, err)
	assert.Equal(t, "成都三日游", post.Title)
	assert.Equal(t, "攻略正文", post.Body)
	assert.Equal(t, []string{"https://img.example.com/1.jpg"}, post.Images)
}

func TestFetchPostUpstreamError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"error status", `{"status":"error","code":500,"message":"link expired"}`},
		{"missing data", `{"status":"success","code":200}`},
		{"missing desc", `{"status":"success","code":200,"data":{"title":"t","images":[]}}`},
		{"missing images", `{"status":"success","code":200,"data":{"title":"t","desc":"d"}}`},
		{"not json", `<html>gateway timeout</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := newTestXhsClient(server.URL)
			_, err := client.FetchPost(context.Background(), "http://xhslink.com/abc")
			assert.ErrorIs(t, err, utils.ErrUpstreamFailure)
		})
	}
}

func TestFetchOcrTextsCapsImageCount(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, `{"status":"success","code":200,"data":{"ParsedText":"Day 1 宽窄巷子"}}`)
	}))
	defer server.Close()

	client := newTestXhsClient(server.URL)
	images := make([]string, 8)
	for i := range images {
		images[i] = fmt.Sprintf("https://img.example.com/%d.jpg", i)
	}

	texts := client.FetchOcrTexts(context.Background(), images)

	assert.Len(t, texts, 5)
	assert.Equal(t, int32(5), atomic.LoadInt32(&hits))
	for _, text := range texts {
		assert.Equal(t, "Day 1 宽窄巷子", text)
	}
}

func TestFetchOcrTextsFailureSentinels(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1:
			w.WriteHeader(http.StatusInternalServerError)
		case 2:
			fmt.Fprint(w, `{"status":"success","code":200,"data":{"ParsedText":""}}`)
		default:
			fmt.Fprint(w, `{"status":"success","code":200,"data":{"ParsedText":"识别出的文字"}}`)
		}
	}))
	defer server.Close()

	client := newTestXhsClient(server.URL)
	client.OcrConcurrency = 1 // keep request order deterministic

	texts := client.FetchOcrTexts(context.Background(), []string{
		"https://img.example.com/1.jpg",
		"https://img.example.com/2.jpg",
		"https://img.example.com/3.jpg",
	})

	require.Len(t, texts, 3)
	assert.Equal(t, "OCR 失败", texts[0])
	assert.Equal(t, "OCR 未能识别文本", texts[1])
	assert.Equal(t, "识别出的文字", texts[2])
}

func TestFetchOcrTextsEmptyInput(t *testing.T) {
	client := newTestXhsClient("http://unused.invalid")
	texts := client.FetchOcrTexts(context.Background(), nil)
	assert.Empty(t, texts)
}
