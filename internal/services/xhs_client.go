package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"tripnote/pkg/utils"
)

// RawPost is a normalized third-party post: immutable once fetched.
type RawPost struct {
	Title  string
	Body   string
	Images []string
}

const (
	ocrFailedText       = "OCR 失败"
	ocrNothingFoundText = "OCR 未能识别文本"
)

type PostFetcher interface {
	// FetchPost resolves a share link to the post content.
	FetchPost(ctx context.Context, shareURL string) (*RawPost, error)
	// FetchOcrTexts runs OCR over a bounded prefix of the images and returns
	// one entry per processed image, index-aligned with the input. Individual
	// failures become sentinel strings; the batch itself never fails.
	FetchOcrTexts(ctx context.Context, images []string) []string
}

type XhsClient struct {
	HTTP           *http.Client
	BaseURL        string
	OcrImageCap    int
	OcrConcurrency int
}

func NewXhsClient() *XhsClient {
	base := os.Getenv("XHS_RESOLVER_URL")
	if base == "" {
		base = "https://tools.mgtv100.com/external/v1/pear"
	}
	return &XhsClient{
		HTTP:           &http.Client{Timeout: 15 * time.Second},
		BaseURL:        base,
		OcrImageCap:    5,
		OcrConcurrency: 3,
	}
}

type resolverPostPayload struct {
	Status string `json:"status"`
	Code   int    `json:"code"`
	Msg    string `json:"message"`
	Data   *struct {
		Title  string    `json:"title"`
		Desc   *string   `json:"desc"`
		Images *[]string `json:"images"`
	} `json:"data"`
}

type resolverOcrPayload struct {
	Status string `json:"status"`
	Code   int    `json:"code"`
	Data   *struct {
		ParsedText string `json:"ParsedText"`
	} `json:"data"`
}

func (c *XhsClient) FetchPost(ctx context.Context, shareURL string) (*RawPost, error) {
	form := url.Values{}
	form.Set("xhs_url", shareURL)

	var payload resolverPostPayload
	if err := c.postForm(ctx, c.BaseURL+"/xhsImg", form, &payload); err != nil {
		return nil, err
	}

	if payload.Status != "success" || payload.Code != 200 {
		return nil, fmt.Errorf("%w: resolver returned status=%q code=%d msg=%q",
			utils.ErrUpstreamFailure, payload.Status, payload.Code, payload.Msg)
	}
	if payload.Data == nil || payload.Data.Desc == nil || payload.Data.Images == nil {
		return nil, fmt.Errorf("%w: resolver response missing desc/images", utils.ErrUpstreamFailure)
	}

	return &RawPost{
		Title:  payload.Data.Title,
		Body:   *payload.Data.Desc,
		Images: *payload.Data.Images,
	}, nil
}

func (c *XhsClient) FetchOcrTexts(ctx context.Context, images []string) []string {
	if len(images) > c.OcrImageCap {
		images = images[:c.OcrImageCap]
	}
	if len(images) == 0 {
		return []string{}
	}

	texts := make([]string, len(images))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.OcrConcurrency)

	for i, imageURL := range images {
		g.Go(func() error {
			texts[i] = c.recognizeImage(gctx, imageURL)
			return nil
		})
	}
	g.Wait()

	return texts
}

func (c *XhsClient) recognizeImage(ctx context.Context, imageURL string) string {
	form := url.Values{}
	form.Set("ocr_url", imageURL)

	var payload resolverOcrPayload
	if err := c.postForm(ctx, c.BaseURL+"/ocr", form, &payload); err != nil {
		log.Printf("OCR request failed for %s: %v", imageURL, err)
		return ocrFailedText
	}
	if payload.Status != "success" || payload.Code != 200 || payload.Data == nil {
		return ocrFailedText
	}
	if payload.Data.ParsedText == "" {
		return ocrNothingFoundText
	}
	return payload.Data.ParsedText
}

func (c *XhsClient) postForm(ctx context.Context, endpoint string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: resolver bad status %s", utils.ErrUpstreamFailure, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: resolver decode: %v", utils.ErrUpstreamFailure, err)
	}
	return nil
}
