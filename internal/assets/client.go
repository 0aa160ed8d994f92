package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// SetImageRequest attaches one image from the storefront to a game
// field. Image is the scheme-less partial URL the listing carries.
type SetImageRequest struct {
	Image  string
	GameID int64
	Slug   string
	Field  string // "cover" or "gallery"
}

// Client fetches an image from the storefront's CDN and posts it to the
// CMS upload endpoint as a multipart form, tagged with the target
// entity linkage the receiver expects.
type Client struct {
	UploadURL   string
	ImagePrefix string // completes partial URLs, normally "https:"
	HTTP        *http.Client
	Log         *zap.Logger
}

func NewClient(uploadURL, imagePrefix string, log *zap.Logger) *Client {
	return &Client{
		UploadURL:   uploadURL,
		ImagePrefix: imagePrefix,
		HTTP:        &http.Client{Timeout: 30 * time.Second},
		Log:         log,
	}
}

func (c *Client) SetImage(ctx context.Context, req SetImageRequest) error {
	data, err := c.fetchImage(ctx, c.ImagePrefix+req.Image+".jpg")
	if err != nil {
		return fmt.Errorf("fetch %s image: %w", req.Field, err)
	}

	filename := req.Slug + ".jpg"

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	_ = w.WriteField("refId", strconv.FormatInt(req.GameID, 10))
	_ = w.WriteField("ref", "game")
	_ = w.WriteField("field", req.Field)
	part, err := w.CreateFormFile("files", filename)
	if err != nil {
		return fmt.Errorf("build form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}

	c.Log.Info("uploading image",
		zap.String("field", req.Field),
		zap.String("file", filename))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.UploadURL, &body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload status %d: %s", resp.StatusCode, string(b))
	}
	return nil
}

func (c *Client) fetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
