package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"patient-intake/internal/platform/ratelimit"
)

// MaxUploadSize is the provider-side limit for one image (free tier).
const MaxUploadSize = 5 * 1024 * 1024

// SpaceClient extracts text from document images through the OCR.space API.
type SpaceClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
}

func NewSpaceClient(apiKey, baseURL string, minInterval time.Duration) *SpaceClient {
	return &SpaceClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		limiter: ratelimit.New(minInterval),
	}
}

type parseResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

// ExtractText uploads one image and returns the recognized text.
func (c *SpaceClient) ExtractText(ctx context.Context, image []byte, fileName string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("OCR API key not configured")
	}
	if len(image) > MaxUploadSize {
		return "", fmt.Errorf("image too large: %d bytes (max %d)", len(image), MaxUploadSize)
	}

	c.limiter.Wait()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"apikey":            c.apiKey,
		"language":          "eng",
		"ocrengine":         "2",
		"detectorientation": "true",
		"scale":             "true",
		"istable":           "true",
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return "", err
		}
	}

	part, err := writer.CreateFormFile("image", fileName)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(image); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "OCR request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OCR API error: %s - %s", resp.Status, string(respBody))
	}

	var result parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrap(err, "decode OCR response")
	}
	if result.IsErroredOnProcessing {
		return "", fmt.Errorf("OCR processing error: %s", string(result.ErrorMessage))
	}
	if len(result.ParsedResults) == 0 {
		return "", nil
	}
	return result.ParsedResults[0].ParsedText, nil
}
