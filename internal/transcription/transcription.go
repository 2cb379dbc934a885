package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"call-quality-go/internal/config"
	"call-quality-go/internal/logger"
)

// ErrMissingAudio means the request carried no audio payload. Fatal to the
// pipeline, same as an upstream failure.
var ErrMissingAudio = errors.New("missing audio input")

// UpstreamError is a non-success response from the speech-to-text service.
// There is no content to recover from, so it always fails the pipeline.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("transcription service returned status %d: %s", e.StatusCode, e.Body)
}

// Client uploads call recordings to a Whisper-style transcription endpoint.
type Client struct {
	cfg        config.Config
	httpClient *http.Client
	log        *logrus.Entry
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.UpstreamTimeout},
		log:        logger.WithComponent("transcription"),
	}
}

// verbose_json is required; the plain response has no duration field.
type transcribeResponse struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

// Transcribe uploads the recording and returns the transcript text and the
// call duration in whole seconds. The file name is a service-side hint only.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType, fileName string) (string, int, error) {
	if c.cfg.TranscriptionKey == "" {
		return "", 0, config.ErrMissingTranscriptionKey
	}
	if len(audio) == 0 {
		return "", 0, ErrMissingAudio
	}

	body, contentType, err := buildMultipart(audio, mimeType, fileName, c.cfg.TranscriptionModel)
	if err != nil {
		return "", 0, fmt.Errorf("build upload: %w", err)
	}
	c.log.WithFields(logrus.Fields{
		"file_name": fileName,
		"mime_type": mimeType,
		"bytes":     len(audio),
	}).Info("uploading audio for transcription")

	var out transcribeResponse
	var lastErr error
	op := func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.cfg.UpstreamTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.cfg.TranscriptionURL, bytes.NewReader(body))
		if err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+c.cfg.TranscriptionKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			lastErr = &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
			if resp.StatusCode < 500 {
				return backoff.Permanent(lastErr)
			}
			return lastErr
		}
		if err := json.Unmarshal(respBody, &out); err != nil {
			lastErr = &UpstreamError{StatusCode: resp.StatusCode, Body: string(respBody)}
			return backoff.Permanent(lastErr)
		}
		lastErr = nil
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.cfg.UpstreamTimeout
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		c.log.WithError(lastErr).Error("transcription failed")
		return "", 0, lastErr
	}

	c.log.WithFields(logrus.Fields{
		"chars":            len(out.Text),
		"duration_seconds": int(out.Duration),
	}).Info("transcription received")
	return out.Text, int(out.Duration), nil
}

func buildMultipart(audio []byte, mimeType, fileName, model string) ([]byte, string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	h.Set("Content-Type", mimeType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(audio); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("model", model); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("response_format", "verbose_json"); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return b.Bytes(), w.FormDataContentType(), nil
}
