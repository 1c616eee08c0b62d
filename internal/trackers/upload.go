package trackers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"marquee/internal/logging"
	"marquee/internal/services"
)

const (
	defaultUserAgent   = "marquee/dev"
	defaultHTTPTimeout = 60 * time.Second
)

// UploaderOptions configures an Uploader.
type UploaderOptions struct {
	HTTPClient *http.Client
	UserAgent  string
	Timeout    time.Duration
	// Debug logs the request instead of sending it.
	Debug  bool
	Logger *slog.Logger
}

// Uploader submits tracker forms.
type Uploader struct {
	http      *http.Client
	userAgent string
	debug     bool
	logger    *slog.Logger
}

// NewUploader constructs an Uploader.
func NewUploader(opts UploaderOptions) *Uploader {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Uploader{
		http:      client,
		userAgent: userAgent,
		debug:     opts.Debug,
		logger:    logging.NewComponentLogger(opts.Logger, "upload"),
	}
}

// Response is the JSON body returned by tracker upload APIs.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	URL     string          `json:"torrent_url,omitempty"`
	// Debug is set when the request was only logged.
	Debug bool `json:"-"`
}

// TorrentURL returns the torrent page or download link reported by the tracker.
func (r Response) TorrentURL() string {
	if r.URL != "" {
		return r.URL
	}
	var data string
	if len(r.Data) > 0 && json.Unmarshal(r.Data, &data) == nil && strings.HasPrefix(data, "http") {
		return data
	}
	return ""
}

// Submit posts form as multipart data and decodes the tracker response.
func (u *Uploader) Submit(ctx context.Context, tracker string, form Form) (Response, error) {
	logger := u.logger.With(logging.String(logging.FieldTracker, tracker))
	if u.debug {
		logger.Info("upload skipped in debug mode",
			logging.String("url", form.URL),
			logging.String("fields", strings.Join(sortedKeys(form.Fields), ",")),
			logging.String("name", form.Fields["name"]),
			logging.Int("description_bytes", len(form.Fields["description"])),
		)
		return Response{Success: true, Debug: true}, nil
	}

	body, contentType, err := encodeForm(form)
	if err != nil {
		return Response{}, services.Wrap(services.ErrValidation, tracker, "upload", "encode form", err)
	}

	endpoint := form.URL
	if len(form.Query) > 0 {
		endpoint += "?" + form.Query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return Response{}, services.Wrap(services.ErrConfiguration, tracker, "upload", "build request", withoutQuery(err, form.URL))
	}
	for key, values := range form.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", u.userAgent)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := u.http.Do(req)
	if err != nil {
		return Response{}, services.Wrap(services.ErrTransient, tracker, "upload", "request failed", withoutQuery(err, form.URL))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Response{}, services.Wrap(services.ErrTransient, tracker, "upload", "read response", err)
	}
	if resp.StatusCode >= 400 {
		marker := services.ErrTransient
		if resp.StatusCode < 500 {
			marker = services.ErrValidation
		}
		return Response{}, services.Wrap(marker, tracker, "upload",
			fmt.Sprintf("%s: %s", resp.Status, responseDetail(raw)), nil)
	}

	var payload Response
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Response{}, services.Wrap(services.ErrTransient, tracker, "upload", "decode response: "+responseDetail(raw), err)
	}
	if !payload.Success {
		return payload, services.Wrap(services.ErrValidation, tracker, "upload", "tracker rejected upload: "+payload.Message, nil)
	}
	logger.Info("upload accepted",
		logging.String("torrent_url", payload.TorrentURL()),
		logging.Duration("elapsed", time.Since(started)),
	)
	return payload, nil
}

// withoutQuery replaces the URL carried by a transport error with endpoint,
// which has no query string. The query holds the API token.
func withoutQuery(err error, endpoint string) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	return &url.Error{Op: ue.Op, URL: endpoint, Err: ue.Err}
}

func encodeForm(form Form) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, key := range sortedKeys(form.Fields) {
		if err := w.WriteField(key, form.Fields[key]); err != nil {
			return nil, "", err
		}
	}
	if form.FileField != "" && form.FilePath != "" {
		file, err := os.Open(form.FilePath)
		if err != nil {
			return nil, "", err
		}
		defer file.Close()
		part, err := w.CreateFormFile(form.FileField, filepath.Base(form.FilePath))
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
