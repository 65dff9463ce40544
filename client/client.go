package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	dispodto "SiDispo/dto/disposisi"
	"SiDispo/models"
)

// APIError - error HTTP dari server, membawa status code agar pemanggil
// bisa membedakan 404 (tidak ada) dari 409 (keadaan tidak sah).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound - helper untuk cabang 404 di sisi view
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

func IsConflict(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusConflict
}

// envelope - bentuk standar response server
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

// Client - SDK tipis di atas REST API disposisi
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient membuat client baru. baseURL adalah alamat server tanpa
// suffix /api.
func NewClient(baseURL, token string) *Client {
	if baseURL != "" && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}

	return &Client{
		baseURL: fmt.Sprintf("%s/api", baseURL),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// do - eksekusi request, buka envelope, decode field data ke out
func (c *Client) do(method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Add("Authorization", "Bearer "+c.token)
	if contentType != "" {
		req.Header.Add("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{StatusCode: resp.StatusCode, Message: string(raw)}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return nil
}

func (c *Client) postJSON(path string, payload interface{}, out interface{}) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	return c.do(http.MethodPost, path, bytes.NewReader(buf), "application/json", out)
}

// GetDetail - GET /disposisi/{role}/{id}
func (c *Client) GetDetail(role models.Role, id string) (*dispodto.DisposisiResponse, error) {
	var out dispodto.DisposisiResponse
	path := fmt.Sprintf("/disposisi/%s/%s", role, id)
	if err := c.do(http.MethodGet, path, nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Terima - POST /disposisi/{role}/{id}/terima
func (c *Client) Terima(role models.Role, id string) (*dispodto.DisposisiResponse, error) {
	var out dispodto.DisposisiResponse
	path := fmt.Sprintf("/disposisi/%s/%s/terima", role, id)
	if err := c.do(http.MethodPost, path, nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Teruskan - POST /disposisi/atasan/{role}/teruskan/{id}
func (c *Client) Teruskan(role models.Role, id string, req dispodto.ForwardDisposisiRequest) (*dispodto.DisposisiResponse, error) {
	var out dispodto.DisposisiResponse
	path := fmt.Sprintf("/disposisi/atasan/%s/teruskan/%s", role, id)
	if err := c.postJSON(path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBawahan - GET /disposisi/atasan/list-bawahan
func (c *Client) ListBawahan() ([]dispodto.BawahanResponse, error) {
	var out []dispodto.BawahanResponse
	if err := c.do(http.MethodGet, "/disposisi/atasan/list-bawahan", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FeedbackAttachment - lampiran feedback yang dibangun di memori,
// supaya pemotongan 5 file terjadi sebelum payload dibuat.
type FeedbackAttachment struct {
	FileName string
	Content  []byte
}

// CapFeedbackFiles - potong daftar lampiran ke batas keras 5 file.
// Sisanya dibuang diam-diam; payload yang terkirim tidak pernah
// membawa lebih dari 5.
func CapFeedbackFiles(files []FeedbackAttachment) []FeedbackAttachment {
	if len(files) > models.MaxFeedbackFiles {
		return files[:models.MaxFeedbackFiles]
	}
	return files
}

func writeAttachments(w *multipart.Writer, field string, files []FeedbackAttachment) error {
	for _, f := range files {
		part, err := w.CreateFormFile(field, f.FileName)
		if err != nil {
			return err
		}
		if _, err := part.Write(f.Content); err != nil {
			return err
		}
	}
	return nil
}

// KirimFeedback - POST multipart /disposisi/{role}/{id}/feedback
func (c *Client) KirimFeedback(role models.Role, id, notes string, status models.FeedbackStatus, files []FeedbackAttachment) (*dispodto.FeedbackResponse, error) {
	files = CapFeedbackFiles(files)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("notes", notes); err != nil {
		return nil, err
	}
	if err := w.WriteField("status", string(status)); err != nil {
		return nil, err
	}
	if err := writeAttachments(w, "feedback_files", files); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var out dispodto.FeedbackResponse
	path := fmt.Sprintf("/disposisi/%s/%s/feedback", role, id)
	if err := c.do(http.MethodPost, path, &buf, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FeedbackSaya - GET /disposisi/{role}/feedback/mine
func (c *Client) FeedbackSaya(role models.Role) ([]dispodto.FeedbackResponse, error) {
	var out []dispodto.FeedbackResponse
	path := fmt.Sprintf("/disposisi/%s/feedback/mine", role)
	if err := c.do(http.MethodGet, path, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetFeedback - GET /disposisi/{role}/feedback/{feedbackId}
func (c *Client) GetFeedback(role models.Role, feedbackID string) (*dispodto.FeedbackResponse, error) {
	var out dispodto.FeedbackResponse
	path := fmt.Sprintf("/disposisi/%s/feedback/%s", role, feedbackID)
	if err := c.do(http.MethodGet, path, nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFeedback - PUT multipart /disposisi/{role}/feedback/{feedbackId}
func (c *Client) UpdateFeedback(role models.Role, feedbackID, notes string, status models.FeedbackStatus, newFiles []FeedbackAttachment, removeFileIDs []uint) (*dispodto.FeedbackResponse, error) {
	newFiles = CapFeedbackFiles(newFiles)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("notes", notes); err != nil {
		return nil, err
	}
	if err := w.WriteField("status", string(status)); err != nil {
		return nil, err
	}
	for _, id := range removeFileIDs {
		if err := w.WriteField("remove_file_ids", strconv.FormatUint(uint64(id), 10)); err != nil {
			return nil, err
		}
	}
	if err := writeAttachments(w, "new_feedback_files", newFiles); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var out dispodto.FeedbackResponse
	path := fmt.Sprintf("/disposisi/%s/feedback/%s", role, feedbackID)
	if err := c.do(http.MethodPut, path, &buf, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FeedbackBawahan - GET /disposisi/{role}/{id}/feedback-bawahan
func (c *Client) FeedbackBawahan(role models.Role, id string) ([]dispodto.FeedbackResponse, error) {
	var out []dispodto.FeedbackResponse
	path := fmt.Sprintf("/disposisi/%s/%s/feedback-bawahan", role, id)
	if err := c.do(http.MethodGet, path, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnduhPDF - GET /disposisi/{id}/pdf, mengikuti redirect ke S3 dan
// mengembalikan isi berkas.
func (c *Client) UnduhPDF(id string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/disposisi/%s/pdf", c.baseURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	return io.ReadAll(resp.Body)
}
