package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	dispodto "SiDispo/dto/disposisi"
	"SiDispo/models"
)

func writeEnvelope(w http.ResponseWriter, code int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	status := "success"
	if code >= 400 {
		status = "error"
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func TestTerimaSendsBearerTokenToRightPath(t *testing.T) {
	var gotMethod, gotPath, gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, "ok", dispodto.DisposisiResponse{ID: "d1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token123")
	if _, err := c.Terima(models.RoleKabid, "d1"); err != nil {
		t.Fatalf("Terima: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotPath != "/api/disposisi/kabid/d1/terima" {
		t.Errorf("path = %s", gotPath)
	}
	if gotAuth != "Bearer token123" {
		t.Errorf("auth header = %q", gotAuth)
	}
}

func TestTeruskanSendsWirePayload(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		writeEnvelope(w, http.StatusOK, "ok", dispodto.DisposisiResponse{ID: "d1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t")
	_, err := c.Teruskan(models.RoleKabid, "d1", dispodto.ForwardDisposisiRequest{
		DiteruskanKepadaUserID: 42,
		CatatanAtasan:          "segera tindak lanjuti",
	})
	if err != nil {
		t.Fatalf("Teruskan: %v", err)
	}

	if gotPath != "/api/disposisi/atasan/kabid/teruskan/d1" {
		t.Errorf("path = %s", gotPath)
	}
	if got := gotBody["diteruskan_kepada_user_id"]; got != float64(42) {
		t.Errorf("diteruskan_kepada_user_id = %v", got)
	}
	if got := gotBody["catatan_atasan"]; got != "segera tindak lanjuti" {
		t.Errorf("catatan_atasan = %v", got)
	}
}

// Memilih 7 file berarti tepat 5 yang menempel di payload multipart.
func TestKirimFeedbackCapsAttachmentsAtFive(t *testing.T) {
	var gotFiles []string
	var gotNotes, gotStatus string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotNotes = r.FormValue("notes")
		gotStatus = r.FormValue("status")
		for _, fh := range r.MultipartForm.File["feedback_files"] {
			gotFiles = append(gotFiles, fh.Filename)
		}
		writeEnvelope(w, http.StatusCreated, "created", dispodto.FeedbackResponse{ID: "f1"})
	}))
	defer srv.Close()

	files := make([]FeedbackAttachment, 0, 7)
	for i := 0; i < 7; i++ {
		files = append(files, FeedbackAttachment{
			FileName: fmt.Sprintf("lampiran-%d.pdf", i),
			Content:  []byte("isi"),
		})
	}

	c := NewClient(srv.URL, "t")
	_, err := c.KirimFeedback(models.RoleStaff, "d1", "sudah ditindaklanjuti", models.FeedbackDiproses, files)
	if err != nil {
		t.Fatalf("KirimFeedback: %v", err)
	}

	if len(gotFiles) != models.MaxFeedbackFiles {
		t.Fatalf("attached files = %d, want %d", len(gotFiles), models.MaxFeedbackFiles)
	}
	// Yang terkirim adalah 5 file pertama
	for i, name := range gotFiles {
		want := fmt.Sprintf("lampiran-%d.pdf", i)
		if name != want {
			t.Errorf("file[%d] = %s, want %s", i, name, want)
		}
	}
	if gotNotes != "sudah ditindaklanjuti" {
		t.Errorf("notes = %q", gotNotes)
	}
	if gotStatus != "diproses" {
		t.Errorf("status = %q", gotStatus)
	}
}

func TestUpdateFeedbackSendsRemoveIDsAndNewFiles(t *testing.T) {
	var gotRemove []string
	var gotNew int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotRemove = r.MultipartForm.Value["remove_file_ids"]
		gotNew = len(r.MultipartForm.File["new_feedback_files"])
		writeEnvelope(w, http.StatusOK, "ok", dispodto.FeedbackResponse{ID: "f1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t")
	_, err := c.UpdateFeedback(models.RoleStaff, "f1", "revisi", models.FeedbackSelesai,
		[]FeedbackAttachment{{FileName: "baru.pdf", Content: []byte("x")}},
		[]uint{3, 7},
	)
	if err != nil {
		t.Fatalf("UpdateFeedback: %v", err)
	}

	if len(gotRemove) != 2 || gotRemove[0] != "3" || gotRemove[1] != "7" {
		t.Errorf("remove_file_ids = %v", gotRemove)
	}
	if gotNew != 1 {
		t.Errorf("new_feedback_files count = %d, want 1", gotNew)
	}
}

func TestAPIErrorCarriesStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusConflict, "Disposisi tidak dalam keadaan bisa diterima", nil)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t")
	_, err := c.Terima(models.RoleKabid, "d1")
	if err == nil {
		t.Fatal("expected error")
	}

	if !IsConflict(err) {
		t.Errorf("IsConflict = false for %v", err)
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.Message != "Disposisi tidak dalam keadaan bisa diterima" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, "Disposisi tidak ditemukan", nil)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "t")
	_, err := c.GetDetail(models.RoleStaff, "hilang")
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false for %v", err)
	}
}

func TestNewClientNormalizesBaseURL(t *testing.T) {
	c := NewClient("http://example.com/", "t")
	if c.baseURL != "http://example.com/api" {
		t.Errorf("baseURL = %s", c.baseURL)
	}
}
