package client

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	dispodto "SiDispo/dto/disposisi"
	"SiDispo/models"
)

// stubAPI - server disposisi mini dengan state yang bisa digerakkan
// oleh handler terima/teruskan, meniru kontrak wire sebenarnya.
type stubAPI struct {
	t        *testing.T
	detail   dispodto.DisposisiResponse
	bawahan  []dispodto.FeedbackResponse
	calls    int64
	notFound bool
}

func (s *stubAPI) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&s.calls, 1)

		switch {
		case s.notFound:
			writeEnvelope(w, http.StatusNotFound, "Disposisi tidak ditemukan", nil)

		case strings.HasSuffix(r.URL.Path, "/feedback-bawahan"):
			if s.bawahan == nil {
				writeEnvelope(w, http.StatusNotFound, "belum ada feedback", nil)
				return
			}
			writeEnvelope(w, http.StatusOK, "ok", s.bawahan)

		case strings.HasSuffix(r.URL.Path, "/terima") && r.Method == http.MethodPost:
			// Server menggerakkan kedua kolom status
			s.detail.StatusDariKabid = models.StatusDiterima
			s.detail.Status = models.StatusDiproses
			writeEnvelope(w, http.StatusOK, "Disposisi diterima", s.detail)

		case strings.Contains(r.URL.Path, "/teruskan/") && r.Method == http.MethodPost:
			s.detail.StatusDariKabid = models.StatusDiteruskan
			s.detail.StatusDariBawahan = models.StatusBelumDibaca
			writeEnvelope(w, http.StatusOK, "Disposisi diteruskan", s.detail)

		case r.Method == http.MethodGet:
			writeEnvelope(w, http.StatusOK, "ok", s.detail)

		default:
			writeEnvelope(w, http.StatusNotFound, "route tidak dikenal", nil)
		}
	})
}

func newSession(t *testing.T, stub *stubAPI, role models.Role) (*DetailSession, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)
	return NewDetailSession(NewClient(srv.URL, "t"), role, stub.detail.ID), srv
}

func TestMuatMengisiRecordDanGate(t *testing.T) {
	stub := &stubAPI{t: t, detail: dispodto.DisposisiResponse{
		ID:              "d1",
		Status:          models.StatusDibaca,
		StatusDariKabid: models.StatusDibaca,
	}}
	s, _ := newSession(t, stub, models.RoleKabid)

	if err := s.Muat(); err != nil {
		t.Fatalf("Muat: %v", err)
	}

	if s.Record() == nil {
		t.Fatal("record nil after Muat")
	}
	if !s.BisaTerima() {
		t.Error("BisaTerima = false untuk status dibaca")
	}
	if s.BisaTeruskan() {
		t.Error("BisaTeruskan = true sebelum diterima")
	}
}

// Skenario ujung-ke-ujung: terima menggeser gate dari accept ke forward.
func TestTerimaMenggeserGateKeForward(t *testing.T) {
	stub := &stubAPI{t: t, detail: dispodto.DisposisiResponse{
		ID:              "d1",
		Status:          models.StatusDibaca,
		StatusDariKabid: models.StatusDibaca,
	}}
	s, _ := newSession(t, stub, models.RoleKabid)

	if err := s.Muat(); err != nil {
		t.Fatalf("Muat: %v", err)
	}
	if err := s.Terima(); err != nil {
		t.Fatalf("Terima: %v", err)
	}

	// State berasal dari refetch GET, bukan dari response POST
	if s.BisaTerima() {
		t.Error("BisaTerima masih true setelah diterima")
	}
	if !s.BisaTeruskan() {
		t.Error("BisaTeruskan = false setelah diterima")
	}
}

func TestTerimaDitolakGateTanpaRequest(t *testing.T) {
	stub := &stubAPI{t: t, detail: dispodto.DisposisiResponse{
		ID:              "d1",
		Status:          models.StatusBelumDibaca,
		StatusDariKabid: models.StatusBelumDibaca,
	}}
	s, _ := newSession(t, stub, models.RoleKabid)

	if err := s.Muat(); err != nil {
		t.Fatalf("Muat: %v", err)
	}
	before := atomic.LoadInt64(&stub.calls)

	if err := s.Terima(); err != ErrAksiTidakSah {
		t.Fatalf("err = %v, want ErrAksiTidakSah", err)
	}

	if got := atomic.LoadInt64(&stub.calls); got != before {
		t.Errorf("ada %d request keluar padahal gate menolak", got-before)
	}
}

// Teruskan tanpa tujuan: validasi lokal gagal, nol request jaringan.
func TestTeruskanTanpaTujuanTidakMenyentuhJaringan(t *testing.T) {
	stub := &stubAPI{t: t, detail: dispodto.DisposisiResponse{
		ID:              "d1",
		Status:          models.StatusDiproses,
		StatusDariKabid: models.StatusDiterima,
	}}
	s, _ := newSession(t, stub, models.RoleKabid)

	if err := s.Muat(); err != nil {
		t.Fatalf("Muat: %v", err)
	}
	before := atomic.LoadInt64(&stub.calls)

	if err := s.Teruskan(0, "catatan"); err != ErrTujuanKosong {
		t.Fatalf("err = %v, want ErrTujuanKosong", err)
	}

	if got := atomic.LoadInt64(&stub.calls); got != before {
		t.Errorf("ada %d request keluar untuk submit tanpa tujuan", got-before)
	}
	if s.TeruskanErr() != ErrTujuanKosong {
		t.Errorf("TeruskanErr = %v", s.TeruskanErr())
	}
}

func TestTeruskanSuksesMenutupPanelDanRefetch(t *testing.T) {
	stub := &stubAPI{t: t, detail: dispodto.DisposisiResponse{
		ID:              "d1",
		Status:          models.StatusDiproses,
		StatusDariKabid: models.StatusDiterima,
	}}
	s, _ := newSession(t, stub, models.RoleKabid)

	if err := s.Muat(); err != nil {
		t.Fatalf("Muat: %v", err)
	}
	if !s.BukaPanelTeruskan() {
		t.Fatal("BukaPanelTeruskan = false")
	}

	if err := s.Teruskan(42, "lanjutkan"); err != nil {
		t.Fatalf("Teruskan: %v", err)
	}

	if s.ActivePanel() != PanelNone {
		t.Error("panel masih terbuka setelah sukses")
	}
	if got := s.Record().StatusDariKabid; got != models.StatusDiteruskan {
		t.Errorf("StatusDariKabid = %s setelah refetch", got)
	}
	if s.BisaTeruskan() {
		t.Error("BisaTeruskan masih true setelah diteruskan (harus terminal)")
	}
	if s.BisaTerima() {
		t.Error("BisaTerima kembali true setelah diteruskan")
	}
}

func TestDetail404AdalahTerminal(t *testing.T) {
	stub := &stubAPI{t: t, notFound: true, detail: dispodto.DisposisiResponse{ID: "hilang"}}
	s, _ := newSession(t, stub, models.RoleStaff)

	if err := s.Muat(); err != nil {
		t.Fatalf("Muat harus nil untuk 404, got %v", err)
	}
	if !s.NotFound() {
		t.Fatal("NotFound = false")
	}
	if s.Record() != nil {
		t.Error("record masih terisi pada keadaan not-found")
	}

	// Muat berikutnya tidak mencoba ulang
	before := atomic.LoadInt64(&stub.calls)
	if err := s.Muat(); err != nil {
		t.Fatalf("Muat kedua: %v", err)
	}
	if got := atomic.LoadInt64(&stub.calls); got != before {
		t.Errorf("Muat setelah not-found tetap memanggil server (%d request)", got-before)
	}
}

// 404 pada daftar feedback bawahan berarti kosong, bukan kegagalan.
func TestFeedbackBawahan404DiperlakukanKosong(t *testing.T) {
	stub := &stubAPI{t: t, detail: dispodto.DisposisiResponse{
		ID:              "d1",
		Status:          models.StatusDiproses,
		StatusDariKabid: models.StatusDiteruskan,
	}, bawahan: nil}
	s, _ := newSession(t, stub, models.RoleKabid)

	if err := s.Muat(); err != nil {
		t.Fatalf("Muat: %v", err)
	}

	if s.MuatErr() != nil {
		t.Errorf("MuatErr = %v", s.MuatErr())
	}
	if len(s.FeedbackBawahan()) != 0 {
		t.Errorf("FeedbackBawahan = %d entri", len(s.FeedbackBawahan()))
	}
	if s.Record() == nil {
		t.Error("record ikut hilang gara-gara feedback bawahan 404")
	}
}

func TestPanelSalingEksklusif(t *testing.T) {
	stub := &stubAPI{t: t, detail: dispodto.DisposisiResponse{
		ID:              "d1",
		Status:          models.StatusDiproses,
		StatusDariKabid: models.StatusDiterima,
	}}
	s, _ := newSession(t, stub, models.RoleKabid)

	if err := s.Muat(); err != nil {
		t.Fatalf("Muat: %v", err)
	}

	if !s.BukaPanelTeruskan() {
		t.Fatal("BukaPanelTeruskan = false")
	}

	// Panel teruskan masih terbuka: form feedback tidak boleh ikut muncul
	if s.BukaPanelFeedback() {
		t.Error("BukaPanelFeedback = true padahal panel teruskan masih terbuka")
	}
	if s.ActivePanel() != PanelTeruskan {
		t.Errorf("panel = %d, panel lama harus tetap terbuka", s.ActivePanel())
	}

	// Setelah ditutup eksplisit, barulah panel lain bisa dibuka
	s.TutupPanel()
	if !s.BukaPanelFeedback() {
		t.Fatal("BukaPanelFeedback = false setelah panel teruskan ditutup")
	}
	if s.ActivePanel() != PanelFeedback {
		t.Errorf("panel = %d, want PanelFeedback", s.ActivePanel())
	}
}

// Dua invokasi executor tidak boleh berjalan bersamaan: yang kedua
// ditolak tanpa request selama yang pertama masih di jalan.
func TestExecutorKeduaDitolakSelamaInFlight(t *testing.T) {
	stub := &stubAPI{t: t, detail: dispodto.DisposisiResponse{
		ID:              "d1",
		Status:          models.StatusDibaca,
		StatusDariKabid: models.StatusDibaca,
	}}

	masuk := make(chan struct{})
	lanjut := make(chan struct{})
	var terimaCalls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/terima") {
			atomic.AddInt64(&terimaCalls, 1)
			masuk <- struct{}{}
			<-lanjut
		}
		stub.handler().ServeHTTP(w, r)
	}))
	defer srv.Close()

	s := NewDetailSession(NewClient(srv.URL, "t"), models.RoleKabid, "d1")
	if err := s.Muat(); err != nil {
		t.Fatalf("Muat: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Terima() }()
	<-masuk // request pertama sudah sampai di server

	if err := s.Terima(); err != ErrSedangDiproses {
		t.Errorf("Terima kedua: err = %v, want ErrSedangDiproses", err)
	}
	if !s.Loading() {
		t.Error("Loading = false selama executor in-flight")
	}

	close(lanjut)
	if err := <-done; err != nil {
		t.Fatalf("Terima pertama: %v", err)
	}
	if got := atomic.LoadInt64(&terimaCalls); got != 1 {
		t.Errorf("server menerima %d request terima, want 1", got)
	}
}

func TestRoleTanpaKolomStatusTidakPunyaAksi(t *testing.T) {
	stub := &stubAPI{t: t, detail: dispodto.DisposisiResponse{
		ID:              "d1",
		Status:          models.StatusDibaca,
		StatusDariKabid: models.StatusDibaca,
	}}
	s, _ := newSession(t, stub, models.RoleAdmin)

	if err := s.Muat(); err != nil {
		t.Fatalf("Muat: %v", err)
	}

	if s.BisaTerima() || s.BisaTeruskan() || s.BisaKirimFeedback() {
		t.Error("role tanpa kolom status mendapat aksi")
	}
}

func TestErrorServerMempertahankanState(t *testing.T) {
	stub := &stubAPI{t: t, detail: dispodto.DisposisiResponse{
		ID:              "d1",
		Status:          models.StatusDibaca,
		StatusDariKabid: models.StatusDibaca,
	}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/terima") {
			writeEnvelope(w, http.StatusConflict, "Disposisi tidak dalam keadaan bisa diterima", nil)
			return
		}
		stub.handler().ServeHTTP(w, r)
	}))
	defer srv.Close()

	s := NewDetailSession(NewClient(srv.URL, "t"), models.RoleKabid, "d1")
	if err := s.Muat(); err != nil {
		t.Fatalf("Muat: %v", err)
	}

	err := s.Terima()
	if !IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}

	if s.TerimaErr() == nil {
		t.Error("TerimaErr kosong setelah server menolak")
	}
	if got := s.Record().Status; got != models.StatusDibaca {
		t.Errorf("record berubah jadi %s padahal mutasi gagal", got)
	}
}
