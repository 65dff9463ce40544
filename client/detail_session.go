package client

import (
	"errors"
	"strings"
	"sync"

	dispodto "SiDispo/dto/disposisi"
	"SiDispo/models"
	"SiDispo/services"
)

// Sentinel untuk validasi lokal yang gagal sebelum ada request keluar
var (
	ErrAksiTidakSah   = errors.New("aksi tidak sah untuk keadaan disposisi saat ini")
	ErrTujuanKosong   = errors.New("tujuan penerusan belum dipilih")
	ErrFeedbackKosong = errors.New("notes feedback harus diisi")
	ErrStatusInvalid  = errors.New("status feedback harus diproses atau selesai")
	ErrSedangDiproses = errors.New("aksi sebelumnya masih diproses")
)

// Panel - panel aksi yang sedang terbuka di halaman detail.
// Hanya satu panel terbuka pada satu waktu.
type Panel int

const (
	PanelNone Panel = iota
	PanelTeruskan
	PanelFeedback
	PanelEditFeedback
)

// DetailSession memegang state halaman detail disposisi untuk satu
// aktor. Session adalah satu-satunya pemilik record di memori; semua
// mutasi lewat executor lalu refetch penuh dari server (server tetap
// sumber kebenaran, response mutasi tidak di-merge ke state lokal).
type DetailSession struct {
	mu     sync.Mutex
	client *Client
	role   models.Role
	id     string
	gate   *services.DisposisiGate

	record          *models.Disposisi
	hasFeedback     bool
	feedbackBawahan []dispodto.FeedbackResponse

	loading  bool
	notFound bool
	panel    Panel

	// Error per aksi, supaya kegagalan satu form tidak menutup form lain
	muatErr     error
	terimaErr   error
	teruskanErr error
	feedbackErr error
}

func NewDetailSession(c *Client, role models.Role, id string) *DetailSession {
	return &DetailSession{
		client: c,
		role:   role,
		id:     id,
		gate:   services.NewDisposisiGate(role),
	}
}

// Muat - ambil record + feedback bawahan dari server.
// Panggilan saat masih loading diabaikan (single-flight).
// 404 pada detail adalah keadaan terminal: record hilang, tidak
// dicoba ulang otomatis.
func (s *DetailSession) Muat() error {
	s.mu.Lock()
	if s.loading || s.notFound {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	return s.fetch()
}

// fetch - jalur refetch yang juga dipakai setelah mutasi
func (s *DetailSession) fetch() error {
	resp, err := s.client.GetDetail(s.role, s.id)
	if err != nil {
		if IsNotFound(err) {
			s.mu.Lock()
			s.notFound = true
			s.record = nil
			s.muatErr = nil
			s.mu.Unlock()
			return nil
		}
		s.mu.Lock()
		s.muatErr = err
		s.mu.Unlock()
		return err
	}

	// Feedback bawahan: 404 berarti belum ada, bukan error
	bawahan, err := s.client.FeedbackBawahan(s.role, s.id)
	if err != nil {
		if !IsNotFound(err) {
			// daftar pantauan bukan bagian kritis halaman; biarkan kosong
		}
		bawahan = nil
	}

	record := resp.ToModel()

	s.mu.Lock()
	s.record = &record
	s.hasFeedback = resp.HasFeedback
	s.feedbackBawahan = bawahan
	s.muatErr = nil
	s.mu.Unlock()
	return nil
}

// --- State pembacaan ---

func (s *DetailSession) Record() *models.Disposisi {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

func (s *DetailSession) NotFound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notFound
}

func (s *DetailSession) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *DetailSession) ActivePanel() Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel
}

func (s *DetailSession) FeedbackBawahan() []dispodto.FeedbackResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedbackBawahan
}

func (s *DetailSession) MuatErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muatErr
}

func (s *DetailSession) TerimaErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terimaErr
}

func (s *DetailSession) TeruskanErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teruskanErr
}

func (s *DetailSession) FeedbackErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedbackErr
}

// --- Gate aksi ---

func (s *DetailSession) BisaTerima() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record != nil && s.gate.CanAccept(s.record)
}

func (s *DetailSession) BisaTeruskan() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record != nil && s.gate.CanForward(s.record)
}

func (s *DetailSession) BisaKirimFeedback() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record != nil && s.gate.CanGiveFeedback(s.record, s.hasFeedback)
}

func (s *DetailSession) BisaEditFeedback() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record != nil && s.gate.CanEditFeedback(s.hasFeedback)
}

// --- Panel (mutual exclusion) ---
// Selama satu panel terbuka, permintaan membuka panel lain diabaikan;
// panel lama harus ditutup dulu lewat TutupPanel.

func (s *DetailSession) BukaPanelTeruskan() bool {
	if !s.BisaTeruskan() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panel != PanelNone {
		return false
	}
	s.panel = PanelTeruskan
	return true
}

func (s *DetailSession) BukaPanelFeedback() bool {
	if !s.BisaKirimFeedback() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panel != PanelNone {
		return false
	}
	s.panel = PanelFeedback
	return true
}

func (s *DetailSession) BukaPanelEditFeedback() bool {
	if !s.BisaEditFeedback() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panel != PanelNone {
		return false
	}
	s.panel = PanelEditFeedback
	return true
}

func (s *DetailSession) TutupPanel() {
	s.mu.Lock()
	s.panel = PanelNone
	s.mu.Unlock()
}

// --- Executor ---

// mulaiAksi memasang flag loading untuk satu executor. Selama flag
// terpasang, executor lain (dan Muat) ditolak tanpa request keluar.
func (s *DetailSession) mulaiAksi() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	return true
}

func (s *DetailSession) selesaiAksi() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// Terima - terima disposisi. Gate dicek dulu; kalau tidak sah, tidak
// ada request yang keluar. Sukses berarti refetch penuh.
func (s *DetailSession) Terima() error {
	if !s.mulaiAksi() {
		return ErrSedangDiproses
	}
	defer s.selesaiAksi()

	if !s.BisaTerima() {
		s.mu.Lock()
		s.terimaErr = ErrAksiTidakSah
		s.mu.Unlock()
		return ErrAksiTidakSah
	}

	if _, err := s.client.Terima(s.role, s.id); err != nil {
		s.mu.Lock()
		s.terimaErr = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.terimaErr = nil
	s.mu.Unlock()
	return s.fetch()
}

// Teruskan - teruskan ke bawahan. Validasi lokal dulu: tanpa tujuan,
// tidak ada request sama sekali. Error dari server membiarkan panel
// tetap terbuka; sukses menutup panel dan refetch.
func (s *DetailSession) Teruskan(userID uint, catatan string) error {
	if !s.mulaiAksi() {
		return ErrSedangDiproses
	}
	defer s.selesaiAksi()

	if userID == 0 {
		s.mu.Lock()
		s.teruskanErr = ErrTujuanKosong
		s.mu.Unlock()
		return ErrTujuanKosong
	}
	if !s.BisaTeruskan() {
		s.mu.Lock()
		s.teruskanErr = ErrAksiTidakSah
		s.mu.Unlock()
		return ErrAksiTidakSah
	}

	req := dispodto.ForwardDisposisiRequest{
		DiteruskanKepadaUserID: userID,
		CatatanAtasan:          catatan,
	}
	if _, err := s.client.Teruskan(s.role, s.id, req); err != nil {
		s.mu.Lock()
		s.teruskanErr = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.teruskanErr = nil
	s.panel = PanelNone
	s.mu.Unlock()
	return s.fetch()
}

// KirimFeedback - kirim feedback baru. Lampiran dipotong ke 5 file di
// client sebelum payload dibangun.
func (s *DetailSession) KirimFeedback(notes string, status models.FeedbackStatus, files []FeedbackAttachment) error {
	if !s.mulaiAksi() {
		return ErrSedangDiproses
	}
	defer s.selesaiAksi()

	if strings.TrimSpace(notes) == "" {
		s.mu.Lock()
		s.feedbackErr = ErrFeedbackKosong
		s.mu.Unlock()
		return ErrFeedbackKosong
	}
	if !status.IsValid() {
		s.mu.Lock()
		s.feedbackErr = ErrStatusInvalid
		s.mu.Unlock()
		return ErrStatusInvalid
	}
	if !s.BisaKirimFeedback() {
		s.mu.Lock()
		s.feedbackErr = ErrAksiTidakSah
		s.mu.Unlock()
		return ErrAksiTidakSah
	}

	if _, err := s.client.KirimFeedback(s.role, s.id, notes, status, files); err != nil {
		s.mu.Lock()
		s.feedbackErr = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.feedbackErr = nil
	s.panel = PanelNone
	s.mu.Unlock()
	return s.fetch()
}

// EditFeedback - perbarui feedback milik sendiri
func (s *DetailSession) EditFeedback(feedbackID, notes string, status models.FeedbackStatus, newFiles []FeedbackAttachment, removeFileIDs []uint) error {
	if !s.mulaiAksi() {
		return ErrSedangDiproses
	}
	defer s.selesaiAksi()

	if strings.TrimSpace(notes) == "" {
		s.mu.Lock()
		s.feedbackErr = ErrFeedbackKosong
		s.mu.Unlock()
		return ErrFeedbackKosong
	}
	if !status.IsValid() {
		s.mu.Lock()
		s.feedbackErr = ErrStatusInvalid
		s.mu.Unlock()
		return ErrStatusInvalid
	}
	if !s.BisaEditFeedback() {
		s.mu.Lock()
		s.feedbackErr = ErrAksiTidakSah
		s.mu.Unlock()
		return ErrAksiTidakSah
	}

	if _, err := s.client.UpdateFeedback(s.role, feedbackID, notes, status, newFiles, removeFileIDs); err != nil {
		s.mu.Lock()
		s.feedbackErr = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.feedbackErr = nil
	s.panel = PanelNone
	s.mu.Unlock()
	return s.fetch()
}
