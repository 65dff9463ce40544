package disposisi

import (
	"time"

	"SiDispo/models"
)

type SuratMasukResponse struct {
	IDSurat         uint               `json:"id_surat"`
	NomorSurat      string             `json:"nomor_surat"`
	NomorAgenda     string             `json:"nomor_agenda"`
	Pengirim        string             `json:"pengirim"`
	Perihal         string             `json:"perihal"`
	IsiRingkas      string             `json:"isi_ringkas"`
	Sifat           models.Sifat       `json:"sifat"`
	TanggalSurat    *time.Time         `json:"tanggal_surat"`
	TanggalDiterima *time.Time         `json:"tanggal_diterima"`
	Foto            []SuratFotoPayload `json:"foto"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type SuratFotoPayload struct {
	ID       uint   `json:"id"`
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
}

// DisposisiResponse - bentuk wire sebuah disposisi. has_feedback dihitung
// per aktor yang meminta, bukan kolom tabel.
type DisposisiResponse struct {
	ID                      string                 `json:"id"`
	SuratMasukID            uint                   `json:"surat_masuk_id"`
	Status                  models.DisposisiStatus `json:"status"`
	StatusDariKabid         models.DisposisiStatus `json:"status_dari_kabid"`
	StatusDariBawahan       models.DisposisiStatus `json:"status_dari_bawahan"`
	DisposisiKepadaUserID   *uint                  `json:"disposisi_kepada_user_id"`
	DisposisiKepadaJabatan  string                 `json:"disposisi_kepada_jabatan"`
	DiteruskanKepadaUserID  *uint                  `json:"diteruskan_kepada_user_id"`
	DiteruskanKepadaNama    string                 `json:"diteruskan_kepada_nama"`
	DiteruskanKepadaJabatan string                 `json:"diteruskan_kepada_jabatan"`
	HasFeedback             bool                   `json:"has_feedback"`
	Catatan                 string                 `json:"catatan"`
	CatatanAtasan           string                 `json:"catatan_atasan"`
	DenganHormatHarap       string                 `json:"dengan_hormat_harap"`
	Sifat                   models.Sifat           `json:"sifat"`
	SuratMasuk              *SuratMasukResponse    `json:"surat_masuk,omitempty"`
	CreatedAt               time.Time              `json:"created_at"`
	UpdatedAt               time.Time              `json:"updated_at"`
}

func NewSuratMasukResponse(s *models.SuratMasuk) SuratMasukResponse {
	if s == nil {
		return SuratMasukResponse{}
	}

	foto := make([]SuratFotoPayload, 0, len(s.Foto))
	for _, f := range s.Foto {
		foto = append(foto, SuratFotoPayload{
			ID:       f.ID,
			FilePath: f.FilePath,
			FileName: f.FileName,
		})
	}

	return SuratMasukResponse{
		IDSurat:         s.IDSurat,
		NomorSurat:      s.NomorSurat,
		NomorAgenda:     s.NomorAgenda,
		Pengirim:        s.Pengirim,
		Perihal:         s.Perihal,
		IsiRingkas:      s.IsiRingkas,
		Sifat:           s.Sifat,
		TanggalSurat:    s.TanggalSurat,
		TanggalDiterima: s.TanggalDiterima,
		Foto:            foto,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func NewDisposisiResponse(d *models.Disposisi, hasFeedback bool) DisposisiResponse {
	if d == nil {
		return DisposisiResponse{}
	}

	resp := DisposisiResponse{
		ID:                      d.ID,
		SuratMasukID:            d.SuratMasukID,
		Status:                  d.Status,
		StatusDariKabid:         d.StatusDariKabid,
		StatusDariBawahan:       d.StatusDariBawahan,
		DisposisiKepadaUserID:   d.DisposisiKepadaUserID,
		DisposisiKepadaJabatan:  d.DisposisiKepadaJabatan,
		DiteruskanKepadaUserID:  d.DiteruskanKepadaUserID,
		DiteruskanKepadaNama:    d.DiteruskanKepadaNama,
		DiteruskanKepadaJabatan: d.DiteruskanKepadaJabatan,
		HasFeedback:             hasFeedback,
		Catatan:                 d.Catatan,
		CatatanAtasan:           d.CatatanAtasan,
		DenganHormatHarap:       d.DenganHormatHarap,
		Sifat:                   d.Sifat,
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
	}

	if d.SuratMasuk != nil {
		surat := NewSuratMasukResponse(d.SuratMasuk)
		resp.SuratMasuk = &surat
	}

	return resp
}

// ToModel - arah balik untuk client SDK: response ter-decode menjadi
// entity yang dimengerti gate.
func (r *DisposisiResponse) ToModel() models.Disposisi {
	return models.Disposisi{
		ID:                      r.ID,
		SuratMasukID:            r.SuratMasukID,
		Status:                  r.Status,
		StatusDariKabid:         r.StatusDariKabid,
		StatusDariBawahan:       r.StatusDariBawahan,
		DisposisiKepadaUserID:   r.DisposisiKepadaUserID,
		DisposisiKepadaJabatan:  r.DisposisiKepadaJabatan,
		DiteruskanKepadaUserID:  r.DiteruskanKepadaUserID,
		DiteruskanKepadaNama:    r.DiteruskanKepadaNama,
		DiteruskanKepadaJabatan: r.DiteruskanKepadaJabatan,
		Catatan:                 r.Catatan,
		CatatanAtasan:           r.CatatanAtasan,
		DenganHormatHarap:       r.DenganHormatHarap,
		Sifat:                   r.Sifat,
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
}

type FeedbackFilePayload struct {
	ID       uint   `json:"id"`
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
}

type FeedbackResponse struct {
	ID          string                `json:"id"`
	DisposisiID string                `json:"disposisi_id"`
	UserID      uint                  `json:"user_id"`
	Notes       string                `json:"notes"`
	Status      models.FeedbackStatus `json:"status"`
	Files       []FeedbackFilePayload `json:"files"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func NewFeedbackResponse(fb *models.FeedbackDisposisi) FeedbackResponse {
	if fb == nil {
		return FeedbackResponse{}
	}

	files := make([]FeedbackFilePayload, 0, len(fb.Files))
	for _, f := range fb.Files {
		files = append(files, FeedbackFilePayload{
			ID:       f.ID,
			FilePath: f.FilePath,
			FileName: f.FileName,
		})
	}

	return FeedbackResponse{
		ID:          fb.ID,
		DisposisiID: fb.DisposisiID,
		UserID:      fb.UserID,
		Notes:       fb.Notes,
		Status:      fb.Status,
		Files:       files,
		CreatedAt:   fb.CreatedAt,
		UpdatedAt:   fb.UpdatedAt,
	}
}

func NewFeedbackResponses(fbs []models.FeedbackDisposisi) []FeedbackResponse {
	out := make([]FeedbackResponse, 0, len(fbs))
	for i := range fbs {
		out = append(out, NewFeedbackResponse(&fbs[i]))
	}
	return out
}

// BawahanResponse - entri daftar staff yang bisa menjadi target teruskan
type BawahanResponse struct {
	ID      uint   `json:"id"`
	Nama    string `json:"nama"`
	Jabatan string `json:"jabatan"`
}

// StatistikResponse - hitungan per status untuk dashboard role
type StatistikResponse struct {
	Total       int64 `json:"total"`
	BelumDibaca int64 `json:"belum_dibaca"`
	Dibaca      int64 `json:"dibaca"`
	Diterima    int64 `json:"diterima"`
	Diproses    int64 `json:"diproses"`
	Selesai     int64 `json:"selesai"`
	Diteruskan  int64 `json:"diteruskan"`
}
