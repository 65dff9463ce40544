package events

import (
	"SiDispo/models"
)

// DisposisiEventType mendefinisikan jenis event siklus hidup disposisi
type DisposisiEventType string

const (
	// DisposisiCreated dipublikasikan saat Kepala menurunkan disposisi baru
	DisposisiCreated DisposisiEventType = "DisposisiCreated"

	// DisposisiStatusMoved dipublikasikan saat salah satu kolom status
	// berubah (diterima, diteruskan, diproses, selesai)
	DisposisiStatusMoved DisposisiEventType = "DisposisiStatusMoved"

	// FeedbackMasuk dipublikasikan saat penerima mengirim/mengubah feedback
	FeedbackMasuk DisposisiEventType = "FeedbackMasuk"
)

// DisposisiEvent adalah payload untuk event disposisi
type DisposisiEvent struct {
	Type      DisposisiEventType
	Disposisi models.Disposisi
	OldStatus models.DisposisiStatus // Status lama (hanya relevan untuk DisposisiStatusMoved)
	Actor     models.Role            // Role yang memicu event
}

// DisposisiEventBus adalah channel untuk menangani event disposisi.
// Channel ini di-buffer untuk mencegah blocking pada handler API
// saat mempublikasikan event.
var DisposisiEventBus = make(chan DisposisiEvent, 100)
