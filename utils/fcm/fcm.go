package fcm

import (
	"context"
	"fmt"
	"log"
	"time"

	"SiDispo/models"
	"SiDispo/utils/events"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// Prefix untuk nama topic di Firebase
const FCMTopicPrefix = "topic_"

var (
	fcmClient *messaging.Client
)

// Init menyiapkan Firebase Admin SDK. Dipanggil dari main sebelum
// StartNotifierConsumer.
func Init(ctx context.Context) {
	log.Println("Initializing Firebase Admin SDK...")
	config := &firebase.Config{ProjectID: "si-dispo"}

	app, err := firebase.NewApp(ctx, config)
	if err != nil {
		log.Fatalf("error initializing Firebase app: %v\n", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("error getting Firebase Messaging client: %v\n", err)
	}

	fcmClient = client
	log.Println("✅ Firebase Admin SDK initialized successfully.")
}

// mapRoleToTopic menentukan topic tujuan notifikasi per role.
// Contoh: role "kabid" -> "topic_kabid"
func mapRoleToTopic(role models.Role) string {
	return FCMTopicPrefix + string(role)
}

// Helper kirim notifikasi
func SendNotificationToTopic(ctx context.Context, topic, title, body string, data map[string]string) error {
	if fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	msg := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority:     "high",
			Notification: &messaging.AndroidNotification{ChannelID: "default_channel"},
		},
	}

	_, err := fcmClient.Send(ctx, msg)
	return err
}

func StartNotifierConsumer(ctx context.Context) {
	log.Println("✅ FCM Notifier Consumer started")

	for {
		select {
		case <-ctx.Done():
			return
		case e := <-events.DisposisiEventBus:

			// Goroutine agar tidak blocking
			go func(event events.DisposisiEvent) {
				sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				pengirim := ""
				if event.Disposisi.SuratMasuk != nil {
					pengirim = event.Disposisi.SuratMasuk.Pengirim
				}

				// Data standar untuk payload notifikasi (dikirim ke HP)
				data := map[string]string{
					"disposisi_id": event.Disposisi.ID,
					"status":       string(event.Disposisi.Status),
				}

				switch event.Type {

				// KASUS 1: Disposisi baru turun dari Kepala -> tier atasan
				case events.DisposisiCreated:
					topic := mapRoleToTopic(models.RoleKabid)
					title := "Disposisi Baru"
					body := fmt.Sprintf("Disposisi atas surat dari %s menunggu Anda.", pengirim)
					SendNotificationToTopic(sendCtx, topic, title, body, data)

				// KASUS 2: Status bergerak
				case events.DisposisiStatusMoved:

					// A. Diteruskan ke bawahan -> notifikasi ke STAFF
					if event.Disposisi.StatusDariKabid == models.StatusDiteruskan {
						topic := mapRoleToTopic(models.RoleStaff)
						title := "Disposisi Diteruskan"
						body := fmt.Sprintf("Disposisi surat dari %s diteruskan kepada Anda.", pengirim)
						SendNotificationToTopic(sendCtx, topic, title, body, data)
						return
					}

					// B. Diterima / selesai -> balik ke KEPALA
					if event.Disposisi.Status == models.StatusSelesai ||
						event.Disposisi.StatusDariKabid == models.StatusDiterima ||
						event.Disposisi.StatusDariBawahan == models.StatusDiterima {
						topic := mapRoleToTopic(models.RoleKepala)
						title := "Perkembangan Disposisi"
						body := fmt.Sprintf("Disposisi surat dari %s: %s.", pengirim, event.Disposisi.Status)
						SendNotificationToTopic(sendCtx, topic, title, body, data)
					}

				// KASUS 3: Feedback masuk -> Kepala (dan kabid jika dari staff)
				case events.FeedbackMasuk:
					topic := mapRoleToTopic(models.RoleKepala)
					title := "Feedback Disposisi"
					body := fmt.Sprintf("Feedback baru untuk disposisi surat dari %s.", pengirim)
					SendNotificationToTopic(sendCtx, topic, title, body, data)

					if event.Actor == models.RoleStaff {
						SendNotificationToTopic(sendCtx, mapRoleToTopic(models.RoleKabid), title, body, data)
					}
				}
			}(e)
		}
	}
}
