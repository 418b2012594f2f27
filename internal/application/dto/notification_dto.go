package dto

import "time"

// NotificationResponse notificación en respuestas.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"tipo"`
	Message   string    `json:"mensaje"`
	ProductID string    `json:"id_producto,omitempty"`
	Read      bool      `json:"leida"`
	CreatedAt time.Time `json:"fecha"`
}

// NotificationListResponse lista paginada de notificaciones.
type NotificationListResponse struct {
	Items  []NotificationResponse `json:"items"`
	Unread int                    `json:"no_leidas"`
	Page   PageResponse           `json:"page"`
}
