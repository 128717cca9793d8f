package domain

import "time"

// OtpChallenge guarda el hash de un codigo de verificacion pendiente.
// Pueden existir varios challenges vigentes para el mismo email; solo el
// mas reciente es autoritativo al verificar.
type OtpChallenge struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CodeHash  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
