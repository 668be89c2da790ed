package services

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/Durganjali-sidda/CBTS/db"
	"github.com/Durganjali-sidda/CBTS/internal/auth"
	"github.com/Durganjali-sidda/CBTS/internal/models"
)

// RequestPasswordReset emails a reset link to the given address. An unknown
// address returns nil exactly like a known one, so the endpoint cannot be
// used to enumerate accounts. Delivery runs in the background with no
// guarantee surfaced to the caller.
func RequestPasswordReset(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	var user models.User

	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := auth.GeneratePasswordResetToken(user.ID)

	if err != nil {
		log.Printf("Failed to generate password reset token for user %d: %v", user.ID, err)
		return nil
	}

	frontendURL := os.Getenv("FRONTEND_URL")

	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", frontendURL, token)

	subject := "Password Reset Requested"
	body := fmt.Sprintf(
		"Hi %s,\n\nClick the link below to reset your password:\n\n%s\n\nIf you didn't request this, just ignore this email.",
		user.Username,
		resetURL,
	)

	go SendMail(user.Email, subject, body)

	return nil
}
