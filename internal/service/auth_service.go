package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"notely/internal/domain"
	"notely/internal/email"
	"notely/internal/repository"
)

// AuthService coordina el protocolo de autenticacion passwordless por OTP.
type AuthService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	otps        repository.OtpRepository
	emailSender email.Sender
	otpLimiter  OTPRateLimiter
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, otps repository.OtpRepository, emailSender email.Sender, otpLimiter OTPRateLimiter) *AuthService {
	if otpLimiter == nil {
		otpLimiter = NewOTPRateLimiter(10*time.Minute, 3)
	}
	return &AuthService{
		logger:      logger,
		users:       users,
		otps:        otps,
		emailSender: emailSender,
		otpLimiter:  otpLimiter,
	}
}

// ProfileInput trae los datos de perfil requeridos al registrar un usuario nuevo.
type ProfileInput struct {
	Name        string
	DateOfBirth time.Time
}

var (
	ErrInvalidEmail      = errors.New("invalid email")
	ErrRateLimited       = errors.New("rate limited")
	ErrEmailSendFailure  = errors.New("email send failed")
	ErrChallengeNotFound = errors.New("otp not found or expired")
	ErrChallengeExpired  = errors.New("otp expired")
	ErrCodeInvalid       = errors.New("otp invalid")
	ErrMissingProfile    = errors.New("name and date of birth required")
)

// otpValidity es la ventana de validez de un challenge desde su creacion.
const otpValidity = 5 * time.Minute

// RequestCode genera un codigo de 6 digitos, persiste su hash y lo envia por
// correo. Devuelve si el email corresponde a una cuenta nueva.
func (s *AuthService) RequestCode(ctx context.Context, emailAddr string) (bool, error) {
	if s.users == nil || s.otps == nil {
		return false, errors.New("auth service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return false, ErrInvalidEmail
	}

	if s.otpLimiter != nil && !s.otpLimiter.Allow(emailAddr) {
		return false, ErrRateLimited
	}

	isNewUser := false
	if _, err := s.users.GetByEmail(ctx, emailAddr); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return false, err
		}
		isNewUser = true
	}

	code, err := generateCode()
	if err != nil {
		return false, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	// El challenge se persiste antes de intentar el envio: si el transporte
	// falla queda registro del intento pendiente.
	challenge := domain.OtpChallenge{
		ID:        uuid.NewString(),
		Email:     emailAddr,
		CodeHash:  string(hash),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.otps.Create(ctx, challenge); err != nil {
		return false, err
	}

	if s.emailSender == nil {
		return false, ErrEmailSendFailure
	}
	if err := s.emailSender.SendOTP(ctx, emailAddr, code); err != nil {
		if s.logger != nil {
			s.logger.Warn("send otp failed", zap.Error(err), zap.String("email", emailAddr))
		}
		return false, ErrEmailSendFailure
	}

	return isNewUser, nil
}

// VerifyCode valida el codigo contra el challenge mas reciente, provisiona al
// usuario si no existe e invalida todos los challenges pendientes del email.
func (s *AuthService) VerifyCode(ctx context.Context, emailAddr, code string, profile ProfileInput) (domain.User, error) {
	if s.users == nil || s.otps == nil {
		return domain.User{}, errors.New("auth service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	code = strings.TrimSpace(code)
	if emailAddr == "" {
		return domain.User{}, ErrInvalidEmail
	}
	if !isValidOTPCode(code) {
		return domain.User{}, ErrCodeInvalid
	}

	// Solo el challenge mas reciente es autoritativo; codigos anteriores
	// fallan aunque sus filas sigan presentes.
	challenge, err := s.otps.GetLatestByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrChallengeNotFound
		}
		return domain.User{}, err
	}

	// La expiracion la aplica el servicio; el purgado en storage es solo
	// recuperacion de espacio.
	if time.Now().UTC().After(challenge.CreatedAt.Add(otpValidity)) {
		return domain.User{}, ErrChallengeExpired
	}

	if bcrypt.CompareHashAndPassword([]byte(challenge.CodeHash), []byte(code)) != nil {
		return domain.User{}, ErrCodeInvalid
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, err
		}
		name := strings.TrimSpace(profile.Name)
		if name == "" || profile.DateOfBirth.IsZero() {
			return domain.User{}, ErrMissingProfile
		}
		user = domain.User{
			ID:          uuid.NewString(),
			Email:       emailAddr,
			Name:        name,
			DateOfBirth: profile.DateOfBirth,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			if !errors.Is(err, repository.ErrDuplicateEmail) {
				return domain.User{}, err
			}
			// Una verificacion concurrente gano la carrera de creacion;
			// se continua como usuario existente.
			user, err = s.users.GetByEmail(ctx, emailAddr)
			if err != nil {
				return domain.User{}, err
			}
		}
	}

	// Invalida todos los codigos pendientes del email, no solo el consumido.
	if err := s.otps.DeleteByEmail(ctx, emailAddr); err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidOTPCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
