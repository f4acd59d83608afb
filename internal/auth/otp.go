package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"sync"
	"time"

	"superapp-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultOTPTTL  = 5 * time.Minute
	otpDigits      = 6
	maxOTPAttempts = 5
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// userNamespace derives stable user ids from phone numbers.
var userNamespace = uuid.MustParse("6f1c1a52-3b7e-4f43-9d55-6a0c8f5b2e11")

type pendingCode struct {
	hash     []byte
	expires  time.Time
	attempts int
}

// OTPService simulates phone verification. The code is handed back to the
// caller in place of an SMS; only its bcrypt hash is kept.
type OTPService struct {
	mu      sync.Mutex
	pending map[string]*pendingCode
	tokens  *TokenIssuer
	ttl     time.Duration
	now     func() time.Time
}

func NewOTPService(tokens *TokenIssuer, ttl time.Duration) *OTPService {
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	return &OTPService{
		pending: make(map[string]*pendingCode),
		tokens:  tokens,
		ttl:     ttl,
		now:     time.Now,
	}
}

func NormalizePhone(phone string) (string, error) {
	p := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(phone))
	if !phonePattern.MatchString(p) {
		return "", ErrInvalidPhone
	}
	return p, nil
}

// UserIDForPhone is stable across logins so persisted state follows the user.
func UserIDForPhone(phone string) string {
	return uuid.NewSHA1(userNamespace, []byte(phone)).String()
}

// Request issues a fresh code for phone, replacing any pending one.
func (s *OTPService) Request(ctx context.Context, phone string) (string, error) {
	p, err := NormalizePhone(phone)
	if err != nil {
		return "", err
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.pending[p] = &pendingCode{hash: hash, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()

	logger.FromCtx(ctx).Info("otp issued", zap.String("phone", maskPhone(p)))
	return code, nil
}

// Verify consumes the pending code and returns a session token plus the
// user id it was issued for.
func (s *OTPService) Verify(ctx context.Context, phone, code string) (string, string, error) {
	p, err := NormalizePhone(phone)
	if err != nil {
		return "", "", err
	}

	s.mu.Lock()
	pc, ok := s.pending[p]
	if !ok || s.now().After(pc.expires) {
		delete(s.pending, p)
		s.mu.Unlock()
		return "", "", ErrInvalidCode
	}
	if pc.attempts >= maxOTPAttempts {
		delete(s.pending, p)
		s.mu.Unlock()
		return "", "", ErrTooManyTries
	}
	if bcrypt.CompareHashAndPassword(pc.hash, []byte(strings.TrimSpace(code))) != nil {
		pc.attempts++
		s.mu.Unlock()
		logger.FromCtx(ctx).Warn("otp mismatch",
			zap.String("phone", maskPhone(p)),
			zap.Int("attempts", pc.attempts),
		)
		return "", "", ErrInvalidCode
	}
	delete(s.pending, p)
	s.mu.Unlock()

	userID := UserIDForPhone(p)
	token, err := s.tokens.Issue(userID, p)
	if err != nil {
		return "", "", err
	}

	logger.FromCtx(ctx).Info("otp verified", zap.String("user_id", userID))
	return token, userID, nil
}

func generateCode() (string, error) {
	max := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}

func maskPhone(p string) string {
	if len(p) <= 4 {
		return p
	}
	return strings.Repeat("*", len(p)-4) + p[len(p)-4:]
}
