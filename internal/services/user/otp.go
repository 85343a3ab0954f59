package user

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// ResetOTPTTL is the validity window of a password reset code.
const ResetOTPTTL = 10 * time.Minute

var otpMax = big.NewInt(1000000)

// ErrOTPInvalid covers every reset failure mode: unknown account, no code on
// record, code mismatch, or expired window. Callers must not distinguish them.
var ErrOTPInvalid = errors.New("invalid or expired code")

// GenerateResetOTP returns a 6-digit numeric code drawn uniformly from
// 000000-999999 using crypto/rand.
func GenerateResetOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpMax)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}

// CheckResetOTP validates a submitted code against the user's stored code.
// The comparison is an exact string match and the expiry bound is inclusive
// of the stored instant.
func (u *User) CheckResetOTP(code string, now time.Time) error {
	if u.ResetOtpCode == nil || u.ResetOtpExpires == nil {
		return ErrOTPInvalid
	}

	if *u.ResetOtpCode != code {
		return ErrOTPInvalid
	}

	if now.After(*u.ResetOtpExpires) {
		return ErrOTPInvalid
	}

	return nil
}
