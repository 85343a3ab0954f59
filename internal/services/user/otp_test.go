package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateResetOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "code %q contains non-digit", code)
		}
	}
}

func TestCheckResetOTP(t *testing.T) {
	now := time.Now()
	code := "482913"
	expires := now.Add(ResetOTPTTL)

	u := &User{ResetOtpCode: &code, ResetOtpExpires: &expires}

	assert.NoError(t, u.CheckResetOTP("482913", now))

	// wrong code
	assert.ErrorIs(t, u.CheckResetOTP("000000", now), ErrOTPInvalid)

	// expired window
	assert.ErrorIs(t, u.CheckResetOTP("482913", now.Add(ResetOTPTTL+time.Second)), ErrOTPInvalid)

	// exactly at expiry is still accepted
	assert.NoError(t, u.CheckResetOTP("482913", expires))
}

func TestCheckResetOTP_NoCodeOnRecord(t *testing.T) {
	u := &User{}
	assert.ErrorIs(t, u.CheckResetOTP("123456", time.Now()), ErrOTPInvalid)
}
