package auth

import "crypto/rand"

const DefaultOTPLength = 6

// GenerateOTP returns length decimal digits drawn from crypto/rand. Each
// digit is derived from its own random byte, so codes are independent
// across calls.
func GenerateOTP(length int) string {
	const digits = "0123456789"

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}

	otp := make([]byte, length)
	for i, b := range bytes {
		otp[i] = digits[int(b)%len(digits)]
	}
	return string(otp)
}
