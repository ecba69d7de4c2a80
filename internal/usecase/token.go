package usecase

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/port/gateway"
)

const (
	verificationTokenTTLHours = 24
	resetOTPTTLMinutes        = 10
)

// newSecretToken returns a raw token to email once and the sha256 digest that
// gets persisted. The raw value is never stored.
func newSecretToken() (raw, digest string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}
	raw = hex.EncodeToString(buf)
	return raw, hashSecret(raw), nil
}

// newResetOTP returns a 6-digit one-time password and its digest.
func newResetOTP() (raw, digest string, err error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate otp: %w", err)
	}
	raw = fmt.Sprintf("%06d", n.Int64())
	return raw, hashSecret(raw), nil
}

func hashSecret(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// nationalIDPattern matches a Jordanian national number: ten digits starting
// with 2 or 9.
var nationalIDPattern = regexp.MustCompile(`\b[29][0-9]{9}\b`)

// extractNationalIDCandidate pulls a best-effort national-id suggestion out of
// an OCR result. The engine's own field wins when it looks plausible;
// otherwise the raw text is scanned. Returns ("", 0) when nothing usable is
// found — the caller records no candidate in that case.
func extractNationalIDCandidate(res *gateway.Extraction) (string, float64) {
	if res == nil {
		return "", 0
	}
	if res.NationalID != "" && nationalIDPattern.MatchString(res.NationalID) {
		return nationalIDPattern.FindString(res.NationalID), res.Confidence
	}
	if match := nationalIDPattern.FindString(res.RawText); match != "" {
		confidence := res.Confidence
		if confidence == 0 {
			// Regex hit without engine confidence; call it a coin toss.
			confidence = 0.5
		}
		return match, confidence
	}
	return "", 0
}
