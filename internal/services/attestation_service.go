package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"grocerz/internal/models"
)

// AttestationService produces and verifies the keyed signature proving a
// payment amount was computed by this system. The payload format is
// wire-visible and must stay bit-exact for external verifiers:
//
//	order:<order_id>:<paise>:<hex_hmac_sha256>
//
// where <paise> is the amount in integer minor currency units and the
// signature is lowercase hex over the exact bytes before it.
type AttestationService struct {
	secret []byte
}

// NewAttestationService creates an AttestationService with the process-wide
// signing secret. A restart with a different secret invalidates every
// previously issued payload; there is no key rotation or versioning.
func NewAttestationService(secret string) *AttestationService {
	return &AttestationService{
		secret: []byte(secret),
	}
}

// Sign builds the canonical message for the order and amount (minor currency
// units, base-10 with no leading zeros) and appends its signature.
func (s *AttestationService) Sign(orderID int64, amountMinor int64) string {
	msg := fmt.Sprintf("order:%d:%d", orderID, amountMinor)
	return msg + ":" + s.signature(msg)
}

func (s *AttestationService) signature(msg string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a payload's signature and returns the order ID and amount it
// attests to. The signature segment is everything after the last colon; the
// HMAC is recomputed over everything before it and compared in constant
// time. Any malformed payload or mismatch fails with a
// *models.InvalidSignatureError.
func (s *AttestationService) Verify(payload string) (orderID int64, amountMinor int64, err error) {
	idx := strings.LastIndex(payload, ":")
	if idx < 0 {
		return 0, 0, &models.InvalidSignatureError{Reason: "payload has no signature segment"}
	}
	msg, sig := payload[:idx], payload[idx+1:]

	if !hmac.Equal([]byte(sig), []byte(s.signature(msg))) {
		return 0, 0, &models.InvalidSignatureError{Reason: "signature mismatch"}
	}

	parts := strings.Split(msg, ":")
	if len(parts) != 3 || parts[0] != "order" {
		return 0, 0, &models.InvalidSignatureError{Reason: "unexpected message format"}
	}
	orderID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, &models.InvalidSignatureError{Reason: "order id is not an integer"}
	}
	amountMinor, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, 0, &models.InvalidSignatureError{Reason: "amount is not an integer"}
	}
	return orderID, amountMinor, nil
}
