package booking

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"medibook/models"
	"medibook/utils"
)

// OTPTTL is how long a pending booking survives between initiate and confirm.
const OTPTTL = 15 * time.Minute

const otpKeyPrefix = "booking:otp:"

// OTPBroker holds pending bookings gated behind a one-time code. Entries live
// in Redis under a per-patient key with a TTL, so expiry needs no ambient
// timers and a verify racing an expiry resolves to exactly one outcome.
type OTPBroker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOTPBroker constructs a broker on the given Redis client. A non-positive
// ttl falls back to OTPTTL.
func NewOTPBroker(client *redis.Client, ttl time.Duration) *OTPBroker {
	if ttl <= 0 {
		ttl = OTPTTL
	}
	return &OTPBroker{client: client, ttl: ttl}
}

type otpEntry struct {
	Code    string                `json:"code"`
	Payload models.PendingBooking `json:"payload"`
}

// generateOTPCode returns a uniformly random 6-digit numeric code.
// Leading zeros are kept.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Issue stores the pending booking under the patient's key with a fresh code
// and TTL. A re-issue for the same patient overwrites the previous entry, so
// only the newest pending booking survives.
func (b *OTPBroker) Issue(ctx context.Context, patientID string, payload models.PendingBooking) (string, error) {
	code, err := generateOTPCode()
	if err != nil {
		return "", utils.NewDependencyError("issue otp", err)
	}

	data, err := json.Marshal(otpEntry{Code: code, Payload: payload})
	if err != nil {
		return "", utils.NewDependencyError("marshal otp entry", err)
	}

	key := otpKeyPrefix + patientID
	if err := b.client.Set(ctx, key, data, b.ttl).Err(); err != nil {
		return "", utils.NewDependencyError("cache otp", err)
	}

	utils.GetLogger().Info("otp issued",
		zap.String("patientId", patientID),
		zap.Duration("ttl", b.ttl))
	return code, nil
}

// Verify checks the submitted code against the patient's pending entry.
// A match consumes the entry (single use) and returns the stored payload;
// a mismatch leaves the entry in place for a re-prompt.
func (b *OTPBroker) Verify(ctx context.Context, patientID, submittedCode string) (*models.PendingBooking, error) {
	key := otpKeyPrefix + patientID

	data, err := b.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, &utils.OtpError{
			Reason:  utils.OtpNotFoundOrExpired,
			Message: "OTP expired or not found",
		}
	}
	if err != nil {
		return nil, utils.NewDependencyError("retrieve otp", err)
	}

	var entry otpEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, utils.NewDependencyError("decode otp entry", err)
	}

	if entry.Code != submittedCode {
		return nil, &utils.OtpError{
			Reason:  utils.OtpInvalidCode,
			Message: "Invalid OTP",
		}
	}

	if err := b.client.Del(ctx, key).Err(); err != nil {
		utils.GetLogger().Error("failed to delete otp after verification", zap.Error(err))
	}
	return &entry.Payload, nil
}
