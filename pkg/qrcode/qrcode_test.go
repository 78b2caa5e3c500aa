package qrcode_test

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"grocerz/internal/models"
	"grocerz/pkg/qrcode"

	"github.com/stretchr/testify/assert"
)

const testPayload = "order:1700000000:10000:aa8ad9b60b2a8e1e1a4f3f1a1b2c3d4e5f60718293a4b5c6d7e8f9000a1b2c3d"

func TestEncoderProducesPNG(t *testing.T) {
	encoder := qrcode.NewEncoder(qrcode.DefaultSize)

	data, err := encoder.Encode(testPayload)
	assert.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, qrcode.DefaultSize, cfg.Width)
	assert.Equal(t, qrcode.DefaultSize, cfg.Height)
}

func TestEncoderDefaultsSize(t *testing.T) {
	encoder := qrcode.NewEncoder(0)

	data, err := encoder.Encode(testPayload)
	assert.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, qrcode.DefaultSize, cfg.Width)
}

func TestEncoderDataURL(t *testing.T) {
	encoder := qrcode.NewEncoder(qrcode.DefaultSize)

	dataURL, err := encoder.EncodeDataURL(testPayload)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/png;base64,"))
	assert.NoError(t, err)
	_, err = png.DecodeConfig(bytes.NewReader(raw))
	assert.NoError(t, err)
}

func TestEncoderRejectsOversizedPayload(t *testing.T) {
	encoder := qrcode.NewEncoder(qrcode.DefaultSize)

	// Far beyond QR capacity; must fail rather than truncate, since a
	// truncated payload would no longer verify.
	_, err := encoder.Encode(strings.Repeat("x", 8000))
	var encErr *models.EncodingError
	assert.ErrorAs(t, err, &encErr)

	_, err = encoder.EncodeDataURL(strings.Repeat("x", 8000))
	assert.ErrorAs(t, err, &encErr)
}
