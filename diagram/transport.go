package diagram

import (
	"encoding/base64"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// MaxDecompressedSize bounds the memory FromCompressed and DecompressJSON may
// use, including the decoded JSON itself.
const MaxDecompressedSize = 4 << 20

// ToBase64 returns the standard base64 encoding of the diagram's JSON form.
func ToBase64(d *Diagram) (string, error) {
	data, err := ToJSON(d)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// FromBase64 decodes a diagram produced by ToBase64.
func FromBase64(s string, ids IDAllocator) (*Diagram, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", err)
	}
	return FromJSON(data, ids)
}

// ToCompressed returns the diagram's JSON form compressed with zstd and
// encoded as unpadded URL-safe base64, short enough to embed in a URL fragment.
func ToCompressed(d *Diagram) (string, error) {
	data, err := ToJSON(d)
	if err != nil {
		return "", err
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return "", fmt.Errorf("creating zstd encoder: %w", err)
	}
	defer encoder.Close()

	compressed := encoder.EncodeAll(data, nil)
	return base64.RawURLEncoding.EncodeToString(compressed), nil
}

// FromCompressed decodes a diagram produced by ToCompressed. The decompressed
// bytes are exactly the JSON that was compressed.
func FromCompressed(s string, ids IDAllocator) (*Diagram, error) {
	data, err := DecompressJSON(s)
	if err != nil {
		return nil, err
	}
	return FromJSON(data, ids)
}

// DecompressJSON reverses the transport encoding of ToCompressed without
// decoding the JSON. Input that would expand beyond MaxDecompressedSize is
// rejected.
func DecompressJSON(s string) ([]byte, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", err)
	}

	decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecompressedSize))
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer decoder.Close()

	data, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	return data, nil
}
