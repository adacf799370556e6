// Package codec converts attachment files to and from the textual payload
// stored inline in a register's durable slot, and enforces the file size cap.
package codec

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/opsdesk/registerdesk/pkg/types"
)

// MaxFileMB is the attachment size cap. The comparison divides the byte
// length by 1 MiB and rejects on strict excess, so a file of exactly 10 MiB
// passes and any fractional excess fails.
const MaxFileMB = 10

// Payload is the stored form of an attachment. FileBase64 is a data URL:
// "data:<mime>;base64,<content>". All three fields are empty strings when
// the record has no attachment.
type Payload struct {
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	FileBase64 string `json:"fileBase64"`
}

// Empty reports whether the payload carries no attachment.
func (p Payload) Empty() bool {
	return p.FileName == "" || p.FileBase64 == ""
}

// ValidateSize reports whether a file of the given byte length is accepted.
func ValidateSize(sizeBytes int64) bool {
	return float64(sizeBytes)/(1024*1024) <= MaxFileMB
}

// Encode reads the file content and produces its stored payload. A read
// failure is wrapped as ErrEncoding; the caller must treat the record's
// attachment as absent and log the condition.
func Encode(name, mime string, r io.Reader) (Payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: reading %s: %v", types.ErrEncoding, name, err)
	}
	return Payload{
		FileName:   name,
		FileType:   mime,
		FileBase64: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// EncodeBlob produces the stored payload for an in-memory attachment.
func EncodeBlob(blob *types.FileBlob) Payload {
	return Payload{
		FileName:   blob.Name,
		FileType:   blob.MIME,
		FileBase64: "data:" + blob.MIME + ";base64," + base64.StdEncoding.EncodeToString(blob.Data),
	}
}

// Decode reconstructs the attachment bytes from a stored payload,
// reattaching the filename and MIME type. Malformed input (missing data-URL
// header, truncated or invalid base64 content) is wrapped as ErrDecoding;
// the load path skips that record's attachment, logs, and continues.
func Decode(p Payload) (*types.FileBlob, error) {
	header, content, found := strings.Cut(p.FileBase64, ",")
	if !found {
		return nil, fmt.Errorf("%w: no data URL separator in payload for %s", types.ErrDecoding, p.FileName)
	}
	mime, ok := parseDataURLHeader(header)
	if !ok {
		return nil, fmt.Errorf("%w: bad data URL header %q for %s", types.ErrDecoding, header, p.FileName)
	}
	data, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding content for %s: %v", types.ErrDecoding, p.FileName, err)
	}
	return &types.FileBlob{
		Name: p.FileName,
		MIME: mime,
		Data: data,
	}, nil
}

// parseDataURLHeader extracts the MIME type from a "data:<mime>;base64"
// header.
func parseDataURLHeader(header string) (string, bool) {
	rest, ok := strings.CutPrefix(header, "data:")
	if !ok {
		return "", false
	}
	mime, ok := strings.CutSuffix(rest, ";base64")
	if !ok {
		return "", false
	}
	return mime, true
}
