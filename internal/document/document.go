// Package document handles files attached to leases. File contents travel
// inline as base64 data URLs.
package document

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/evcraddock/rentdesk/internal/resource"
	"github.com/evcraddock/rentdesk/internal/validation"
)

// MaxSize is the largest file accepted as an attachment.
const MaxSize = 5 << 20

// Document is a file attached to a lease.
type Document struct {
	resource.Base
	LeaseID  int64  `json:"leaseId" validate:"gt=0"`
	Name     string `json:"name" validate:"min=1"`
	MimeType string `json:"mimeType" validate:"min=1"`
	Size     int64  `json:"size" validate:"gte=0"`
	DataURL  string `json:"dataUrl" validate:"min=1"`
}

// Resource is the typed handle for the leaseDocuments collection.
var Resource = resource.NewHandle[Document](resource.LeaseDocuments)

// Validate checks the document rules.
func (d Document) Validate() error {
	return validation.Struct(d)
}

// FromFile builds a document for leaseID from a file's name and contents.
// The MIME type comes from the extension, falling back to content sniffing.
func FromFile(leaseID int64, name string, data []byte) (Document, error) {
	if len(data) > MaxSize {
		return Document{}, fmt.Errorf("%s is %d bytes, limit is %d", name, len(data), MaxSize)
	}
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	mimeType, _, _ = strings.Cut(mimeType, ";")

	return Document{
		LeaseID:  leaseID,
		Name:     filepath.Base(name),
		MimeType: mimeType,
		Size:     int64(len(data)),
		DataURL:  "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// Bytes decodes the document's data URL.
func (d Document) Bytes() ([]byte, error) {
	header, payload, ok := strings.Cut(d.DataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") {
		return nil, fmt.Errorf("document %d: malformed data URL", d.ID)
	}
	if !strings.HasSuffix(header, ";base64") {
		return []byte(payload), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("document %d: decoding data URL: %w", d.ID, err)
	}
	return data, nil
}
