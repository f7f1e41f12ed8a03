package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/invoice_wizard/internal/apperrors"
	"github.com/SscSPs/invoice_wizard/internal/core/domain"
	"github.com/SscSPs/invoice_wizard/internal/core/ports"
	portssvc "github.com/SscSPs/invoice_wizard/internal/core/ports/services"
)

// MaxLogoBytes caps uploaded logos.
const MaxLogoBytes = 2 << 20

type logoService struct {
	BaseService
	drafts portssvc.DraftWriterSvc
	store  ports.LogoStore
}

// NewLogoService creates the logo upload service. store may be nil, in which case every logo is
// kept inline as a data URI.
func NewLogoService(drafts portssvc.DraftWriterSvc, store ports.LogoStore) portssvc.LogoSvc {
	return &logoService{drafts: drafts, store: store}
}

var _ portssvc.LogoSvc = (*logoService)(nil)

func (s *logoService) UploadLogo(ctx context.Context, filename, contentType string, data []byte) (domain.Draft, string, bool, error) {
	if len(data) == 0 {
		return domain.Draft{}, "", false, apperrors.ValidationErrors{{Field: "logo", Message: "is required"}}
	}
	if len(data) > MaxLogoBytes {
		return domain.Draft{}, "", false, apperrors.ValidationErrors{{Field: "logo", Message: fmt.Sprintf("must be at most %d bytes", MaxLogoBytes)}}
	}

	contentType = strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return domain.Draft{}, "", false, apperrors.ValidationErrors{{Field: "logo", Message: "must be an image"}}
	}

	ref, fallback := "", true
	if s.store != nil {
		url, err := s.store.Upload(ctx, filename, contentType, data)
		if err == nil {
			ref, fallback = url, false
		} else {
			s.LogWarn(ctx, err, "Logo upload failed, keeping it inline", slog.String("filename", filename))
		}
	}
	if fallback {
		ref = DataURI(contentType, data)
	}

	d, err := s.drafts.SetLogo(ctx, ref)
	if err != nil {
		return domain.Draft{}, "", false, err
	}
	s.LogInfo(ctx, "Logo set", slog.Bool("inline", fallback), slog.Int("bytes", len(data)))
	return d, ref, fallback, nil
}

// DataURI encodes data as a base64 data URI.
func DataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
