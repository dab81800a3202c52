package ports

import (
	"context"

	"github.com/vishalsx/tubstudio-sub001/internal/domain"
)

// IdentifyRequest carries either raw image bytes or an already-known content
// hash; when both are set the hash wins and the bytes are not re-sent.
type IdentifyRequest struct {
	Image       []byte
	Filename    string
	ContentHash string
	Language    string
}

// LanguageAttributes is the per-language payload of a save call. The wire
// format is a one-element list even though quick-save only ever sends one tab.
type LanguageAttributes struct {
	Language          string `json:"language"`
	ObjectName        string `json:"object_name"`
	ObjectDescription string `json:"object_description"`
	ObjectHint        string `json:"object_hint"`
	ObjectShortHint   string `json:"object_short_hint"`
	TranslationStatus string `json:"translation_status"`
	TranslationID     string `json:"translation_id,omitempty"`
	FlagTranslation   bool   `json:"flag_translation"`
}

type SaveRequest struct {
	Common           domain.CommonData
	Language         LanguageAttributes
	PermissionAction string
	Image            []byte
	Filename         string
}

type SaveResult struct {
	ObjectID      string `json:"object_id"`
	TranslationID string `json:"translation_id"`
}

// Backend is the review service this tool talks to. Implementations wrap
// transport only; all session state lives on this side.
type Backend interface {
	Identify(ctx context.Context, req IdentifyRequest) (*domain.IdentifyResult, error)
	Save(ctx context.Context, req SaveRequest) (*SaveResult, error)
	GetByID(ctx context.Context, translationID string) (*domain.RecordDetail, error)
	UnlockAndSkip(ctx context.Context, translationID string) error
	FetchWorklist(ctx context.Context, languages []string) ([]*domain.WorklistItem, error)
}
