package domain

// TranslationRecord is the per-language slice of one image's review state.
// A record is created as a loading placeholder when an identify or worklist
// fetch is issued for its language and populated when the response arrives.
type TranslationRecord struct {
	ObjectName        string `json:"object_name"`
	ObjectDescription string `json:"object_description"`
	ObjectHint        string `json:"object_hint"`
	ObjectShortHint   string `json:"object_short_hint"`
	TranslationStatus string `json:"translation_status"`
	TranslationID     string `json:"translation_id"`
	FlagTranslation   bool   `json:"flag_translation"`
	IsLoading         bool   `json:"is_loading"`
	Error             string `json:"error,omitempty"`
}

type SaveStatus string

const (
	SaveStatusUnset   SaveStatus = ""
	SaveStatusUnsaved SaveStatus = "unsaved"
	SaveStatusSaved   SaveStatus = "saved"
)

// TranslationPatch carries a partial edit of a TranslationRecord; nil fields
// are left untouched by the merge.
type TranslationPatch struct {
	ObjectName        *string `json:"object_name"`
	ObjectDescription *string `json:"object_description"`
	ObjectHint        *string `json:"object_hint"`
	ObjectShortHint   *string `json:"object_short_hint"`
	TranslationStatus *string `json:"translation_status"`
	FlagTranslation   *bool   `json:"flag_translation"`
}

func (p TranslationPatch) ApplyTo(r *TranslationRecord) {
	if p.ObjectName != nil {
		r.ObjectName = *p.ObjectName
	}
	if p.ObjectDescription != nil {
		r.ObjectDescription = *p.ObjectDescription
	}
	if p.ObjectHint != nil {
		r.ObjectHint = *p.ObjectHint
	}
	if p.ObjectShortHint != nil {
		r.ObjectShortHint = *p.ObjectShortHint
	}
	if p.TranslationStatus != nil {
		r.TranslationStatus = *p.TranslationStatus
	}
	if p.FlagTranslation != nil {
		r.FlagTranslation = *p.FlagTranslation
	}
}
