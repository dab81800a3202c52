package domain

// IdentifyResult is the flat response of the identify endpoint: image-level
// metadata plus the translation generated for the requested language.
type IdentifyResult struct {
	ObjectNameEN      string   `json:"object_name_en"`
	ObjectCategory    string   `json:"object_category"`
	Tags              []string `json:"tags"`
	FieldOfStudy      string   `json:"field_of_study"`
	AgeAppropriate    bool     `json:"age_appropriate"`
	ImageStatus       string   `json:"image_status"`
	ObjectID          string   `json:"object_id"`
	ImageBase64       string   `json:"image_base64"`
	FlagObject        bool     `json:"flag_object"`
	Filename          string   `json:"filename"`
	Size              int64    `json:"size"`
	MimeType          string   `json:"mime_type"`
	Dimensions        string   `json:"dimensions"`
	CreatedBy         string   `json:"created_by"`
	CreatedAt         string   `json:"created_at"`
	UpdatedBy         string   `json:"updated_by"`
	UpdatedAt         string   `json:"updated_at"`
	ObjectName        string   `json:"object_name"`
	ObjectDescription string   `json:"object_description"`
	ObjectHint        string   `json:"object_hint"`
	ObjectShortHint   string   `json:"object_short_hint"`
	TranslationStatus string   `json:"translation_status"`
	TranslationID     string   `json:"translation_id"`
	FlagTranslation   bool     `json:"flag_translation"`
}

// Translation returns the per-language slice of the result.
func (r *IdentifyResult) Translation() TranslationRecord {
	return TranslationRecord{
		ObjectName:        r.ObjectName,
		ObjectDescription: r.ObjectDescription,
		ObjectHint:        r.ObjectHint,
		ObjectShortHint:   r.ObjectShortHint,
		TranslationStatus: r.TranslationStatus,
		TranslationID:     r.TranslationID,
		FlagTranslation:   r.FlagTranslation,
	}
}

// Common returns the image-level slice of the result.
func (r *IdentifyResult) Common() CommonData {
	return CommonData{
		ObjectNameEN:   r.ObjectNameEN,
		ObjectCategory: r.ObjectCategory,
		Tags:           append([]string(nil), r.Tags...),
		FieldOfStudy:   r.FieldOfStudy,
		AgeAppropriate: r.AgeAppropriate,
		ImageStatus:    r.ImageStatus,
		ObjectID:       r.ObjectID,
		ImageBase64:    r.ImageBase64,
		FlagObject:     r.FlagObject,
	}
}

// File returns the file-info slice of the result.
func (r *IdentifyResult) File() FileInfo {
	return FileInfo{
		Filename:   r.Filename,
		Size:       r.Size,
		MimeType:   r.MimeType,
		Dimensions: r.Dimensions,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt,
		UpdatedBy:  r.UpdatedBy,
		UpdatedAt:  r.UpdatedAt,
	}
}

// WorklistItem is one pending entry from the shared work queue, keyed by the
// language it was requested for.
type WorklistItem struct {
	RequestedLanguage string `json:"requested_language"`
	IdentifyResult
	QuizQA          string `json:"quiz_qa,omitempty"`
	TranslationText string `json:"translation,omitempty"`
}

// RecordDetail is the nested shape returned by the get-by-id endpoint.
type RecordDetail struct {
	CommonData struct {
		ObjectNameEN string `json:"object_name_en"`
		Metadata     struct {
			ObjectCategory string   `json:"object_category"`
			Tags           []string `json:"tags"`
			FieldOfStudy   string   `json:"field_of_study"`
			AgeAppropriate bool     `json:"age_appropriate"`
		} `json:"metadata"`
		ImageStatus string `json:"image_status"`
		ID          string `json:"_id"`
		ImageBase64 string `json:"image_base64"`
		FlagObject  bool   `json:"flag_object"`
	} `json:"common_data"`
	FileInfo     FileInfo `json:"file_info"`
	Translations struct {
		ObjectName        string `json:"object_name"`
		ObjectDescription string `json:"object_description"`
		ObjectHint        string `json:"object_hint"`
		ObjectShortHint   string `json:"object_short_hint"`
		TranslationStatus string `json:"translation_status"`
		ID                string `json:"_id"`
	} `json:"translations"`
	FlagTranslation bool `json:"flag_translation"`
}

// Common flattens the nested common_data block.
func (d *RecordDetail) Common() CommonData {
	return CommonData{
		ObjectNameEN:   d.CommonData.ObjectNameEN,
		ObjectCategory: d.CommonData.Metadata.ObjectCategory,
		Tags:           append([]string(nil), d.CommonData.Metadata.Tags...),
		FieldOfStudy:   d.CommonData.Metadata.FieldOfStudy,
		AgeAppropriate: d.CommonData.Metadata.AgeAppropriate,
		ImageStatus:    d.CommonData.ImageStatus,
		ObjectID:       d.CommonData.ID,
		ImageBase64:    d.CommonData.ImageBase64,
		FlagObject:     d.CommonData.FlagObject,
	}
}

// Record flattens the nested translations block.
func (d *RecordDetail) Record() TranslationRecord {
	return TranslationRecord{
		ObjectName:        d.Translations.ObjectName,
		ObjectDescription: d.Translations.ObjectDescription,
		ObjectHint:        d.Translations.ObjectHint,
		ObjectShortHint:   d.Translations.ObjectShortHint,
		TranslationStatus: d.Translations.TranslationStatus,
		TranslationID:     d.Translations.ID,
		FlagTranslation:   d.FlagTranslation,
	}
}

// CacheEntry is one locally cached identify response, keyed by content hash
// and language.
type CacheEntry struct {
	ID          int64  `json:"id"`
	ContentHash string `json:"content_hash"`
	Language    string `json:"language"`
	Payload     string `json:"payload"`
	CreatedAt   string `json:"created_at"`
}
