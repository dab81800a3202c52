package domain

// CommonDataMode decides whether image-level metadata is shared across all
// language tabs or isolated per tab. It is session state, threaded explicitly
// through every store operation that consults it.
type CommonDataMode string

const (
	ModeShared CommonDataMode = "shared"
	ModePerTab CommonDataMode = "per-tab"
)

// CommonData is the image-level metadata shared (or potentially shared) by
// every requested language of one image.
type CommonData struct {
	ObjectNameEN   string   `json:"object_name_en"`
	ObjectCategory string   `json:"object_category"`
	Tags           []string `json:"tags"`
	FieldOfStudy   string   `json:"field_of_study"`
	AgeAppropriate bool     `json:"age_appropriate"`
	ImageStatus    string   `json:"image_status"`
	ObjectID       string   `json:"object_id"`
	ImageBase64    string   `json:"image_base64"`
	FlagObject     bool     `json:"flag_object"`
}

// Clone returns a deep copy; Tags is the only reference field.
func (c CommonData) Clone() CommonData {
	out := c
	if c.Tags != nil {
		out.Tags = append([]string(nil), c.Tags...)
	}
	return out
}

// FileInfo mirrors the uploaded image whose identification produced the
// active language set. Timestamps are carried as the backend sends them.
type FileInfo struct {
	Filename   string `json:"filename"`
	Size       int64  `json:"size"`
	MimeType   string `json:"mime_type"`
	Dimensions string `json:"dimensions"`
	CreatedBy  string `json:"created_by"`
	CreatedAt  string `json:"created_at"`
	UpdatedBy  string `json:"updated_by"`
	UpdatedAt  string `json:"updated_at"`
}

// CommonPatch carries a partial edit of CommonData; nil fields are untouched.
type CommonPatch struct {
	ObjectNameEN   *string   `json:"object_name_en"`
	ObjectCategory *string   `json:"object_category"`
	Tags           *[]string `json:"tags"`
	FieldOfStudy   *string   `json:"field_of_study"`
	AgeAppropriate *bool     `json:"age_appropriate"`
	ImageStatus    *string   `json:"image_status"`
	FlagObject     *bool     `json:"flag_object"`
}

func (p CommonPatch) ApplyTo(c *CommonData) {
	if p.ObjectNameEN != nil {
		c.ObjectNameEN = *p.ObjectNameEN
	}
	if p.ObjectCategory != nil {
		c.ObjectCategory = *p.ObjectCategory
	}
	if p.Tags != nil {
		c.Tags = append([]string(nil), *p.Tags...)
	}
	if p.FieldOfStudy != nil {
		c.FieldOfStudy = *p.FieldOfStudy
	}
	if p.AgeAppropriate != nil {
		c.AgeAppropriate = *p.AgeAppropriate
	}
	if p.ImageStatus != nil {
		c.ImageStatus = *p.ImageStatus
	}
	if p.FlagObject != nil {
		c.FlagObject = *p.FlagObject
	}
}
