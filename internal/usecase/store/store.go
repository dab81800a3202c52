package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/vishalsx/tubstudio-sub001/internal/domain"
)

// Store holds every per-language slice of one review session plus the shared
// image-level state. All mutation goes through named operations; the mutex
// serializes the HTTP callers so the session behaves as a single logical
// thread.
//
// Per-language maps must stay keyed by the same language set: removing a
// language deletes its entry from every map in one critical section, never
// from only some of them.
type Store struct {
	mu sync.Mutex

	mode     domain.CommonDataMode
	selected []string

	activeTab     string
	availableTabs []string

	results         map[string]*domain.TranslationRecord
	originalResults map[string]*domain.TranslationRecord
	saveStatus      map[string]domain.SaveStatus
	saveMessages    map[string]string
	editing         map[string]bool
	saving          map[string]bool

	common         domain.CommonData
	originalCommon domain.CommonData
	fileInfo       domain.FileInfo

	perLanguageCommon map[string]*domain.CommonData
	perLanguageFile   map[string]*domain.FileInfo

	// generations are per-language staleness tokens: a response is applied
	// only while its token is still the current one for that language.
	generations map[string]string

	sessionMessage string
}

func New(mode domain.CommonDataMode) *Store {
	s := &Store{mode: mode}
	s.resetMaps()
	return s
}

func (s *Store) resetMaps() {
	s.results = map[string]*domain.TranslationRecord{}
	s.originalResults = map[string]*domain.TranslationRecord{}
	s.saveStatus = map[string]domain.SaveStatus{}
	s.saveMessages = map[string]string{}
	s.editing = map[string]bool{}
	s.saving = map[string]bool{}
	s.perLanguageCommon = map[string]*domain.CommonData{}
	s.perLanguageFile = map[string]*domain.FileInfo{}
	s.generations = map[string]string{}
	s.availableTabs = nil
	s.activeTab = ""
	s.common = domain.CommonData{}
	s.originalCommon = domain.CommonData{}
	s.fileInfo = domain.FileInfo{}
	s.sessionMessage = ""
}

func (s *Store) Mode() domain.CommonDataMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Store) SetMode(mode domain.CommonDataMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// SelectLanguage appends lang to the selected set; the first selection
// becomes the active tab.
func (s *Store) SelectLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.selected {
		if l == lang {
			return
		}
	}
	s.selected = append(s.selected, lang)
	if len(s.selected) == 1 {
		s.activeTab = lang
	}
}

// DeselectLanguage removes lang from the selected set and deletes its entry
// from every per-language map atomically. If it was the active tab, the first
// remaining selected language takes over.
func (s *Store) DeselectLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.selected[:0]
	for _, l := range s.selected {
		if l != lang {
			out = append(out, l)
		}
	}
	s.selected = out
	s.deleteLanguageLocked(lang)
	if s.activeTab == lang {
		s.activeTab = ""
		if len(s.selected) > 0 {
			s.activeTab = s.selected[0]
		}
	}
}

func (s *Store) deleteLanguageLocked(lang string) {
	delete(s.results, lang)
	delete(s.originalResults, lang)
	delete(s.saveStatus, lang)
	delete(s.saveMessages, lang)
	delete(s.editing, lang)
	delete(s.saving, lang)
	delete(s.perLanguageCommon, lang)
	delete(s.perLanguageFile, lang)
	delete(s.generations, lang)
	tabs := s.availableTabs[:0]
	for _, t := range s.availableTabs {
		if t != lang {
			tabs = append(tabs, t)
		}
	}
	s.availableTabs = tabs
}

func (s *Store) SelectedLanguages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.selected...)
}

func (s *Store) AvailableTabs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.availableTabs...)
}

func (s *Store) ActiveTab() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTab
}

// SetActiveTab switches the displayed language. In per-tab mode the current
// common/file view swaps to the new tab's own snapshot.
func (s *Store) SetActiveTab(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = lang
	if s.mode != domain.ModePerTab {
		return
	}
	if c, ok := s.perLanguageCommon[lang]; ok {
		s.common = c.Clone()
	}
	if f, ok := s.perLanguageFile[lang]; ok {
		s.fileInfo = *f
	}
}

// UpdateLanguageResult merges a partial edit into lang's record. Save status
// is not touched; only an explicit save or refresh rewrites it.
func (s *Store) UpdateLanguageResult(lang string, patch domain.TranslationPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.results[lang]
	if !ok {
		return domain.ErrNotIdentified
	}
	patch.ApplyTo(rec)
	return nil
}

// UpdateCommonData writes into the current common view. In per-tab mode the
// edit also lands in the active tab's own snapshot; in shared mode the
// per-language map is left alone.
func (s *Store) UpdateCommonData(patch domain.CommonPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	patch.ApplyTo(&s.common)
	if s.mode == domain.ModePerTab && s.activeTab != "" {
		c := s.common.Clone()
		s.perLanguageCommon[s.activeTab] = &c
	}
}

// ToggleEdit flips lang's editing flag. Leaving edit mode is a cancel: the
// record reverts to its original snapshot, and when lang is the canonical
// language the shared common view reverts too. The restore is a pure copy
// from the originals, so repeating it is a no-op.
func (s *Store) ToggleEdit(lang, canonical string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing[lang] {
		s.editing[lang] = true
		return
	}
	s.editing[lang] = false
	s.revertLocked(lang, canonical)
}

func (s *Store) revertLocked(lang, canonical string) {
	if orig, ok := s.originalResults[lang]; ok {
		rec := *orig
		s.results[lang] = &rec
	}
	if lang == canonical {
		s.common = s.originalCommon.Clone()
		if s.mode == domain.ModePerTab {
			c := s.originalCommon.Clone()
			s.perLanguageCommon[lang] = &c
		}
	}
}

// ClearResults resets every map and the common/file defaults. The selected
// language set and mode survive; they describe the user, not the record.
func (s *Store) ClearResults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetMaps()
}

// MarkLoading replaces each language's record with a loading placeholder and
// issues a fresh generation token per language, returned to the caller so the
// eventual response can prove it is not stale.
func (s *Store) MarkLoading(langs []string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	tokens := make(map[string]string, len(langs))
	for _, lang := range langs {
		s.results[lang] = &domain.TranslationRecord{IsLoading: true}
		tok := uuid.NewString()
		s.generations[lang] = tok
		tokens[lang] = tok
	}
	return tokens
}

func (s *Store) currentLocked(lang, token string) bool {
	return token != "" && s.generations[lang] == token
}

// ApplyIdentify installs an identify response for lang. Returns ErrStale and
// leaves the store untouched when the token has been superseded (a newer
// operation or a deselect happened while the request was in flight).
func (s *Store) ApplyIdentify(lang, token string, rec domain.TranslationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(lang, token) {
		return domain.ErrStale
	}
	rec.IsLoading = false
	r := rec
	s.results[lang] = &r
	orig := rec
	s.originalResults[lang] = &orig
	s.saveStatus[lang] = domain.SaveStatusUnsaved
	s.editing[lang] = false
	return nil
}

// SetLanguageError records a per-language failure without disturbing sibling
// tabs. Stale tokens are discarded the same way as results.
func (s *Store) SetLanguageError(lang, token, msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(lang, token) {
		return domain.ErrStale
	}
	rec, ok := s.results[lang]
	if !ok {
		rec = &domain.TranslationRecord{}
		s.results[lang] = rec
	}
	rec.IsLoading = false
	rec.Error = msg
	return nil
}

// ClearLoading drops the in-flight placeholder for lang without recording a
// result or an error. Stale tokens are discarded.
func (s *Store) ClearLoading(lang, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.currentLocked(lang, token) {
		return domain.ErrStale
	}
	if rec, ok := s.results[lang]; ok {
		rec.IsLoading = false
	}
	return nil
}

// BroadcastCommon installs the image-level snapshot taken from the first
// identify response of a batch to complete. Each per-language copy lands only
// if that language's token is still current, so a deselected or superseded
// language regains nothing; the shared current and original views are
// installed only when at least one token in the batch survived. Returns false
// when the whole batch was superseded.
func (s *Store) BroadcastCommon(common domain.CommonData, file domain.FileInfo, tokens map[string]string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	live := false
	for lang, token := range tokens {
		if !s.currentLocked(lang, token) {
			continue
		}
		c := common.Clone()
		f := file
		s.perLanguageCommon[lang] = &c
		s.perLanguageFile[lang] = &f
		live = true
	}
	if !live {
		return false
	}
	s.common = common.Clone()
	s.originalCommon = common.Clone()
	s.fileInfo = file
	return true
}

func (s *Store) Generation(lang string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[lang]
}

func (s *Store) ClearSaveMessage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saveMessages, lang)
}

func (s *Store) SetSaveMessage(lang, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveMessages[lang] = msg
}

func (s *Store) SaveMessage(lang string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveMessages[lang]
}

func (s *Store) SetSessionMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionMessage = msg
}

func (s *Store) SessionMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionMessage
}

func (s *Store) SetSaving(lang string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving[lang] = v
}

func (s *Store) IsSaving(lang string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving[lang]
}

func (s *Store) IsEditing(lang string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing[lang]
}

func (s *Store) Result(lang string) (domain.TranslationRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.results[lang]
	if !ok {
		return domain.TranslationRecord{}, false
	}
	return *rec, true
}

func (s *Store) OriginalResult(lang string) (domain.TranslationRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.originalResults[lang]
	if !ok {
		return domain.TranslationRecord{}, false
	}
	return *rec, true
}

func (s *Store) SaveStatusOf(lang string) domain.SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveStatus[lang]
}

func (s *Store) CommonData() domain.CommonData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.common.Clone()
}

func (s *Store) OriginalCommonData() domain.CommonData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.originalCommon.Clone()
}

func (s *Store) FileInfo() domain.FileInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fileInfo
}

func (s *Store) PerLanguageCommon(lang string) (domain.CommonData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.perLanguageCommon[lang]
	if !ok {
		return domain.CommonData{}, false
	}
	return c.Clone(), true
}

// CommonForSave resolves the common-data view a save of lang should carry:
// the tab's own snapshot in per-tab mode, the single current value otherwise.
func (s *Store) CommonForSave(lang string) domain.CommonData {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == domain.ModePerTab {
		if c, ok := s.perLanguageCommon[lang]; ok {
			return c.Clone()
		}
	}
	return s.common.Clone()
}

// AbsorbIDs copies server-assigned identifiers back into lang's record and
// the common view.
func (s *Store) AbsorbIDs(lang, objectID, translationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.results[lang]; ok && translationID != "" {
		rec.TranslationID = translationID
	}
	if objectID != "" {
		s.common.ObjectID = objectID
		if c, ok := s.perLanguageCommon[lang]; ok {
			c.ObjectID = objectID
		}
	}
}

// MarkSaved installs the refreshed post-save state for lang: record, common
// and file snapshots become both the current and the original values, so a
// later cancel-edit reverts to the just-saved state.
func (s *Store) MarkSaved(lang string, rec domain.TranslationRecord, common domain.CommonData, file domain.FileInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := rec
	r.IsLoading = false
	s.results[lang] = &r
	orig := r
	s.originalResults[lang] = &orig
	s.saveStatus[lang] = domain.SaveStatusSaved
	s.editing[lang] = false
	s.saving[lang] = false
	s.common = common.Clone()
	s.originalCommon = common.Clone()
	s.fileInfo = file
	c := common.Clone()
	f := file
	s.perLanguageCommon[lang] = &c
	s.perLanguageFile[lang] = &f
}

// PruneLanguages removes every map entry for langs and drops them from the
// available tabs; used when a refresh comes back empty. The selected set is
// untouched. If the active tab was pruned the first remaining available tab
// takes over.
func (s *Store) PruneLanguages(langs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pruned := make(map[string]bool, len(langs))
	for _, lang := range langs {
		pruned[lang] = true
		s.deleteLanguageLocked(lang)
	}
	if pruned[s.activeTab] {
		s.activeTab = ""
		if len(s.availableTabs) > 0 {
			s.activeTab = s.availableTabs[0]
		}
	}
}

// ApplyWorklist merges a worklist fetch into the store. A full refresh
// replaces the per-language maps wholesale; a partial refresh spreads the
// fetched languages over the existing ones so untouched tabs survive byte for
// byte. Languages whose generation token was superseded mid-flight are
// dropped. Available tabs are recomputed from the merged result set, the
// first one becomes active, and its snapshots become the current view; only a
// full refresh also rebaselines the original common data.
func (s *Store) ApplyWorklist(full bool, tokens map[string]string,
	recs map[string]domain.TranslationRecord,
	commons map[string]domain.CommonData,
	files map[string]domain.FileInfo) {

	s.mu.Lock()
	defer s.mu.Unlock()

	if full {
		s.results = map[string]*domain.TranslationRecord{}
		s.originalResults = map[string]*domain.TranslationRecord{}
		s.saveStatus = map[string]domain.SaveStatus{}
		s.editing = map[string]bool{}
		s.saving = map[string]bool{}
		s.perLanguageCommon = map[string]*domain.CommonData{}
		s.perLanguageFile = map[string]*domain.FileInfo{}
	}

	for lang, rec := range recs {
		if !s.currentLocked(lang, tokens[lang]) {
			continue
		}
		r := rec
		r.IsLoading = false
		s.results[lang] = &r
		orig := r
		s.originalResults[lang] = &orig
		s.saveStatus[lang] = domain.SaveStatusSaved
		s.editing[lang] = false
		if c, ok := commons[lang]; ok {
			cc := c.Clone()
			s.perLanguageCommon[lang] = &cc
		}
		if f, ok := files[lang]; ok {
			ff := f
			s.perLanguageFile[lang] = &ff
		}
	}

	s.availableTabs = s.orderedResultKeysLocked()
	s.activeTab = ""
	if len(s.availableTabs) > 0 {
		s.activeTab = s.availableTabs[0]
		if c, ok := s.perLanguageCommon[s.activeTab]; ok {
			s.common = c.Clone()
			if full {
				s.originalCommon = c.Clone()
			}
		}
		if f, ok := s.perLanguageFile[s.activeTab]; ok {
			s.fileInfo = *f
		}
	}
}

// orderedResultKeysLocked lists the results keys in selected-language order,
// then any remaining keys in map order.
func (s *Store) orderedResultKeysLocked() []string {
	var out []string
	seen := map[string]bool{}
	for _, lang := range s.selected {
		if _, ok := s.results[lang]; ok {
			out = append(out, lang)
			seen[lang] = true
		}
	}
	for lang := range s.results {
		if !seen[lang] {
			out = append(out, lang)
		}
	}
	return out
}
