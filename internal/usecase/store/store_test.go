package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishalsx/tubstudio-sub001/internal/domain"
)

func strptr(s string) *string { return &s }

// seed installs a populated record for lang the way an identify would.
func seed(t *testing.T, s *Store, lang string) {
	t.Helper()
	tokens := s.MarkLoading([]string{lang})
	require.NoError(t, s.ApplyIdentify(lang, tokens[lang], domain.TranslationRecord{
		ObjectName:    "apple " + lang,
		TranslationID: "tr-" + lang,
	}))
}

// broadcast installs a common snapshot for langs with live tokens, the way
// the identify fan-out does.
func broadcast(s *Store, common domain.CommonData, file domain.FileInfo, langs ...string) {
	tokens := map[string]string{}
	for _, lang := range langs {
		tok := s.Generation(lang)
		if tok == "" {
			tok = s.MarkLoading([]string{lang})[lang]
		}
		tokens[lang] = tok
	}
	s.BroadcastCommon(common, file, tokens)
}

func TestSelectLanguage_FirstSelectionBecomesActive(t *testing.T) {
	s := New(domain.ModeShared)
	s.SelectLanguage("English")
	s.SelectLanguage("French")
	s.SelectLanguage("English") // duplicate is a no-op

	assert.Equal(t, []string{"English", "French"}, s.SelectedLanguages())
	assert.Equal(t, "English", s.ActiveTab())
}

func TestDeselectLanguage_RemovesEveryMapEntry(t *testing.T) {
	s := New(domain.ModePerTab)
	s.SelectLanguage("English")
	s.SelectLanguage("French")
	seed(t, s, "English")
	seed(t, s, "French")
	broadcast(s, domain.CommonData{ObjectNameEN: "apple"}, domain.FileInfo{Filename: "a.png"},
		"English", "French")
	s.SetSaveMessage("French", "saved")
	s.SetSaving("French", true)

	s.DeselectLanguage("French")

	v := s.Snapshot()
	for name, has := range map[string]bool{
		"results":       hasKey(v.Results, "French"),
		"save_status":   hasKeyStatus(v.SaveStatus, "French"),
		"save_messages": hasKeyStr(v.SaveMessages, "French"),
		"editing":       hasKeyBool(v.Editing, "French"),
		"saving":        hasKeyBool(v.Saving, "French"),
	} {
		assert.False(t, has, "stale %s entry for deselected language", name)
	}
	_, ok := s.OriginalResult("French")
	assert.False(t, ok)
	_, ok = s.PerLanguageCommon("French")
	assert.False(t, ok)
	assert.Empty(t, s.Generation("French"))
	assert.Equal(t, "English", s.ActiveTab())
}

func hasKey(m map[string]domain.TranslationRecord, k string) bool { _, ok := m[k]; return ok }
func hasKeyStatus(m map[string]domain.SaveStatus, k string) bool  { _, ok := m[k]; return ok }
func hasKeyStr(m map[string]string, k string) bool                { _, ok := m[k]; return ok }
func hasKeyBool(m map[string]bool, k string) bool                 { _, ok := m[k]; return ok }

func TestDeselectActiveLanguage_PromotesFirstRemaining(t *testing.T) {
	s := New(domain.ModeShared)
	s.SelectLanguage("English")
	s.SelectLanguage("French")
	s.DeselectLanguage("English")
	assert.Equal(t, "French", s.ActiveTab())

	s.DeselectLanguage("French")
	assert.Equal(t, "", s.ActiveTab())
}

func TestUpdateLanguageResult_DoesNotTouchSaveStatus(t *testing.T) {
	s := New(domain.ModeShared)
	s.SelectLanguage("English")
	seed(t, s, "English")
	require.Equal(t, domain.SaveStatusUnsaved, s.SaveStatusOf("English"))

	err := s.UpdateLanguageResult("English", domain.TranslationPatch{ObjectName: strptr("pomme")})
	require.NoError(t, err)

	rec, _ := s.Result("English")
	assert.Equal(t, "pomme", rec.ObjectName)
	assert.Equal(t, domain.SaveStatusUnsaved, s.SaveStatusOf("English"))
}

func TestUpdateLanguageResult_UnknownLanguage(t *testing.T) {
	s := New(domain.ModeShared)
	err := s.UpdateLanguageResult("Klingon", domain.TranslationPatch{})
	assert.ErrorIs(t, err, domain.ErrNotIdentified)
}

func TestUpdateCommonData_SharedModeDoesNotTouchPerLanguageMap(t *testing.T) {
	s := New(domain.ModeShared)
	s.SelectLanguage("English")
	broadcast(s, domain.CommonData{ObjectNameEN: "apple"}, domain.FileInfo{}, "English")

	s.UpdateCommonData(domain.CommonPatch{ObjectNameEN: strptr("pear")})

	assert.Equal(t, "pear", s.CommonData().ObjectNameEN)
	perLang, ok := s.PerLanguageCommon("English")
	require.True(t, ok)
	assert.Equal(t, "apple", perLang.ObjectNameEN, "shared mode must not consult the per-language map")
}

func TestUpdateCommonData_PerTabModeMirrorsActiveTab(t *testing.T) {
	s := New(domain.ModePerTab)
	s.SelectLanguage("English")
	s.SelectLanguage("French")
	broadcast(s, domain.CommonData{ObjectNameEN: "apple"}, domain.FileInfo{}, "English", "French")

	s.UpdateCommonData(domain.CommonPatch{ObjectNameEN: strptr("pear")})

	enCommon, _ := s.PerLanguageCommon("English")
	frCommon, _ := s.PerLanguageCommon("French")
	assert.Equal(t, "pear", enCommon.ObjectNameEN)
	assert.Equal(t, "apple", frCommon.ObjectNameEN)

	// Switching tabs in per-tab mode swaps the current view to the new
	// tab's own snapshot.
	s.SetActiveTab("French")
	assert.Equal(t, "apple", s.CommonData().ObjectNameEN)
	s.SetActiveTab("English")
	assert.Equal(t, "pear", s.CommonData().ObjectNameEN)
}

func TestSetActiveTab_SharedModeKeepsSingleView(t *testing.T) {
	s := New(domain.ModeShared)
	s.SelectLanguage("English")
	s.SelectLanguage("French")
	broadcast(s, domain.CommonData{ObjectNameEN: "apple"}, domain.FileInfo{}, "English", "French")

	s.UpdateCommonData(domain.CommonPatch{ObjectNameEN: strptr("pear")})
	s.SetActiveTab("French")
	assert.Equal(t, "pear", s.CommonData().ObjectNameEN, "shared mode shows the same edited value on every tab")
}

func TestToggleEdit_RevertsRecordAndCanonicalCommon(t *testing.T) {
	s := New(domain.ModeShared)
	s.SelectLanguage("English")
	seed(t, s, "English")
	broadcast(s, domain.CommonData{ObjectNameEN: "apple"}, domain.FileInfo{}, "English")
	before, _ := s.Result("English")

	s.ToggleEdit("English", "English")
	require.True(t, s.IsEditing("English"))
	require.NoError(t, s.UpdateLanguageResult("English", domain.TranslationPatch{ObjectName: strptr("scribble")}))
	s.UpdateCommonData(domain.CommonPatch{ObjectNameEN: strptr("scribble")})

	s.ToggleEdit("English", "English")
	assert.False(t, s.IsEditing("English"))
	after, _ := s.Result("English")
	assert.Equal(t, before, after)
	assert.Equal(t, "apple", s.CommonData().ObjectNameEN)

	// Repeating the cycle without edits changes nothing.
	s.ToggleEdit("English", "English")
	s.ToggleEdit("English", "English")
	again, _ := s.Result("English")
	assert.Equal(t, before, again)
	assert.Equal(t, "apple", s.CommonData().ObjectNameEN)
}

func TestToggleEdit_NonCanonicalLanguageKeepsCommonEdits(t *testing.T) {
	s := New(domain.ModeShared)
	s.SelectLanguage("English")
	s.SelectLanguage("French")
	seed(t, s, "French")
	broadcast(s, domain.CommonData{ObjectNameEN: "apple"}, domain.FileInfo{}, "English", "French")

	s.ToggleEdit("French", "English")
	s.UpdateCommonData(domain.CommonPatch{ObjectNameEN: strptr("pear")})
	s.ToggleEdit("French", "English")

	assert.Equal(t, "pear", s.CommonData().ObjectNameEN,
		"only the canonical language reverts shared common data")
}

func TestApplyIdentify_StaleTokenDiscarded(t *testing.T) {
	s := New(domain.ModeShared)
	s.SelectLanguage("English")
	tokens := s.MarkLoading([]string{"English"})

	// A newer operation supersedes the first one.
	s.MarkLoading([]string{"English"})

	err := s.ApplyIdentify("English", tokens["English"], domain.TranslationRecord{ObjectName: "late"})
	assert.ErrorIs(t, err, domain.ErrStale)
	rec, _ := s.Result("English")
	assert.True(t, rec.IsLoading, "superseded response must not land")
}

func TestBroadcastCommon_SupersededLanguageLeavesNoResidue(t *testing.T) {
	s := New(domain.ModeShared)
	s.SelectLanguage("English")
	s.SelectLanguage("French")
	tokens := s.MarkLoading([]string{"English", "French"})

	s.DeselectLanguage("English")

	ok := s.BroadcastCommon(domain.CommonData{ObjectNameEN: "apple"}, domain.FileInfo{}, tokens)
	assert.True(t, ok, "the batch still has a live language")
	_, has := s.PerLanguageCommon("English")
	assert.False(t, has, "deselected language must not regain a snapshot")
	frCommon, has := s.PerLanguageCommon("French")
	require.True(t, has)
	assert.Equal(t, "apple", frCommon.ObjectNameEN)
	assert.Equal(t, "apple", s.CommonData().ObjectNameEN)
}

func TestBroadcastCommon_WholeBatchSupersededIsDiscarded(t *testing.T) {
	s := New(domain.ModeShared)
	s.SelectLanguage("English")
	tokens := s.MarkLoading([]string{"English"})

	// A newer operation supersedes the whole batch.
	s.MarkLoading([]string{"English"})

	ok := s.BroadcastCommon(domain.CommonData{ObjectNameEN: "stale"}, domain.FileInfo{}, tokens)
	assert.False(t, ok)
	assert.Equal(t, "", s.CommonData().ObjectNameEN)
	assert.Equal(t, "", s.OriginalCommonData().ObjectNameEN)
	_, has := s.PerLanguageCommon("English")
	assert.False(t, has)
}

func TestClearLoading_DropsPlaceholderOnly(t *testing.T) {
	s := New(domain.ModeShared)
	s.SelectLanguage("English")
	tokens := s.MarkLoading([]string{"English"})

	require.NoError(t, s.ClearLoading("English", tokens["English"]))
	rec, _ := s.Result("English")
	assert.False(t, rec.IsLoading)
	assert.Empty(t, rec.Error)

	stale := s.ClearLoading("English", "not-the-token")
	assert.ErrorIs(t, stale, domain.ErrStale)
}

func TestMarkSaved_RebaselinesOriginals(t *testing.T) {
	s := New(domain.ModeShared)
	s.SelectLanguage("English")
	seed(t, s, "English")

	saved := domain.TranslationRecord{ObjectName: "apple", TranslationID: "tr-1", TranslationStatus: "in_review"}
	s.MarkSaved("English", saved, domain.CommonData{ObjectNameEN: "apple", ObjectID: "obj-1"}, domain.FileInfo{Filename: "a.png"})

	assert.Equal(t, domain.SaveStatusSaved, s.SaveStatusOf("English"))
	assert.False(t, s.IsEditing("English"))
	orig, ok := s.OriginalResult("English")
	require.True(t, ok)
	assert.Equal(t, "apple", orig.ObjectName)
	assert.Equal(t, "apple", s.OriginalCommonData().ObjectNameEN)

	// Cancel-edit now reverts to the just-saved state, not the pre-save one.
	s.ToggleEdit("English", "English")
	require.NoError(t, s.UpdateLanguageResult("English", domain.TranslationPatch{ObjectName: strptr("scribble")}))
	s.ToggleEdit("English", "English")
	rec, _ := s.Result("English")
	assert.Equal(t, "apple", rec.ObjectName)
}

func TestClearResults_KeepsSelectionAndMode(t *testing.T) {
	s := New(domain.ModePerTab)
	s.SelectLanguage("English")
	seed(t, s, "English")
	s.SetSessionMessage("hello")

	s.ClearResults()

	v := s.Snapshot()
	assert.Empty(t, v.Results)
	assert.Empty(t, v.AvailableTabs)
	assert.Equal(t, "", v.ActiveTab)
	assert.Equal(t, "", v.SessionMessage)
	assert.Equal(t, []string{"English"}, v.SelectedLanguages)
	assert.Equal(t, domain.ModePerTab, v.Mode)
}
