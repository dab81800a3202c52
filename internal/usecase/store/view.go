package store

import "github.com/vishalsx/tubstudio-sub001/internal/domain"

// View is a copied read-model of the whole session, safe to serialize while
// the store keeps mutating.
type View struct {
	Mode              domain.CommonDataMode               `json:"mode"`
	SelectedLanguages []string                            `json:"selected_languages"`
	ActiveTab         string                              `json:"active_tab"`
	AvailableTabs     []string                            `json:"available_tabs"`
	Results           map[string]domain.TranslationRecord `json:"results"`
	SaveStatus        map[string]domain.SaveStatus        `json:"save_status"`
	SaveMessages      map[string]string                   `json:"save_messages"`
	Editing           map[string]bool                     `json:"editing"`
	Saving            map[string]bool                     `json:"saving"`
	CommonData        domain.CommonData                   `json:"common_data"`
	FileInfo          domain.FileInfo                     `json:"file_info"`
	SessionMessage    string                              `json:"session_message,omitempty"`
}

func (s *Store) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		Mode:              s.mode,
		SelectedLanguages: append([]string(nil), s.selected...),
		ActiveTab:         s.activeTab,
		AvailableTabs:     append([]string(nil), s.availableTabs...),
		Results:           map[string]domain.TranslationRecord{},
		SaveStatus:        map[string]domain.SaveStatus{},
		SaveMessages:      map[string]string{},
		Editing:           map[string]bool{},
		Saving:            map[string]bool{},
		CommonData:        s.common.Clone(),
		FileInfo:          s.fileInfo,
		SessionMessage:    s.sessionMessage,
	}
	for lang, rec := range s.results {
		v.Results[lang] = *rec
	}
	for lang, st := range s.saveStatus {
		v.SaveStatus[lang] = st
	}
	for lang, msg := range s.saveMessages {
		v.SaveMessages[lang] = msg
	}
	for lang, e := range s.editing {
		v.Editing[lang] = e
	}
	for lang, sv := range s.saving {
		v.Saving[lang] = sv
	}
	return v
}
