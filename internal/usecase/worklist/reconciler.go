package worklist

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vishalsx/tubstudio-sub001/internal/domain"
	"github.com/vishalsx/tubstudio-sub001/internal/ports"
	"github.com/vishalsx/tubstudio-sub001/internal/usecase/store"
)

type Deps struct {
	Backend ports.Backend
	Log     *zap.Logger
}

// Reconciler merges worklist fetches into a session store. A full refresh
// replaces the whole per-language state; a partial refresh touches only the
// requested language so sibling tabs the user is mid-editing survive.
type Reconciler struct{ d Deps }

func New(d Deps) *Reconciler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &Reconciler{d: d}
}

// Refresh fetches pending work for one language, or for every selected
// language when full is set, and reconciles the result into st.
func (r *Reconciler) Refresh(ctx context.Context, st *store.Store, language string, full bool) error {
	var langs []string
	if full {
		langs = st.SelectedLanguages()
		st.ClearResults()
	} else {
		langs = []string{language}
		st.ClearSaveMessage(language)
	}
	if len(langs) == 0 {
		return domain.ErrNoLanguages
	}

	// Placeholders go in before the fetch so no caller observes a stale
	// record mid-flight; the tokens prove the response is still wanted.
	tokens := st.MarkLoading(langs)

	items, err := r.d.Backend.FetchWorklist(ctx, langs)
	if err != nil {
		for _, lang := range langs {
			st.SetLanguageError(lang, tokens[lang], err.Error())
		}
		return fmt.Errorf("fetch worklist: %w", err)
	}

	if len(items) == 0 {
		st.PruneLanguages(langs)
		if full {
			st.SetSessionMessage("work queue is empty")
		} else {
			st.SetSessionMessage(fmt.Sprintf("no pending work for %s", language))
		}
		r.d.Log.Info("worklist empty", zap.Strings("languages", langs), zap.Bool("full", full))
		return nil
	}

	recs := map[string]domain.TranslationRecord{}
	commons := map[string]domain.CommonData{}
	files := map[string]domain.FileInfo{}
	for _, item := range items {
		lang := item.RequestedLanguage
		recs[lang] = item.Translation()
		commons[lang] = item.Common()
		files[lang] = item.File()
	}

	st.ApplyWorklist(full, tokens, recs, commons, files)
	st.SetSessionMessage("")
	r.d.Log.Info("worklist reconciled",
		zap.Int("items", len(items)), zap.Bool("full", full), zap.Strings("languages", langs))
	return nil
}
