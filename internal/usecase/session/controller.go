package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vishalsx/tubstudio-sub001/internal/domain"
	"github.com/vishalsx/tubstudio-sub001/internal/ports"
	"github.com/vishalsx/tubstudio-sub001/internal/usecase/permissions"
	"github.com/vishalsx/tubstudio-sub001/internal/usecase/store"
	"github.com/vishalsx/tubstudio-sub001/internal/usecase/worklist"
)

type Deps struct {
	Backend           ports.Backend
	Cache             ports.IdentifyCacheRepository // optional
	Perms             *permissions.Engine
	Reconciler        *worklist.Reconciler
	Log               *zap.Logger
	CanonicalLanguage string
}

// Controller drives one review session end to end: identify fan-out,
// quick-save, skip, and the pass-through store operations, each behind a
// permission check on both state axes.
type Controller struct {
	d  Deps
	st *store.Store

	mu          sync.Mutex
	image       []byte
	filename    string
	contentHash string
}

func NewController(d Deps, mode domain.CommonDataMode) *Controller {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &Controller{d: d, st: store.New(mode)}
}

func (c *Controller) Store() *store.Store { return c.st }

func (c *Controller) Snapshot() store.View { return c.st.Snapshot() }

// AttachImage replaces the pending upload. A new image invalidates any known
// content hash.
func (c *Controller) AttachImage(data []byte, filename string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.image = data
	c.filename = filename
	c.contentHash = ""
}

func (c *Controller) SetContentHash(hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contentHash = hash
}

// allowed checks action against both state axes: the image status and the
// active tab's translation status. Both must pass.
func (c *Controller) allowed(action string, user *domain.UserContext) bool {
	meta := c.st.CommonData().ImageStatus
	langState := ""
	if rec, ok := c.st.Result(c.st.ActiveTab()); ok {
		langState = rec.TranslationStatus
	}
	return c.d.Perms.CanPerformUIAction(action, permissions.AxisMetadata, meta, langState, user) &&
		c.d.Perms.CanPerformUIAction(action, permissions.AxisLanguage, meta, langState, user)
}

func (c *Controller) SelectLanguage(user *domain.UserContext, lang string) error {
	if user != nil && len(user.LanguagesAllowed) > 0 {
		ok := false
		for _, l := range user.LanguagesAllowed {
			if l == lang {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("language %s: %w", lang, domain.ErrPermissionDenied)
		}
	}
	c.st.SelectLanguage(lang)
	return nil
}

func (c *Controller) DeselectLanguage(lang string) { c.st.DeselectLanguage(lang) }

func (c *Controller) SetActiveTab(lang string) { c.st.SetActiveTab(lang) }

func (c *Controller) SetMode(mode domain.CommonDataMode) { c.st.SetMode(mode) }

func (c *Controller) UpdateTranslation(user *domain.UserContext, lang string, patch domain.TranslationPatch) error {
	if !c.allowed(permissions.ActionEditTranslation, user) {
		return domain.ErrPermissionDenied
	}
	return c.st.UpdateLanguageResult(lang, patch)
}

func (c *Controller) UpdateCommon(user *domain.UserContext, patch domain.CommonPatch) error {
	if !c.allowed(permissions.ActionEditCommonData, user) {
		return domain.ErrPermissionDenied
	}
	c.st.UpdateCommonData(patch)
	return nil
}

func (c *Controller) ToggleEdit(user *domain.UserContext, lang string) error {
	if !c.allowed(permissions.ActionEditTranslation, user) {
		return domain.ErrPermissionDenied
	}
	c.st.ToggleEdit(lang, c.d.CanonicalLanguage)
	return nil
}

// LanguageFailure is one per-language identify failure; Identify returns them
// in selected-language order rather than keeping only the last one.
type LanguageFailure struct {
	Language string `json:"language"`
	Message  string `json:"message"`
}

// Identify issues one request per selected language concurrently and joins
// them with an all-complete barrier. The image-level snapshot comes from the
// first response to complete and is broadcast to every selected language;
// later responses in the same batch never overwrite it. A 400-class rejection
// escalates as ErrContentPolicy instead of becoming a tab error.
func (c *Controller) Identify(ctx context.Context, user *domain.UserContext) ([]LanguageFailure, error) {
	c.mu.Lock()
	image := c.image
	filename := c.filename
	hash := c.contentHash
	c.mu.Unlock()

	if len(image) == 0 && hash == "" {
		return nil, domain.ErrNoImage
	}
	langs := c.st.SelectedLanguages()
	if len(langs) == 0 {
		return nil, domain.ErrNoLanguages
	}
	if !c.allowed(permissions.ActionIdentifyImage, user) {
		return nil, domain.ErrPermissionDenied
	}

	cacheKey := hash
	if cacheKey == "" {
		sum := sha256.Sum256(image)
		cacheKey = hex.EncodeToString(sum[:])
	}

	tokens := c.st.MarkLoading(langs)

	var (
		wg        sync.WaitGroup
		commonMu  sync.Mutex
		commonSet bool
		policy    bool
		errMsgs   = make([]string, len(langs))
	)

	for i, lang := range langs {
		wg.Add(1)
		go func(i int, lang string) {
			defer wg.Done()
			res, fromCache, err := c.identifyOne(ctx, ports.IdentifyRequest{
				Image:       image,
				Filename:    filename,
				ContentHash: hash,
				Language:    lang,
			}, cacheKey)
			if err != nil {
				if errors.Is(err, domain.ErrContentPolicy) {
					c.st.ClearLoading(lang, tokens[lang])
					commonMu.Lock()
					policy = true
					commonMu.Unlock()
					return
				}
				c.st.SetLanguageError(lang, tokens[lang], err.Error())
				errMsgs[i] = err.Error()
				return
			}
			// First-writer-wins for the shared image-level snapshot: it is
			// the same object for every language, so whichever request
			// completes first sets it for the whole batch. The batch tokens
			// gate the broadcast so a superseded response installs nothing.
			commonMu.Lock()
			if !commonSet && c.st.BroadcastCommon(res.Common(), res.File(), tokens) {
				commonSet = true
			}
			commonMu.Unlock()
			c.st.ApplyIdentify(lang, tokens[lang], res.Translation())
			if !fromCache {
				c.cachePut(ctx, cacheKey, lang, res)
			}
		}(i, lang)
	}
	wg.Wait()

	// A fresh identify of the same bytes re-sends the raw file.
	c.mu.Lock()
	c.contentHash = ""
	c.mu.Unlock()

	var failures []LanguageFailure
	for i, msg := range errMsgs {
		if msg != "" {
			failures = append(failures, LanguageFailure{Language: langs[i], Message: msg})
		}
	}
	if policy {
		return failures, domain.ErrContentPolicy
	}
	c.d.Log.Info("identify complete",
		zap.Int("languages", len(langs)), zap.Int("failures", len(failures)))
	return failures, nil
}

func (c *Controller) identifyOne(ctx context.Context, req ports.IdentifyRequest, cacheKey string) (*domain.IdentifyResult, bool, error) {
	if c.d.Cache != nil {
		if entry, err := c.d.Cache.Get(ctx, cacheKey, req.Language); err == nil && entry != nil {
			var res domain.IdentifyResult
			if err := json.Unmarshal([]byte(entry.Payload), &res); err == nil {
				return &res, true, nil
			}
		}
	}
	res, err := c.d.Backend.Identify(ctx, req)
	if err != nil {
		return nil, false, err
	}
	return res, false, nil
}

func (c *Controller) cachePut(ctx context.Context, cacheKey, lang string, res *domain.IdentifyResult) {
	if c.d.Cache == nil {
		return
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := c.d.Cache.Put(ctx, &domain.CacheEntry{
		ContentHash: cacheKey,
		Language:    lang,
		Payload:     string(payload),
	}); err != nil {
		c.d.Log.Warn("identify cache put failed", zap.Error(err))
	}
}

// QuickSave sends the active tab's record, performs the refresh-after-save
// round trip, and rebaselines both current and original snapshots so a later
// cancel-edit reverts to the just-saved state. On failure the user's edits
// and save status are left untouched.
func (c *Controller) QuickSave(ctx context.Context, user *domain.UserContext, uiAction string) error {
	tab := c.st.ActiveTab()
	rec, ok := c.st.Result(tab)
	if !ok {
		return domain.ErrNotIdentified
	}

	c.mu.Lock()
	image := c.image
	filename := c.filename
	c.mu.Unlock()

	// Saving to database without an image ever attached is a distinct rule
	// from "record exists": it is refused before any network call.
	if uiAction == permissions.ActionSaveToDatabase && len(image) == 0 {
		return domain.ErrFileRequired
	}
	if !c.allowed(uiAction, user) {
		return domain.ErrPermissionDenied
	}
	permAction := permissions.ResolveSaveAction(uiAction)
	if permAction == "" {
		return fmt.Errorf("action %q does not map to a save", uiAction)
	}

	c.st.SetSaving(tab, true)
	defer c.st.SetSaving(tab, false)

	common := c.st.CommonForSave(tab)
	res, err := c.d.Backend.Save(ctx, ports.SaveRequest{
		Common: common,
		Language: ports.LanguageAttributes{
			Language:          tab,
			ObjectName:        rec.ObjectName,
			ObjectDescription: rec.ObjectDescription,
			ObjectHint:        rec.ObjectHint,
			ObjectShortHint:   rec.ObjectShortHint,
			TranslationStatus: rec.TranslationStatus,
			TranslationID:     rec.TranslationID,
			FlagTranslation:   rec.FlagTranslation,
		},
		PermissionAction: permAction,
		Image:            image,
		Filename:         filename,
	})
	if err != nil {
		c.st.SetSaveMessage(tab, fmt.Sprintf("save failed: %v", err))
		return fmt.Errorf("save %s: %w", tab, err)
	}

	c.st.AbsorbIDs(tab, res.ObjectID, res.TranslationID)

	translationID := res.TranslationID
	if translationID == "" {
		translationID = rec.TranslationID
	}
	detail, err := c.d.Backend.GetByID(ctx, translationID)
	if err != nil {
		// The save landed; fall back to what we already hold.
		saved, _ := c.st.Result(tab)
		c.st.MarkSaved(tab, saved, c.st.CommonData(), c.st.FileInfo())
		c.st.SetSaveMessage(tab, fmt.Sprintf("saved, but refresh failed: %v", err))
		return nil
	}
	c.st.MarkSaved(tab, detail.Record(), detail.Common(), detail.FileInfo)
	c.st.SetSaveMessage(tab, "saved")
	c.d.Log.Info("quick-save complete", zap.String("language", tab), zap.String("translation_id", translationID))
	return nil
}

// Skip unlocks the active record on the server and requeues, then pulls the
// next item for the same tab with a partial refresh. Nothing is mutated
// locally before the remote call returns.
func (c *Controller) Skip(ctx context.Context, user *domain.UserContext) error {
	tab := c.st.ActiveTab()
	rec, ok := c.st.Result(tab)
	if !ok || rec.TranslationID == "" {
		return domain.ErrNotIdentified
	}
	if !c.allowed(permissions.ActionSkipTranslation, user) {
		return domain.ErrPermissionDenied
	}
	if err := c.d.Backend.UnlockAndSkip(ctx, rec.TranslationID); err != nil {
		c.st.SetSessionMessage(fmt.Sprintf("skip failed: %v", err))
		return fmt.Errorf("skip %s: %w", tab, err)
	}
	return c.d.Reconciler.Refresh(ctx, c.st, tab, false)
}

// RefreshWorklist runs a partial refresh for language, or a full refresh of
// every selected language when full is set.
func (c *Controller) RefreshWorklist(ctx context.Context, user *domain.UserContext, language string, full bool) error {
	if !c.allowed(permissions.ActionFetchWorklist, user) {
		return domain.ErrPermissionDenied
	}
	return c.d.Reconciler.Refresh(ctx, c.st, language, full)
}
