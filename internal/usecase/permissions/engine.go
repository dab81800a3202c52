package permissions

import (
	"strings"

	"go.uber.org/zap"

	"github.com/vishalsx/tubstudio-sub001/internal/domain"
)

// Axis selects which lifecycle state a permission check is made against: the
// image-level metadata state or the active language's translation state. An
// action that depends on both is checked once per axis by the caller.
type Axis string

const (
	AxisMetadata Axis = "metadata"
	AxisLanguage Axis = "language"
)

// UI actions the engine knows about.
const (
	ActionIdentifyImage      = "identifyImage"
	ActionEditTranslation    = "editTranslation"
	ActionEditCommonData     = "editCommonData"
	ActionSaveTranslation    = "saveTranslation"
	ActionSaveToDatabase     = "saveToDatabase"
	ActionApproveTranslation = "approveTranslation"
	ActionRejectTranslation  = "rejectTranslation"
	ActionSkipTranslation    = "skipTranslation"
	ActionFetchWorklist      = "fetchWorklist"
)

// actionsByPermission is the fixed mapping from a granted permission key to
// the UI actions it unlocks. One key may unlock several actions and one
// action may be reachable through several keys.
var actionsByPermission = map[string][]string{
	"image.identify":      {ActionIdentifyImage},
	"translation.edit":    {ActionEditTranslation, ActionEditCommonData, ActionSaveTranslation},
	"translation.review":  {ActionEditTranslation, ActionSaveToDatabase, ActionSkipTranslation, ActionFetchWorklist},
	"translation.approve": {ActionApproveTranslation, ActionRejectTranslation, ActionSaveToDatabase, ActionFetchWorklist},
	"object.flag":         {ActionEditCommonData},
}

// saveActionByUIAction resolves a UI action name to the canonical backend
// permission-action value sent with a save call.
var saveActionByUIAction = map[string]string{
	ActionSaveTranslation:    "save_translation",
	ActionSaveToDatabase:     "save_to_database",
	ActionApproveTranslation: "approve_translation",
	ActionRejectTranslation:  "reject_translation",
}

// ResolveSaveAction returns the backend permission-action for a UI action,
// or the empty string when the action never maps to a save.
func ResolveSaveAction(uiAction string) string {
	return saveActionByUIAction[uiAction]
}

type Engine struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// CanPerformUIAction reports whether user may perform action given the
// current state on the requested axis. Pure aside from debug logging; callers
// that need both axes AND the two results together.
func (e *Engine) CanPerformUIAction(action string, axis Axis, metadataState, languageState string, user *domain.UserContext) bool {
	if user == nil || len(user.PermissionRules) == 0 {
		return false
	}

	unlocking := unlockingPermissions(action, user)
	if len(unlocking) == 0 {
		e.log.Debug("action unreachable from granted permissions",
			zap.String("action", action), zap.String("user", userName(user)))
		return false
	}

	// Union the allowed-state lists from every granted permission that
	// unlocks this action. Additive role composition: a state allowed by any
	// one of them allows the action.
	allowed := make(map[string]struct{})
	for _, perm := range unlocking {
		rule, ok := user.PermissionRules[perm]
		if !ok {
			continue
		}
		var states []string
		switch axis {
		case AxisMetadata:
			states = rule.Metadata
		case AxisLanguage:
			states = rule.Language
		}
		for _, s := range states {
			allowed[Canonicalize(s)] = struct{}{}
		}
	}

	var current string
	switch axis {
	case AxisMetadata:
		current = metadataState
	case AxisLanguage:
		current = languageState
	}
	_, ok := allowed[Canonicalize(current)]
	if !ok {
		e.log.Debug("state outside allowed set",
			zap.String("action", action), zap.String("axis", string(axis)),
			zap.String("state", Canonicalize(current)))
	}
	return ok
}

func unlockingPermissions(action string, user *domain.UserContext) []string {
	var out []string
	for perm, actions := range actionsByPermission {
		if !user.HasPermission(perm) {
			continue
		}
		for _, a := range actions {
			if a == action {
				out = append(out, perm)
				break
			}
		}
	}
	return out
}

// Canonicalize folds the wire's null-ish state spellings into the single
// empty-string "no state" value.
func Canonicalize(state string) string {
	s := strings.TrimSpace(state)
	if strings.EqualFold(s, "null") || strings.EqualFold(s, "undefined") {
		return ""
	}
	return s
}

func userName(u *domain.UserContext) string {
	if u == nil {
		return ""
	}
	return u.Username
}
