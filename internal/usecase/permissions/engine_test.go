package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vishalsx/tubstudio-sub001/internal/domain"
)

func userWith(perms []string, rules map[string]domain.PermissionRule) *domain.UserContext {
	return &domain.UserContext{
		Username:        "reviewer",
		Permissions:     perms,
		PermissionRules: rules,
	}
}

func TestCanPerformUIAction_DeniesWithoutUserOrRules(t *testing.T) {
	e := New(nil)
	assert.False(t, e.CanPerformUIAction(ActionSaveToDatabase, AxisLanguage, "", "draft", nil))

	u := userWith([]string{"translation.review"}, nil)
	assert.False(t, e.CanPerformUIAction(ActionSaveToDatabase, AxisLanguage, "", "draft", u))
}

func TestCanPerformUIAction_DeniesUnreachableAction(t *testing.T) {
	e := New(nil)
	u := userWith([]string{"image.identify"}, DefaultRules())
	assert.False(t, e.CanPerformUIAction(ActionSaveToDatabase, AxisLanguage, "", StateInReview, u))
}

func TestCanPerformUIAction_UnionsAllowedStatesAcrossPermissions(t *testing.T) {
	rules := map[string]domain.PermissionRule{
		"translation.review":  {Language: []string{"draft"}},
		"translation.approve": {Language: []string{"review"}},
	}
	e := New(nil)

	both := userWith([]string{"translation.review", "translation.approve"}, rules)
	assert.True(t, e.CanPerformUIAction(ActionSaveToDatabase, AxisLanguage, "", "draft", both))
	assert.True(t, e.CanPerformUIAction(ActionSaveToDatabase, AxisLanguage, "", "review", both))

	onlyA := userWith([]string{"translation.review"}, rules)
	assert.True(t, e.CanPerformUIAction(ActionSaveToDatabase, AxisLanguage, "", "draft", onlyA))
	assert.False(t, e.CanPerformUIAction(ActionSaveToDatabase, AxisLanguage, "", "review", onlyA))
}

func TestCanPerformUIAction_ChecksRequestedAxisOnly(t *testing.T) {
	rules := map[string]domain.PermissionRule{
		"translation.review": {
			Metadata: []string{"pending_review"},
			Language: []string{"machine_translated"},
		},
	}
	e := New(nil)
	u := userWith([]string{"translation.review"}, rules)

	assert.True(t, e.CanPerformUIAction(ActionSaveToDatabase, AxisMetadata, "pending_review", "nonsense", u))
	assert.False(t, e.CanPerformUIAction(ActionSaveToDatabase, AxisMetadata, "machine_translated", "", u))
	assert.True(t, e.CanPerformUIAction(ActionSaveToDatabase, AxisLanguage, "nonsense", "machine_translated", u))
}

func TestCanPerformUIAction_CanonicalizesNullishStates(t *testing.T) {
	rules := map[string]domain.PermissionRule{
		"translation.edit": {Language: []string{""}},
	}
	e := New(nil)
	u := userWith([]string{"translation.edit"}, rules)

	for _, state := range []string{"", "  ", "null", "NULL", "undefined"} {
		assert.True(t, e.CanPerformUIAction(ActionEditTranslation, AxisLanguage, "", state, u),
			"state %q should canonicalize to the null state", state)
	}
	assert.False(t, e.CanPerformUIAction(ActionEditTranslation, AxisLanguage, "", "approved", u))
}

func TestCanPerformUIAction_NilAxisListGrantsNothing(t *testing.T) {
	rules := map[string]domain.PermissionRule{
		"object.flag": {Metadata: []string{"approved"}, Language: nil},
	}
	e := New(nil)
	u := userWith([]string{"object.flag"}, rules)

	assert.True(t, e.CanPerformUIAction(ActionEditCommonData, AxisMetadata, "approved", "", u))
	assert.False(t, e.CanPerformUIAction(ActionEditCommonData, AxisLanguage, "approved", "", u))
}

func TestResolveSaveAction(t *testing.T) {
	assert.Equal(t, "save_to_database", ResolveSaveAction(ActionSaveToDatabase))
	assert.Equal(t, "save_translation", ResolveSaveAction(ActionSaveTranslation))
	assert.Equal(t, "", ResolveSaveAction(ActionFetchWorklist))
}
