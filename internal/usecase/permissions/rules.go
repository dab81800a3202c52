package permissions

import "github.com/vishalsx/tubstudio-sub001/internal/domain"

// Lifecycle states used by the default rule table. The backend owns the state
// vocabulary; these cover the stock review workflow.
const (
	StateNone          = ""
	StatePendingReview = "pending_review"
	StateInReview      = "in_review"
	StateMachine       = "machine_translated"
	StateApproved      = "approved"
	StateRejected      = "rejected"
)

// DefaultRules is the stock permission-rule table attached to a UserContext
// when the auth token does not carry its own. Per axis it lists the record
// states in which the permission applies; "" is the no-state-yet value.
func DefaultRules() map[string]domain.PermissionRule {
	return map[string]domain.PermissionRule{
		// Identifying a new image is legal regardless of what the previous
		// record's lifecycle looked like.
		"image.identify": {
			Metadata: []string{StateNone, StatePendingReview, StateInReview, StateMachine, StateApproved, StateRejected},
			Language: []string{StateNone, StatePendingReview, StateInReview, StateMachine, StateApproved, StateRejected},
		},
		"translation.edit": {
			Metadata: []string{StateNone, StatePendingReview},
			Language: []string{StateNone, StateMachine, StateInReview, StateRejected},
		},
		"translation.review": {
			Metadata: []string{StateNone, StatePendingReview, StateInReview},
			Language: []string{StateMachine, StateInReview},
		},
		"translation.approve": {
			Metadata: []string{StateInReview, StatePendingReview},
			Language: []string{StateInReview},
		},
		"object.flag": {
			Metadata: []string{StateNone, StatePendingReview, StateInReview, StateApproved},
			Language: nil,
		},
	}
}
