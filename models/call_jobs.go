package models

import "github.com/google/uuid"

// CallVerdictArgs is the river job evaluating one call's transcript against
// its objective, scheduled at call start to fire after the verdict delay.
type CallVerdictArgs struct {
	CallId uuid.UUID `json:"call_id"`
}

func (CallVerdictArgs) Kind() string {
	return "call_verdict"
}

// FollowUpDispatchArgs is the river job sending the post-call phishing
// artifact (email or chat message referencing the call) when the verdict
// judged the objective met.
type FollowUpDispatchArgs struct {
	CallId  uuid.UUID   `json:"call_id"`
	Channel ChannelType `json:"channel"`
}

func (FollowUpDispatchArgs) Kind() string {
	return "call_follow_up_dispatch"
}
