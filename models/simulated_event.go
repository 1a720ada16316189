package models

import (
	"time"

	"github.com/google/uuid"
)

type ChannelType string

const (
	ChannelCall        ChannelType = "CALL"
	ChannelCallSms     ChannelType = "CALL_SMS"
	ChannelCallChat    ChannelType = "CALL_CHAT"
	ChannelCallEmail   ChannelType = "CALL_EMAIL"
	ChannelVideoCall   ChannelType = "VIDEO_CALL"
	ChannelEmail       ChannelType = "EMAIL"
	ChannelChatMessage ChannelType = "CHAT_MESSAGE"

	ChannelUnknown ChannelType = "UNKNOWN"
)

var ValidChannelTypes = []ChannelType{
	ChannelCall,
	ChannelCallSms,
	ChannelCallChat,
	ChannelCallEmail,
	ChannelVideoCall,
	ChannelEmail,
	ChannelChatMessage,
}

func ChannelTypeFrom(s string) ChannelType {
	for _, channelType := range ValidChannelTypes {
		if s == string(channelType) {
			return channelType
		}
	}
	return ChannelUnknown
}

func (t ChannelType) String() string {
	return string(t)
}

type Difficulty string

const (
	DifficultyLow     Difficulty = "LOW"
	DifficultyMedium  Difficulty = "MEDIUM"
	DifficultyHigh    Difficulty = "HIGH"
	DifficultyUnknown Difficulty = "UNKNOWN"
)

func DifficultyFrom(s string) Difficulty {
	switch Difficulty(s) {
	case DifficultyLow, DifficultyMedium, DifficultyHigh:
		return Difficulty(s)
	}
	return DifficultyUnknown
}

// Severe reports whether a failure on an event of this difficulty counts as
// a severe failure. This is the single authoritative severity mapping, used
// by both the call verdict flow and direct failure recording.
func (d Difficulty) Severe() bool {
	return d == DifficultyHigh
}

// SimulatedEvent is one phishing attempt instance. It is owned by the
// campaign catalog and immutable after creation; the core reads id, type and
// timestamp, and creates events itself only for live calls.
type SimulatedEvent struct {
	Id             uuid.UUID
	ChannelType    ChannelType
	Difficulty     Difficulty
	DeliveryMedium *string
	CreatedAt      time.Time
}

type CreateSimulatedEventInput struct {
	ChannelType    ChannelType
	Difficulty     Difficulty
	DeliveryMedium *string
}
