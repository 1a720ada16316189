package calls

import (
	"fmt"
	"strings"

	"github.com/lurelab/lurelab-backend/models"
)

// CallerInstruction is the system instruction driving the caller persona
// during the live exchange.
func CallerInstruction(call models.Call) string {
	return fmt.Sprintf(`You are playing the caller in a sanctioned security awareness phone call.
Pretext: %s
Objective: %s
Difficulty: %s

Stay in character, speak naturally in short spoken sentences, and pursue the
objective without ever asking for real credentials outside the exercise.
Answer only with the caller's next line.`, call.Pretext, call.Objective, call.Difficulty)
}

// VerdictInstruction frames the post-call judgment.
func VerdictInstruction() string {
	return `You review transcripts of sanctioned security awareness phone calls.
Decide whether the caller achieved the stated objective, strictly from what
was said in the transcript.`
}

// VerdictPrompt renders the objective and the transcript for the judgment.
func VerdictPrompt(call models.Call, turns []models.CallTurn) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Objective: %s\n\nTranscript:\n", call.Objective)
	for _, turn := range turns {
		fmt.Fprintf(&b, "%s: %s\n", turn.Speaker, turn.Content)
	}
	return b.String()
}

// FollowUpInstruction drives the generation of the post-call artifact sent
// on the configured follow-up channel.
func FollowUpInstruction(call models.Call, channel models.ChannelType) string {
	return fmt.Sprintf(`You write the follow-up message of a sanctioned security awareness phone
call, to be delivered over %s. The call used this pretext: %s. Write a short
message consistent with the call, continuing the same pretext. Answer only
with the message body.`, channel, call.Pretext)
}
