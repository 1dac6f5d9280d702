package eventbus

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
)

// PublishWithSessionScope publishes msg on {baseTopic}.{sessionID} so that
// clients can follow a single table ("belote.session.updated.v1.<id>") or
// every table ("belote.session.updated.v1.*").
func PublishWithSessionScope(pub message.Publisher, baseTopic, sessionID string, msg *message.Message) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty for session-scoped publish")
	}
	return pub.Publish(FormatSessionScopedTopic(baseTopic, sessionID), msg)
}

// FormatSessionScopedTopic formats a topic with the session suffix without publishing.
func FormatSessionScopedTopic(baseTopic, sessionID string) string {
	return fmt.Sprintf("%s.%s", baseTopic, sessionID)
}
