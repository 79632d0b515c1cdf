package domain

type Topic string

const (
	TopicNewFine         Topic = "new-fine"
	TopicFineStateChange Topic = "fine-state-change"
	TopicFineReminder    Topic = "fine-reminder"
)

func (t Topic) Validate() error {
	switch t {
	case TopicNewFine, TopicFineStateChange, TopicFineReminder:
		return nil
	}
	return invalidf("unknown topic %q", string(t))
}

type NotificationProperties struct {
	Tokens           map[TokenID]string `json:"tokens"`
	SubscribedTopics []Topic            `json:"subscriptions"`
}

func NewNotificationProperties() NotificationProperties {
	return NotificationProperties{Tokens: map[TokenID]string{}, SubscribedTopics: []Topic{}}
}

func (n NotificationProperties) IsSubscribed(topic Topic) bool {
	for _, t := range n.SubscribedTopics {
		if t == topic {
			return true
		}
	}
	return false
}

// AddToken stores the token under its derived id.
func (n *NotificationProperties) AddToken(token string) TokenID {
	if n.Tokens == nil {
		n.Tokens = map[TokenID]string{}
	}
	id := NewTokenID(token)
	n.Tokens[id] = token
	return id
}

// Message is a push notification payload.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
