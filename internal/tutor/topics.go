package tutor

import (
	"errors"
	"strings"
)

// GeneralTopic is offered to every user and is the default when no topic
// is given.
const GeneralTopic = "General"

// Topics are the study areas quizzes and flashcards can be generated for.
var Topics = []string{
	GeneralTopic,
	"Road Signs",
	"Right of Way",
	"Alcohol Laws",
	"Speed Limits",
	"Traffic Signals",
}

// ErrUnknownTopic is returned for a topic outside Topics.
var ErrUnknownTopic = errors.New("unknown topic")

// NormalizeTopic maps user input onto the canonical topic name, matching
// case-insensitively. Empty input selects GeneralTopic.
func NormalizeTopic(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return GeneralTopic, nil
	}
	for _, t := range Topics {
		if strings.EqualFold(t, topic) {
			return t, nil
		}
	}
	return "", ErrUnknownTopic
}
