package services

import (
	"strings"
	"time"

	"github.com/msreeharshitha/multimodal-chatbot/internal/models"
)

// Dispatcher intercepts certain utterances and answers them locally with a
// canned function-role reply, bypassing the model provider entirely.
type Dispatcher struct {
	// Now supplies the wall clock for the time tool; tests inject a fixed one.
	Now func() time.Time
	// Location fixes the timezone the time tool reports in.
	Location *time.Location
}

// trigger pairs a substring with the reply it produces. The slice order is the
// match priority; utterances containing several triggers resolve to the first
// entry, keeping dispatch deterministic.
type trigger struct {
	substring string
	reply     func(d Dispatcher) models.Message
}

var triggers = []trigger{
	{
		substring: "time",
		reply: func(d Dispatcher) models.Message {
			now := d.Now().In(d.Location)
			return models.Message{
				Role:    models.RoleFunction,
				Name:    "getCurrentTime",
				Content: "🕒 The current time is " + now.Format("3:04:05 PM on Monday, January 2, 2006"),
			}
		},
	},
	{
		substring: "weather",
		reply: func(Dispatcher) models.Message {
			// Static mock data, not a live lookup.
			return models.Message{
				Role:    models.RoleFunction,
				Name:    "getWeather",
				Content: "🌤️ The weather in Hyderabad is 32°C, mostly sunny with light winds.",
			}
		},
	},
}

// NewDispatcher creates a Dispatcher reporting the real wall clock in the
// local timezone.
func NewDispatcher() Dispatcher {
	return Dispatcher{
		Now:      time.Now,
		Location: time.Local,
	}
}

// Dispatch matches the last user utterance against the fixed trigger list,
// case-insensitively. It returns the synthesized reply and true on a match,
// and ok=false when the pipeline should continue to the provider.
func (d Dispatcher) Dispatch(lastUtterance string) (models.Message, bool) {
	lower := strings.ToLower(lastUtterance)
	for _, t := range triggers {
		if strings.Contains(lower, t.substring) {
			return t.reply(d), true
		}
	}
	return models.Message{}, false
}
