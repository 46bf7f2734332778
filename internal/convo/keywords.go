package convo

import "strings"

// affirmativeWords is the agreement/curiosity vocabulary. Matching is by
// equality or substring, so broad entries like "how" and "what" make most
// engaged replies count as affirmative, which is the intended bias: the
// script only stalls on an explicit no.
var affirmativeWords = []string{
	"yeah", "yes", "yep", "sure", "ready", "i am ready", "i'm ready",
	"ok", "okay", "yea", "ye", "y", "yup", "alright", "fine", "good",
	"great", "cool", "sounds good", "let's do it", "let's go", "go ahead",
	"definitely", "absolutely", "of course", "certainly", "indeed", "right",
	"true", "affirmative", "roger", "aye", "agreed", "gladly", "willingly",
	"by all means", "no problem", "for sure", "exactly", "precisely",
	"tell me", "show me", "i want to know", "please", "proceed", "continue",
	"i do", "i will", "i want", "i'd like", "interested", "tell me more",
	"go on", "carry on", "keep going", "next", "what's next", "what next",
	"i'm listening", "listening", "i hear you", "understood", "got it",
	"i get it", "makes sense", "clear", "crystal clear", "perfect",
	"wonderful", "amazing", "fantastic", "excellent", "superb", "terrific",
	"outstanding", "brilliant", "marvelous", "splendid", "fabulous",
	"i'm in", "count me in", "sign me up", "i'm game", "i'm down",
	"let's hear it", "hit me", "shoot", "fire away", "lay it on me",
	"i'm all ears", "i'm interested", "tell me about it", "explain",
	"elaborate", "give me details", "more info", "more information",
	"details please", "how", "what", "when", "where", "why", "who",
	"which", "whatever", "whenever", "however", "let me know",
	"inform me", "educate me", "enlighten me", "teach me", "guide me",
	"help me understand", "help me learn",
}

// negativeWords end the pitch at the join question.
var negativeWords = []string{
	"no", "nope", "nah", "not", "don't", "dont",
	"not interested", "no thanks", "no thank you", "pass",
}

// registrationDoneWords signal the user claims to have registered.
var registrationDoneWords = []string{
	"register", "done", "finished", "complete", "signed up",
	"created account", "i did", "completed", "registered", "created",
	"made account", "made an account", "all set", "ready",
}

// reengagementWords bring a declined user back into the flow.
var reengagementWords = []string{"join", "start", "yes", "okay", "interested"}

// greetingWords are skipped when guessing a name from a free-form reply.
var greetingWords = []string{"hi", "hello", "hey", "greetings", "howdy"}

// IsAffirmative reports whether text reads as agreement or curiosity.
// Very short messages with no negative substring pass by default.
func IsAffirmative(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, word := range affirmativeWords {
		if lower == word || strings.Contains(lower, word) {
			return true
		}
	}
	if len(lower) < 5 &&
		!strings.Contains(lower, "no") &&
		!strings.Contains(lower, "nah") &&
		!strings.Contains(lower, "nope") {
		return true
	}
	return false
}

// IsNegative reports whether text reads as a refusal.
func IsNegative(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, word := range negativeWords {
		if lower == word || strings.Contains(lower, word) || strings.HasPrefix(lower, word+" ") {
			return true
		}
	}
	return false
}

// SaysRegistered reports whether text claims registration is done.
func SaysRegistered(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, word := range registrationDoneWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// WantsReengagement reports whether a declined user is asking back in.
func WantsReengagement(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, word := range reengagementWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// ExtractName guesses a first name from a free-form introduction. Pattern
// phrases win, then the first non-greeting word, then "there". The result
// is capitalized.
func ExtractName(text string) string {
	lower := strings.ToLower(text)

	name := ""
	for _, pattern := range []string{"my name is", "i am", "i'm"} {
		if idx := strings.Index(lower, pattern); idx >= 0 {
			rest := strings.TrimSpace(lower[idx+len(pattern):])
			if fields := strings.Fields(rest); len(fields) > 0 {
				name = fields[0]
			}
			break
		}
	}

	if name == "" {
		for _, word := range strings.Fields(text) {
			if len(word) <= 1 {
				continue
			}
			if isGreeting(word) {
				continue
			}
			name = word
			break
		}
	}

	if name == "" {
		return "there"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func isGreeting(word string) bool {
	lower := strings.ToLower(word)
	for _, g := range greetingWords {
		if lower == g {
			return true
		}
	}
	return false
}
