package convo

import "time"

// Typing hold durations. Longer messages get longer composing time; the
// jittered ones add up to jitterSpread of randomness on top of the base.
const (
	greetingDelay1  = 5 * time.Second
	greetingDelay2  = 8 * time.Second
	namePitchDelay  = 6 * time.Second
	stepsDelay      = 5 * time.Second
	stepsPause      = 3 * time.Second
	uploadHold      = 3 * time.Second
	recordingHold   = 5 * time.Second
	mediaGap        = 1 * time.Second
	cannedDelay     = 3 * time.Second
	fallbackDelay   = 5 * time.Second
	confirmDelay    = 6 * time.Second
	explainerDelay1 = 3 * time.Second

	jitterSpread = 2 * time.Second
)

// mediaSendTimeout bounds one video upload; past it the send is abandoned
// and the sequence moves on.
const mediaSendTimeout = 3 * time.Minute

// Greeting sequence (stage none).
const (
	msgGreeting1 = "Hi, I'm Loveth"
	msgGreeting2 = "If you are looking for profitable signals and a solid trading mentor, you made the best decision by writing to me❤️\nBefore we dive in, I'd love to learn a bit about you. What's your name and where are you from?"
)

// Personalized pitch (stage start_1). %s is the extracted name.
const msgNamePitch = "Nice to meet you %s 😉\nThe best part about working with me that you can copying my signals and earn big profit with no experience at all and also learn how to read market by educational materials that are in my VIP Group!\nI post 16 signals and new strategies up there daily and its absolutely free! Do you want to join?"

// Registration steps (stage start_2). %s is the registration link.
const msgRegistrationSteps = "To join my VIP Group and get 16 signals📊\n\nYou need only 2 minutes of your time and follow simple steps ⚡️\n\n1. Register an account using my link (you will receive 50%% to your deposit with my link)\n%s\n\n2. Send me your pocket option ID (so I can verify your registration)"

// Registration content sequence.
const (
	msgVideo1Caption   = "🟢🟢🟢🟢🟢🟢🟢🟢🟢🟢🟢\nWATCH OUR DETAILED VIDEO TO  GET STARTED IMMEDIATELY \nTHEN REGISTER BELOW!!! ⬇️\n%s"
	msgVideo2Caption   = "How to copy your UID Number"
	msgVoiceFallback   = "Welcome to our trading community! I'm excited to help you start making profits. Follow my signals closely and don't hesitate to ask if you have any questions."
	msgManualSignup    = "2️⃣ Important‼️ Make sure to fill in your details manually. Don't register through Google or Facebook account."
	msgDepositQuick    = "After successful registration it's important that you make the deposit as quick as you can exactly on NEW account"
	msgDepositMinimum  = "remember that first deposit should be at least $10 (converted to your currency)."
	msgDepositRealTalk = "But to be real, you don't want to go below $50."
	msgDepositTypical  = "Most people kick off with $100 or more to aim for bigger profits 💰"
	msgDepositClose    = "After you deposit on your trading account you will be ready to trade with my signals and I'll add you into my VIP gang ✨"
)

// Trading explainer sequence (stage intro).
const (
	msgExplainer1 = "Alright, let's get started!"
	msgExplainer2 = "Binary trading is simple—it's about predicting whether an asset's value will rise or fall within a specific timeframe."
	msgExplainer3 = "With my experience, I'll guide you on what and when to trade on."
	msgExplainer4 = "Are you ready to see BIG PROFITS rolling in soon? 💰"
)

// Registration push sequence (stage trading_explained). %s is the
// registration link / promo code.
const (
	msgPushAck      = "Awesome! 😊"
	msgPushLink     = "Let's kickstart your trading journey quickly! Follow these steps to unlock my 12+ exclusive signals and expert strategies: 🤑\n%s"
	msgPushPromo    = "my promo code: %s but it's not obligated to use"
	msgUIDWhere     = "Where to copy your uid number"
	msgVideoMissing = "I wanted to show you a video tutorial, but there was an issue. Let's continue!"
	msgUIDMissing   = "I wanted to show you where to copy your UID number, but there was an issue with the video."
	msgMediaFailure = "I wanted to send you some media files, but there was an issue. Let's continue with text!"
)

// Registration confirmation (stage registration_sent).
const (
	msgConfirm1 = "Great! 🎉 Now I'll add you to our VIP signals group where you'll receive 12+ daily signals!"
	msgConfirm2 = "You'll start seeing profits right away. Just follow my signals and watch your balance grow! 💰"
)

// Legacy waiting_for_id acknowledgement.
const msgAlreadyComplete = "Your registration is already complete! You're all set to receive my trading signals. 🚀"

// Restart acknowledgement when a declined user re-engages.
const msgRestart = "Great! Let's start over. I'll help you join our VIP trading group."

// Canned acknowledgements for users past registration.
var completedResponses = []string{
	"I've already added you to our VIP signals group! You'll start receiving signals soon. 📊",
	"Your account is all set up! Just wait for the signals to start coming in. 💰",
	"You're all ready to go! I'll be sending trading signals shortly. 📈",
	"Everything is set up perfectly! You'll receive your first signals soon. ⚡️",
	"You're already in our system! Just wait for the signals to start flowing. 🚀",
}

// Canned nudges for users who declined.
var declinedResponses = []string{
	"If you change your mind about joining our VIP signals group, just type \"join\" and we can get started! 📊",
	"No problem! If you ever want to start trading with us, just say \"join\" and I'll help you get set up. 💰",
	"I respect your decision. If you ever want to join our trading group in the future, just let me know! 📈",
}

// Fixed fallback when no AI provider is configured.
const msgDefaultFallback = "Ready to start making money with trading? Let me show you how! 💰"
