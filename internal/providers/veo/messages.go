package veo

// progressMessages rotate while a generation job is in flight. The message
// for poll cycle n is progressMessages[n % len(progressMessages)], with index
// 0 emitted immediately after submission.
var progressMessages = []string{
	"Warming up the video model...",
	"Studying your photo...",
	"Sketching the first frames...",
	"Setting the scene in motion...",
	"Rendering movement and light...",
	"Smoothing the transitions...",
	"Adding the finishing touches...",
	"Almost there, compositing frames...",
	"Polishing the final cut...",
	"Hang tight, great videos take a moment...",
}

// ProgressMessage returns the deterministic progress message for the given
// poll cycle count.
func ProgressMessage(pollCount int) string {
	if pollCount < 0 {
		pollCount = 0
	}
	return progressMessages[pollCount%len(progressMessages)]
}
