package lifecycle

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient, auto-dismissing message for the user.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

const (
	MessageGenerationFailed = "Generation failed. Daily Quota exceeded."
	MessageCopied           = "Copied!"
	MessageDownloaded       = "Card downloaded!"
)
