package domain

// NoticeSeverity classifies a notice for presentation.
type NoticeSeverity string

const (
	NoticeSuccess NoticeSeverity = "success"
	NoticeDanger  NoticeSeverity = "danger"
)

// Notice is a one-shot user-facing message produced by a lifecycle operation.
// It is an explicit return value, not ambient session state: the presentation
// layer carries it into the next rendered response and then discards it.
type Notice struct {
	Message  string         `json:"message"`
	Severity NoticeSeverity `json:"severity"`
}

// SuccessNotice builds a success-severity notice.
func SuccessNotice(message string) Notice {
	return Notice{Message: message, Severity: NoticeSuccess}
}

// DangerNotice builds a danger-severity notice.
func DangerNotice(message string) Notice {
	return Notice{Message: message, Severity: NoticeDanger}
}
