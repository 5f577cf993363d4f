package bus

// Tab identifies the page a message concerns. Page is the router
// receiver name; URL and Title describe the source for the saved
// record's notes.
type Tab struct {
	Page  string `json:"page,omitempty"`
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// PromptSaved is the PROMPT_SAVED payload (background → page). No
// response is expected.
type PromptSaved struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// QuickSaveRequest is the QUICK_SAVE payload (popup/page → background).
type QuickSaveRequest struct {
	Content string `json:"content"`
	Tab     Tab    `json:"tab"`
}

// QuickSaveResponse reports the quick-save outcome to the sender.
type QuickSaveResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// PendingSelectionResponse is the GET_PENDING_SELECTION response. All
// fields are empty when no selection was pending.
type PendingSelectionResponse struct {
	PendingSelection string `json:"pendingSelection,omitempty"`
	SourceURL        string `json:"sourceUrl,omitempty"`
	SourceTitle      string `json:"sourceTitle,omitempty"`
}

// SelectionResponse is the GET_SELECTION response (page → background).
type SelectionResponse struct {
	Selection string `json:"selection"`
}
