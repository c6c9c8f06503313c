package domain

// FileCreateResult is the outcome of one fileCreate mutation
type FileCreateResult struct {
	Source     string   `json:"source"`
	Status     int      `json:"status"`
	Errors     []string `json:"errors,omitempty"`      // top-level GraphQL errors
	UserErrors []string `json:"user_errors,omitempty"` // fileCreate.userErrors
	Files      int      `json:"files"`
	Raw        string   `json:"raw,omitempty"` // body, when it was not JSON
}

// OK reports whether this single upload was accepted
func (r FileCreateResult) OK() bool {
	return len(r.Errors) == 0 && len(r.UserErrors) == 0 && r.Raw == "" && r.Status < 300
}

// ImageSyncResult is the outcome of one image batch for a target shop
type ImageSyncResult struct {
	Shop    string             `json:"shop"`
	URLs    []string           `json:"urls"`
	Results []FileCreateResult `json:"results"`
	Failed  bool               `json:"failed"`
	Message string             `json:"message,omitempty"`
}

// Uploaded counts the uploads that were individually accepted
func (r *ImageSyncResult) Uploaded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// BatchVerdict decides the outcome of an image batch.
// Only the first result is inspected, and only when there is more than one.
func BatchVerdict(results []FileCreateResult) (failed bool, message string) {
	if len(results) > 1 && len(results[0].Errors) > 0 {
		return true, results[0].Errors[0]
	}
	return false, ""
}
