package bookhound

// HoldingSummary is one library's copy-availability record for a book.
type HoldingSummary struct {
	// LibraryID references the owning Library.
	LibraryID string `json:"libraryId"`

	// Location is the free-text sub-location within the library.
	Location *string `json:"location,omitempty"`

	CallNumber *string `json:"callNumber,omitempty"`

	// Status is nil when the site's status text could not be classified;
	// callers must treat that as "holding without status", never as a
	// guessed value.
	Status *HoldingStatus `json:"status,omitempty"`

	// URL is a deep link to the item's detail page, reconstructed from
	// parsed identifiers rather than copied from the page.
	URL *string `json:"url,omitempty"`
}

// HoldingStatus is a tagged union: exactly one of Available, OnLoan or
// Unavailable is non-nil. The remaining fields are shared attributes
// orthogonal to the tag.
type HoldingStatus struct {
	Available   *AvailableStatus   `json:"available,omitempty"`
	OnLoan      *OnLoanStatus      `json:"onLoan,omitempty"`
	Unavailable *UnavailableStatus `json:"unavailable,omitempty"`

	// IsRequested reports whether at least one hold exists. Nil when the
	// site gives no signal either way.
	IsRequested *bool `json:"isRequested,omitempty"`

	// Requests is the count of outstanding holds, when exposed.
	Requests *int `json:"requests,omitempty"`

	// RequestsAvailable reports whether a new hold may currently be placed.
	RequestsAvailable bool `json:"requestsAvailable"`
}

// Validate returns an error unless exactly one status tag is set.
func (s *HoldingStatus) Validate() error {
	n := 0
	if s.Available != nil {
		n++
	}
	if s.OnLoan != nil {
		n++
	}
	if s.Unavailable != nil {
		n++
	}
	if n != 1 {
		return Errorf(EINVALID, "holding status must carry exactly one tag, got %d", n)
	}
	return nil
}

// AvailableStatus means the item is on the shelf.
type AvailableStatus struct {
	// Detail is a free-text sub-state, e.g. "on display".
	Detail string `json:"detail"`
}

// OnLoanStatus means the item is currently checked out.
type OnLoanStatus struct {
	Detail string `json:"detail"`

	// Due is the return-due date, when the site exposes one.
	Due *Date `json:"due,omitempty"`
}

// UnavailableStatus means the item is neither available nor on a normal
// loan (interlibrary loan, reference-only, reserved pending pickup, ...).
type UnavailableStatus struct {
	Detail string `json:"detail"`
}
