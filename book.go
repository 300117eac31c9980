package bookhound

// Book represents one bibliographic record parsed from a search result.
//
// All fields except ISBN are optional: a nil pointer means the source site
// did not expose the field, which is distinct from an empty value and must
// be preserved downstream.
type Book struct {
	// ISBN identifies the record; it is the de-duplication key used by
	// downstream consumers (this engine does not deduplicate itself).
	ISBN string `json:"isbn"`

	Title     *string `json:"title,omitempty"`
	Author    *string `json:"author,omitempty"`
	Publisher *string `json:"publisher,omitempty"`

	// PublishYear is the publication year; catalog sites expose no finer
	// granularity.
	PublishYear *int `json:"publishYear,omitempty"`
}

// Validate returns an error if the book contains invalid fields.
func (b *Book) Validate() error {
	if b.ISBN == "" {
		return Errorf(EINVALID, "book ISBN required")
	}
	return nil
}

// Date is a calendar date without a time component.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}
