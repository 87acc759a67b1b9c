package domain

import "fmt"

// TextRecord is one localisable string within a fragment file.
// Identity is the ID, never the position or the text.
type TextRecord struct {
	// ID is unique within its fragment file.
	ID int64 `json:"id"`

	// Text is the record's current text. For source fragments this is
	// the original language; for translated output it is the target
	// language, or the unchanged original when translation failed.
	Text string `json:"text"`
}

// FragmentFile is an ordered sequence of text records, identified by a
// stable filename matching its archive subunit (a zero-padded sequence
// number such as "00001.json"). Record order and the set of IDs are
// identity anchors: operations replace record text but never reorder,
// add, or drop records.
type FragmentFile struct {
	// Name is the on-disk filename, preserved verbatim across merge
	// and translate operations.
	Name string

	// Records in archive order.
	Records []TextRecord
}

// Index returns a map from record ID to position within the file.
// Returns an error if any ID appears more than once.
func (f *FragmentFile) Index() (map[int64]int, error) {
	idx := make(map[int64]int, len(f.Records))
	for i, r := range f.Records {
		if prev, ok := idx[r.ID]; ok {
			return nil, fmt.Errorf("%w: fragment %s: duplicate record id %d at positions %d and %d",
				ErrInvalidInput, f.Name, r.ID, prev, i)
		}
		idx[r.ID] = i
	}
	return idx, nil
}

// Clone returns a deep copy of the fragment file.
func (f *FragmentFile) Clone() FragmentFile {
	records := make([]TextRecord, len(f.Records))
	copy(records, f.Records)
	return FragmentFile{Name: f.Name, Records: records}
}

// FragmentSet is the in-memory form of a fragment directory: one
// FragmentFile per archive subunit, ordered by filename.
type FragmentSet struct {
	Files []FragmentFile
}

// File returns the fragment file with the given name, or false if the
// set does not contain it.
func (s *FragmentSet) File(name string) (*FragmentFile, bool) {
	for i := range s.Files {
		if s.Files[i].Name == name {
			return &s.Files[i], true
		}
	}
	return nil, false
}

// Names returns the filenames in set order.
func (s *FragmentSet) Names() []string {
	names := make([]string, len(s.Files))
	for i := range s.Files {
		names[i] = s.Files[i].Name
	}
	return names
}

// TotalRecords returns the number of records across all files.
func (s *FragmentSet) TotalRecords() int {
	total := 0
	for i := range s.Files {
		total += len(s.Files[i].Records)
	}
	return total
}
