package engine

import "github.com/kolah/oasforge/internal/model"

// Session holds the committed document and a staged working copy. Edits go
// to the working copy and stay invisible until Commit; Discard throws them
// away by recloning the committed document. The two documents never alias.
type Session struct {
	committed *model.Document
	working   *model.Document
}

// NewSession starts a session over doc. The session owns both copies.
func NewSession(doc *model.Document) *Session {
	return &Session{
		committed: doc,
		working:   doc.Clone(),
	}
}

// Committed returns the last committed document.
func (s *Session) Committed() *model.Document {
	return s.committed
}

// Working returns the staged document.
func (s *Session) Working() *model.Document {
	return s.working
}

// Apply runs one engine transition against the working copy and stages the
// result. The error, if any, is returned unchanged and nothing is staged.
func (s *Session) Apply(op func(*model.Document) (*model.Document, error)) error {
	next, err := op(s.working)
	if err != nil {
		return err
	}
	s.working = next
	return nil
}

// Commit promotes the working copy wholesale.
func (s *Session) Commit() {
	s.committed = s.working
	s.working = s.committed.Clone()
}

// Discard drops all staged edits.
func (s *Session) Discard() {
	s.working = s.committed.Clone()
}

// Replace swaps in a new committed document (a fresh load or a reset) and
// discards any staged edits. Last write wins.
func (s *Session) Replace(doc *model.Document) {
	s.committed = doc
	s.working = doc.Clone()
}
