package webdriver

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ElementKey is the W3C element-reference envelope key.
const ElementKey = "element-6066-11e4-a52e-4f735466cecf"

// ShadowKey is the W3C shadow-root envelope key.
const ShadowKey = "shadow-6066-11e4-a52e-4f735466cecf"

const elementVarPrefix = "__wd_el_"

// ElementRef pairs a public, opaque ID (returned to the client inside the
// element envelope) with the in-page variable name that shadows it (the ID
// with separators stripped so it is a valid JS identifier).
type ElementRef struct {
	ID     string
	JSRef  string
}

// ElementStore allocates and looks up ElementRefs for a single session. It
// has no delete operation: staleness is detected at use-time in the page via
// document.contains(el), not by bookkeeping here.
type ElementStore struct {
	mu   sync.Mutex
	byID map[string]ElementRef
}

// NewElementStore returns an empty store.
func NewElementStore() *ElementStore {
	return &ElementStore{byID: make(map[string]ElementRef)}
}

// Store allocates a fresh ElementRef and records it.
func (s *ElementStore) Store() ElementRef {
	id := uuid.NewString()
	ref := ElementRef{
		ID:    id,
		JSRef: elementVarPrefix + strings.ReplaceAll(id, "-", ""),
	}
	s.mu.Lock()
	s.byID[id] = ref
	s.mu.Unlock()
	return ref
}

// Get looks up a previously allocated ref by its public ID.
func (s *ElementStore) Get(id string) (ElementRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.byID[id]
	return ref, ok
}

// Envelope renders ref as the W3C element-reference envelope object.
func (ref ElementRef) Envelope() map[string]string {
	return map[string]string{ElementKey: ref.ID}
}

// ShadowEnvelope renders ref as the W3C shadow-root envelope object.
func (ref ElementRef) ShadowEnvelope() map[string]string {
	return map[string]string{ShadowKey: ref.ID}
}
