package state

// Phase is the state of a Session.
type Phase int

const (
	AwaitingInput Phase = iota
	Confirmed
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "awaiting-input"
	}
}

// Terminal reports whether p ends the session.
func (p Phase) Terminal() bool {
	return p == Confirmed || p == Cancelled
}

// Outcome is the terminal value of a session. Value is only meaningful when
// Phase is Confirmed.
type Outcome struct {
	Phase Phase
	Value string
}

// Confirmed reports the confirmed value, if any.
func (o Outcome) Confirmed() (string, bool) {
	if o.Phase != Confirmed {
		return "", false
	}
	return o.Value, true
}

// Session is the selection state machine. It owns the query and the outcome;
// the store is shared read-only.
type Session struct {
	store   *Store
	matcher Matcher
	query   Query
	phase   Phase
	value   string
}

// NewSession constructs a session over store using matcher. A nil matcher
// selects FuzzyMatcher.
func NewSession(store *Store, matcher Matcher) *Session {
	if store == nil {
		store = NewStore(nil)
	}
	if matcher == nil {
		matcher = FuzzyMatcher
	}
	return &Session{store: store, matcher: matcher}
}

// Handle applies one event and reports whether the session is now terminal.
// Events received after the session ended are ignored.
func (s *Session) Handle(ev Event) bool {
	if s.phase.Terminal() {
		return true
	}
	switch ev.Kind {
	case EventQuit:
		s.phase = Cancelled
	case EventKeyDown:
		switch ev.Key {
		case KeyEscape:
			s.phase = Cancelled
		case KeyBackspace:
			s.query.DeleteLast()
		case KeyReturn:
			s.confirm()
		}
	case EventTextInput:
		s.query.Append(ev.Text)
	}
	return s.phase.Terminal()
}

func (s *Session) confirm() {
	s.value = s.query.String()
	if matches := FilterCandidates(s.store, s.matcher, s.query.String()); len(matches) > 0 {
		s.value = matches[0]
	}
	s.phase = Confirmed
}

// Query returns the current query text.
func (s *Session) Query() string {
	return s.query.String()
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Done reports whether the session reached a terminal phase.
func (s *Session) Done() bool {
	return s.phase.Terminal()
}

// Outcome returns the session result. Before termination it reports
// AwaitingInput.
func (s *Session) Outcome() Outcome {
	if s.phase != Confirmed {
		return Outcome{Phase: s.phase}
	}
	return Outcome{Phase: Confirmed, Value: s.value}
}

// Matches returns every candidate matching the current query in rank order.
func (s *Session) Matches() []string {
	return FilterCandidates(s.store, s.matcher, s.query.String())
}

// View returns the FilteredView for the current query limited to capacity
// rows.
func (s *Session) View(capacity int) []string {
	return truncateView(s.Matches(), capacity)
}

// Store returns the candidate store.
func (s *Session) Store() *Store {
	return s.store
}
