package tracker

import "github.com/srworkflow/workflow/internal/session"

type noteKind int

const (
	noteInfo noteKind = iota
	noteSuccess
	noteError
)

type note struct {
	title       string
	description string
	kind        noteKind
}

// Feed collects controller notifications so the tracker screen can show
// the latest one. Messages are also passed on to Next, if set.
type Feed struct {
	Next session.Notifier
	last *note
}

func (f *Feed) push(n note) {
	f.last = &n
}

func (f *Feed) Success(title, description string) {
	f.push(note{title: title, description: description, kind: noteSuccess})

	if f.Next != nil {
		f.Next.Success(title, description)
	}
}

func (f *Feed) Info(title, description string) {
	f.push(note{title: title, description: description, kind: noteInfo})

	if f.Next != nil {
		f.Next.Info(title, description)
	}
}

func (f *Feed) Error(title, description string) {
	f.push(note{title: title, description: description, kind: noteError})

	if f.Next != nil {
		f.Next.Error(title, description)
	}
}

// Last returns the title and description of the most recent message.
func (f *Feed) Last() (title, description string, ok bool) {
	if f.last == nil {
		return "", "", false
	}

	return f.last.title, f.last.description, true
}
