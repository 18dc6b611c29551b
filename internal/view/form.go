package view

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/contacts/internal/model"
	"github.com/umalmyha/contacts/pkg/client"
)

// messageClearDelay is how long a transient form message stays visible
const messageClearDelay = 3 * time.Second

type MessageKind int

const (
	MessageError MessageKind = iota
	MessageSuccess
)

// Message is a transient form status message
type Message struct {
	Kind MessageKind
	Text string
}

// FormSnapshot is a point-in-time copy of the form state
type FormSnapshot struct {
	Name       string
	Company    string
	Email      string
	Phone      string
	Status     model.Status
	Submitting bool
	Message    *Message
}

// ContactForm drives the new-contact form. Name and email are gated locally
// before any network call, field values survive a failed submit so the user
// can retry without re-typing
type ContactForm struct {
	api        *client.Client
	list       *ListView
	clearDelay time.Duration

	mu         sync.Mutex
	name       string
	company    string
	email      string
	phone      string
	status     model.Status
	submitting bool
	message    *Message
	msgTimer   *time.Timer
}

type ContactFormOptionFunc func(*ContactForm)

// WithMessageClearDelay overrides how long transient messages stay visible
func WithMessageClearDelay(delay time.Duration) ContactFormOptionFunc {
	return func(f *ContactForm) {
		f.clearDelay = delay
	}
}

// NewContactForm builds ContactForm, list is refreshed on successful submit
func NewContactForm(api *client.Client, list *ListView, funcs ...ContactFormOptionFunc) *ContactForm {
	f := &ContactForm{
		api:        api,
		list:       list,
		status:     model.DefaultStatus,
		clearDelay: messageClearDelay,
	}

	for _, fn := range funcs {
		fn(f)
	}
	return f
}

func (f *ContactForm) SetName(name string) { f.setField(&f.name, name) }

func (f *ContactForm) SetCompany(company string) { f.setField(&f.company, company) }

func (f *ContactForm) SetEmail(email string) { f.setField(&f.email, email) }

func (f *ContactForm) SetPhone(phone string) { f.setField(&f.phone, phone) }

func (f *ContactForm) SetStatus(status model.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

// Snapshot returns a copy of the current form state for rendering
func (f *ContactForm) Snapshot() FormSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot := FormSnapshot{
		Name:       f.name,
		Company:    f.company,
		Email:      f.email,
		Phone:      f.phone,
		Status:     f.status,
		Submitting: f.submitting,
	}

	if f.message != nil {
		m := *f.message
		snapshot.Message = &m
	}
	return snapshot
}

// Submit validates the form locally and creates the contact. On success the
// fields are reset to defaults and the list is refreshed, on failure field
// values are left intact. The returned error mirrors the surfaced message
func (f *ContactForm) Submit(ctx context.Context) error {
	f.mu.Lock()

	if f.submitting {
		f.mu.Unlock()
		return nil
	}

	// message from the previous submit clears immediately
	f.setMessageLocked(nil)

	if strings.TrimSpace(f.name) == "" || strings.TrimSpace(f.email) == "" {
		f.setMessageLocked(&Message{Kind: MessageError, Text: "Name and Email are required."})
		f.mu.Unlock()
		return nil
	}

	f.submitting = true
	nc := model.NewContact{
		Name:    f.name,
		Company: f.company,
		Email:   f.email,
		Phone:   f.phone,
		Status:  f.status,
	}
	f.mu.Unlock()

	created, err := f.api.Create(ctx, nc)

	f.mu.Lock()
	f.submitting = false

	if err != nil {
		logrus.Errorf("failed to create contact - %v", err)
		f.setMessageLocked(&Message{Kind: MessageError, Text: "Failed to create contact."})
		f.mu.Unlock()
		return err
	}

	f.name = ""
	f.company = ""
	f.email = ""
	f.phone = ""
	f.status = model.DefaultStatus
	f.setMessageLocked(&Message{Kind: MessageSuccess, Text: "Contact created."})
	f.mu.Unlock()

	logrus.Infof("contact %s created", created.ID)
	f.list.Refresh()
	return nil
}

func (f *ContactForm) setField(field *string, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	*field = value
}

func (f *ContactForm) setMessageLocked(m *Message) {
	if f.msgTimer != nil {
		f.msgTimer.Stop()
		f.msgTimer = nil
	}

	f.message = m
	if m == nil {
		return
	}

	f.msgTimer = time.AfterFunc(f.clearDelay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.message = nil
	})
}
