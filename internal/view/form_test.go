package view

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umalmyha/contacts/internal/model"
	"github.com/umalmyha/contacts/pkg/client"
)

const testMessageClearDelay = 40 * time.Millisecond

func newTestContactForm(t *testing.T, handler http.Handler) (*ContactForm, *int32) {
	t.Helper()

	var listRequests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(&listRequests, 1)
		}
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	api, err := client.New(srv.URL)
	require.NoError(t, err)

	lv := NewListView(api, WithDebounceDelay(testDebounceDelay))
	form := NewContactForm(api, lv, WithMessageClearDelay(testMessageClearDelay))
	return form, &listRequests
}

func createHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var nc model.NewContact
			require.NoError(t, json.NewDecoder(r.Body).Decode(&nc))

			status := nc.Status
			if status == "" {
				status = model.DefaultStatus
			}

			writeJSON(t, w, &model.Contact{
				ID:        uuid.NewString(),
				Name:      nc.Name,
				Company:   nc.Company,
				Email:     nc.Email,
				Phone:     nc.Phone,
				Status:    status,
				CreatedAt: time.Now().UTC(),
			})
		case http.MethodGet:
			writeJSON(t, w, []model.Contact{})
		}
	})
}

func TestSubmitLocallyInvalid(t *testing.T) {
	var anyRequest int32
	form, _ := newTestContactForm(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&anyRequest, 1)
	}))

	form.SetName("   ")
	form.SetEmail("")

	require.NoError(t, form.Submit(context.Background()), "local validation failure is not a transport error")

	snapshot := form.Snapshot()
	require.NotNil(t, snapshot.Message, "error message must be surfaced")
	assert.Equal(t, MessageError, snapshot.Message.Kind)
	assert.Equal(t, int32(0), atomic.LoadInt32(&anyRequest), "no network call must be performed")
}

func TestSubmitSuccessfully(t *testing.T) {
	form, listRequests := newTestContactForm(t, createHandler(t))

	form.SetName("Jane Doe")
	form.SetCompany("Acme Corp")
	form.SetEmail("jane@x.com")
	form.SetPhone("555-0101")
	form.SetStatus(model.StatusFollowUp)

	require.NoError(t, form.Submit(context.Background()))

	snapshot := form.Snapshot()
	assert.Empty(t, snapshot.Name, "name must be cleared")
	assert.Empty(t, snapshot.Company, "company must be cleared")
	assert.Empty(t, snapshot.Email, "email must be cleared")
	assert.Empty(t, snapshot.Phone, "phone must be cleared")
	assert.Equal(t, model.DefaultStatus, snapshot.Status, "status must be reset to default")
	assert.False(t, snapshot.Submitting, "submitting must be cleared")

	require.NotNil(t, snapshot.Message, "success message must be surfaced")
	assert.Equal(t, MessageSuccess, snapshot.Message.Kind)

	assert.Equal(t, int32(1), atomic.LoadInt32(listRequests), "list must be refreshed after successful create")
}

func TestSubmitFailureKeepsFields(t *testing.T) {
	form, listRequests := newTestContactForm(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"persistence err"}`, http.StatusBadRequest)
	}))

	form.SetName("Jane Doe")
	form.SetEmail("jane@x.com")

	require.Error(t, form.Submit(context.Background()), "failure must be surfaced")

	snapshot := form.Snapshot()
	assert.Equal(t, "Jane Doe", snapshot.Name, "field values must survive failed submit")
	assert.Equal(t, "jane@x.com", snapshot.Email, "field values must survive failed submit")
	assert.False(t, snapshot.Submitting, "submitting must be cleared")

	require.NotNil(t, snapshot.Message, "error message must be surfaced")
	assert.Equal(t, MessageError, snapshot.Message.Kind)

	assert.Equal(t, int32(0), atomic.LoadInt32(listRequests), "no refresh must happen on failure")
}

func TestTransientMessageClears(t *testing.T) {
	form, _ := newTestContactForm(t, createHandler(t))

	form.SetName("Jane Doe")
	form.SetEmail("jane@x.com")

	require.NoError(t, form.Submit(context.Background()))
	require.NotNil(t, form.Snapshot().Message, "message must be visible right after submit")

	require.Eventually(t, func() bool {
		return form.Snapshot().Message == nil
	}, time.Second, 5*time.Millisecond, "transient message must clear automatically")
}
